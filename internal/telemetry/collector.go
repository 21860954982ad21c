package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "phaseout"

// Snapshot is the per-year state the collector exports.
type Snapshot struct {
	Year          int
	Emissions     float64
	Revenue       float64
	OilPrice      float64
	Score         float64
	ActiveFields  int
	RetiredFields int
}

// Collector exposes simulation progress as Prometheus metrics on its own
// registry, so several sessions in one process do not collide.
type Collector struct {
	reg *prometheus.Registry

	year      prometheus.Gauge
	emissions prometheus.Gauge
	revenue   prometheus.Gauge
	oilPrice  prometheus.Gauge
	score     prometheus.Gauge
	fields    *prometheus.GaugeVec
	ticks     prometheus.Counter
	phaseOuts prometheus.Counter
	invested  *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		year: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "year",
			Help: "Current simulated year.",
		}),
		emissions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "emissions_tonnes",
			Help: "Total CO2 emissions for the current year, including exported oil.",
		}),
		revenue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "revenue_nok",
			Help: "Petroleum revenue for the current year.",
		}),
		oilPrice: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "oil_price_usd",
			Help: "Oil price per barrel for the current year.",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "score",
			Help: "Running game score.",
		}),
		fields: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "fields",
			Help: "Fields by status.",
		}, []string{"status"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "year_ticks_total",
			Help: "Years simulated.",
		}),
		phaseOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "phase_outs_total",
			Help: "Fields retired.",
		}),
		invested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "investments_total",
			Help: "Investments started by type.",
		}, []string{"type"}),
	}
	c.reg.MustRegister(c.year, c.emissions, c.revenue, c.oilPrice, c.score,
		c.fields, c.ticks, c.phaseOuts, c.invested)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Observe records a completed year tick.
func (c *Collector) Observe(s Snapshot) {
	c.year.Set(float64(s.Year))
	c.emissions.Set(s.Emissions)
	c.revenue.Set(s.Revenue)
	c.oilPrice.Set(s.OilPrice)
	c.score.Set(s.Score)
	c.fields.WithLabelValues("active").Set(float64(s.ActiveFields))
	c.fields.WithLabelValues("retired").Set(float64(s.RetiredFields))
	c.ticks.Inc()
}

func (c *Collector) PhasedOut(n int) {
	c.phaseOuts.Add(float64(n))
}

func (c *Collector) InvestmentStarted(kind string) {
	c.invested.WithLabelValues(kind).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
