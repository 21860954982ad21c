package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period             string            `json:"period"`
	EventCounts        map[EventType]int `json:"event_counts"`
	YearTicks          int               `json:"year_ticks"`
	FieldsPhasedOut    int               `json:"fields_phased_out"`
	PhaseOutsScheduled int               `json:"phase_outs_scheduled"`
	PhaseOutsPerYear   float64           `json:"phase_outs_per_year"`
	InvestmentsByType  map[string]int    `json:"investments_by_type"`
	LastEmissions      float64           `json:"last_emissions"`
	LastScore          float64           `json:"last_score"`
}

// CalculateStats summarises a session's events.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:            since.Format("2006-01-02"),
		EventCounts:       make(map[EventType]int),
		InvestmentsByType: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventYearTick:
			stats.YearTicks++
			if v, ok := metadata["emissions"].(float64); ok {
				stats.LastEmissions = v
			}
			if v, ok := metadata["score"].(float64); ok {
				stats.LastScore = v
			}
		case EventFieldPhasedOut:
			stats.FieldsPhasedOut++
		case EventPhaseOutScheduled:
			stats.PhaseOutsScheduled++
		case EventInvestmentStarted:
			if t, ok := metadata["investment_type"].(string); ok {
				stats.InvestmentsByType[t]++
			}
		}
	}

	if stats.YearTicks > 0 {
		stats.PhaseOutsPerYear = float64(stats.FieldsPhasedOut) / float64(stats.YearTicks)
	}

	return stats, nil
}
