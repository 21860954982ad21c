package telemetry

import "time"

type EventType string

const (
	EventSessionStarted    EventType = "session_started"
	EventYearTick          EventType = "year_tick"
	EventFieldPhasedOut    EventType = "field_phased_out"
	EventPhaseOutScheduled EventType = "phase_out_scheduled"
	EventInvestmentStarted EventType = "investment_started"
	EventOilPriceSet       EventType = "oil_price_set"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
