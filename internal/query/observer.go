package query

import "time"

// EventType represents different lifecycle phases of query processing
type EventType string

const (
	EventParseStart EventType = "parse_start"
	EventParseEnd   EventType = "parse_end"
	EventExecStart  EventType = "exec_start"
	EventExecEnd    EventType = "exec_end"
)

// Event represents a lifecycle event in query processing
type Event struct {
	Type      EventType // Type of event
	QueryID   string    // Query ID for tracing
	Timestamp time.Time // When the event occurred
	Data      any       // Phase-specific data (request text, row count, status)
}

// Observer interface for event subscribers
// Observers receive events at major processing phases
type Observer interface {
	OnEvent(event Event)
}
