// Package telemetry provides colony health tracking, window stats and CSV output.
package telemetry

import "log/slog"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventPickup EventType = iota
	EventDelivery
	EventDeath
	EventRespawn
	EventFoodPlaced
)

func (t EventType) String() string {
	switch t {
	case EventPickup:
		return "pickup"
	case EventDelivery:
		return "delivery"
	case EventDeath:
		return "death"
	case EventRespawn:
		return "respawn"
	case EventFoodPlaced:
		return "food_placed"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type EventType
	Tick int32
	Ant  int // population index, -1 for events not tied to an ant
	X, Y int

	// Optional fields depending on event type
	Potency float64 // ant potency after the event
	Cells   int     // food cells converted (food placed)
}

// NewAntEvent creates an event caused by the ant at index ant standing at (x, y).
func NewAntEvent(t EventType, tick int32, ant, x, y int, potency float64) Event {
	return Event{Type: t, Tick: tick, Ant: ant, X: x, Y: y, Potency: potency}
}

// NewFoodPlacedEvent creates an event for an external food placement.
func NewFoodPlacedEvent(tick int32, x, y, cells int) Event {
	return Event{Type: EventFoodPlaced, Tick: tick, Ant: -1, X: x, Y: y, Cells: cells}
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.Int("tick", int(e.Tick)),
		slog.Int("x", e.X),
		slog.Int("y", e.Y),
	}
	if e.Ant >= 0 {
		attrs = append(attrs, slog.Int("ant", e.Ant), slog.Float64("potency", e.Potency))
	}
	if e.Type == EventFoodPlaced {
		attrs = append(attrs, slog.Int("cells", e.Cells))
	}
	return slog.GroupValue(attrs...)
}
