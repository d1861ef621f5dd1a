package telemetry

import "log/slog"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	pickups    int
	deliveries int
	deaths     int
	respawns   int
	foodPlaced int

	// Run totals
	totalDeliveries int
}

// NewCollector creates a new stats collector.
// windowTicks: how many simulation ticks each stats window spans.
func NewCollector(windowTicks int32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: windowTicks}
}

// Record counts an event in the current window.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventPickup:
		c.pickups++
	case EventDelivery:
		c.deliveries++
		c.totalDeliveries++
	case EventDeath:
		c.deaths++
	case EventRespawn:
		c.respawns++
	case EventFoodPlaced:
		c.foodPlaced += e.Cells
	}
	slog.Debug("colony event", "event", e)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// ColonySnapshot holds point-in-time colony state sampled at window end.
type ColonySnapshot struct {
	Alive         int
	Dead          int
	Carrying      int
	Potencies     []float64 // potency of every ant, alive or dead
	FoodRemaining int
	FoodPheromone float64 // field totals
	HomePheromone float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap ColonySnapshot) WindowStats {
	var successRate float64
	if c.pickups > 0 {
		successRate = float64(c.deliveries) / float64(c.pickups)
	}

	ps := ComputePotencyStats(snap.Potencies)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Alive:    snap.Alive,
		Dead:     snap.Dead,
		Carrying: snap.Carrying,

		Pickups:         c.pickups,
		Deliveries:      c.deliveries,
		Deaths:          c.deaths,
		Respawns:        c.respawns,
		FoodPlaced:      c.foodPlaced,
		DeliveryRate:    successRate,
		TotalDeliveries: c.totalDeliveries,

		FoodRemaining: snap.FoodRemaining,
		FoodPheromone: snap.FoodPheromone,
		HomePheromone: snap.HomePheromone,

		PotencyMean: ps.Mean,
		PotencyStd:  ps.Std,
		PotencyP10:  ps.P10,
		PotencyP50:  ps.P50,
		PotencyP90:  ps.P90,
		PotencyMax:  ps.Max,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.pickups = 0
	c.deliveries = 0
	c.deaths = 0
	c.respawns = 0
	c.foodPlaced = 0

	return stats
}

// TotalDeliveries returns food delivered home since the collector was created.
func (c *Collector) TotalDeliveries() int {
	return c.totalDeliveries
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
