package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population at window end
	Alive    int `csv:"alive"`
	Dead     int `csv:"dead"`
	Carrying int `csv:"carrying"`

	// Events during window
	Pickups         int     `csv:"pickups"`
	Deliveries      int     `csv:"deliveries"`
	Deaths          int     `csv:"deaths"`
	Respawns        int     `csv:"respawns"`
	FoodPlaced      int     `csv:"food_placed"`
	DeliveryRate    float64 `csv:"delivery_rate"`
	TotalDeliveries int     `csv:"total_deliveries"`

	// Field state at window end
	FoodRemaining int     `csv:"food_remaining"`
	FoodPheromone float64 `csv:"food_pheromone"`
	HomePheromone float64 `csv:"home_pheromone"`

	// Potency distribution
	PotencyMean float64 `csv:"potency_mean"`
	PotencyStd  float64 `csv:"potency_std"`
	PotencyP10  float64 `csv:"potency_p10"`
	PotencyP50  float64 `csv:"potency_p50"`
	PotencyP90  float64 `csv:"potency_p90"`
	PotencyMax  float64 `csv:"potency_max"`
}

// PotencyStats summarizes a potency sample.
type PotencyStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputePotencyStats calculates mean, std, percentiles and max.
// Percentiles use the empirical quantile: the lowest sample covering fraction p.
func ComputePotencyStats(values []float64) PotencyStats {
	n := len(values)
	if n == 0 {
		return PotencyStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var ps PotencyStats
	if n == 1 {
		ps.Mean = sorted[0]
	} else {
		ps.Mean, ps.Std = stat.MeanStdDev(sorted, nil)
	}
	ps.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	ps.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	ps.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	ps.Max = sorted[n-1]
	return ps
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("alive", s.Alive),
		slog.Int("dead", s.Dead),
		slog.Int("carrying", s.Carrying),
		slog.Int("pickups", s.Pickups),
		slog.Int("deliveries", s.Deliveries),
		slog.Int("deaths", s.Deaths),
		slog.Int("respawns", s.Respawns),
		slog.Int("food_placed", s.FoodPlaced),
		slog.Float64("delivery_rate", s.DeliveryRate),
		slog.Int("total_deliveries", s.TotalDeliveries),
		slog.Int("food_remaining", s.FoodRemaining),
		slog.Float64("food_pheromone", s.FoodPheromone),
		slog.Float64("home_pheromone", s.HomePheromone),
		slog.Float64("potency_mean", s.PotencyMean),
		slog.Float64("potency_std", s.PotencyStd),
		slog.Float64("potency_p10", s.PotencyP10),
		slog.Float64("potency_p50", s.PotencyP50),
		slog.Float64("potency_p90", s.PotencyP90),
		slog.Float64("potency_max", s.PotencyMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
