package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/game"
	"github.com/pthm-cable/antfarm/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	mu          sync.Mutex
	bestFitness float64
	bestStats   []telemetry.WindowStats // window series of the best seed of the best evaluation
	lastQuality float64                 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: baseCfg.Telemetry.StatsWindow,
		bestFitness: math.Inf(1),
	}
}

// BestStats returns the window stats from the best evaluation.
func (fe *FitnessEvaluator) BestStats() []telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestStats
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	deliveries  int
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
	err         error
}

type seedResult struct {
	fitness float64
	quality float64
	stats   []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative deliveries, so more food brought home is better.
// A run that cannot be built scores +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			if result.err != nil {
				results[idx] = seedResult{fitness: math.Inf(1)}
				return
			}
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness: computeFitness(result.deliveries, quality),
				quality: quality,
				stats:   result.windowStats,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedStats []telemetry.WindowStats

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedStats = r.stats
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestStats = bestSeedStats
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run for maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindow:    fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		result.err = fmt.Errorf("seed %d: %w", seed, err)
		return result
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	result.deliveries = g.TotalDeliveries()
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(deliveries × (1.0 + 0.2 × quality))
// Deliveries dominate; quality adds up to 20% bonus to separate
// configs with similar throughput.
func computeFitness(deliveries int, quality float64) float64 {
	return -(float64(deliveries) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRate     = 0.5
	qualityWeightSurvival = 0.3
	qualityWeightSteady   = 0.2

	qualityWarmupWindows = 1 // skip first N windows while trails form
)

// computeQuality scores colony health ∈ [0, 1] from window stats: how many
// pickups end in a delivery, how much of the colony is alive, and how steady
// deliveries are across windows.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var rateSum, aliveSum float64
	var delivered int
	deliveries := make([]float64, 0, len(valid))
	for _, w := range valid {
		rateSum += math.Min(w.DeliveryRate, 1)
		if total := w.Alive + w.Dead; total > 0 {
			aliveSum += float64(w.Alive) / float64(total)
		}
		deliveries = append(deliveries, float64(w.Deliveries))
		delivered += w.Deliveries
	}

	n := float64(len(valid))
	rateScore := rateSum / n
	survivalScore := aliveSum / n

	steadyScore := 0.0
	if len(deliveries) >= 2 && delivered > 0 {
		c := cv(deliveries)
		steadyScore = math.Exp(-c * c)
	}

	quality := qualityWeightRate*rateScore +
		qualityWeightSurvival*survivalScore +
		qualityWeightSteady*steadyScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
