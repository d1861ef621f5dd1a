// Package main provides CMA-ES optimization for ant colony foraging parameters.
package main

import (
	"math"

	"github.com/pthm-cable/antfarm/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before use

	get func(cfg *config.Config) float64
	set func(cfg *config.Config, v float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Defaults match defaults.yaml.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Sensing
			{
				Name: "sight", Path: "sensing.sight", Min: 1, Max: 10, Default: 5, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Sensing.Sight) },
				set: func(c *config.Config, v float64) { c.Sensing.Sight = int(v) },
			},
			// Integer so Pow stays defined for negative home scores
			{
				Name: "score_power", Path: "sensing.score_power", Min: 1, Max: 5, Default: 3, Integer: true,
				get: func(c *config.Config) float64 { return c.Sensing.ScorePower },
				set: func(c *config.Config, v float64) { c.Sensing.ScorePower = v },
			},
			{
				Name: "random_direction_chance", Path: "sensing.random_direction_chance", Min: 0, Max: 0.2, Default: 0.02,
				get: func(c *config.Config) float64 { return c.Sensing.RandomDirectionChance },
				set: func(c *config.Config, v float64) { c.Sensing.RandomDirectionChance = v },
			},
			{
				Name: "home_reward_offset", Path: "sensing.home_reward_offset", Min: 1, Max: 300, Default: 100,
				get: func(c *config.Config) float64 { return c.Sensing.HomeRewardOffset },
				set: func(c *config.Config, v float64) { c.Sensing.HomeRewardOffset = v },
			},
			{
				Name: "food_reward", Path: "sensing.food_reward", Min: 1, Max: 300, Default: 100,
				get: func(c *config.Config) float64 { return c.Sensing.FoodReward },
				set: func(c *config.Config, v float64) { c.Sensing.FoodReward = v },
			},
			// Pheromone
			{
				Name: "food_decay", Path: "pheromone.food_decay", Min: 0.90, Max: 0.999, Default: 0.99,
				get: func(c *config.Config) float64 { return c.Pheromone.FoodDecay },
				set: func(c *config.Config, v float64) { c.Pheromone.FoodDecay = v },
			},
			{
				Name: "home_decay", Path: "pheromone.home_decay", Min: 0.90, Max: 0.999, Default: 0.97,
				get: func(c *config.Config) float64 { return c.Pheromone.HomeDecay },
				set: func(c *config.Config, v float64) { c.Pheromone.HomeDecay = v },
			},
			{
				Name: "deposit_amount", Path: "pheromone.deposit_amount", Min: 0.1, Max: 5, Default: 1,
				get: func(c *config.Config) float64 { return c.Pheromone.DepositAmount },
				set: func(c *config.Config, v float64) { c.Pheromone.DepositAmount = v },
			},
			// Colony
			{
				Name: "lifespan", Path: "colony.lifespan", Min: 200, Max: 4000, Default: 1500, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Colony.Lifespan) },
				set: func(c *config.Config, v float64) { c.Colony.Lifespan = int(v) },
			},
			{
				Name: "potency_reward", Path: "colony.potency_reward", Min: 1.0, Max: 1.5, Default: 1.1,
				get: func(c *config.Config) float64 { return c.Colony.PotencyReward },
				set: func(c *config.Config, v float64) { c.Colony.PotencyReward = v },
			},
			{
				Name: "potency_punishment", Path: "colony.potency_punishment", Min: 0.3, Max: 0.99, Default: 0.7,
				get: func(c *config.Config) float64 { return c.Colony.PotencyPunishment },
				set: func(c *config.Config, v float64) { c.Colony.PotencyPunishment = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(v[i], spec.Max))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct and refreshes derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
	cfg.Recompute()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.get(cfg)
	}
	return out
}
