package systems

import "github.com/pthm-cable/antfarm/config"

// Vars holds the tunable constants shared by every ant decision.
// It is built once from config and treated as read-only during a run.
type Vars struct {
	NumAnts               int
	Lifespan              int
	Sight                 int
	FoodDecay             float64
	HomeDecay             float64
	ScorePower            float64
	RandomDirectionChance float64
	HomeRewardOffset      float64
	FoodReward            float64
	DepositAmount         float64
	RespawnChance         float64
	PotencyReward         float64
	PotencyPunishment     float64
	FoodRadius            int

	HomeX, HomeY, HomeSize int
	FoodX, FoodY, FoodSize int
}

// VarsFromConfig extracts simulation constants from a loaded config.
func VarsFromConfig(cfg *config.Config) Vars {
	return Vars{
		NumAnts:               cfg.Colony.NumAnts,
		Lifespan:              cfg.Derived.Lifespan,
		Sight:                 cfg.Sensing.Sight,
		FoodDecay:             cfg.Pheromone.FoodDecay,
		HomeDecay:             cfg.Pheromone.HomeDecay,
		ScorePower:            cfg.Sensing.ScorePower,
		RandomDirectionChance: cfg.Sensing.RandomDirectionChance,
		HomeRewardOffset:      cfg.Sensing.HomeRewardOffset,
		FoodReward:            cfg.Sensing.FoodReward,
		DepositAmount:         cfg.Pheromone.DepositAmount,
		RespawnChance:         cfg.Colony.RespawnChance,
		PotencyReward:         cfg.Colony.PotencyReward,
		PotencyPunishment:     cfg.Colony.PotencyPunishment,
		FoodRadius:            cfg.Layout.FoodRadius,
		HomeX:                 cfg.Derived.HomeX,
		HomeY:                 cfg.Derived.HomeY,
		HomeSize:              cfg.Layout.HomeSize,
		FoodX:                 cfg.Derived.FoodX,
		FoodY:                 cfg.Derived.FoodY,
		FoodSize:              cfg.Layout.FoodSize,
	}
}

// EffectiveLifespan returns the lifespan floored at one step.
func (v *Vars) EffectiveLifespan() int {
	return max(v.Lifespan, 1)
}
