// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Colony    ColonyConfig    `yaml:"colony"`
	Sensing   SensingConfig   `yaml:"sensing"`
	Pheromone PheromoneConfig `yaml:"pheromone"`
	Layout    LayoutConfig    `yaml:"layout"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`       // Window width in pixels (0 = world width * cell_pixels)
	Height     int `yaml:"height"`      // Window height in pixels (0 = world height * cell_pixels)
	TargetFPS  int `yaml:"target_fps"`
	CellPixels int `yaml:"cell_pixels"` // Upsampling factor from grid cells to screen pixels
}

// WorldConfig holds grid dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`  // Grid width in cells
	Height int `yaml:"height"` // Grid height in cells
}

// ColonyConfig holds ant population and lifecycle parameters.
type ColonyConfig struct {
	NumAnts           int     `yaml:"num_ants"`
	Lifespan          int     `yaml:"lifespan"`           // Steps without pickup/drop before an ant dies
	RespawnChance     float64 `yaml:"respawn_chance"`     // Per-tick probability a dead ant respawns
	PotencyReward     float64 `yaml:"potency_reward"`     // Potency multiplier on food pickup (>1)
	PotencyPunishment float64 `yaml:"potency_punishment"` // Potency multiplier per dead tick (<1)
}

// SensingConfig holds the direction scoring parameters.
type SensingConfig struct {
	Sight                 int     `yaml:"sight"`                   // Distance to the sampled window center
	ScorePower            float64 `yaml:"score_power"`             // Exponent applied to directional scores
	RandomDirectionChance float64 `yaml:"random_direction_chance"` // Chance to ignore scores and wander
	HomeRewardOffset      float64 `yaml:"home_reward_offset"`      // Reward for cells closer to home
	FoodReward            float64 `yaml:"food_reward"`             // Score of a food/home cell
}

// PheromoneConfig holds deposition and decay parameters.
type PheromoneConfig struct {
	FoodDecay      float64 `yaml:"food_decay"`      // Per-tick multiplier for food pheromone (<1)
	HomeDecay      float64 `yaml:"home_decay"`      // Per-tick multiplier for home pheromone (<1)
	DepositAmount  float64 `yaml:"deposit_amount"`  // Base deposit, scaled by ant potency
	ColorIntensity float64 `yaml:"color_intensity"` // Renderer saturation scale for trails
}

// LayoutConfig holds the initial home and food placement.
type LayoutConfig struct {
	CornerOffset int `yaml:"corner_offset"` // Distance of home/food blocks from the grid corners
	HomeSize     int `yaml:"home_size"`     // Side of the home block (0 = single cell)
	FoodSize     int `yaml:"food_size"`     // Side of the initial food block (0 = none)
	HomeX        int `yaml:"home_x"`        // -1 = corner_offset
	HomeY        int `yaml:"home_y"`        // -1 = corner_offset
	FoodX        int `yaml:"food_x"`        // -1 = width - corner_offset - food_size + 1
	FoodY        int `yaml:"food_y"`        // -1 = height - corner_offset - food_size + 1
	FoodRadius   int `yaml:"food_radius"`   // Radius of the square painted by a food click
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW   int32 // Effective window width
	ScreenH   int32 // Effective window height
	HomeX     int   // Resolved home block origin
	HomeY     int
	FoodX     int // Resolved initial food block origin
	FoodY     int
	Lifespan  int // Colony.Lifespan floored at 1
	CellScale float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
// Config holds no reference types, so a value copy is sufficient.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() {
	c.computeDerived()
}

func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.Colony.NumAnts < 0 {
		return fmt.Errorf("colony.num_ants must not be negative, got %d", c.Colony.NumAnts)
	}
	if c.Pheromone.FoodDecay <= 0 || c.Pheromone.FoodDecay >= 1 {
		return fmt.Errorf("pheromone.food_decay must be in (0,1), got %v", c.Pheromone.FoodDecay)
	}
	if c.Pheromone.HomeDecay <= 0 || c.Pheromone.HomeDecay >= 1 {
		return fmt.Errorf("pheromone.home_decay must be in (0,1), got %v", c.Pheromone.HomeDecay)
	}
	if c.Colony.PotencyPunishment <= 0 || c.Colony.PotencyPunishment >= 1 {
		return fmt.Errorf("colony.potency_punishment must be in (0,1), got %v", c.Colony.PotencyPunishment)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	l := c.Layout

	c.Derived.HomeX = l.HomeX
	if c.Derived.HomeX < 0 {
		c.Derived.HomeX = l.CornerOffset
	}
	c.Derived.HomeY = l.HomeY
	if c.Derived.HomeY < 0 {
		c.Derived.HomeY = l.CornerOffset
	}

	// The initial food block mirrors the home block in the opposite corner
	c.Derived.FoodX = l.FoodX
	if c.Derived.FoodX < 0 {
		c.Derived.FoodX = c.World.Width - l.CornerOffset - l.FoodSize + 1
	}
	c.Derived.FoodY = l.FoodY
	if c.Derived.FoodY < 0 {
		c.Derived.FoodY = c.World.Height - l.CornerOffset - l.FoodSize + 1
	}

	c.Derived.Lifespan = max(c.Colony.Lifespan, 1)

	pixels := max(c.Screen.CellPixels, 1)
	c.Derived.CellScale = float32(pixels)

	c.Derived.ScreenW = int32(c.Screen.Width)
	if c.Derived.ScreenW == 0 {
		c.Derived.ScreenW = int32(c.World.Width * pixels)
	}
	c.Derived.ScreenH = int32(c.Screen.Height)
	if c.Derived.ScreenH == 0 {
		c.Derived.ScreenH = int32(c.World.Height * pixels)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
