// Package game wires the colony simulation to telemetry, input and rendering.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/renderer"
	"github.com/pthm-cable/antfarm/systems"
	"github.com/pthm-cable/antfarm/telemetry"
	"github.com/pthm-cable/antfarm/ui"
)

// maxStepsPerUpdate caps the speed multiplier in graphical mode.
const maxStepsPerUpdate = 20

// Options configures a new Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindow    int // ticks per stats window (0 = config)
	SnapshotDir    string // bookmark snapshots (empty = <OutputDir>/snapshots)
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// Config overrides the global config (optimizer runs use private copies).
	Config *config.Config

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the simulation plus everything that observes or drives it.
type Game struct {
	cfg  *config.Config
	sim  *Simulation
	seed int64

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snapshotDir      string
	lastStats        telemetry.WindowStats

	// Run control
	headless       bool
	paused         bool
	stepsPerUpdate int

	// Graphics (nil in headless mode)
	field     *renderer.FieldRenderer
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	inspector *ui.CellInspector
	overlays  *ui.OverlayRegistry
}

// NewGameWithOptions builds the simulation from config and attaches telemetry.
// Graphical mode requires the raylib window to exist already.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	vars := systems.VarsFromConfig(cfg)
	rng := rand.New(rand.NewSource(opts.Seed))
	sim, err := NewSimulation(vars, cfg.World.Width, cfg.World.Height, rng)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	statsWindow := opts.StatsWindow
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:              cfg,
		sim:              sim,
		seed:             opts.Seed,
		collector:        telemetry.NewCollector(int32(statsWindow)),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		headless:         opts.Headless,
		stepsPerUpdate:   max(opts.StepsPerUpdate, 1),
	}
	sim.SetEventRecorder(g.collector)
	sim.SetPhaseTimer(g.perfCollector)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !opts.Headless {
		g.initGraphics()
	}

	return g, nil
}

func (g *Game) initGraphics() {
	w, h := g.cfg.Derived.ScreenW, g.cfg.Derived.ScreenH
	g.field = renderer.NewFieldRenderer(g.cfg.Derived.CellScale, g.cfg.Pheromone.ColorIntensity)
	g.field.Init(g.sim.Width(), g.sim.Height())
	g.overlays = ui.NewOverlayRegistry()
	g.hud = ui.NewHUD(w-190, 10, 180)
	g.controls = ui.NewControlsPanel(w-190, 200, 180)
	g.inspector = ui.NewCellInspector(w, h)
}

// Update handles input and advances the simulation in graphical mode.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless advances the simulation without touching raylib.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step runs one simulation tick with perf timing and telemetry.
func (g *Game) step() {
	g.perfCollector.StartTick()
	g.sim.AdvanceOneTick()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// Draw renders the field, ants and UI.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(renderer.Background)

	g.field.Update(g.sim.Grid(), renderer.Overlay{
		FoodTrail: g.overlays.IsEnabled(ui.OverlayFoodTrail),
		HomeTrail: g.overlays.IsEnabled(ui.OverlayHomeTrail),
	})

	var ants []renderer.AntMark
	if g.overlays.IsEnabled(ui.OverlayAnts) {
		views := g.sim.Ants()
		ants = make([]renderer.AntMark, len(views))
		for i, a := range views {
			ants[i] = renderer.AntMark{X: a.X, Y: a.Y, Carrying: a.CarryingFood, Dead: a.Dead}
		}
	}
	g.field.Draw(ants)

	if g.overlays.IsEnabled(ui.OverlayStats) {
		g.hud.Draw(g.hudData())
	}
	g.applyControls(g.controls.Draw(g.paused, g.overlays))
	g.drawInspector()
	g.hud.DrawControls(g.cfg.Derived.ScreenH, "[click] food  [space] pause  [,/.] speed  [tab] panel")
}

func (g *Game) hudData() ui.HUDData {
	snap := g.sim.ColonySnapshot()
	return ui.HUDData{
		Tick:            g.sim.Tick(),
		StepsPerUpdate:  g.stepsPerUpdate,
		FPS:             rl.GetFPS(),
		Paused:          g.paused,
		Alive:           snap.Alive,
		Dead:            snap.Dead,
		Carrying:        snap.Carrying,
		FoodRemaining:   snap.FoodRemaining,
		TotalDeliveries: g.collector.TotalDeliveries(),
		FoodPheromone:   snap.FoodPheromone,
		HomePheromone:   snap.HomePheromone,
	}
}

func (g *Game) drawInspector() {
	mouse := rl.GetMousePosition()
	cx, cy := g.field.ScreenToCell(mouse.X, mouse.Y)
	info, ok := g.cellInfo(cx, cy)
	if !ok {
		return
	}
	g.inspector.Draw(info, int32(mouse.X), int32(mouse.Y))
}

// cellInfo describes the cell at (x, y) for the inspector.
func (g *Game) cellInfo(x, y int) (ui.CellInfo, bool) {
	t, ok := g.sim.CellTypeAt(x, y)
	if !ok {
		return ui.CellInfo{}, false
	}
	food, home, _ := g.sim.PheromoneAt(x, y)
	info := ui.CellInfo{X: x, Y: y, Type: t.String(), FoodPheromone: food, HomePheromone: home}
	for _, a := range g.sim.Ants() {
		if a.X == x && a.Y == y {
			info.Ants++
		}
	}
	return info, true
}

// Unload releases graphics and closes output files.
func (g *Game) Unload() {
	if g.field != nil {
		g.field.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.sim.Tick()
}

// Simulation returns the underlying simulation.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// TotalDeliveries returns food delivered home since the run began.
func (g *Game) TotalDeliveries() int {
	return g.collector.TotalDeliveries()
}

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}
