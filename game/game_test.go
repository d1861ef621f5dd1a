package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/telemetry"
	"github.com/pthm-cable/antfarm/ui"
)

func smallConfig() *config.Config {
	cfg := config.Cfg().Clone()
	cfg.World.Width, cfg.World.Height = 30, 30
	cfg.Colony.NumAnts = 10
	cfg.Layout.CornerOffset = 2
	cfg.Layout.HomeSize = 3
	cfg.Layout.FoodSize = 3
	cfg.Recompute()
	return cfg
}

func TestHeadlessRunWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	var windows []telemetry.WindowStats

	g, err := NewGameWithOptions(Options{
		Seed:           1,
		StatsWindow:    10,
		OutputDir:      dir,
		Headless:       true,
		StepsPerUpdate: 5,
		Config:         smallConfig(),
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}

	for i := 0; i < 5; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	if g.Tick() != 25 {
		t.Errorf("Tick = %d, want 25", g.Tick())
	}
	if len(windows) != 2 {
		t.Fatalf("got %d stats windows, want 2", len(windows))
	}
	if windows[1].WindowEndTick != 20 {
		t.Errorf("second window ends at %d, want 20", windows[1].WindowEndTick)
	}
	if g.LastStats().WindowEndTick != 20 {
		t.Errorf("LastStats ends at %d, want 20", g.LastStats().WindowEndTick)
	}
	for _, w := range windows {
		if w.Alive+w.Dead != 10 {
			t.Errorf("window %d: alive+dead = %d, want 10", w.WindowEndTick, w.Alive+w.Dead)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("telemetry.csv has %d lines, want header + 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end") {
		t.Errorf("telemetry.csv header = %q", lines[0])
	}

	for _, name := range []string{"perf.csv", "bookmarks.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestHeadlessRunIsReproducible(t *testing.T) {
	run := func() (int, []AntView) {
		g, err := NewGameWithOptions(Options{
			Seed:           12,
			Headless:       true,
			StepsPerUpdate: 50,
			Config:         smallConfig(),
		})
		if err != nil {
			t.Fatalf("NewGameWithOptions: %v", err)
		}
		defer g.Unload()
		for i := 0; i < 10; i++ {
			g.UpdateHeadless()
		}
		return g.TotalDeliveries(), g.Simulation().Ants()
	}

	d1, a1 := run()
	d2, a2 := run()
	if d1 != d2 {
		t.Errorf("deliveries differ: %d vs %d", d1, d2)
	}
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("ant %d differs: %+v vs %+v", i, a1[i], a2[i])
		}
	}
}

func TestNewGameRejectsBadWorld(t *testing.T) {
	cfg := smallConfig()
	cfg.Layout.HomeX = 100
	cfg.Recompute()

	if _, err := NewGameWithOptions(Options{Headless: true, Config: cfg}); err == nil {
		t.Error("expected error for home outside the grid")
	}
}

func TestApplyControls(t *testing.T) {
	g := &Game{stepsPerUpdate: 1, overlays: ui.NewOverlayRegistry()}

	g.applyControls(ui.ControlActions{TogglePause: true, Slower: true})
	if !g.paused {
		t.Error("pause not applied")
	}
	if g.stepsPerUpdate != 1 {
		t.Errorf("stepsPerUpdate = %d, want 1 (floor)", g.stepsPerUpdate)
	}

	for i := 0; i < maxStepsPerUpdate+5; i++ {
		g.applyControls(ui.ControlActions{Faster: true})
	}
	if g.stepsPerUpdate != maxStepsPerUpdate {
		t.Errorf("stepsPerUpdate = %d, want %d (cap)", g.stepsPerUpdate, maxStepsPerUpdate)
	}

	g.applyControls(ui.ControlActions{Toggled: []ui.OverlayID{ui.OverlayHomeTrail}})
	if g.overlays.IsEnabled(ui.OverlayHomeTrail) {
		t.Error("home trail overlay should be hidden")
	}
}

func TestCellInfo(t *testing.T) {
	g, err := NewGameWithOptions(Options{Seed: 3, Headless: true, Config: smallConfig()})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	home := g.Simulation().Home()

	info, ok := g.cellInfo(home.X, home.Y)
	if !ok {
		t.Fatal("home cell should be inspectable")
	}
	if info.Type != "home" || info.Ants != 10 {
		t.Errorf("cellInfo(home) = %+v, want home with 10 ants", info)
	}

	if _, ok := g.cellInfo(-1, 0); ok {
		t.Error("cellInfo outside the grid should fail")
	}
}
