package game

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/systems"
	"github.com/pthm-cable/antfarm/telemetry"
)

func init() {
	config.MustInit("")
}

// scriptedRand replays fixed draws so tests can force each random branch.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		panic("scriptedRand: out of floats")
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		panic("scriptedRand: out of ints")
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// eventLog records every event it receives.
type eventLog struct {
	events []telemetry.Event
}

func (l *eventLog) Record(e telemetry.Event) {
	l.events = append(l.events, e)
}

func (l *eventLog) count(t telemetry.EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// testVars returns default constants for a single ant on a single-cell home at (hx, hy).
func testVars(hx, hy int) systems.Vars {
	return systems.Vars{
		NumAnts:               1,
		Lifespan:              1500,
		Sight:                 5,
		FoodDecay:             0.99,
		HomeDecay:             0.97,
		ScorePower:            3,
		RandomDirectionChance: 0.02,
		HomeRewardOffset:      100,
		FoodReward:            100,
		DepositAmount:         1,
		RespawnChance:         0.005,
		PotencyReward:         1.1,
		PotencyPunishment:     0.7,
		FoodRadius:            2,
		HomeX:                 hx,
		HomeY:                 hy,
		HomeSize:              1,
	}
}

func TestNewSimulationLayout(t *testing.T) {
	vars := testVars(5, 5)
	vars.NumAnts = 4
	vars.HomeSize = 2
	vars.FoodX, vars.FoodY, vars.FoodSize = 0, 0, 3

	sim, err := NewSimulation(vars, 10, 10, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	if got := sim.FoodRemaining(); got != 9 {
		t.Errorf("FoodRemaining = %d, want 9", got)
	}
	for _, p := range []Point{{5, 5}, {6, 5}, {5, 6}, {6, 6}} {
		if ct, _ := sim.CellTypeAt(p.X, p.Y); ct != systems.CellHome {
			t.Errorf("cell %v = %v, want home", p, ct)
		}
	}
	if got := sim.Home(); got != (Point{5, 5}) {
		t.Errorf("Home = %v, want (5,5)", got)
	}

	ants := sim.Ants()
	if len(ants) != 4 {
		t.Fatalf("len(Ants) = %d, want 4", len(ants))
	}
	for i, a := range ants {
		if a.X != 5 || a.Y != 5 || a.Heading != components.North || a.CarryingFood || a.Dead {
			t.Errorf("ant %d = %+v, want fresh ant at home heading north", i, a)
		}
	}
}

func TestNewSimulationHomeWinsOverlap(t *testing.T) {
	vars := testVars(2, 2)
	vars.HomeSize = 2
	vars.FoodX, vars.FoodY, vars.FoodSize = 1, 1, 3

	sim, err := NewSimulation(vars, 10, 10, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	// 3x3 food block minus the 2x2 home block it overlaps
	if got := sim.FoodRemaining(); got != 5 {
		t.Errorf("FoodRemaining = %d, want 5", got)
	}
	if ct, _ := sim.CellTypeAt(3, 3); ct != systems.CellHome {
		t.Errorf("cell (3,3) = %v, want home", ct)
	}
}

func TestNewSimulationErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name string
		vars systems.Vars
		w, h int
		rng  components.Rand
	}{
		{"zero width", testVars(0, 0), 0, 10, rng},
		{"negative height", testVars(0, 0), 10, -1, rng},
		{"negative ants", func() systems.Vars { v := testVars(0, 0); v.NumAnts = -1; return v }(), 10, 10, rng},
		{"nil rng", testVars(0, 0), 10, 10, nil},
		{"home outside grid", testVars(10, 3), 10, 10, rng},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, err := NewSimulation(tt.vars, tt.w, tt.h, tt.rng)
			if err == nil {
				t.Errorf("NewSimulation succeeded with %+v", sim)
			}
		})
	}
}

func TestPickupScenario(t *testing.T) {
	vars := testVars(5, 5)
	sim, err := NewSimulation(vars, 10, 10, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	sim.Grid().FillBlock(5, 4, 1, systems.CellFood)

	events := &eventLog{}
	sim.SetEventRecorder(events)
	sim.AdvanceOneTick()

	ant := sim.ants.at(0)
	if !ant.CarryingFood {
		t.Fatal("ant should carry food after facing a food cell")
	}
	if ct, _ := sim.CellTypeAt(5, 4); ct != systems.CellEmpty {
		t.Errorf("food cell = %v after pickup, want empty", ct)
	}
	if sim.FoodRemaining() != 0 {
		t.Errorf("FoodRemaining = %d, want 0", sim.FoodRemaining())
	}
	if math.Abs(ant.Potency-1.1) > 1e-9 {
		t.Errorf("Potency = %v, want 1.1", ant.Potency)
	}
	if ant.Steps != 1 {
		t.Errorf("Steps = %d, want 1", ant.Steps)
	}
	if got := events.count(telemetry.EventPickup); got != 1 {
		t.Errorf("pickup events = %d, want 1", got)
	}
	if sim.Tick() != 1 {
		t.Errorf("Tick = %d, want 1", sim.Tick())
	}
}

func TestDeliveryDropsFood(t *testing.T) {
	vars := testVars(5, 5)
	sim, err := NewSimulation(vars, 10, 10, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	// Carrying ant one cell south of home, facing it
	ant := sim.ants.at(0)
	ant.X, ant.Y = 5, 6
	ant.CarryingFood = true
	ant.Steps = 40

	events := &eventLog{}
	sim.SetEventRecorder(events)
	sim.AdvanceOneTick()

	if ant.CarryingFood {
		t.Error("ant should drop food when facing home")
	}
	if ant.Steps != 1 {
		t.Errorf("Steps = %d, want 1", ant.Steps)
	}
	if got := events.count(telemetry.EventDelivery); got != 1 {
		t.Errorf("delivery events = %d, want 1", got)
	}
}

func TestDeadAntRespawns(t *testing.T) {
	vars := testVars(5, 5)
	vars.Lifespan = 5
	vars.RespawnChance = 0.5
	rng := &scriptedRand{floats: []float64{0.0}, ints: []int{3}}

	sim, err := NewSimulation(vars, 10, 10, rng)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	ant := sim.ants.at(0)
	ant.X, ant.Y = 2, 2
	ant.Steps = 6
	ant.Potency = 1.2

	events := &eventLog{}
	sim.SetEventRecorder(events)
	sim.AdvanceOneTick()

	if ant.X != 5 || ant.Y != 5 {
		t.Errorf("respawned at (%d,%d), want home (5,5)", ant.X, ant.Y)
	}
	if ant.Steps != 0 {
		t.Errorf("Steps = %d, want 0", ant.Steps)
	}
	if ant.Heading != components.Direction(3) {
		t.Errorf("Heading = %v, want %v", ant.Heading, components.Direction(3))
	}
	// 1.2 * 0.7 floors at 1
	if ant.Potency != 1 {
		t.Errorf("Potency = %v, want 1", ant.Potency)
	}
	if got := events.count(telemetry.EventRespawn); got != 1 {
		t.Errorf("respawn events = %d, want 1", got)
	}
}

func TestDeadAntStaysDead(t *testing.T) {
	vars := testVars(5, 5)
	vars.Lifespan = 5
	vars.RespawnChance = 0.5
	rng := &scriptedRand{floats: []float64{0.9}}

	sim, err := NewSimulation(vars, 10, 10, rng)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	ant := sim.ants.at(0)
	ant.X, ant.Y = 2, 2
	ant.Steps = 6
	ant.Potency = 2

	sim.AdvanceOneTick()

	if ant.X != 2 || ant.Y != 2 || ant.Steps != 6 {
		t.Errorf("dead ant changed: pos (%d,%d) steps %d", ant.X, ant.Y, ant.Steps)
	}
	if math.Abs(ant.Potency-1.4) > 1e-9 {
		t.Errorf("Potency = %v, want 1.4", ant.Potency)
	}
	if !sim.Ants()[0].Dead {
		t.Error("AntView should report the ant as dead")
	}
}

func TestDeathEventFiresOnce(t *testing.T) {
	vars := testVars(10, 10)
	vars.Lifespan = 1
	vars.RespawnChance = 0

	sim, err := NewSimulation(vars, 20, 20, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	events := &eventLog{}
	sim.SetEventRecorder(events)

	for i := 0; i < 4; i++ {
		sim.AdvanceOneTick()
	}

	if got := events.count(telemetry.EventDeath); got != 1 {
		t.Errorf("death events = %d, want 1", got)
	}
	snap := sim.ColonySnapshot()
	if snap.Dead != 1 || snap.Alive != 0 {
		t.Errorf("snapshot alive/dead = %d/%d, want 0/1", snap.Alive, snap.Dead)
	}
}

func TestPlaceFoodNear(t *testing.T) {
	tests := []struct {
		name   string
		radius int
		x, y   int
		want   int
	}{
		{"on home", 0, 5, 5, 0},
		{"single empty cell", 0, 2, 7, 1},
		{"corner clipped", 1, 0, 0, 4},
		{"square around home skips it", 1, 5, 5, 8},
		{"outside grid", 2, -1, 4, 0},
		{"past far edge", 2, 10, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := testVars(5, 5)
			vars.FoodRadius = tt.radius
			sim, err := NewSimulation(vars, 10, 10, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatalf("NewSimulation: %v", err)
			}
			events := &eventLog{}
			sim.SetEventRecorder(events)

			if got := sim.PlaceFoodNear(tt.x, tt.y); got != tt.want {
				t.Errorf("PlaceFoodNear(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
			if sim.FoodRemaining() != tt.want {
				t.Errorf("FoodRemaining = %d, want %d", sim.FoodRemaining(), tt.want)
			}
			wantEvents := 0
			if tt.want > 0 {
				wantEvents = 1
			}
			if got := events.count(telemetry.EventFoodPlaced); got != wantEvents {
				t.Errorf("food placed events = %d, want %d", got, wantEvents)
			}
		})
	}
}

func TestAntOffGridPanics(t *testing.T) {
	sim, err := NewSimulation(testVars(5, 5), 10, 10, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	sim.ants.at(0).X = 42

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("recovered %v, want an error", r)
		}
		var inv *InvariantError
		if !errors.As(err, &inv) {
			t.Fatalf("recovered %T, want *InvariantError", err)
		}
		if inv.Ant != 0 || inv.X != 42 || inv.Y != 5 {
			t.Errorf("InvariantError = %+v", inv)
		}
	}()
	sim.AdvanceOneTick()
}

func TestBlockedAntTurnsInPlace(t *testing.T) {
	vars := testVars(5, 5)
	rng := &scriptedRand{ints: []int{2}}
	sim, err := NewSimulation(vars, 10, 10, rng)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	ant := sim.ants.at(0)
	ant.X, ant.Y = 3, 0

	sim.AdvanceOneTick()

	if ant.X != 3 || ant.Y != 0 {
		t.Errorf("blocked ant moved to (%d,%d)", ant.X, ant.Y)
	}
	if ant.Heading != components.Direction(2) {
		t.Errorf("Heading = %v, want %v", ant.Heading, components.Direction(2))
	}
	if ant.Steps != 0 {
		t.Errorf("Steps = %d, want 0", ant.Steps)
	}
}

func TestColonyProperties(t *testing.T) {
	cfg := config.Cfg().Clone()
	cfg.World.Width, cfg.World.Height = 40, 40
	cfg.Colony.NumAnts = 30
	cfg.Colony.Lifespan = 60
	cfg.Colony.RespawnChance = 0.2
	cfg.Layout.CornerOffset = 3
	cfg.Layout.HomeSize = 3
	cfg.Layout.FoodSize = 4
	cfg.Recompute()

	sim, err := NewSimulation(systems.VarsFromConfig(cfg), 40, 40, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	events := &eventLog{}
	sim.SetEventRecorder(events)

	prevSteps := make([]uint32, sim.ants.len())
	for tick := 0; tick < 400; tick++ {
		before := len(events.events)
		sim.AdvanceOneTick()

		reset := make(map[int]bool)
		for _, e := range events.events[before:] {
			reset[e.Ant] = true
		}

		for i := 0; i < sim.ants.len(); i++ {
			a := sim.ants.at(i)
			if a.Potency < 1 {
				t.Fatalf("tick %d: ant %d potency %v below 1", tick, i, a.Potency)
			}
			if sim.grid.CellAt(a.X, a.Y) == nil {
				t.Fatalf("tick %d: ant %d left the grid at (%d,%d)", tick, i, a.X, a.Y)
			}
			if a.Steps < prevSteps[i] && !reset[i] {
				t.Fatalf("tick %d: ant %d steps dropped %d -> %d without an event", tick, i, prevSteps[i], a.Steps)
			}
			prevSteps[i] = a.Steps
		}
		for _, c := range sim.grid.Cells() {
			if c.FoodPheromone < 0 || c.HomePheromone < 0 {
				t.Fatalf("tick %d: negative pheromone at (%d,%d)", tick, c.X, c.Y)
			}
			if c.Type != systems.CellEmpty && (c.FoodPheromone != 0 || c.HomePheromone != 0) {
				t.Fatalf("tick %d: pheromone on %v cell (%d,%d)", tick, c.Type, c.X, c.Y)
			}
		}
	}

	if sim.Tick() != 400 {
		t.Errorf("Tick = %d, want 400", sim.Tick())
	}
}

func TestSimulationDeterministic(t *testing.T) {
	run := func() []AntView {
		vars := systems.VarsFromConfig(config.Cfg())
		sim, err := NewSimulation(vars, config.Cfg().World.Width, config.Cfg().World.Height, rand.New(rand.NewSource(2024)))
		if err != nil {
			t.Fatalf("NewSimulation: %v", err)
		}
		for i := 0; i < 200; i++ {
			sim.AdvanceOneTick()
		}
		return sim.Ants()
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ant %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSnapshotCapturesState(t *testing.T) {
	vars := testVars(5, 5)
	vars.NumAnts = 3
	vars.FoodRadius = 1
	sim, err := NewSimulation(vars, 10, 10, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	sim.PlaceFoodNear(1, 1)

	bm := &telemetry.Bookmark{Type: telemetry.BookmarkFirstDelivery, Tick: 0}
	snap := sim.Snapshot(77, bm)

	if snap.Version != telemetry.SnapshotVersion || snap.RNGSeed != 77 {
		t.Errorf("header = v%d seed %d", snap.Version, snap.RNGSeed)
	}
	if len(snap.Ants) != 3 {
		t.Errorf("len(Ants) = %d, want 3", len(snap.Ants))
	}
	// 9 food cells plus the home cell
	if len(snap.Cells) != 10 {
		t.Errorf("len(Cells) = %d, want 10", len(snap.Cells))
	}
	if snap.Bookmark != bm {
		t.Error("bookmark not attached")
	}
}
