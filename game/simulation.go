package game

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/systems"
	"github.com/pthm-cable/antfarm/telemetry"
)

// InvariantError reports an ant standing on a coordinate with no cell.
// It is raised with panic: the simulation state is corrupt and cannot continue.
type InvariantError struct {
	Ant  int
	X, Y int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("ant %d at (%d,%d) is outside the grid", e.Ant, e.X, e.Y)
}

// EventRecorder receives colony events as they happen.
type EventRecorder interface {
	Record(e telemetry.Event)
}

type nopRecorder struct{}

func (nopRecorder) Record(telemetry.Event) {}

// PhaseTimer is told when each part of a tick begins.
type PhaseTimer interface {
	StartPhase(p telemetry.Phase)
}

type nopTimer struct{}

func (nopTimer) StartPhase(telemetry.Phase) {}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// AntView is the read-only state of one ant.
type AntView struct {
	X, Y         int
	Heading      components.Direction
	CarryingFood bool
	Dead         bool
}

// Simulation owns the grid, the ant population and the tick loop.
type Simulation struct {
	grid  *systems.Grid
	ants  *population
	vars  systems.Vars
	home  *systems.Cell
	rng   components.Rand
	sense *systems.SenseContext
	tick  int32

	events EventRecorder
	timer  PhaseTimer
}

// NewSimulation lays out the home and initial food blocks on a width x height grid
// and places every ant on the home cell, heading north.
func NewSimulation(vars systems.Vars, width, height int, rng components.Rand) (*Simulation, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid size %dx%d must be positive", width, height)
	}
	if vars.NumAnts < 0 {
		return nil, fmt.Errorf("num_ants %d must be non-negative", vars.NumAnts)
	}
	if rng == nil {
		return nil, errors.New("nil random source")
	}

	grid := systems.NewGrid(width, height)
	home := grid.CellAt(vars.HomeX, vars.HomeY)
	if home == nil {
		return nil, fmt.Errorf("home (%d,%d) is outside the %dx%d grid", vars.HomeX, vars.HomeY, width, height)
	}

	// Home is filled last so it wins where the blocks overlap.
	if vars.FoodSize > 0 {
		grid.FillBlock(vars.FoodX, vars.FoodY, vars.FoodSize, systems.CellFood)
	}
	grid.FillBlock(vars.HomeX, vars.HomeY, max(vars.HomeSize, 1), systems.CellHome)

	s := &Simulation{
		grid:   grid,
		ants:   newPopulation(vars.NumAnts),
		vars:   vars,
		home:   home,
		rng:    rng,
		events: nopRecorder{},
		timer:  nopTimer{},
	}
	s.sense = &systems.SenseContext{Grid: grid, Vars: &s.vars, Home: home, Rng: rng}

	for i := 0; i < vars.NumAnts; i++ {
		s.ants.spawn(components.NewAnt(home.X, home.Y))
	}
	return s, nil
}

// SetEventRecorder routes colony events to r. A nil r discards them.
func (s *Simulation) SetEventRecorder(r EventRecorder) {
	if r == nil {
		r = nopRecorder{}
	}
	s.events = r
}

// SetPhaseTimer reports tick phases to t. A nil t disables timing.
func (s *Simulation) SetPhaseTimer(t PhaseTimer) {
	if t == nil {
		t = nopTimer{}
	}
	s.timer = t
}

// AdvanceOneTick processes every ant in population order, then decays both
// pheromone fields. Later ants see the mutations of earlier ones.
func (s *Simulation) AdvanceOneTick() {
	s.timer.StartPhase(telemetry.PhaseAnts)
	for i := 0; i < s.ants.len(); i++ {
		s.stepAnt(i, s.ants.at(i))
	}

	s.timer.StartPhase(telemetry.PhaseDecay)
	systems.DecayPheromones(s.grid, s.vars.FoodDecay, s.vars.HomeDecay)

	s.tick++
}

func (s *Simulation) stepAnt(i int, ant *components.Ant) {
	cell := s.grid.CellAt(ant.X, ant.Y)
	if cell == nil {
		panic(&InvariantError{Ant: i, X: ant.X, Y: ant.Y})
	}

	lifespan := s.vars.EffectiveLifespan()
	if ant.IsDead(lifespan) {
		ant.ApplyDeathPenalty(s.vars.PotencyPunishment)
		if components.ShouldRespawn(s.rng, s.vars.RespawnChance) {
			ant.RespawnAt(s.home.X, s.home.Y, s.rng)
			s.record(telemetry.EventRespawn, i, ant)
		}
		return
	}

	dx, dy := ant.Forward()
	ahead := s.grid.CellAt(ant.X+dx, ant.Y+dy)
	if ahead == nil {
		ant.RandomizeHeading(s.rng)
		return
	}

	switch {
	case ant.CarryingFood && ahead.Type == systems.CellHome:
		ant.DropFood()
		s.record(telemetry.EventDelivery, i, ant)
		s.sense.Seek(ant, true)
	case ant.CarryingFood:
		s.sense.Seek(ant, false)
	case ahead.Type == systems.CellFood:
		ant.PickUpFood(s.vars.PotencyReward)
		s.grid.ClearFood(ahead)
		s.record(telemetry.EventPickup, i, ant)
		s.sense.Seek(ant, false)
	default:
		s.sense.Seek(ant, true)
	}

	systems.Deposit(cell, ant, s.vars.DepositAmount)

	ant.Steps++
	if ant.IsDead(lifespan) {
		s.record(telemetry.EventDeath, i, ant)
	}
}

func (s *Simulation) record(t telemetry.EventType, i int, ant *components.Ant) {
	s.events.Record(telemetry.NewAntEvent(t, s.tick, i, ant.X, ant.Y, ant.Potency))
}

// PlaceFoodNear turns the Empty cells within the food radius of (x, y) into food.
// Coordinates outside the grid are ignored. Returns the number of cells converted.
func (s *Simulation) PlaceFoodNear(x, y int) int {
	if s.grid.CellAt(x, y) == nil {
		return 0
	}
	n := s.grid.PlaceFood(x, y, s.vars.FoodRadius)
	if n > 0 {
		s.events.Record(telemetry.NewFoodPlacedEvent(s.tick, x, y, n))
	}
	return n
}

// Width returns the grid width in cells.
func (s *Simulation) Width() int { return s.grid.Width() }

// Height returns the grid height in cells.
func (s *Simulation) Height() int { return s.grid.Height() }

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int32 { return s.tick }

// Home returns the cell ants start and respawn on.
func (s *Simulation) Home() Point { return Point{s.home.X, s.home.Y} }

// Vars returns the constants the simulation runs with.
func (s *Simulation) Vars() systems.Vars { return s.vars }

// CellTypeAt returns the type of the cell at (x, y).
func (s *Simulation) CellTypeAt(x, y int) (systems.CellType, bool) {
	c := s.grid.CellAt(x, y)
	if c == nil {
		return systems.CellEmpty, false
	}
	return c.Type, true
}

// PheromoneAt returns both pheromone levels of the cell at (x, y).
func (s *Simulation) PheromoneAt(x, y int) (food, home float64, ok bool) {
	c := s.grid.CellAt(x, y)
	if c == nil {
		return 0, 0, false
	}
	return c.FoodPheromone, c.HomePheromone, true
}

// FoodCells returns the positions of every food cell.
func (s *Simulation) FoodCells() []Point {
	cells := s.grid.FoodCells()
	out := make([]Point, len(cells))
	for i, c := range cells {
		out[i] = Point{c.X, c.Y}
	}
	return out
}

// FoodRemaining returns the number of food cells.
func (s *Simulation) FoodRemaining() int {
	return s.grid.Foods().Len()
}

// Ants returns a view of every ant in population order.
func (s *Simulation) Ants() []AntView {
	lifespan := s.vars.EffectiveLifespan()
	out := make([]AntView, s.ants.len())
	for i := range out {
		a := s.ants.at(i)
		out[i] = AntView{
			X:            a.X,
			Y:            a.Y,
			Heading:      a.Heading,
			CarryingFood: a.CarryingFood,
			Dead:         a.IsDead(lifespan),
		}
	}
	return out
}

// Grid exposes the cell grid for read-only consumers such as the renderer.
func (s *Simulation) Grid() *systems.Grid { return s.grid }

// ColonySnapshot samples population and field state for telemetry.
func (s *Simulation) ColonySnapshot() telemetry.ColonySnapshot {
	lifespan := s.vars.EffectiveLifespan()
	snap := telemetry.ColonySnapshot{
		Potencies:     make([]float64, 0, s.ants.len()),
		FoodRemaining: s.FoodRemaining(),
	}
	s.ants.each(func(a *components.Ant) {
		if a.IsDead(lifespan) {
			snap.Dead++
		} else {
			snap.Alive++
			if a.CarryingFood {
				snap.Carrying++
			}
		}
		snap.Potencies = append(snap.Potencies, a.Potency)
	})
	snap.FoodPheromone, snap.HomePheromone = systems.PheromoneTotals(s.grid)
	return snap
}

// Snapshot captures the full colony state for offline inspection.
func (s *Simulation) Snapshot(seed int64, bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		RNGSeed:  seed,
		Width:    s.grid.Width(),
		Height:   s.grid.Height(),
		HomeX:    s.home.X,
		HomeY:    s.home.Y,
		Tick:     s.tick,
		Bookmark: bookmark,
	}
	for i := 0; i < s.ants.len(); i++ {
		a := s.ants.at(i)
		snap.Ants = append(snap.Ants, telemetry.AntState{
			X:            a.X,
			Y:            a.Y,
			Heading:      uint8(a.Heading),
			Steps:        a.Steps,
			CarryingFood: a.CarryingFood,
			Potency:      a.Potency,
		})
	}
	for _, c := range s.grid.Cells() {
		if c.Type == systems.CellEmpty && c.FoodPheromone == 0 && c.HomePheromone == 0 {
			continue
		}
		snap.Cells = append(snap.Cells, telemetry.CellState{
			X:             c.X,
			Y:             c.Y,
			Type:          c.Type.String(),
			FoodPheromone: c.FoodPheromone,
			HomePheromone: c.HomePheromone,
		})
	}
	return snap
}
