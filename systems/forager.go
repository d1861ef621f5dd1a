package systems

import (
	"math"

	"github.com/pthm-cable/antfarm/components"
)

// Cone slots returned by Ant.SensedCone.
const (
	ConeLeft = iota
	ConeForward
	ConeRight
)

// SenseContext is the read context an ant decides against.
// Ants hold no grid state of their own; everything they sense comes through here.
type SenseContext struct {
	Grid *Grid
	Vars *Vars
	Home *Cell
	Rng  components.Rand
}

// Move steps the ant by (dx, dy) if the destination is on the grid.
// Off-grid moves are discarded and the ant stays put.
func (ctx *SenseContext) Move(ant *components.Ant, dx, dy int) bool {
	if ctx.Grid.CellAt(ant.X+dx, ant.Y+dy) == nil {
		return false
	}
	ant.X += dx
	ant.Y += dy
	return true
}

// WalkRandomly takes an unbiased step: forward 4 times in 6, otherwise
// turn left or right and step into the new forward cell.
func (ctx *SenseContext) WalkRandomly(ant *components.Ant) {
	switch action := ctx.Rng.Intn(6); {
	case action < 4:
	case action == 4:
		ant.TurnLeft()
	default:
		ant.TurnRight()
	}
	dx, dy := ant.Forward()
	ctx.Move(ant, dx, dy)
}

// ScoreForCell rates a single cell for the current goal.
// Food seeking reads the food pheromone. Home seeking uses only a signed
// Manhattan-distance reward; the ambient home pheromone is not added.
func (ctx *SenseContext) ScoreForCell(ant *components.Ant, c *Cell, seekingFood bool) float64 {
	if c == nil {
		return 0
	}

	if seekingFood {
		if c.Type == CellFood {
			return ctx.Vars.FoodReward
		}
		return c.FoodPheromone
	}

	if c.Type == CellHome {
		return ctx.Vars.FoodReward
	}

	h := ctx.Home
	dc := ManhattanDistance(c.X, c.Y, h.X, h.Y)
	da := ManhattanDistance(ant.X, ant.Y, h.X, h.Y)
	switch {
	case dc < da:
		return ctx.Vars.HomeRewardOffset
	case dc > da:
		return -ctx.Vars.HomeRewardOffset
	default:
		return 0
	}
}

// DirectionalScore samples a square window centered sight cells ahead along dir.
// Each sample is divided by its distance from the window center plus one, and the
// cell immediately ahead is added unweighted.
func (ctx *SenseContext) DirectionalScore(ant *components.Ant, dir components.Direction, seekingFood bool) float64 {
	sight := ctx.Vars.Sight
	dx, dy := dir.Vector()

	x0 := float64(ant.X + dx*sight)
	y0 := float64(ant.Y + dy*sight)
	half := float64(sight) / 2

	var score float64
	for x := x0 - half; x <= x0+half; x++ {
		for y := y0 - half; y <= y0+half; y++ {
			c := ctx.Grid.CellAt(roundHalfUp(x), roundHalfUp(y))
			w := ctx.ScoreForCell(ant, c, seekingFood)
			score += w / (math.Hypot(x-x0, y-y0) + 1)
		}
	}

	ahead := ctx.Grid.CellAt(ant.X+dx, ant.Y+dy)
	score += ctx.ScoreForCell(ant, ahead, seekingFood)
	return score
}

// ConeScores returns the exponentiated directional scores for left, forward, right.
func (ctx *SenseContext) ConeScores(ant *components.Ant, seekingFood bool) (scores [3]float64, total float64) {
	for i, d := range ant.SensedCone() {
		s := math.Pow(ctx.DirectionalScore(ant, d, seekingFood), ctx.Vars.ScorePower)
		scores[i] = s
		total += s
	}
	return scores, total
}

// Seek turns toward a cone direction drawn in proportion to its score and steps forward.
// With no signal, or on a random-direction roll, the ant walks randomly instead.
func (ctx *SenseContext) Seek(ant *components.Ant, seekingFood bool) {
	scores, total := ctx.ConeScores(ant, seekingFood)

	if total == 0 || math.IsNaN(total) || ctx.Rng.Float64() > 1-ctx.Vars.RandomDirectionChance {
		ctx.WalkRandomly(ant)
		return
	}

	r := math.Floor(ctx.Rng.Float64() * total)
	choice, ok := PickWeighted(scores, r)
	if !ok {
		choice = ConeForward
	}

	switch choice {
	case ConeLeft:
		ant.TurnLeft()
	case ConeRight:
		ant.TurnRight()
	}
	dx, dy := ant.Forward()
	ctx.Move(ant, dx, dy)
}

// PickWeighted returns the first slot whose cumulative score exceeds r.
// ok is false when no slot qualifies, which only happens for non-positive totals.
func PickWeighted(scores [3]float64, r float64) (int, bool) {
	var cumulative float64
	for i, s := range scores {
		cumulative += s
		if r < cumulative {
			return i, true
		}
	}
	return 0, false
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
