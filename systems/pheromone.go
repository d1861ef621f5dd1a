package systems

import "github.com/pthm-cable/antfarm/components"

// DecayPheromones multiplies every positive pheromone value by its field's factor.
// Fields decay independently and only asymptotically approach zero.
func DecayPheromones(g *Grid, foodDecay, homeDecay float64) {
	cells := g.Cells()
	for i := range cells {
		c := &cells[i]
		if c.FoodPheromone > 0 {
			c.FoodPheromone *= foodDecay
		}
		if c.HomePheromone > 0 {
			c.HomePheromone *= homeDecay
		}
	}
}

// Deposit lays amount * potency on the cell the ant just left.
// Carrying ants mark the food trail; foraging ants mark the home trail.
// Only Empty cells the ant actually left receive pheromone.
func Deposit(c *Cell, ant *components.Ant, amount float64) bool {
	if c == nil || c.Type != CellEmpty {
		return false
	}
	if c.X == ant.X && c.Y == ant.Y {
		return false
	}
	if ant.CarryingFood {
		c.FoodPheromone += amount * ant.Potency
	} else {
		c.HomePheromone += amount * ant.Potency
	}
	return true
}

// PheromoneTotals sums both fields over the grid.
func PheromoneTotals(g *Grid) (food, home float64) {
	for i := range g.cells {
		food += g.cells[i].FoodPheromone
		home += g.cells[i].HomePheromone
	}
	return food, home
}
