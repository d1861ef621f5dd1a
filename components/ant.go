// Package components defines ECS components for the simulation.
package components

// Rand is the subset of *math/rand.Rand used by the simulation.
// Tests substitute scripted sources to force specific outcomes.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Ant is the per-ant state stored in the ECS world.
// Grid-dependent behavior (moving, sensing, seeking) lives in systems.
type Ant struct {
	X, Y         int
	Heading      Direction
	Steps        uint32  // steps since last spawn, pickup or drop
	CarryingFood bool
	Potency      float64 // pheromone deposit multiplier, never below 1
}

// NewAnt returns an ant standing at (x, y), heading north with unit potency.
func NewAnt(x, y int) Ant {
	return Ant{X: x, Y: y, Heading: North, Potency: 1}
}

// TurnLeft rotates the heading one step counter-clockwise.
func (a *Ant) TurnLeft() {
	a.Heading = a.Heading.Left()
}

// TurnRight rotates the heading one step clockwise.
func (a *Ant) TurnRight() {
	a.Heading = a.Heading.Right()
}

// TurnAround rotates the heading by 180 degrees.
func (a *Ant) TurnAround() {
	a.Heading = a.Heading.Opposite()
}

// Forward returns the unit step for the current heading.
func (a *Ant) Forward() (dx, dy int) {
	return a.Heading.Vector()
}

// SensedCone returns the directions evaluated each decision: left, forward, right.
func (a *Ant) SensedCone() [3]Direction {
	return [3]Direction{a.Heading.Left(), a.Heading, a.Heading.Right()}
}

// RandomizeHeading picks one of the eight headings uniformly.
func (a *Ant) RandomizeHeading(rng Rand) {
	a.Heading = Direction(rng.Intn(int(NumDirections)))
}

// IsDead reports whether the ant has outlived lifespan.
func (a *Ant) IsDead(lifespan int) bool {
	return int64(a.Steps) > int64(max(lifespan, 1))
}

// ApplyDeathPenalty scales potency by factor, flooring it at 1.
// Called once per tick while the ant is dead.
func (a *Ant) ApplyDeathPenalty(factor float64) {
	a.Potency = max(a.Potency*factor, 1)
}

// Reward scales potency up after a successful pickup.
func (a *Ant) Reward(factor float64) {
	a.Potency = max(a.Potency*factor, 1)
}

// ShouldRespawn rolls the per-tick respawn chance of a dead ant.
func ShouldRespawn(rng Rand, chance float64) bool {
	return rng.Float64() < chance
}

// RespawnAt moves the ant to (x, y) with a random heading and a fresh step count.
// Potency carries over between lives.
func (a *Ant) RespawnAt(x, y int, rng Rand) {
	a.X = x
	a.Y = y
	a.RandomizeHeading(rng)
	a.Steps = 0
}

// PickUpFood starts carrying and heads back the way the ant came.
func (a *Ant) PickUpFood(reward float64) {
	a.CarryingFood = true
	a.TurnAround()
	a.Steps = 0
	a.Reward(reward)
}

// DropFood ends a delivery and heads back out.
func (a *Ant) DropFood() {
	a.CarryingFood = false
	a.Steps = 0
	a.TurnAround()
}
