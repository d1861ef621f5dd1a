package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antfarm/components"
)

// population stores ants as ECS entities. Entities are never removed, so
// order (creation order) is the stable processing order for ticks.
type population struct {
	world  *ecs.World
	antMap *ecs.Map1[components.Ant]
	filter *ecs.Filter1[components.Ant]
	order  []ecs.Entity
}

func newPopulation(capacity int) *population {
	world := ecs.NewWorld()
	return &population{
		world:  world,
		antMap: ecs.NewMap1[components.Ant](world),
		filter: ecs.NewFilter1[components.Ant](world),
		order:  make([]ecs.Entity, 0, capacity),
	}
}

// spawn adds an ant at the end of the processing order.
func (p *population) spawn(ant components.Ant) ecs.Entity {
	e := p.antMap.NewEntity(&ant)
	p.order = append(p.order, e)
	return e
}

func (p *population) len() int {
	return len(p.order)
}

// at returns the i-th ant in creation order.
func (p *population) at(i int) *components.Ant {
	return p.antMap.Get(p.order[i])
}

// each visits every ant in storage order. Use only for order-independent passes.
func (p *population) each(fn func(ant *components.Ant)) {
	query := p.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}
