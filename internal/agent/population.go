// Population construction — builds the day-one agent population.
package agent

import (
	"fmt"
	"sort"
)

// NewPopulation builds the starting population from per-type counts. Agents
// are created in ascending type order with sequential IDs from 1, so a given
// mix always produces the same starting population.
func NewPopulation(counts map[Type]int, slotsPerAgent int) ([]*Agent, error) {
	types := make([]Type, 0, len(counts))
	for t := range counts {
		if _, ok := strategyFor(t); !ok {
			return nil, fmt.Errorf("unknown agent type %d", t)
		}
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var population []*Agent
	id := ID(1)
	for _, t := range types {
		for i := 0; i < counts[t]; i++ {
			population = append(population, New(id, t, slotsPerAgent))
			id++
		}
	}
	if len(population) == 0 {
		return nil, fmt.Errorf("population is empty")
	}
	return population, nil
}
