// Satisfaction accounting — pure functions over agent state. Nothing here
// mutates an agent; every value is recomputed on demand from requests and
// allocations.
package engine

import (
	"math"

	"github.com/talgya/exchange-arena/internal/agent"
)

// AverageSatisfaction returns the arithmetic mean satisfaction across all
// agents, or 0 for an empty population.
func AverageSatisfaction(agents []*agent.Agent) float64 {
	if len(agents) == 0 {
		return 0
	}
	total := 0.0
	for _, a := range agents {
		total += a.Satisfaction()
	}
	return total / float64(len(agents))
}

// TypeAverageSatisfaction returns the mean satisfaction of agents of the
// given type, or 0 if none exist.
func TypeAverageSatisfaction(agents []*agent.Agent, t agent.Type) float64 {
	total := 0.0
	count := 0
	for _, a := range agents {
		if a.Type() == t {
			total += a.Satisfaction()
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// TypeSatisfactionStdDev returns the population standard deviation of
// satisfaction within a type, or 0 if no such agents exist.
func TypeSatisfactionStdDev(agents []*agent.Agent, t agent.Type) float64 {
	mean := TypeAverageSatisfaction(agents, t)
	sumSquares := 0.0
	count := 0
	for _, a := range agents {
		if a.Type() == t {
			diff := a.Satisfaction() - mean
			sumSquares += diff * diff
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(sumSquares / float64(count))
}

// OptimumSatisfaction returns the best average satisfaction any assignment of
// the currently allocated units could achieve: total demand is matched
// against the total allocated units label by label, ignoring who actually
// holds what. It is a benchmark upper bound, not a re-allocation.
func OptimumSatisfaction(agents []*agent.Agent) float64 {
	if len(agents) == 0 {
		return 0
	}
	demand := make(map[int]int)
	supply := make(map[int]int)
	totalRequested := 0
	for _, a := range agents {
		for _, slot := range a.RequestedTimeSlots() {
			demand[slot]++
			totalRequested++
		}
		for _, slot := range a.AllocatedTimeSlots() {
			supply[slot]++
		}
	}
	if totalRequested == 0 {
		// No demand anywhere: every agent is neutrally satisfied.
		return 1.0
	}
	satisfiable := 0
	for slot, wanted := range demand {
		if held := supply[slot]; held < wanted {
			satisfiable += held
		} else {
			satisfiable += wanted
		}
	}
	return float64(satisfiable) / float64(totalRequested)
}

// TypeCount returns how many agents currently carry the given type.
func TypeCount(agents []*agent.Agent, t agent.Type) int {
	count := 0
	for _, a := range agents {
		if a.Type() == t {
			count++
		}
	}
	return count
}
