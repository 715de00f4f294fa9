// Strategy table — request-generation rules keyed by agent type.
package agent

import "sort"

// RNG is the slice of the simulation's random source that strategies use.
// Satisfied by *entropy.Source.
type RNG interface {
	Intn(n int) int
}

// Strategy is the request-generation rule for one agent type. Adding a new
// type means adding a table entry, not a new agent implementation.
type Strategy struct {
	Name string

	// Request produces the ordered sequence of slot labels an agent of this
	// type wants for the day, always slotsPerAgent long.
	Request func(rng RNG, uniqueTimeSlots, slotsPerAgent int) []int
}

var strategies = map[Type]Strategy{
	TypeSelfish: {Name: "selfish", Request: requestUniform},
	TypeSocial:  {Name: "social", Request: requestBlock},
}

func strategyFor(t Type) (Strategy, bool) {
	s, ok := strategies[t]
	return s, ok
}

// Name returns the strategy name for a type, or "unknown".
func (t Type) Name() string {
	if s, ok := strategies[t]; ok {
		return s.Name
	}
	return "unknown"
}

// TypeByName resolves a strategy name, as used in configuration files, to its
// type tag.
func TypeByName(name string) (Type, bool) {
	for t, s := range strategies {
		if s.Name == name {
			return t, true
		}
	}
	return 0, false
}

// Types returns all registered agent types in ascending order.
func Types() []Type {
	out := make([]Type, 0, len(strategies))
	for t := range strategies {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// requestUniform draws each wanted slot independently and uniformly over the
// whole day, duplicates allowed.
func requestUniform(rng RNG, uniqueTimeSlots, slotsPerAgent int) []int {
	requested := make([]int, slotsPerAgent)
	for i := range requested {
		requested[i] = rng.Intn(uniqueTimeSlots) + 1
	}
	return requested
}

// requestBlock picks one preferred slot uniformly and requests a contiguous
// run starting there, wrapping past the end of the day. Models demand that
// clusters around a peak, concentrating contention on neighbouring slots.
func requestBlock(rng RNG, uniqueTimeSlots, slotsPerAgent int) []int {
	start := rng.Intn(uniqueTimeSlots)
	requested := make([]int, slotsPerAgent)
	for i := range requested {
		requested[i] = (start+i)%uniqueTimeSlots + 1
	}
	return requested
}
