// Package agent provides the agent entity and the strategy table that governs
// how each agent type requests time slots.
package agent

import "fmt"

// ID is a unique identifier for an agent. Stable across days.
type ID int

// Type tags an agent's strategy. It is the only identity-defining state that
// can change during a run, and only through social learning at day boundaries.
type Type int

const (
	TypeSelfish Type = 1
	TypeSocial  Type = 2
)

// Agent is a self-interested participant in the exchange arena. It persists
// across days; requested and allocated slots are reset every day.
type Agent struct {
	id            ID
	agentType     Type
	slotsPerAgent int

	requested []int
	allocated []int
}

// New creates an agent with the given identity, strategy, and daily slot need.
func New(id ID, agentType Type, slotsPerAgent int) *Agent {
	return &Agent{
		id:            id,
		agentType:     agentType,
		slotsPerAgent: slotsPerAgent,
	}
}

// ID returns the agent's stable identifier.
func (a *Agent) ID() ID {
	return a.id
}

// Type returns the agent's current strategy tag.
func (a *Agent) Type() Type {
	return a.agentType
}

// AdoptStrategy replaces the agent's strategy with another agent's. Takes
// effect at the next day's request generation.
func (a *Agent) AdoptStrategy(t Type) {
	a.agentType = t
}

// RequestTimeSlots regenerates the agent's daily slot request from its
// strategy and returns it. Duplicate labels are legal: slot units are
// individually consumed, so an agent may want two units of the same slot.
func (a *Agent) RequestTimeSlots(rng RNG, uniqueTimeSlots int) []int {
	strategy, ok := strategyFor(a.agentType)
	if !ok {
		// Unknown types fall back to uniform requests rather than failing a
		// whole day; social learning can only copy types already present.
		strategy = strategies[TypeSelfish]
	}
	a.requested = strategy.Request(rng, uniqueTimeSlots, a.slotsPerAgent)
	a.allocated = nil
	return a.requested
}

// ReceiveAllocation replaces the agent's allocation with the given slot units.
// The allocation may be shorter than the request when the day's pool ran out.
func (a *Agent) ReceiveAllocation(slots []int) {
	a.allocated = slots
}

// RequestedTimeSlots returns the agent's current request.
func (a *Agent) RequestedTimeSlots() []int {
	return a.requested
}

// AllocatedTimeSlots returns the agent's current allocation.
func (a *Agent) AllocatedTimeSlots() []int {
	return a.allocated
}

// Satisfaction returns the fraction of the agent's requested slots it holds,
// counting multiset matches. An agent with no requests is neutrally satisfied
// and scores 1.0.
func (a *Agent) Satisfaction() float64 {
	return a.SatisfactionWith(a.allocated)
}

// SatisfactionWith scores a hypothetical allocation against the agent's
// current request without mutating any state. Used to evaluate candidate
// trades before committing them.
func (a *Agent) SatisfactionWith(allocated []int) float64 {
	if len(a.requested) == 0 {
		return 1.0
	}
	held := make(map[int]int, len(allocated))
	for _, slot := range allocated {
		held[slot]++
	}
	matched := 0
	for _, slot := range a.requested {
		if held[slot] > 0 {
			held[slot]--
			matched++
		}
	}
	return float64(matched) / float64(len(a.requested))
}

// Swap exchanges one held unit of the give slot for one unit of the take
// slot. It fails if the agent does not hold the give slot, which indicates a
// broken trading invariant in the caller.
func (a *Agent) Swap(give, take int) error {
	for i, slot := range a.allocated {
		if slot == give {
			a.allocated[i] = take
			return nil
		}
	}
	return fmt.Errorf("agent %d does not hold slot %d", a.id, give)
}
