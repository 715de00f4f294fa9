package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/exchange-arena/internal/agent"
)

// scriptRNG replays a fixed sequence of draws, letting tests construct agents
// with exact requests through the normal request path.
type scriptRNG struct {
	vals []int
	next int
}

func (r *scriptRNG) Intn(n int) int {
	v := r.vals[r.next%len(r.vals)]
	r.next++
	return v % n
}

// makeAgent builds a selfish-strategy agent requesting exactly the given
// slots and holding exactly the given allocation.
func makeAgent(t *testing.T, id agent.ID, requested, allocated []int, uniqueTimeSlots int) *agent.Agent {
	t.Helper()
	return makeTypedAgent(t, id, agent.TypeSelfish, requested, allocated, uniqueTimeSlots)
}

func makeTypedAgent(t *testing.T, id agent.ID, agentType agent.Type, requested, allocated []int, uniqueTimeSlots int) *agent.Agent {
	t.Helper()

	a := agent.New(id, agent.TypeSelfish, len(requested))
	vals := make([]int, len(requested))
	for i, slot := range requested {
		vals[i] = slot - 1
	}
	got := a.RequestTimeSlots(&scriptRNG{vals: vals}, uniqueTimeSlots)
	require.Equal(t, requested, got, "scripted request did not reproduce the wanted slots")

	a.AdoptStrategy(agentType)
	a.ReceiveAllocation(allocated)
	return a
}

// labelCounts tallies allocated units per slot label across a population.
func labelCounts(agents []*agent.Agent) map[int]int {
	counts := make(map[int]int)
	for _, a := range agents {
		for _, slot := range a.AllocatedTimeSlots() {
			counts[slot]++
		}
	}
	return counts
}
