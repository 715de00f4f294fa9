package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/exchange-arena/internal/agent"
)

func TestAverageSatisfaction(t *testing.T) {
	t.Parallel()

	agents := []*agent.Agent{
		makeAgent(t, 1, []int{1, 2}, []int{1, 2}, 4), // 1.0
		makeAgent(t, 2, []int{1, 2}, []int{1, 3}, 4), // 0.5
		makeAgent(t, 3, []int{1, 2}, []int{3, 4}, 4), // 0.0
	}
	assert.InDelta(t, 0.5, AverageSatisfaction(agents), 1e-12)
}

func TestAverageSatisfactionEmptyPopulation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, AverageSatisfaction(nil))
}

func TestTypeAverageSatisfactionFiltersByType(t *testing.T) {
	t.Parallel()

	agents := []*agent.Agent{
		makeTypedAgent(t, 1, agent.TypeSelfish, []int{1}, []int{1}, 4), // 1.0
		makeTypedAgent(t, 2, agent.TypeSelfish, []int{1}, []int{2}, 4), // 0.0
		makeTypedAgent(t, 3, agent.TypeSocial, []int{1}, []int{1}, 4),  // 1.0
	}
	assert.InDelta(t, 0.5, TypeAverageSatisfaction(agents, agent.TypeSelfish), 1e-12)
	assert.InDelta(t, 1.0, TypeAverageSatisfaction(agents, agent.TypeSocial), 1e-12)

	// No agents of the type: defined sentinel, not NaN.
	assert.Equal(t, 0.0, TypeAverageSatisfaction(agents, agent.Type(42)))
}

func TestTypeSatisfactionStdDevIsPopulationStdDev(t *testing.T) {
	t.Parallel()

	agents := []*agent.Agent{
		makeAgent(t, 1, []int{1}, []int{1}, 4), // 1.0
		makeAgent(t, 2, []int{1}, []int{2}, 4), // 0.0
	}
	// Population (not sample) standard deviation of {0, 1} is 0.5.
	assert.InDelta(t, 0.5, TypeSatisfactionStdDev(agents, agent.TypeSelfish), 1e-12)

	assert.Equal(t, 0.0, TypeSatisfactionStdDev(agents, agent.Type(42)))
}

func TestOptimumSatisfactionMatchesDemandAgainstHeldUnits(t *testing.T) {
	t.Parallel()

	// Agent 1 holds what agent 2 wants and vice versa: actual satisfaction is
	// 0 but a perfect reshuffle would satisfy everyone.
	agents := []*agent.Agent{
		makeAgent(t, 1, []int{1}, []int{2}, 4),
		makeAgent(t, 2, []int{2}, []int{1}, 4),
	}
	assert.InDelta(t, 0.0, AverageSatisfaction(agents), 1e-12)
	assert.InDelta(t, 1.0, OptimumSatisfaction(agents), 1e-12)
}

func TestOptimumSatisfactionCapacityBound(t *testing.T) {
	t.Parallel()

	// Four agents all want the single slot but only two units exist: no
	// assignment beats 0.5.
	agents := []*agent.Agent{
		makeAgent(t, 1, []int{1}, []int{1}, 1),
		makeAgent(t, 2, []int{1}, []int{1}, 1),
		makeAgent(t, 3, []int{1}, nil, 1),
		makeAgent(t, 4, []int{1}, nil, 1),
	}
	assert.InDelta(t, 0.5, OptimumSatisfaction(agents), 1e-12)
	assert.LessOrEqual(t, AverageSatisfaction(agents), OptimumSatisfaction(agents)+1e-9)
}

func TestOptimumSatisfactionIsAnUpperBound(t *testing.T) {
	t.Parallel()

	agents := []*agent.Agent{
		makeAgent(t, 1, []int{1, 2}, []int{1, 3}, 4),
		makeAgent(t, 2, []int{3, 4}, []int{4, 4}, 4),
		makeAgent(t, 3, []int{1, 1}, []int{2, 1}, 4),
	}
	assert.LessOrEqual(t, AverageSatisfaction(agents), OptimumSatisfaction(agents)+1e-9)
}

func TestTypeCount(t *testing.T) {
	t.Parallel()

	agents := []*agent.Agent{
		makeTypedAgent(t, 1, agent.TypeSelfish, []int{1}, nil, 4),
		makeTypedAgent(t, 2, agent.TypeSocial, []int{1}, nil, 4),
		makeTypedAgent(t, 3, agent.TypeSocial, []int{1}, nil, 4),
	}
	assert.Equal(t, 1, TypeCount(agents, agent.TypeSelfish))
	assert.Equal(t, 2, TypeCount(agents, agent.TypeSocial))
	assert.Equal(t, 0, TypeCount(agents, agent.Type(42)))
}
