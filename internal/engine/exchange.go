// Pairwise exchange — one round of bilateral slot trading across the
// population. Rounds are strictly ordered; each sees the allocations the
// previous one left behind.
package engine

import (
	"fmt"

	"github.com/talgya/exchange-arena/internal/agent"
	"github.com/talgya/exchange-arena/internal/entropy"
)

// gainEps absorbs float rounding when comparing satisfaction gains, which are
// all multiples of 1/slotsPerAgent.
const gainEps = 1e-9

// swapCandidate is one possible single-unit trade between a pair: a gives one
// unit of give and receives one unit of take, b the reverse.
type swapCandidate struct {
	give, take   int
	gainA, gainB float64
}

func (c swapCandidate) combined() float64 {
	return c.gainA + c.gainB
}

func (c swapCandidate) minGain() float64 {
	if c.gainA < c.gainB {
		return c.gainA
	}
	return c.gainB
}

// runExchangeRound pairs up the whole population at random and lets each pair
// attempt one trade. An odd agent out sits the round unmatched. Returns the
// number of realized trades.
func runExchangeRound(agents []*agent.Agent, rng *entropy.Source) (int, error) {
	order := make([]*agent.Agent, len(agents))
	copy(order, agents)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	trades := 0
	for i := 0; i+1 < len(order); i += 2 {
		traded, err := tradeOnce(order[i], order[i+1], rng)
		if err != nil {
			return trades, err
		}
		if traded {
			trades++
		}
	}
	return trades, nil
}

// tradeOnce finds and executes the best mutually acceptable single-slot swap
// between a pair, if one exists. A swap is acceptable when neither side loses
// satisfaction and at least one side gains; among acceptable swaps the pair
// picks the greatest combined gain, then the greater minimum gain, then
// uniformly at random.
func tradeOnce(a, b *agent.Agent, rng *entropy.Source) (bool, error) {
	baseA := a.Satisfaction()
	baseB := b.Satisfaction()

	var (
		best         []swapCandidate
		bestCombined float64
		bestMin      float64
	)
	for _, give := range uniqueLabels(a.AllocatedTimeSlots()) {
		for _, take := range uniqueLabels(b.AllocatedTimeSlots()) {
			if give == take {
				continue
			}
			cand := swapCandidate{
				give:  give,
				take:  take,
				gainA: a.SatisfactionWith(swapped(a.AllocatedTimeSlots(), give, take)) - baseA,
				gainB: b.SatisfactionWith(swapped(b.AllocatedTimeSlots(), take, give)) - baseB,
			}
			if cand.gainA < -gainEps || cand.gainB < -gainEps || cand.combined() <= gainEps {
				continue
			}
			switch {
			case cand.combined() > bestCombined+gainEps,
				cand.combined() > bestCombined-gainEps && cand.minGain() > bestMin+gainEps:
				best = best[:0]
				best = append(best, cand)
				bestCombined = cand.combined()
				bestMin = cand.minGain()
			case cand.combined() > bestCombined-gainEps && cand.minGain() > bestMin-gainEps:
				best = append(best, cand)
			}
		}
	}
	if len(best) == 0 {
		return false, nil
	}

	pick := best[0]
	if len(best) > 1 {
		pick = best[rng.Intn(len(best))]
	}
	if err := a.Swap(pick.give, pick.take); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidTrade, err)
	}
	if err := b.Swap(pick.take, pick.give); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidTrade, err)
	}
	return true, nil
}

// uniqueLabels returns the distinct slot labels in an allocation, in first
// occurrence order so candidate enumeration stays deterministic.
func uniqueLabels(slots []int) []int {
	seen := make(map[int]bool, len(slots))
	labels := make([]int, 0, len(slots))
	for _, slot := range slots {
		if !seen[slot] {
			seen[slot] = true
			labels = append(labels, slot)
		}
	}
	return labels
}

// swapped returns a copy of the allocation with one unit of give replaced by
// take.
func swapped(slots []int, give, take int) []int {
	out := make([]int, len(slots))
	copy(out, slots)
	for i, slot := range out {
		if slot == give {
			out[i] = take
			break
		}
	}
	return out
}
