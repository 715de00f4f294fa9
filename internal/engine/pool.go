// Allocation pool — the day's finite multiset of allocatable slot units.
package engine

import "github.com/talgya/exchange-arena/internal/entropy"

// Pool holds the slot units still available for initial allocation. It is
// rebuilt fresh each day and owned exclusively by the day orchestrator; it
// only shrinks between construction and the end of initial allocation.
type Pool struct {
	units []int
}

// NewPool fills the pool with maximumPeakConsumption units of each of the
// uniqueTimeSlots labels.
func NewPool(uniqueTimeSlots, maximumPeakConsumption int) *Pool {
	units := make([]int, 0, uniqueTimeSlots*maximumPeakConsumption)
	for slot := 1; slot <= uniqueTimeSlots; slot++ {
		for unit := 0; unit < maximumPeakConsumption; unit++ {
			units = append(units, slot)
		}
	}
	return &Pool{units: units}
}

// Draw removes and returns up to count units chosen uniformly at random, one
// at a time without replacement. When the pool runs out it returns fewer than
// count: agents late in the allocation order simply receive less. Scarcity is
// a normal outcome, not an error.
func (p *Pool) Draw(rng *entropy.Source, count int) []int {
	drawn := make([]int, 0, count)
	for i := 0; i < count && len(p.units) > 0; i++ {
		idx := rng.Intn(len(p.units))
		drawn = append(drawn, p.units[idx])
		p.units[idx] = p.units[len(p.units)-1]
		p.units = p.units[:len(p.units)-1]
	}
	return drawn
}

// Remaining returns how many units are left in the pool.
func (p *Pool) Remaining() int {
	return len(p.units)
}
