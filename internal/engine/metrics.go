// Metrics rows and sinks. Column order inside each row type is fixed;
// downstream analysis reads these files positionally.
package engine

import "github.com/talgya/exchange-arena/internal/agent"

// AverageRow is one per-day average-satisfaction record. TypeAverages and
// TypeStdDevs follow the day configuration's UniqueAgentTypes order.
type AverageRow struct {
	Seed            int64
	Day             int
	RandomBaseline  float64
	OptimumBaseline float64
	TypeAverages    []float64
	TypeStdDevs     []float64
}

// IndividualRow is one agent's satisfaction after one exchange round.
type IndividualRow struct {
	Seed         int64
	Day          int
	Exchange     int
	AgentID      agent.ID
	AgentType    agent.Type
	Satisfaction float64
}

// DistributionRow is one agent's end-of-day satisfaction on a day of
// interest.
type DistributionRow struct {
	Day          int
	AgentType    agent.Type
	Satisfaction float64
}

// PopulationRow is one agent type's end-of-day population count.
type PopulationRow struct {
	Day       int
	AgentType agent.Type
	Count     int
}

// Sink receives metrics rows. Sinks are append-only and synchronous; a write
// failure is propagated immediately and aborts the day, though the population
// itself stays valid.
type Sink interface {
	WriteAverage(AverageRow) error
	WriteIndividual(IndividualRow) error
	WriteDistribution(DistributionRow) error
	WritePopulation(PopulationRow) error
}

// DayMetrics is the aggregate result of one simulated day, recorded before
// social learning mutates any strategy.
type DayMetrics struct {
	Day             int
	RandomBaseline  float64
	OptimumBaseline float64
	TypeAverages    map[agent.Type]float64
	TypeStdDevs     map[agent.Type]float64
	TypeCounts      map[agent.Type]int
	Trades          int
	Adoptions       int
}
