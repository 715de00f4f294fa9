// Package engine runs the resource exchange arena: daily slot allocation,
// pairwise trading, satisfaction accounting, and social learning.
package engine

import (
	"fmt"

	"github.com/talgya/exchange-arena/internal/agent"
	"github.com/talgya/exchange-arena/internal/entropy"
)

// DayConfig holds everything one simulated day needs to run.
type DayConfig struct {
	Seed                   int64
	Exchanges              int
	MaximumPeakConsumption int
	UniqueTimeSlots        int
	SlotsPerAgent          int
	NumberOfAgentsToEvolve int
	UniqueAgentTypes       []agent.Type
	DaysOfInterest         []int
	AdditionalData         bool
}

// Validate checks the configuration before any agent state is touched.
func (c DayConfig) Validate() error {
	if c.Exchanges <= 0 {
		return fmt.Errorf("%w: exchanges must be positive, got %d", ErrConfiguration, c.Exchanges)
	}
	if c.UniqueTimeSlots <= 0 {
		return fmt.Errorf("%w: uniqueTimeSlots must be positive, got %d", ErrConfiguration, c.UniqueTimeSlots)
	}
	if c.MaximumPeakConsumption <= 0 {
		return fmt.Errorf("%w: maximumPeakConsumption must be positive, got %d", ErrConfiguration, c.MaximumPeakConsumption)
	}
	if c.SlotsPerAgent <= 0 {
		return fmt.Errorf("%w: slotsPerAgent must be positive, got %d", ErrConfiguration, c.SlotsPerAgent)
	}
	if capacity := c.UniqueTimeSlots * c.MaximumPeakConsumption; c.SlotsPerAgent > capacity {
		return fmt.Errorf("%w: slotsPerAgent %d exceeds total capacity %d", ErrConfiguration, c.SlotsPerAgent, capacity)
	}
	if c.NumberOfAgentsToEvolve < 0 {
		return fmt.Errorf("%w: numberOfAgentsToEvolve must not be negative, got %d", ErrConfiguration, c.NumberOfAgentsToEvolve)
	}
	if len(c.UniqueAgentTypes) == 0 {
		return fmt.Errorf("%w: no agent types", ErrConfiguration)
	}
	return nil
}

func (c DayConfig) dayOfInterest(day int) bool {
	for _, d := range c.DaysOfInterest {
		if d == day {
			return true
		}
	}
	return false
}

// RunDay runs one complete simulated day: build the pool, shuffle and
// allocate, take baselines, run the exchange rounds, record end-of-day
// metrics and snapshots, then let the population learn. The returned metrics
// describe the day before social learning changed any strategy; sink may be
// nil to skip recording entirely.
func RunDay(day int, population []*agent.Agent, cfg DayConfig, rng *entropy.Source, sink Sink) (DayMetrics, error) {
	if err := cfg.Validate(); err != nil {
		return DayMetrics{}, err
	}

	// Shuffling before allocation removes any ordering bias in who gets
	// first pick of the pool.
	pool := NewPool(cfg.UniqueTimeSlots, cfg.MaximumPeakConsumption)
	rng.Shuffle(len(population), func(i, j int) {
		population[i], population[j] = population[j], population[i]
	})
	for _, a := range population {
		requested := a.RequestTimeSlots(rng, cfg.UniqueTimeSlots)
		a.ReceiveAllocation(pool.Draw(rng, len(requested)))
	}

	// Baselines before any trading: what random allocation gave, and the
	// best any reshuffling of the allocated units could give.
	randomBaseline := AverageSatisfaction(population)
	optimumBaseline := OptimumSatisfaction(population)

	trades := 0
	for exchange := 1; exchange <= cfg.Exchanges; exchange++ {
		n, err := runExchangeRound(population, rng)
		if err != nil {
			return DayMetrics{}, err
		}
		trades += n

		if cfg.AdditionalData && sink != nil {
			for _, a := range population {
				row := IndividualRow{
					Seed:         cfg.Seed,
					Day:          day,
					Exchange:     exchange,
					AgentID:      a.ID(),
					AgentType:    a.Type(),
					Satisfaction: a.Satisfaction(),
				}
				if err := sink.WriteIndividual(row); err != nil {
					return DayMetrics{}, fmt.Errorf("individual row: %w", err)
				}
			}
		}
	}

	metrics := DayMetrics{
		Day:             day,
		RandomBaseline:  randomBaseline,
		OptimumBaseline: optimumBaseline,
		TypeAverages:    make(map[agent.Type]float64, len(cfg.UniqueAgentTypes)),
		TypeStdDevs:     make(map[agent.Type]float64, len(cfg.UniqueAgentTypes)),
		TypeCounts:      make(map[agent.Type]int, len(cfg.UniqueAgentTypes)),
		Trades:          trades,
	}
	avgRow := AverageRow{
		Seed:            cfg.Seed,
		Day:             day,
		RandomBaseline:  randomBaseline,
		OptimumBaseline: optimumBaseline,
	}
	for _, t := range cfg.UniqueAgentTypes {
		average := TypeAverageSatisfaction(population, t)
		stdDev := TypeSatisfactionStdDev(population, t)
		metrics.TypeAverages[t] = average
		metrics.TypeStdDevs[t] = stdDev
		metrics.TypeCounts[t] = TypeCount(population, t)
		avgRow.TypeAverages = append(avgRow.TypeAverages, average)
		avgRow.TypeStdDevs = append(avgRow.TypeStdDevs, stdDev)
	}

	if sink != nil {
		if cfg.AdditionalData {
			if err := sink.WriteAverage(avgRow); err != nil {
				return DayMetrics{}, fmt.Errorf("average row: %w", err)
			}
		}
		for _, t := range cfg.UniqueAgentTypes {
			row := PopulationRow{Day: day, AgentType: t, Count: metrics.TypeCounts[t]}
			if err := sink.WritePopulation(row); err != nil {
				return DayMetrics{}, fmt.Errorf("population row: %w", err)
			}
		}
		if cfg.dayOfInterest(day) {
			for _, a := range population {
				row := DistributionRow{Day: day, AgentType: a.Type(), Satisfaction: a.Satisfaction()}
				if err := sink.WriteDistribution(row); err != nil {
					return DayMetrics{}, fmt.Errorf("distribution row: %w", err)
				}
			}
		}
	}

	// Strategy changes take effect from tomorrow's requests; today's metrics
	// are already recorded.
	metrics.Adoptions = runSocialLearning(population, cfg.NumberOfAgentsToEvolve, rng)

	return metrics, nil
}
