// Simulation driver — runs the arena day by day over one persistent
// population and collects the per-day metrics series.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/talgya/exchange-arena/internal/agent"
	"github.com/talgya/exchange-arena/internal/entropy"
)

// Simulation owns the population, random source, and sinks for one run. The
// run is fully sequential: days execute in order and each day sees the
// population social learning left behind.
type Simulation struct {
	days   int
	config DayConfig

	population []*agent.Agent
	rng        *entropy.Source
	sink       Sink
	logger     *zap.Logger
}

// NewSimulation wires a run together. sink may be nil to skip recording;
// logger may be nil for silence.
func NewSimulation(days int, cfg DayConfig, population []*agent.Agent, rng *entropy.Source, sink Sink, logger *zap.Logger) *Simulation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulation{
		days:       days,
		config:     cfg,
		population: population,
		rng:        rng,
		sink:       sink,
		logger:     logger,
	}
}

// Population returns the simulation's agents.
func (s *Simulation) Population() []*agent.Agent {
	return s.population
}

// Run simulates every day in order and returns the per-day metrics series.
// On error the series covers the days that completed.
func (s *Simulation) Run() ([]DayMetrics, error) {
	if s.days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", ErrConfiguration, s.days)
	}
	if len(s.population) == 0 {
		return nil, fmt.Errorf("%w: population is empty", ErrConfiguration)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	series := make([]DayMetrics, 0, s.days)
	for day := 1; day <= s.days; day++ {
		metrics, err := RunDay(day, s.population, s.config, s.rng, s.sink)
		if err != nil {
			return series, fmt.Errorf("day %d: %w", day, err)
		}
		series = append(series, metrics)

		fields := []zap.Field{
			zap.Int("day", day),
			zap.Float64("random_baseline", metrics.RandomBaseline),
			zap.Float64("optimum_baseline", metrics.OptimumBaseline),
			zap.Int("trades", metrics.Trades),
			zap.Int("adoptions", metrics.Adoptions),
		}
		for _, t := range s.config.UniqueAgentTypes {
			fields = append(fields,
				zap.Float64(t.Name()+"_satisfaction", metrics.TypeAverages[t]),
				zap.Int(t.Name()+"_count", metrics.TypeCounts[t]),
			)
		}
		s.logger.Info("day complete", fields...)
	}
	return series, nil
}
