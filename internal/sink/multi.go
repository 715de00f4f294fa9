// Fan-out sink for recording to several destinations at once.
package sink

import "github.com/talgya/exchange-arena/internal/engine"

// Multi forwards every row to each wrapped sink, stopping at the first
// failure so the engine aborts rather than trusting partial metrics.
type Multi struct {
	sinks []engine.Sink
}

// NewMulti wraps the given sinks. A Multi over zero sinks discards rows.
func NewMulti(sinks ...engine.Sink) *Multi {
	return &Multi{sinks: sinks}
}

// WriteAverage forwards the row to all sinks.
func (m *Multi) WriteAverage(row engine.AverageRow) error {
	for _, s := range m.sinks {
		if err := s.WriteAverage(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteIndividual forwards the row to all sinks.
func (m *Multi) WriteIndividual(row engine.IndividualRow) error {
	for _, s := range m.sinks {
		if err := s.WriteIndividual(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteDistribution forwards the row to all sinks.
func (m *Multi) WriteDistribution(row engine.DistributionRow) error {
	for _, s := range m.sinks {
		if err := s.WriteDistribution(row); err != nil {
			return err
		}
	}
	return nil
}

// WritePopulation forwards the row to all sinks.
func (m *Multi) WritePopulation(row engine.PopulationRow) error {
	for _, s := range m.sinks {
		if err := s.WritePopulation(row); err != nil {
			return err
		}
	}
	return nil
}
