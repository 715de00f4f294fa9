// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/talgya/exchange-arena/internal/agent"
)

// Configuration holds all configuration for a simulation run.
type Configuration struct {
	Simulation SimulationConfig
	Population PopulationConfig
	Output     OutputConfig
	Logging    LoggingConfig
}

// SimulationConfig controls the run length and the daily exchange protocol.
type SimulationConfig struct {
	Seed            int64 // 0 means derive from current time
	Days            int
	ExchangesPerDay int
	DaysOfInterest  []int
	AdditionalData  bool
}

// PopulationConfig controls the agent population and the slot economy.
type PopulationConfig struct {
	SlotsPerAgent          int
	UniqueTimeSlots        int
	MaximumPeakConsumption int
	NumberOfAgentsToEvolve int
	Types                  map[string]int // strategy name -> agent count
}

// OutputConfig selects where metrics rows go.
type OutputConfig struct {
	Directory string
	Formats   []string // "csv", "sqlite"
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Validate checks the configuration for values the simulation cannot run
// with. It is called once before any simulation state is built.
func (conf *Configuration) Validate() error {
	if conf.Simulation.Days <= 0 {
		return fmt.Errorf("simulation.days must be positive, got %d", conf.Simulation.Days)
	}
	if conf.Simulation.ExchangesPerDay <= 0 {
		return fmt.Errorf("simulation.exchangesPerDay must be positive, got %d", conf.Simulation.ExchangesPerDay)
	}
	for _, day := range conf.Simulation.DaysOfInterest {
		if day < 1 || day > conf.Simulation.Days {
			return fmt.Errorf("simulation.daysOfInterest entry %d outside run of %d days", day, conf.Simulation.Days)
		}
	}

	pop := conf.Population
	if pop.SlotsPerAgent <= 0 {
		return fmt.Errorf("population.slotsPerAgent must be positive, got %d", pop.SlotsPerAgent)
	}
	if pop.UniqueTimeSlots <= 0 {
		return fmt.Errorf("population.uniqueTimeSlots must be positive, got %d", pop.UniqueTimeSlots)
	}
	if pop.MaximumPeakConsumption <= 0 {
		return fmt.Errorf("population.maximumPeakConsumption must be positive, got %d", pop.MaximumPeakConsumption)
	}
	if pop.SlotsPerAgent > pop.UniqueTimeSlots*pop.MaximumPeakConsumption {
		return fmt.Errorf("population.slotsPerAgent %d exceeds total capacity %d",
			pop.SlotsPerAgent, pop.UniqueTimeSlots*pop.MaximumPeakConsumption)
	}
	if pop.NumberOfAgentsToEvolve < 0 {
		return fmt.Errorf("population.numberOfAgentsToEvolve must not be negative, got %d", pop.NumberOfAgentsToEvolve)
	}

	totalAgents := 0
	for name, count := range pop.Types {
		if _, ok := agent.TypeByName(name); !ok {
			return fmt.Errorf("population.types: unknown agent type %q", name)
		}
		if count < 0 {
			return fmt.Errorf("population.types.%s must not be negative, got %d", name, count)
		}
		totalAgents += count
	}
	if totalAgents == 0 {
		return fmt.Errorf("population.types must name at least one agent")
	}

	for _, format := range conf.Output.Formats {
		switch format {
		case "csv", "sqlite":
		default:
			return fmt.Errorf("output.formats: unknown format %q", format)
		}
	}

	return nil
}

// TypeCounts converts the configured name-keyed population mix into the agent
// package's type-keyed form.
func (conf *Configuration) TypeCounts() map[agent.Type]int {
	counts := make(map[agent.Type]int, len(conf.Population.Types))
	for name, count := range conf.Population.Types {
		if t, ok := agent.TypeByName(name); ok && count > 0 {
			counts[t] = count
		}
	}
	return counts
}
