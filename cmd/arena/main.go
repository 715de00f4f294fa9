// Command arena runs the resource exchange arena: a population of agents
// requests and trades time slots day after day, adapting strategy by copying
// better performers.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/talgya/exchange-arena/internal/agent"
	"github.com/talgya/exchange-arena/internal/config"
	"github.com/talgya/exchange-arena/internal/engine"
	"github.com/talgya/exchange-arena/internal/entropy"
	"github.com/talgya/exchange-arena/internal/sink"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "arena",
		Short:         "Simulate a population of agents trading time slots under a capacity constraint",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newRunCmd(), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the arena version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation from a configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSimulation(configPath, logLevel)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

// initializeLogger creates a zap logger based on configuration and CLI override.
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "console"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	return zapConfig.Build()
}

func runSimulation(configPath, logLevelOverride string) error {
	conf, err := config.LoadConfiguration(configPath)
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	logger, err := initializeLogger(conf.Logging, logLevelOverride)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	seed := conf.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runID := uuid.New()
	rng := entropy.NewSource(seed)

	counts := conf.TypeCounts()
	types := make([]agent.Type, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	population, err := agent.NewPopulation(counts, conf.Population.SlotsPerAgent)
	if err != nil {
		return fmt.Errorf("build population: %w", err)
	}

	dayCfg := engine.DayConfig{
		Seed:                   seed,
		Exchanges:              conf.Simulation.ExchangesPerDay,
		MaximumPeakConsumption: conf.Population.MaximumPeakConsumption,
		UniqueTimeSlots:        conf.Population.UniqueTimeSlots,
		SlotsPerAgent:          conf.Population.SlotsPerAgent,
		NumberOfAgentsToEvolve: conf.Population.NumberOfAgentsToEvolve,
		UniqueAgentTypes:       types,
		DaysOfInterest:         conf.Simulation.DaysOfInterest,
		AdditionalData:         conf.Simulation.AdditionalData,
	}

	outputDir := conf.Output.Directory
	if outputDir == "" {
		outputDir = "output"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var (
		sinks   []engine.Sink
		closers []func() error
	)
	for _, format := range conf.Output.Formats {
		switch format {
		case "csv":
			c, err := sink.NewCSV(outputDir, types)
			if err != nil {
				return err
			}
			sinks = append(sinks, c)
			closers = append(closers, c.Close)
		case "sqlite":
			store, err := sink.Open(filepath.Join(outputDir, "arena.db"))
			if err != nil {
				return err
			}
			if err := store.StartRun(runID, seed, conf); err != nil {
				store.Close()
				return err
			}
			sinks = append(sinks, store)
			closers = append(closers, store.Close)
		}
	}

	logger.Info("simulation starting",
		zap.String("run_id", runID.String()),
		zap.Int64("seed", seed),
		zap.Int("days", conf.Simulation.Days),
		zap.Int("agents", len(population)),
		zap.Int("unique_time_slots", conf.Population.UniqueTimeSlots),
		zap.Int("maximum_peak_consumption", conf.Population.MaximumPeakConsumption),
	)

	start := time.Now()
	sim := engine.NewSimulation(conf.Simulation.Days, dayCfg, population, rng, sink.NewMulti(sinks...), logger)
	series, runErr := sim.Run()

	for _, closeSink := range closers {
		if err := closeSink(); err != nil && runErr == nil {
			runErr = fmt.Errorf("close sink: %w", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	totalTrades := 0
	for _, metrics := range series {
		totalTrades += metrics.Trades
	}
	final := series[len(series)-1]

	fmt.Printf("simulated %s days in %s (%s trades)\n",
		humanize.Comma(int64(len(series))),
		time.Since(start).Round(time.Millisecond),
		humanize.Comma(int64(totalTrades)))
	fmt.Printf("end-of-run average satisfaction %.3f (day %d optimum %.3f)\n",
		engine.AverageSatisfaction(sim.Population()), final.Day, final.OptimumBaseline)
	for _, t := range types {
		fmt.Printf("  %-8s %s agents, average satisfaction %.3f\n",
			t.Name(), humanize.Comma(int64(final.TypeCounts[t])), final.TypeAverages[t])
	}
	return nil
}
