// Package sink provides the metrics sinks the engine writes rows to: CSV
// files for downstream analysis scripts and a SQLite store for querying runs.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/talgya/exchange-arena/internal/agent"
	"github.com/talgya/exchange-arena/internal/engine"
)

// CSV writes metrics rows to four files in a directory: averages, individual
// satisfactions, end-of-day distributions, and population counts. Column
// order is fixed; analysis scripts read these files positionally.
type CSV struct {
	averages      *csvFile
	individuals   *csvFile
	distributions *csvFile
	populations   *csvFile
}

type csvFile struct {
	file   *os.File
	writer *csv.Writer
}

func newCSVFile(path string, header []string) (*csvFile, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("write header to %s: %w", path, err)
	}
	return &csvFile{file: file, writer: writer}, nil
}

func (f *csvFile) write(record []string) error {
	if err := f.writer.Write(record); err != nil {
		return err
	}
	// Flush per row so a crashed run still leaves readable files.
	f.writer.Flush()
	return f.writer.Error()
}

func (f *csvFile) close() error {
	f.writer.Flush()
	if err := f.writer.Error(); err != nil {
		f.file.Close()
		return err
	}
	return f.file.Close()
}

// NewCSV creates the four CSV files under dir. The per-type columns of the
// averages file follow the given type order, averages first, then standard
// deviations.
func NewCSV(dir string, types []agent.Type) (*CSV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	averageHeader := []string{"seed", "day", "random_allocation", "optimum_allocation"}
	for _, t := range types {
		averageHeader = append(averageHeader, t.Name())
	}
	for _, t := range types {
		averageHeader = append(averageHeader, t.Name()+"_sd")
	}

	c := &CSV{}
	files := []struct {
		target **csvFile
		name   string
		header []string
	}{
		{&c.averages, "end_of_day_average_satisfactions.csv", averageHeader},
		{&c.individuals, "individual_satisfactions.csv", []string{"seed", "day", "exchange", "agent_id", "agent_type", "satisfaction"}},
		{&c.distributions, "end_of_day_satisfactions.csv", []string{"day", "agent_type", "satisfaction"}},
		{&c.populations, "population_distributions.csv", []string{"day", "agent_type", "count"}},
	}
	for _, def := range files {
		f, err := newCSVFile(filepath.Join(dir, def.name), def.header)
		if err != nil {
			c.Close()
			return nil, err
		}
		*def.target = f
	}
	return c, nil
}

// WriteAverage appends one per-day average-satisfaction row.
func (c *CSV) WriteAverage(row engine.AverageRow) error {
	record := []string{
		strconv.FormatInt(row.Seed, 10),
		strconv.Itoa(row.Day),
		formatFloat(row.RandomBaseline),
		formatFloat(row.OptimumBaseline),
	}
	for _, v := range row.TypeAverages {
		record = append(record, formatFloat(v))
	}
	for _, v := range row.TypeStdDevs {
		record = append(record, formatFloat(v))
	}
	return c.averages.write(record)
}

// WriteIndividual appends one per-agent, per-exchange satisfaction row.
func (c *CSV) WriteIndividual(row engine.IndividualRow) error {
	return c.individuals.write([]string{
		strconv.FormatInt(row.Seed, 10),
		strconv.Itoa(row.Day),
		strconv.Itoa(row.Exchange),
		strconv.Itoa(int(row.AgentID)),
		strconv.Itoa(int(row.AgentType)),
		formatFloat(row.Satisfaction),
	})
}

// WriteDistribution appends one day-of-interest satisfaction row.
func (c *CSV) WriteDistribution(row engine.DistributionRow) error {
	return c.distributions.write([]string{
		strconv.Itoa(row.Day),
		strconv.Itoa(int(row.AgentType)),
		formatFloat(row.Satisfaction),
	})
}

// WritePopulation appends one end-of-day population count row.
func (c *CSV) WritePopulation(row engine.PopulationRow) error {
	return c.populations.write([]string{
		strconv.Itoa(row.Day),
		strconv.Itoa(int(row.AgentType)),
		strconv.Itoa(row.Count),
	})
}

// Close flushes and closes all four files, reporting the first failure.
func (c *CSV) Close() error {
	var firstErr error
	for _, f := range []*csvFile{c.averages, c.individuals, c.distributions, c.populations} {
		if f == nil {
			continue
		}
		if err := f.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
