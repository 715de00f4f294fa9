// SQLite metrics store backed by sqlx and the pure-Go sqlite driver.
package sink

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/exchange-arena/internal/engine"
)

// Store wraps a SQLite connection for metrics persistence. Rows from many
// runs share the tables, keyed by run ID.
type Store struct {
	conn  *sqlx.DB
	runID string
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS average_satisfactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		day INTEGER NOT NULL,
		random_allocation REAL NOT NULL,
		optimum_allocation REAL NOT NULL,
		type_averages_json TEXT NOT NULL,
		type_stddevs_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS individual_satisfactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		day INTEGER NOT NULL,
		exchange INTEGER NOT NULL,
		agent_id INTEGER NOT NULL,
		agent_type INTEGER NOT NULL,
		satisfaction REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS satisfaction_distributions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		agent_type INTEGER NOT NULL,
		satisfaction REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS population_distributions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		agent_type INTEGER NOT NULL,
		count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_average_run_day ON average_satisfactions(run_id, day);
	CREATE INDEX IF NOT EXISTS idx_individual_run_day ON individual_satisfactions(run_id, day);
	CREATE INDEX IF NOT EXISTS idx_distribution_run_day ON satisfaction_distributions(run_id, day);
	CREATE INDEX IF NOT EXISTS idx_population_run_day ON population_distributions(run_id, day);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// StartRun registers a run and tags all subsequent rows with its ID. config
// is stored as JSON for later inspection of what produced the rows.
func (s *Store) StartRun(id uuid.UUID, seed int64, config any) error {
	configJSON, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = s.conn.Exec(
		"INSERT INTO runs (id, seed, started_at, config_json) VALUES (?, ?, ?, ?)",
		id.String(), seed, time.Now().UTC().Format(time.RFC3339), string(configJSON),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	s.runID = id.String()
	return nil
}

// WriteAverage appends one per-day average-satisfaction row.
func (s *Store) WriteAverage(row engine.AverageRow) error {
	averagesJSON, _ := json.Marshal(row.TypeAverages)
	stdDevsJSON, _ := json.Marshal(row.TypeStdDevs)
	_, err := s.conn.Exec(
		`INSERT INTO average_satisfactions
		 (run_id, seed, day, random_allocation, optimum_allocation, type_averages_json, type_stddevs_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.runID, row.Seed, row.Day, row.RandomBaseline, row.OptimumBaseline,
		string(averagesJSON), string(stdDevsJSON),
	)
	return err
}

// WriteIndividual appends one per-agent, per-exchange satisfaction row.
func (s *Store) WriteIndividual(row engine.IndividualRow) error {
	_, err := s.conn.Exec(
		`INSERT INTO individual_satisfactions
		 (run_id, seed, day, exchange, agent_id, agent_type, satisfaction)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.runID, row.Seed, row.Day, row.Exchange, int(row.AgentID), int(row.AgentType), row.Satisfaction,
	)
	return err
}

// WriteDistribution appends one day-of-interest satisfaction row.
func (s *Store) WriteDistribution(row engine.DistributionRow) error {
	_, err := s.conn.Exec(
		`INSERT INTO satisfaction_distributions (run_id, day, agent_type, satisfaction)
		 VALUES (?, ?, ?, ?)`,
		s.runID, row.Day, int(row.AgentType), row.Satisfaction,
	)
	return err
}

// WritePopulation appends one end-of-day population count row.
func (s *Store) WritePopulation(row engine.PopulationRow) error {
	_, err := s.conn.Exec(
		`INSERT INTO population_distributions (run_id, day, agent_type, count)
		 VALUES (?, ?, ?, ?)`,
		s.runID, row.Day, int(row.AgentType), row.Count,
	)
	return err
}
