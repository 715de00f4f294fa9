package sink

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/exchange-arena/internal/agent"
	"github.com/talgya/exchange-arena/internal/engine"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := Open(filepath.Join(t.TempDir(), "arena.db"))
	require.NoError(t, err)
	defer store.Close()

	runID := uuid.New()
	require.NoError(t, store.StartRun(runID, 42, map[string]int{"days": 10}))

	require.NoError(t, store.WriteAverage(engine.AverageRow{
		Seed: 42, Day: 1, RandomBaseline: 0.5, OptimumBaseline: 0.75,
		TypeAverages: []float64{0.6, 0.4}, TypeStdDevs: []float64{0.1, 0.2},
	}))
	require.NoError(t, store.WriteIndividual(engine.IndividualRow{
		Seed: 42, Day: 1, Exchange: 2, AgentID: 5, AgentType: agent.TypeSocial, Satisfaction: 0.25,
	}))
	require.NoError(t, store.WriteDistribution(engine.DistributionRow{
		Day: 1, AgentType: agent.TypeSelfish, Satisfaction: 1,
	}))
	require.NoError(t, store.WritePopulation(engine.PopulationRow{
		Day: 1, AgentType: agent.TypeSelfish, Count: 8,
	}))

	var runCount int
	require.NoError(t, store.conn.Get(&runCount, "SELECT COUNT(*) FROM runs WHERE id = ?", runID.String()))
	assert.Equal(t, 1, runCount)

	var random float64
	require.NoError(t, store.conn.Get(&random,
		"SELECT random_allocation FROM average_satisfactions WHERE run_id = ? AND day = 1", runID.String()))
	assert.Equal(t, 0.5, random)

	var satisfaction float64
	require.NoError(t, store.conn.Get(&satisfaction,
		"SELECT satisfaction FROM individual_satisfactions WHERE run_id = ? AND agent_id = 5", runID.String()))
	assert.Equal(t, 0.25, satisfaction)

	var count int
	require.NoError(t, store.conn.Get(&count,
		"SELECT count FROM population_distributions WHERE run_id = ? AND agent_type = 1", runID.String()))
	assert.Equal(t, 8, count)
}

func TestStoreKeepsRunsApart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "arena.db")

	store, err := Open(path)
	require.NoError(t, err)
	firstRun := uuid.New()
	require.NoError(t, store.StartRun(firstRun, 1, nil))
	require.NoError(t, store.WritePopulation(engine.PopulationRow{Day: 1, AgentType: agent.TypeSelfish, Count: 4}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	secondRun := uuid.New()
	require.NoError(t, store.StartRun(secondRun, 2, nil))
	require.NoError(t, store.WritePopulation(engine.PopulationRow{Day: 1, AgentType: agent.TypeSelfish, Count: 9}))

	var count int
	require.NoError(t, store.conn.Get(&count,
		"SELECT count FROM population_distributions WHERE run_id = ?", firstRun.String()))
	assert.Equal(t, 4, count)
	require.NoError(t, store.conn.Get(&count,
		"SELECT count FROM population_distributions WHERE run_id = ?", secondRun.String()))
	assert.Equal(t, 9, count)
}
