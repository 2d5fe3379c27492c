package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasperNL/treestim/core"
	"github.com/JasperNL/treestim/restart"
	"github.com/JasperNL/treestim/sim"
)

// replay records the full event stream of one solve.
func replay(eng *sim.Engine) []core.NodeID {
	var events []core.NodeID
	for {
		id, _, ok := eng.Step()
		if !ok {
			return events
		}
		events = append(events, id)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	a := replay(sim.New(sim.WithSeed(42)))
	b := replay(sim.New(sim.WithSeed(42)))
	c := replay(sim.New(sim.WithSeed(7)))

	require.NotEmpty(t, a)
	assert.Equal(t, a, b, "identical seeds must replay identical solves")
	assert.NotEqual(t, a, c)
}

func TestEngine_BinaryTreeShape(t *testing.T) {
	eng := sim.New(sim.WithSeed(3), sim.WithMaxDepth(6))

	total := 0
	for {
		_, nchildren, ok := eng.Step()
		if !ok {
			break
		}
		total++
		assert.True(t, nchildren == 0 || nchildren == 2)
	}

	// every event visits one created node exactly once
	assert.EqualValues(t, eng.NNodes(), total)
	assert.Greater(t, eng.NLeaves(), 0)
}

// Driving a full solve through the monitor must explore the tree completely:
// the uniform leaf progress of a binary tree sums to exactly 1.
func TestEngine_FullSolveThroughMonitor(t *testing.T) {
	eng := sim.New(sim.WithSeed(11), sim.WithMaxDepth(8), sim.WithBranchProbability(1.0))

	m, err := restart.New(eng, restart.DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, sim.Run(eng, m))

	td := m.TreeData()
	assert.Equal(t, 1.0, td.Progress())
	assert.EqualValues(t, eng.NNodes(), td.NNodes())
	assert.EqualValues(t, 0, td.NOpen())
	assert.Zero(t, eng.Restarts())
}

func TestEngine_RestartIntegration(t *testing.T) {
	eng := sim.New(sim.WithSeed(5), sim.WithMaxDepth(8), sim.WithBranchProbability(1.0))

	cfg := restart.DefaultConfig()
	cfg.Policy = restart.PolicyAlways
	cfg.MinNodes = 10
	cfg.HitCounterLim = 2
	cfg.RestartLimit = 1

	m, err := restart.New(eng, cfg)
	require.NoError(t, err)

	require.NoError(t, sim.Run(eng, m))

	assert.Equal(t, 1, eng.Restarts())
	assert.Equal(t, 1, m.NRestarts())
	// the rerooted solve still runs to completion
	assert.Equal(t, 1.0, m.TreeData().Progress())
	assert.EqualValues(t, 0, m.TreeData().NOpen())
}

func TestOptions_Validation(t *testing.T) {
	assert.Panics(t, func() { sim.WithMaxDepth(0) })
	assert.Panics(t, func() { sim.WithBranchProbability(1.5) })
	assert.Panics(t, func() { sim.WithIncumbentAfter(-1) })
	assert.Panics(t, func() { sim.WithImproveProbability(-0.1) })
}
