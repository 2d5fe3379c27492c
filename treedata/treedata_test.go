package treedata_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasperNL/treestim/core"
	"github.com/JasperNL/treestim/treedata"
)

// stubEngine is a minimal core.Engine: no incumbent, scripted node depths,
// switchable restart flag.
type stubEngine struct {
	depth     map[core.NodeID]int
	inRestart bool
}

func newStubEngine() *stubEngine {
	return &stubEngine{depth: map[core.NodeID]int{}}
}

func (e *stubEngine) NNodes() int64                              { return 0 }
func (e *stubEngine) PrimalBound() float64                       { return math.Inf(1) }
func (e *stubEngine) DualBound() float64                         { return math.Inf(-1) }
func (e *stubEngine) Gap() float64                               { return 1.0 }
func (e *stubEngine) NodeDepth(id core.NodeID) int               { return e.depth[id] }
func (e *stubEngine) NodeLowerBound(core.NodeID) float64         { return math.Inf(-1) }
func (e *stubEngine) NodeParent(core.NodeID) (core.NodeID, bool) { return core.NoNode, false }
func (e *stubEngine) NodeFixedProbability(core.NodeID) float64   { return 1.0 }
func (e *stubEngine) NodeRatioProbability(core.NodeID) float64   { return 1.0 }
func (e *stubEngine) OpenNodes() [][]core.NodeID                 { return nil }
func (e *stubEngine) FocusNode() (core.NodeID, bool)             { return core.NoNode, false }
func (e *stubEngine) FocusBranched() bool                        { return false }
func (e *stubEngine) Children() []core.NodeID                    { return nil }
func (e *stubEngine) InRestart() bool                            { return e.inRestart }
func (e *stubEngine) TriggerRestart()                            {}

// TestTreeData_FreshState verifies the one-open-root starting point.
func TestTreeData_FreshState(t *testing.T) {
	td, err := treedata.New(newStubEngine())
	require.NoError(t, err)

	assert.EqualValues(t, 1, td.NNodes())
	assert.EqualValues(t, 1, td.NOpen())
	assert.EqualValues(t, 0, td.NVisited())
	assert.Equal(t, 0.0, td.Progress())
}

// TestTreeData_RootBranch replays scenario A: branching the root with two
// children.
func TestTreeData_RootBranch(t *testing.T) {
	eng := newStubEngine()
	eng.depth[1] = 0

	td, err := treedata.New(eng)
	require.NoError(t, err)

	require.NoError(t, td.Update(1, 2))

	assert.EqualValues(t, 3, td.NNodes())
	assert.EqualValues(t, 2, td.NOpen())
	assert.EqualValues(t, 1, td.NInner())
	assert.EqualValues(t, 1, td.NVisited())
	assert.EqualValues(t, 0, td.NLeaves())
	assert.Equal(t, 0.0, td.Progress(), "branching contributes no progress")
}

// TestTreeData_LeafAfterBranch replays scenario B: a depth-1 leaf following
// the root branching.
func TestTreeData_LeafAfterBranch(t *testing.T) {
	eng := newStubEngine()
	eng.depth[1] = 0
	eng.depth[2] = 1

	td, err := treedata.New(eng)
	require.NoError(t, err)

	require.NoError(t, td.Update(1, 2))
	require.NoError(t, td.Update(2, 0))

	assert.EqualValues(t, 1, td.NLeaves())
	assert.EqualValues(t, 2, td.NVisited())
	assert.EqualValues(t, 1, td.NOpen())
	assert.InDelta(t, 0.5, td.Progress(), 1e-12, "a depth-1 leaf weighs 2^-1")
}

// TestTreeData_Invariants drives a random-ish event sequence and checks the
// counter identities after every step.
func TestTreeData_Invariants(t *testing.T) {
	eng := newStubEngine()
	td, err := treedata.New(eng)
	require.NoError(t, err)

	// (node, nchildren) sequence: mixed branchings and leaves
	events := []struct {
		node      core.NodeID
		nchildren int
		depth     int
	}{
		{1, 2, 0}, {2, 2, 1}, {3, 0, 1}, {4, 0, 2}, {5, 2, 2}, {6, 0, 3}, {7, 0, 3},
	}
	for _, ev := range events {
		eng.depth[ev.node] = ev.depth
		require.NoError(t, td.Update(ev.node, ev.nchildren))

		assert.Equal(t, td.NVisited(), td.NInner()+td.NLeaves(), "nvisited == ninner + nleaves")
		assert.Equal(t, td.NOpen(), td.NNodes()-td.NVisited(), "nopen == nnodes - nvisited")
		assert.GreaterOrEqual(t, td.NOpen(), int64(0))
	}

	// the sequence above explores a full binary tree of 7 nodes
	assert.EqualValues(t, 0, td.NOpen())
	assert.InDelta(t, 1.0, td.Progress(), 1e-12, "a fully explored tree has progress 1")
}

// TestTreeData_Reset verifies Reset restores the fresh-tree state.
func TestTreeData_Reset(t *testing.T) {
	eng := newStubEngine()
	td, err := treedata.New(eng)
	require.NoError(t, err)

	require.NoError(t, td.Update(1, 2))
	require.NoError(t, td.Update(2, 0))

	td.Reset()
	assert.EqualValues(t, 1, td.NNodes())
	assert.EqualValues(t, 1, td.NOpen())
	assert.EqualValues(t, 0, td.NVisited())
	assert.Equal(t, 0.0, td.Progress())
	assert.Equal(t, 1.0, td.SSG().Value())
}

// TestTreeData_RestartSkipsSSG verifies the SSG is not fed while the engine
// is discarding the frontier.
func TestTreeData_RestartSkipsSSG(t *testing.T) {
	eng := newStubEngine()
	td, err := treedata.New(eng)
	require.NoError(t, err)

	eng.inRestart = true
	require.NoError(t, td.Update(1, 0))

	assert.Equal(t, 1.0, td.SSG().Value(), "SSG untouched during a restart transition")
	assert.EqualValues(t, 1, td.NLeaves(), "counters still track the event")
}
