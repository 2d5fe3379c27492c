package ssg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasperNL/treestim/core"
	"github.com/JasperNL/treestim/ssg"
)

// TestNew_NilEngine verifies constructor validation.
func TestNew_NilEngine(t *testing.T) {
	_, err := ssg.New(nil)
	assert.ErrorIs(t, err, ssg.ErrNilEngine)
}

// TestSSG_InitialState verifies the no-incumbent degenerate value of 1.
func TestSSG_InitialState(t *testing.T) {
	s, err := ssg.New(newStubEngine())
	require.NoError(t, err)

	assert.Equal(t, 1.0, s.Value(), "SSG is 1 before any incumbent")
	assert.Equal(t, 1, s.NSubtrees())
	assert.False(t, core.IsValid(s.LastSplitPrimalBound()), "no split recorded yet")
}

// TestSSG_SingleSubtreeGap reproduces the plain two-bound gap: with one
// subtree, primal 10 and dual 5, the value equals |10-5|/max(10,5) = 0.5.
func TestSSG_SingleSubtreeGap(t *testing.T) {
	eng := newStubEngine()
	eng.primal = 10.0
	eng.dual = 5.0
	eng.lower[1] = 5.0
	eng.open = [][]core.NodeID{{1}} // exactly one open node -> one subtree

	s, err := ssg.New(eng)
	require.NoError(t, err)

	// an unrelated leaf event with a fresh incumbent triggers the split
	require.NoError(t, s.Update(99, 0))

	assert.Equal(t, 1, s.NSubtrees())
	assert.InDelta(t, 0.5, s.Value(), 1e-12, "single subtree mirrors the plain relative gap")
	assert.Equal(t, 10.0, s.LastSplitPrimalBound())
}

// TestSSG_SplitContinuity verifies the scaling recalibration: immediately
// after a split the value must be continuous with its pre-split level.
func TestSSG_SplitContinuity(t *testing.T) {
	eng := newStubEngine()
	eng.primal = 10.0
	eng.dual = 4.0
	eng.lower[1] = 4.0
	eng.lower[2] = 8.0
	eng.open = [][]core.NodeID{{1}, {2}}

	s, err := ssg.New(eng)
	require.NoError(t, err)

	require.NoError(t, s.Update(99, 0))

	assert.Equal(t, 2, s.NSubtrees())
	assert.InDelta(t, 1.0, s.Value(), 1e-9, "scaling keeps the value continuous across the split")

	rawSum := core.RelGap(10, 4) + core.RelGap(10, 8)
	assert.InDelta(t, 1.0/rawSum, s.ScalingFactor(), 1e-9)
}

// TestSSG_ValueWithinBounds verifies value ∈ [0, nsubtrees] through a pruning
// sequence.
func TestSSG_ValueWithinBounds(t *testing.T) {
	eng := newStubEngine()
	eng.primal = 10.0
	eng.dual = 2.0
	for i, lb := range []float64{2.0, 5.0, 7.0} {
		id := core.NodeID(i + 1)
		eng.lower[id] = lb
	}
	eng.open = [][]core.NodeID{{1, 2}, {3}}

	s, err := ssg.New(eng)
	require.NoError(t, err)
	require.NoError(t, s.Update(99, 0))

	require.Equal(t, 3, s.NSubtrees())
	assert.LessOrEqual(t, s.Value(), float64(s.NSubtrees()))
	assert.GreaterOrEqual(t, s.Value(), 0.0)

	// prune the frontier one leaf at a time; value shrinks monotonically to 0
	prev := s.Value()
	for _, id := range []core.NodeID{1, 2, 3} {
		require.NoError(t, s.Update(id, 0))
		assert.LessOrEqual(t, s.Value(), prev+1e-12, "pruning can only close the gap")
		prev = s.Value()
	}
	assert.InDelta(t, 0.0, s.Value(), 1e-9, "empty frontier closes the gap entirely")
}

// TestSSG_IncrementalMatchesRecompute verifies that the O(log n) removal
// update lands on the same value as a full O(#subtrees) recomputation.
func TestSSG_IncrementalMatchesRecompute(t *testing.T) {
	eng := newStubEngine()
	eng.primal = 20.0
	eng.dual = 3.0
	bounds := []float64{3.0, 6.0, 9.0, 12.0}
	for i, lb := range bounds {
		eng.lower[core.NodeID(i+1)] = lb
	}
	eng.open = [][]core.NodeID{{1, 2}, {3, 4}}

	s, err := ssg.New(eng)
	require.NoError(t, err)
	require.NoError(t, s.Update(99, 0))

	// remove the bound-defining node of subtree 0 incrementally
	s.RemoveNode(1)
	incremental := s.Value()

	// a fresh recomputation (without rescaling) must agree
	s.ComputeFromScratchEfficiently(false)
	assert.InDelta(t, s.Value(), incremental, 1e-9, "incremental update must match full recompute")
}

// TestSSG_SplitIdempotence verifies that repeated events without a primal
// improvement never re-split or move the recorded split bound.
func TestSSG_SplitIdempotence(t *testing.T) {
	eng := newStubEngine()
	eng.primal = 10.0
	eng.dual = 4.0
	eng.lower[1] = 4.0
	eng.lower[2] = 6.0
	eng.open = [][]core.NodeID{{1}, {2}}

	s, err := ssg.New(eng)
	require.NoError(t, err)
	require.NoError(t, s.Update(99, 0))

	valueAfterSplit := s.Value()
	scaleAfterSplit := s.ScalingFactor()

	// same primal bound: the next events must leave the split untouched
	require.NoError(t, s.Update(98, 0))
	require.NoError(t, s.Update(97, 0))

	assert.Equal(t, 10.0, s.LastSplitPrimalBound(), "split bound unchanged without improvement")
	assert.Equal(t, 2, s.NSubtrees())
	assert.Equal(t, valueAfterSplit, s.Value())
	assert.Equal(t, scaleAfterSplit, s.ScalingFactor())
}

// TestSSG_ChildrenInheritLabel verifies that branching hands the focus
// node's label down to its children and retires the focus node.
func TestSSG_ChildrenInheritLabel(t *testing.T) {
	eng := newStubEngine()
	eng.primal = 10.0
	eng.dual = 4.0
	eng.lower[1] = 4.0
	eng.lower[2] = 6.0
	eng.open = [][]core.NodeID{{1}, {2}}

	s, err := ssg.New(eng)
	require.NoError(t, err)
	require.NoError(t, s.Update(99, 0))
	valueAfterSplit := s.Value()

	// branch node 1 into children 10 and 11 with the same bound
	eng.lower[10] = 4.0
	eng.lower[11] = 4.5
	eng.focus = 1
	eng.haveFocus = true
	eng.branched = true
	eng.children = []core.NodeID{10, 11}

	require.NoError(t, s.Update(1, 2))
	assert.InDelta(t, valueAfterSplit, s.Value(), 1e-9,
		"children at the parent bound keep the subtree contribution")

	// prune both children: the subtree empties and its contribution vanishes
	eng.children = nil
	eng.branched = false
	require.NoError(t, s.Update(10, 0))
	require.NoError(t, s.Update(11, 0))

	s.ComputeFromScratchEfficiently(false)
	wantScale := s.ScalingFactor()
	assert.InDelta(t, wantScale*core.RelGap(10, 6), s.Value(), 1e-9,
		"only the surviving subtree contributes")
}

// TestSSG_SolvedDrivesValueToZero verifies the coinciding-bound shortcut.
func TestSSG_SolvedDrivesValueToZero(t *testing.T) {
	eng := newStubEngine()
	eng.primal = 7.0
	eng.dual = 7.0

	s, err := ssg.New(eng)
	require.NoError(t, err)
	require.NoError(t, s.Update(1, 0))

	assert.Equal(t, 0.0, s.Value(), "coinciding bounds mean the search is done")
}

// TestSSG_StoreNodeValidation verifies the sentinel errors.
func TestSSG_StoreNodeValidation(t *testing.T) {
	eng := newStubEngine()
	eng.primal = 10.0
	eng.dual = 4.0
	eng.lower[1] = 4.0
	eng.lower[2] = 6.0
	eng.open = [][]core.NodeID{{1}, {2}}

	s, err := ssg.New(eng)
	require.NoError(t, err)
	require.NoError(t, s.Update(99, 0))

	assert.ErrorIs(t, s.StoreNode(1, 0), ssg.ErrDuplicateNode)
	assert.ErrorIs(t, s.StoreNode(42, 5), ssg.ErrBadSubtreeLabel)
	assert.ErrorIs(t, s.StoreNode(42, -1), ssg.ErrBadSubtreeLabel)
}

// TestSSG_Reset verifies the tracker returns to its pristine state.
func TestSSG_Reset(t *testing.T) {
	eng := newStubEngine()
	eng.primal = 10.0
	eng.dual = 4.0
	eng.lower[1] = 4.0
	eng.lower[2] = 6.0
	eng.open = [][]core.NodeID{{1}, {2}}

	s, err := ssg.New(eng)
	require.NoError(t, err)
	require.NoError(t, s.Update(99, 0))

	s.Reset()
	assert.Equal(t, 1.0, s.Value())
	assert.Equal(t, 1.0, s.ScalingFactor())
	assert.Equal(t, 1, s.NSubtrees())
	assert.False(t, core.IsValid(s.LastSplitPrimalBound()))
}
