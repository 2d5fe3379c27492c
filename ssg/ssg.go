package ssg

import (
	"fmt"
	"math"

	"github.com/JasperNL/treestim/core"
)

// SubtreeSumGap tracks the scaled sum of per-subtree relative gaps over the
// open-node frontier. One instance serves one solve; Reset returns it to the
// single-subtree state for the next search-tree attempt.
type SubtreeSumGap struct {
	eng core.Engine

	value         float64 // current SSG value
	scalingFactor float64 // continuity scaling applied to the raw gap sum
	nsubtrees     int     // number n of subtrees labeled 0..n-1
	pbLastSplit   float64 // primal bound at the last split, Invalid before

	nodes map[core.NodeID]int // node id -> arena slot
	arena arena
	heaps []minHeap // one per subtree, keyed by lower bound
}

// New creates a subtree sum gap tracker bound to the given engine.
func New(eng core.Engine) (*SubtreeSumGap, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}
	s := &SubtreeSumGap{
		eng:   eng,
		nodes: make(map[core.NodeID]int),
	}
	s.Reset()

	return s, nil
}

// Reset returns the tracker to its initial single-subtree state: value 1,
// scaling 1, no labeled nodes, no recorded split bound.
func (s *SubtreeSumGap) Reset() {
	clear(s.nodes)
	s.arena.reset()
	s.heaps = nil

	s.value = 1.0
	s.scalingFactor = 1.0
	s.nsubtrees = 1
	s.pbLastSplit = core.Invalid
}

// Value returns the current subtree sum gap.
func (s *SubtreeSumGap) Value() float64 { return s.value }

// NSubtrees returns the number of subtrees of the last split (1 before any).
func (s *SubtreeSumGap) NSubtrees() int { return s.nsubtrees }

// ScalingFactor returns the current continuity scaling factor.
func (s *SubtreeSumGap) ScalingFactor() float64 { return s.scalingFactor }

// LastSplitPrimalBound returns the primal bound recorded at the last split,
// or core.Invalid if no split has happened in this solve.
func (s *SubtreeSumGap) LastSplitPrimalBound() float64 { return s.pbLastSplit }

// calcGap computes one subtree's contribution: the relative gap between the
// incumbent and the subtree's best lower bound. An unbounded lower bound
// marks an empty subtree and contributes 0; a missing incumbent means the
// full gap 1.
func (s *SubtreeSumGap) calcGap(lowerBound float64) float64 {
	if core.IsInfinite(lowerBound) {
		return 0.0
	}
	pb := s.eng.PrimalBound()
	if core.IsInfinite(pb) {
		return 1.0
	}

	return core.RelGap(pb, lowerBound)
}

// Split discards all subtree labels, re-queries the engine's open-node
// frontier, and assigns every open node a fresh label 0..k-1 (one subtree
// per open node, in the engine's partition order). With includeFocus the
// focus node becomes a subtree of its own. Split is triggered by Update only
// when the primal bound strictly improved since the last split.
func (s *SubtreeSumGap) Split(includeFocus bool) error {
	clear(s.nodes)
	s.arena.reset()
	s.heaps = nil

	open := s.eng.OpenNodes()

	n := 0
	for _, part := range open {
		n += len(part)
	}
	if includeFocus {
		n++
	}
	s.nsubtrees = n

	// a single subtree needs no per-subtree bookkeeping: the plain
	// relative gap serves directly
	if s.nsubtrees <= 1 {
		return nil
	}

	s.heaps = make([]minHeap, s.nsubtrees)
	for i := range s.heaps {
		s.heaps[i].arena = &s.arena
	}

	label := 0
	for _, part := range open {
		for _, id := range part {
			if err := s.StoreNode(id, label); err != nil {
				return err
			}
			label++
		}
	}
	if includeFocus {
		focus, ok := s.eng.FocusNode()
		if !ok {
			return fmt.Errorf("ssg: split requested focus subtree without a focus node")
		}
		if err := s.StoreNode(focus, label); err != nil {
			return err
		}
	}

	return nil
}

// StoreNode labels one node into subtree label, snapshotting its lower bound
// and inserting it into the subtree's heap. O(log n).
func (s *SubtreeSumGap) StoreNode(id core.NodeID, label int) error {
	if label < 0 || label >= s.nsubtrees {
		return fmt.Errorf("%w: label %d, nsubtrees %d", ErrBadSubtreeLabel, label, s.nsubtrees)
	}
	if _, exists := s.nodes[id]; exists {
		return fmt.Errorf("%w: node %d", ErrDuplicateNode, id)
	}

	slot := s.arena.alloc(nodeInfo{
		id:         id,
		lowerBound: s.eng.NodeLowerBound(id),
		pos:        -1,
		subtree:    label,
	})
	s.nodes[id] = slot
	s.heaps[label].push(slot)

	return nil
}

// RemoveNode unlabels a node that left the open set (branched or pruned).
// If the node was the lower-bound-defining minimum of its subtree, the SSG
// value is updated incrementally by the gap delta, avoiding a full
// recomputation. Unknown nodes are ignored.
func (s *SubtreeSumGap) RemoveNode(id core.NodeID) {
	if s.nsubtrees <= 1 {
		return
	}
	slot, ok := s.nodes[id]
	if !ok {
		return
	}

	info := s.arena.at(slot)
	h := &s.heaps[info.subtree]
	pos := info.pos
	lowerBound := info.lowerBound

	h.removeAt(pos)

	// the subtree minimum left: shift value by the gap delta
	if pos == 0 {
		oldGap := s.calcGap(lowerBound)
		newBound := math.Inf(1)
		if next := h.first(); next >= 0 {
			newBound = s.arena.at(next).lowerBound
		}
		newGap := s.calcGap(newBound)

		s.value += s.scalingFactor * (newGap - oldGap)
	}

	delete(s.nodes, id)
	s.arena.release(slot)
}

// InsertChildren labels the children of the focus node into the focus node's
// own subtree (labels are inherited down the tree between splits), then
// removes the focus node itself.
func (s *SubtreeSumGap) InsertChildren() error {
	if s.nsubtrees <= 1 {
		return nil
	}
	children := s.eng.Children()
	if len(children) == 0 {
		return nil
	}

	focus, ok := s.eng.FocusNode()
	if !ok {
		return fmt.Errorf("ssg: children reported without a focus node")
	}
	slot, known := s.nodes[focus]
	if !known {
		return fmt.Errorf("ssg: focus node %d is not labeled", focus)
	}
	label := s.arena.at(slot).subtree

	for _, child := range children {
		if err := s.StoreNode(child, label); err != nil {
			return err
		}
	}
	s.RemoveNode(focus)

	return nil
}

// ComputeFromScratchEfficiently recomputes the SSG value in O(#subtrees) by
// reading each subtree's heap minimum. With updateScaling the scaling factor
// is recalibrated first — previousValue / max(rawGapSum, 1e-6) — so the
// value stays continuous across a relabeling split.
func (s *SubtreeSumGap) ComputeFromScratchEfficiently(updateScaling bool) {
	// trivial cases: no incumbent, or a single subtree
	if core.IsInfinite(s.eng.PrimalBound()) {
		s.value = 1.0

		return
	}
	if s.nsubtrees == 1 {
		s.value = s.calcGap(s.eng.DualBound())

		return
	}

	gapSum := 0.0
	for i := range s.heaps {
		slot := s.heaps[i].first()
		// empty subtrees contribute 0
		if slot < 0 {
			continue
		}
		gapSum += s.calcGap(s.arena.at(slot).lowerBound)
	}

	if updateScaling {
		s.scalingFactor = s.value / math.Max(gapSum, scalingFloor)
	}

	s.value = s.scalingFactor * gapSum
}

// Update processes one node event (branching with nchildren > 0, or a leaf
// with nchildren == 0). It re-splits on strict primal improvement, labels
// fresh children otherwise, and unlabels finished leaves.
func (s *SubtreeSumGap) Update(node core.NodeID, nchildren int) error {
	pb := s.eng.PrimalBound()

	// once primal and dual bound coincide the search is over
	if !core.IsInfinite(pb) && core.IsEQ(pb, s.eng.DualBound()) {
		s.value = 0.0

		return nil
	}

	if !core.IsInfinite(pb) && !core.IsEQ(pb, s.pbLastSplit) {
		// a fresh incumbent: relabel the frontier
		_, haveFocus := s.eng.FocusNode()
		includeFocus := haveFocus && len(s.eng.Children()) == 0 && !s.eng.FocusBranched()

		if err := s.Split(includeFocus); err != nil {
			return err
		}
		s.pbLastSplit = pb

		s.ComputeFromScratchEfficiently(true)
	} else if s.nsubtrees > 1 && nchildren > 0 {
		if err := s.InsertChildren(); err != nil {
			return err
		}
	}

	if nchildren == 0 {
		s.RemoveNode(node)
	}

	return nil
}
