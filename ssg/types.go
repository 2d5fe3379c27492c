package ssg

import (
	"errors"

	"github.com/JasperNL/treestim/core"
)

// ErrNilEngine indicates New was handed a nil engine.
var ErrNilEngine = errors.New("ssg: engine must be non-nil")

// ErrDuplicateNode indicates StoreNode was called twice for the same node
// without an intervening removal or split.
var ErrDuplicateNode = errors.New("ssg: node already labeled")

// ErrBadSubtreeLabel indicates a subtree label outside 0..nsubtrees-1.
var ErrBadSubtreeLabel = errors.New("ssg: subtree label out of range")

// scalingFloor guards the scaling recalibration against a vanishing raw gap
// sum: scale = previousValue / max(rawGapSum, scalingFloor).
const scalingFloor = 1e-6

// nodeInfo is the per-open-node record: which subtree the node belongs to,
// the lower bound snapshot taken at labeling time, and the node's current
// slot in its subtree's heap.
type nodeInfo struct {
	id         core.NodeID
	lowerBound float64
	pos        int // heap position, -1 while unqueued
	subtree    int
}

// arena stores nodeInfo records in a flat slice with a free list, so heaps
// can address records by stable integer slots instead of pointers.
type arena struct {
	records []nodeInfo
	free    []int
}

func (a *arena) at(slot int) *nodeInfo { return &a.records[slot] }

// alloc returns the slot of a fresh (or recycled) record.
func (a *arena) alloc(info nodeInfo) int {
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		a.records[slot] = info

		return slot
	}
	a.records = append(a.records, info)

	return len(a.records) - 1
}

// release recycles a slot.
func (a *arena) release(slot int) {
	a.free = append(a.free, slot)
}

// reset drops all records but keeps the allocated capacity.
func (a *arena) reset() {
	a.records = a.records[:0]
	a.free = a.free[:0]
}
