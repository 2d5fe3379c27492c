package ssg_test

import (
	"math"

	"github.com/JasperNL/treestim/core"
)

// stubEngine is a hand-scripted core.Engine for unit tests: every queried
// attribute is set directly by the test.
type stubEngine struct {
	primal, dual float64
	nnodes       int64
	lower        map[core.NodeID]float64
	depth        map[core.NodeID]int
	parent       map[core.NodeID]core.NodeID
	open         [][]core.NodeID
	focus        core.NodeID
	haveFocus    bool
	branched     bool
	children     []core.NodeID
	inRestart    bool
	restarts     int
}

func newStubEngine() *stubEngine {
	return &stubEngine{
		primal: math.Inf(1),
		dual:   math.Inf(-1),
		lower:  map[core.NodeID]float64{},
		depth:  map[core.NodeID]int{},
		parent: map[core.NodeID]core.NodeID{},
	}
}

func (e *stubEngine) NNodes() int64        { return e.nnodes }
func (e *stubEngine) PrimalBound() float64 { return e.primal }
func (e *stubEngine) DualBound() float64   { return e.dual }
func (e *stubEngine) Gap() float64         { return core.RelGap(e.primal, e.dual) }

func (e *stubEngine) NodeDepth(id core.NodeID) int { return e.depth[id] }
func (e *stubEngine) NodeLowerBound(id core.NodeID) float64 {
	if lb, ok := e.lower[id]; ok {
		return lb
	}

	return math.Inf(1)
}

func (e *stubEngine) NodeParent(id core.NodeID) (core.NodeID, bool) {
	p, ok := e.parent[id]

	return p, ok
}

func (e *stubEngine) NodeFixedProbability(id core.NodeID) float64 {
	return math.Pow(0.5, float64(e.depth[id]))
}

func (e *stubEngine) NodeRatioProbability(id core.NodeID) float64 {
	return math.Pow(0.5, float64(e.depth[id]))
}

func (e *stubEngine) OpenNodes() [][]core.NodeID { return e.open }

func (e *stubEngine) FocusNode() (core.NodeID, bool) { return e.focus, e.haveFocus }
func (e *stubEngine) FocusBranched() bool            { return e.branched }
func (e *stubEngine) Children() []core.NodeID        { return e.children }

func (e *stubEngine) InRestart() bool { return e.inRestart }
func (e *stubEngine) TriggerRestart() { e.restarts++ }
