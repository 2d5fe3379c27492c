package sim

import (
	"math"
	"math/rand"

	"github.com/JasperNL/treestim/core"
)

type node struct {
	depth  int
	parent core.NodeID
	lower  float64
}

// Engine is a synthetic branch-and-bound engine over a seeded random tree.
// It implements core.Engine; drive it with Step and feed the returned events
// to an observer.
type Engine struct {
	cfg config
	rng *rand.Rand

	nodes  map[core.NodeID]*node
	open   []core.NodeID
	nextID core.NodeID
	nnodes int64

	focus    core.NodeID
	children []core.NodeID

	primal  float64
	nleaves int

	inRestart bool
	restarts  int
}

// New creates a fresh engine with one open root node.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.seed)),
	}
	e.reroot()

	return e
}

// reroot discards the frontier and starts a fresh tree from a new root.
func (e *Engine) reroot() {
	e.nodes = map[core.NodeID]*node{}
	e.open = e.open[:0]
	e.focus = core.NoNode
	e.children = nil
	e.nleaves = 0
	e.primal = core.Infinity
	e.nnodes = 1
	e.inRestart = false

	e.nextID++
	root := e.nextID
	e.nodes[root] = &node{depth: 0, parent: core.NoNode, lower: 0.0}
	e.open = append(e.open, root)
}

func (e *Engine) addChild(parent core.NodeID) core.NodeID {
	p := e.nodes[parent]

	e.nextID++
	id := e.nextID
	e.nodes[id] = &node{
		depth:  p.depth + 1,
		parent: parent,
		lower:  p.lower + e.rng.Float64(),
	}
	e.nnodes++

	return id
}

// Step processes the next open node and returns the node event: the node id
// and the number of children it produced (0 for a pruned leaf). ok is false
// once the frontier is exhausted.
func (e *Engine) Step() (id core.NodeID, nchildren int, ok bool) {
	if e.inRestart {
		e.reroot()
	}
	if len(e.open) == 0 {
		return core.NoNode, 0, false
	}

	// depth-first: pop the newest open node
	id = e.open[len(e.open)-1]
	e.open = e.open[:len(e.open)-1]
	e.focus = id
	n := e.nodes[id]

	if n.depth < e.cfg.maxDepth && e.rng.Float64() < e.cfg.branchProb {
		left := e.addChild(id)
		right := e.addChild(id)
		e.children = []core.NodeID{left, right}
		e.open = append(e.open, left, right)

		return id, 2, true
	}

	e.children = nil
	e.nleaves++

	// incumbents appear and occasionally improve at leaves
	if e.nleaves >= e.cfg.incumbentAfter &&
		(core.IsInfinite(e.primal) || e.rng.Float64() < e.cfg.improveProb) {
		candidate := n.lower + e.rng.Float64()
		if candidate < e.primal {
			e.primal = candidate
		}
	}

	return id, 0, true
}

// Restarts returns how often TriggerRestart has been called.
func (e *Engine) Restarts() int { return e.restarts }

// NLeaves returns the number of leaves pruned in the current solve.
func (e *Engine) NLeaves() int { return e.nleaves }

// NNodes implements core.Engine.
func (e *Engine) NNodes() int64 { return e.nnodes }

// PrimalBound implements core.Engine.
func (e *Engine) PrimalBound() float64 { return e.primal }

// DualBound implements core.Engine: the lowest bound among open nodes, or
// the primal bound once the frontier is empty.
func (e *Engine) DualBound() float64 {
	if len(e.open) == 0 {
		if core.IsInfinite(e.primal) {
			return -core.Infinity
		}

		return e.primal
	}

	dual := math.Inf(1)
	for _, id := range e.open {
		if lb := e.nodes[id].lower; lb < dual {
			dual = lb
		}
	}

	return dual
}

// Gap implements core.Engine.
func (e *Engine) Gap() float64 { return core.RelGap(e.primal, e.DualBound()) }

// NodeDepth implements core.Engine.
func (e *Engine) NodeDepth(id core.NodeID) int { return e.nodes[id].depth }

// NodeLowerBound implements core.Engine.
func (e *Engine) NodeLowerBound(id core.NodeID) float64 { return e.nodes[id].lower }

// NodeParent implements core.Engine.
func (e *Engine) NodeParent(id core.NodeID) (core.NodeID, bool) {
	parent := e.nodes[id].parent
	return parent, parent != core.NoNode
}

// NodeFixedProbability implements core.Engine with the uniform 2^-depth
// weighting of a binary tree.
func (e *Engine) NodeFixedProbability(id core.NodeID) float64 {
	return math.Pow(0.5, float64(e.nodes[id].depth))
}

// NodeRatioProbability implements core.Engine; the synthetic engine has no
// LP information and falls back to the fixed probability.
func (e *Engine) NodeRatioProbability(id core.NodeID) float64 {
	return e.NodeFixedProbability(id)
}

// OpenNodes implements core.Engine.
func (e *Engine) OpenNodes() [][]core.NodeID {
	return [][]core.NodeID{e.open}
}

// FocusNode implements core.Engine.
func (e *Engine) FocusNode() (core.NodeID, bool) {
	return e.focus, e.focus != core.NoNode
}

// FocusBranched implements core.Engine.
func (e *Engine) FocusBranched() bool { return false }

// Children implements core.Engine.
func (e *Engine) Children() []core.NodeID { return e.children }

// InRestart implements core.Engine.
func (e *Engine) InRestart() bool { return e.inRestart }

// TriggerRestart implements core.Engine: the frontier is discarded and the
// next Step begins a fresh tree.
func (e *Engine) TriggerRestart() {
	e.restarts++
	e.inRestart = true
}
