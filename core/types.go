package core

// NodeID is a stable identifier the engine assigns to a search-tree node at
// creation time. IDs are never reused within one solve; the estimation
// subsystem treats them as opaque keys.
type NodeID int64

// NoNode is the zero NodeID used where no node applies (e.g., parent of the
// root). Engines must assign real nodes ids >= 1.
const NoNode NodeID = 0

// Engine is the query surface the subsystem needs from the branch-and-bound
// engine. Every method is a cheap, synchronous read; TriggerRestart is the
// single callback in the other direction.
//
// All bound values follow the core numeric conventions: a missing incumbent
// is reported as a primal bound at or beyond Infinity.
type Engine interface {
	// NNodes returns the total number of nodes created so far in this solve.
	NNodes() int64

	// PrimalBound returns the objective value of the best known solution,
	// or +Infinity if no incumbent exists yet.
	PrimalBound() float64

	// DualBound returns the global lower bound on the optimal objective.
	DualBound() float64

	// Gap returns the engine's current relative primal-dual gap.
	Gap() float64

	// NodeDepth returns the depth of the node (root has depth 0).
	NodeDepth(id NodeID) int

	// NodeLowerBound returns the node's local lower bound.
	NodeLowerBound(id NodeID) float64

	// NodeParent returns the parent of the node, or ok=false at the root.
	NodeParent(id NodeID) (parent NodeID, ok bool)

	// NodeFixedProbability returns the fixed per-node path probability
	// assigned by the engine's branching layer (1.0 at the root).
	NodeFixedProbability(id NodeID) float64

	// NodeRatioProbability returns the ratio-based (LP-informed) path
	// probability of the node.
	NodeRatioProbability(id NodeID) float64

	// OpenNodes returns the current open-node frontier partitioned by the
	// engine's own categories (e.g., leaves, siblings, children). The
	// partition shape is engine-defined; only disjointness matters here.
	OpenNodes() [][]NodeID

	// FocusNode returns the node currently being processed, if any.
	FocusNode() (id NodeID, ok bool)

	// FocusBranched reports whether the focus node has already been
	// branched in the current event cycle.
	FocusBranched() bool

	// Children returns the children produced by the most recent branching
	// of the focus node.
	Children() []NodeID

	// InRestart reports whether the engine is currently discarding the
	// frontier as part of a restart transition.
	InRestart() bool

	// TriggerRestart asks the engine to discard the open-node frontier and
	// resume the search from the root.
	TriggerRestart()
}
