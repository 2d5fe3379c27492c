package treedata

import (
	"errors"
	"fmt"
	"math"

	"github.com/JasperNL/treestim/core"
	"github.com/JasperNL/treestim/ssg"
)

// ErrNilEngine indicates New was handed a nil engine.
var ErrNilEngine = errors.New("treedata: engine must be non-nil")

// TreeData holds the tree counters of one solve and owns the subtree sum
// gap tracker fed from the same event stream.
type TreeData struct {
	eng core.Engine
	ssg *ssg.SubtreeSumGap

	nnodes   int64   // total number of nodes created
	nopen    int64   // nodes currently open
	ninner   int64   // visited nodes that branched
	nleaves  int64   // visited nodes that became leaves
	nvisited int64   // ninner + nleaves
	progress float64 // Σ 2^-depth over leaves
}

// New creates tree data bound to the given engine, initialized to the
// one-open-root state.
func New(eng core.Engine) (*TreeData, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}
	g, err := ssg.New(eng)
	if err != nil {
		return nil, err
	}
	td := &TreeData{eng: eng, ssg: g}
	td.Reset()

	return td, nil
}

// Reset returns the counters to the fresh-tree state (one open root node,
// nothing visited) and resets the owned SSG tracker.
func (td *TreeData) Reset() {
	td.ninner = 0
	td.nleaves = 0
	td.nvisited = 0
	td.progress = 0.0

	td.nnodes = 1
	td.nopen = 1

	td.ssg.Reset()
}

// Update processes the event that node was resolved with nchildren children
// (0 marks a leaf: infeasible, pruned, or feasible-and-bounded). The event
// is forwarded to the SSG tracker unless the engine is mid-restart.
func (td *TreeData) Update(node core.NodeID, nchildren int) error {
	td.nvisited++
	td.nopen--

	if nchildren == 0 {
		td.nleaves++
		td.progress += math.Pow(0.5, float64(td.eng.NodeDepth(node)))
	} else {
		td.nnodes += int64(nchildren)
		td.nopen += int64(nchildren)
		td.ninner++
	}

	if !td.eng.InRestart() {
		if err := td.ssg.Update(node, nchildren); err != nil {
			return fmt.Errorf("treedata: ssg update: %w", err)
		}
	}

	return nil
}

// NNodes returns the total number of nodes created so far.
func (td *TreeData) NNodes() int64 { return td.nnodes }

// NOpen returns the number of currently open nodes.
func (td *TreeData) NOpen() int64 { return td.nopen }

// NInner returns the number of visited nodes that branched.
func (td *TreeData) NInner() int64 { return td.ninner }

// NLeaves returns the number of visited nodes that became leaves.
func (td *TreeData) NLeaves() int64 { return td.nleaves }

// NVisited returns the number of visited nodes (inner + leaves).
func (td *TreeData) NVisited() int64 { return td.nvisited }

// Progress returns the cumulative uniform progress Σ 2^-depth over leaves;
// it reaches 1 exactly when the whole tree has been explored.
func (td *TreeData) Progress() float64 { return td.progress }

// SSG returns the owned subtree sum gap tracker.
func (td *TreeData) SSG() *ssg.SubtreeSumGap { return td.ssg }

// String renders the one-line diagnostic counter summary used in reports.
func (td *TreeData) String() string {
	return fmt.Sprintf("%d nodes (%d visited, %d inner, %d leaves, %d open), progress: %.4f, ssg %.4f",
		td.nnodes, td.nvisited, td.ninner, td.nleaves, td.nopen, td.progress, td.ssg.Value())
}
