package timeseries

// Kind selects a concrete time-series behavior: which raw value is read from
// the tree counters and which smoothing constants apply.
type Kind int

const (
	// Gap tracks the closed primal-dual gap (1 − relative gap).
	Gap Kind = iota
	// Progress tracks the cumulative uniform leaf progress.
	Progress
	// LeafFrequency tracks the ratio of leaves among visited nodes.
	LeafFrequency
	// SubtreeSumGap mirrors the SSG tracker's value.
	SubtreeSumGap
	// OpenNodes tracks the size of the open-node frontier.
	OpenNodes
)

// NKinds is the number of concrete series kinds.
const NKinds = 5

// String returns the series name used in reports.
func (k Kind) String() string {
	switch k {
	case Gap:
		return "gap"
	case Progress:
		return "progress"
	case LeafFrequency:
		return "leaf-frequency"
	case SubtreeSumGap:
		return "ssg"
	case OpenNodes:
		return "open-nodes"
	default:
		return "unknown"
	}
}

// kindSpec fixes a kind's target, initial value, and smoothing constants.
type kindSpec struct {
	target  float64
	initial float64
	alpha   float64
	beta    float64
}

// Per-kind tuning. The leaf-frequency constants weigh the trend far more
// aggressively than the bound-driven series, because the leaf ratio is noisy
// early and its level carries little signal on its own.
var kindSpecs = map[Kind]kindSpec{
	Gap:           {target: 1.0, initial: 0.0, alpha: 0.60, beta: 0.15},
	Progress:      {target: 1.0, initial: 0.0, alpha: 0.65, beta: 0.15},
	LeafFrequency: {target: 0.5, initial: -0.5, alpha: 0.30, beta: 0.33},
	SubtreeSumGap: {target: 0.0, initial: 1.0, alpha: 0.60, beta: 0.15},
	OpenNodes:     {target: 0.0, initial: 0.0, alpha: 0.60, beta: 0.15},
}

const (
	// historyCap bounds the stored sample history; reaching it triggers
	// compaction (halve history, double resolution).
	historyCap = 1024

	// sesCoeff is the single-exponential weight for the smoothed
	// estimation stream.
	sesCoeff = 0.75

	// targetTol is the tolerance at which the current value counts as
	// having reached the target.
	targetTol = 1e-6

	// trendTol is the smallest trend magnitude considered to point toward
	// the target; anything flatter falls back to the doubling estimate.
	trendTol = 1e-6
)
