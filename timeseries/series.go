package timeseries

import (
	"github.com/JasperNL/treestim/core"
	"github.com/JasperNL/treestim/smoothing"
	"github.com/JasperNL/treestim/treedata"
)

// Series is one named online time series over the per-leaf event stream.
// Construct with New; one instance serves one solve and is Reset between
// search-tree attempts.
type Series struct {
	kind Kind
	eng  core.Engine

	des    *smoothing.DoubleExp // smoother over stored samples
	smooth *smoothing.SingleExp // damped estimate stream

	target  float64
	initial float64
	current float64

	vals       []float64 // stored samples, one per resolution leaves
	estimates  []float64 // estimate recorded alongside each sample
	nobs       int64     // total leaf observations
	resolution int       // leaves aggregated into one stored sample
}

// New creates a series of the given kind bound to the engine. Panics on an
// unknown kind; the kind set is fixed at compile time.
func New(kind Kind, eng core.Engine) *Series {
	spec, ok := kindSpecs[kind]
	if !ok {
		panic("timeseries: unknown kind")
	}
	if eng == nil {
		panic("timeseries: nil engine")
	}

	s := &Series{
		kind:      kind,
		eng:       eng,
		des:       smoothing.NewDoubleExp(spec.alpha, spec.beta, spec.initial),
		smooth:    smoothing.NewSingleExp(sesCoeff),
		target:    spec.target,
		initial:   spec.initial,
		vals:      make([]float64, 0, historyCap),
		estimates: make([]float64, 0, historyCap),
	}
	s.Reset()

	return s
}

// NewAll instantiates the five canonical series in Kind order.
func NewAll(eng core.Engine) []*Series {
	all := make([]*Series, 0, NKinds)
	for k := Gap; k <= OpenNodes; k++ {
		all = append(all, New(k, eng))
	}

	return all
}

// Reset clears all per-solve state: history, counters, smoothers.
func (s *Series) Reset() {
	s.resolution = 1
	s.vals = s.vals[:0]
	s.estimates = s.estimates[:0]
	s.nobs = 0
	s.current = s.initial
	s.smooth.Reset()
	s.des.Reset(s.initial)
}

// Name returns the report name of the series.
func (s *Series) Name() string { return s.kind.String() }

// Kind returns the series kind.
func (s *Series) Kind() Kind { return s.kind }

// Current returns the most recently computed raw value.
func (s *Series) Current() float64 { return s.current }

// Target returns the value this series reaches when the search finishes.
func (s *Series) Target() float64 { return s.target }

// Resolution returns how many leaf observations one stored sample spans.
func (s *Series) Resolution() int { return s.resolution }

// NObs returns the total number of leaf observations.
func (s *Series) NObs() int64 { return s.nobs }

// NVals returns the number of stored history samples.
func (s *Series) NVals() int { return len(s.vals) }

// Trend returns the smoothed trend, or core.Invalid before any sample.
func (s *Series) Trend() float64 { return s.des.Trend() }

// SmoothEstimate returns the damped estimate stream's value, or core.Invalid
// before the first stored sample.
func (s *Series) SmoothEstimate() float64 { return s.smooth.Value() }

// computeRaw reads the kind-specific raw value from the tree counters.
func (s *Series) computeRaw(td *treedata.TreeData) float64 {
	switch s.kind {
	case Gap:
		// during a restart the frontier empties and bound queries are
		// meaningless; hold the last known value
		if s.eng.InRestart() {
			return s.current
		}

		return 1.0 - core.RelGap(s.eng.PrimalBound(), s.eng.DualBound())

	case Progress:
		return td.Progress()

	case LeafFrequency:
		if td.NVisited() == 0 {
			return -0.5
		}

		return (float64(td.NLeaves()) - 0.5) / float64(td.NVisited())

	case SubtreeSumGap:
		if td.NVisited() == 0 {
			return 1.0
		}

		return td.SSG().Value()

	case OpenNodes:
		if td.NVisited() == 0 {
			return 0.0
		}

		return float64(td.NOpen())
	}

	return s.current
}

// Update feeds one tree event. The raw value always refreshes Current; leaf
// events additionally advance the observation counter and, once per
// resolution, store the sample, update the smoother, and record a fresh
// estimate. Reaching the history capacity triggers compaction.
func (s *Series) Update(td *treedata.TreeData, isLeaf bool) {
	value := s.computeRaw(td)
	s.current = value

	if !isLeaf {
		return
	}
	s.nobs++

	// only leaves aligned with the current resolution are stored
	if s.nobs%int64(s.resolution) != 0 {
		return
	}

	s.vals = append(s.vals, value)
	s.des.Update(value)

	estimate := s.Estimate(td)
	s.estimates = append(s.estimates, estimate)
	s.smooth.Update(estimate)

	if len(s.vals) == historyCap {
		s.resample()
	}
}

// Estimate extrapolates the total tree size (in nodes) at which the series
// reaches its target value: 2*nobs−1 when the target is already met, a
// doubling fallback 2*nvisited when the trend points away from the target,
// and the linear trend extrapolation otherwise. Returns −1 before any
// observation.
func (s *Series) Estimate(td *treedata.TreeData) float64 {
	if s.nobs == 0 {
		return -1.0
	}

	val := s.current
	if core.EpsZ(val-s.target, targetTol) {
		// in a (binary) tree with N leaves the total node count is 2N−1
		return 2.0*float64(s.nobs) - 1.0
	}

	trend := s.des.Trend()
	if !core.IsValid(trend) ||
		(s.target > val && trend < trendTol) ||
		(s.target < val && trend > -trendTol) {
		// the linear trend points the wrong way; assume the tree
		// doubles from here
		return 2.0 * float64(td.NVisited())
	}

	remaining := (s.target - val) / trend

	return 2.0*float64(s.resolution)*(float64(len(s.vals))+remaining) - 1.0
}

// resample halves the stored history (keeping every second sample), doubles
// the resolution, and re-derives the smoother and the damped estimate stream
// from the retained half.
func (s *Series) resample() {
	half := len(s.vals) / 2

	s.des.Reset(s.initial)

	for i := 0; i < half; i++ {
		s.vals[i] = s.vals[2*i]
		s.estimates[i] = s.estimates[2*i]
		s.des.Update(s.vals[i])
		s.smooth.Update(s.estimates[i])
	}
	s.vals = s.vals[:half]
	s.estimates = s.estimates[:half]
	s.resolution *= 2
}
