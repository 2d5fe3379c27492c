package restart

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/JasperNL/treestim/backtrack"
	"github.com/JasperNL/treestim/core"
	"github.com/JasperNL/treestim/progress"
	"github.com/JasperNL/treestim/regforest"
	"github.com/JasperNL/treestim/timeseries"
	"github.com/JasperNL/treestim/treedata"
)

// NReports caps the number of periodic reports per solve.
const NReports = 100

// forestFeatureDim is the feature dimension a regression forest must have to
// drive the completion readout.
const forestFeatureDim = 9

// Construction sentinels.
var (
	// ErrNilEngine indicates New was handed a nil engine.
	ErrNilEngine = errors.New("restart: engine must be non-nil")
	// ErrForestRequired indicates EstimationRegForest was configured
	// without a loaded forest.
	ErrForestRequired = errors.New("restart: regression forest estimation requires a forest")
)

// Per-stage blend weights over the five time-series estimates, plus the
// backtrack estimator's share in the later stages. Calibrated offline on a
// large instance corpus.
var (
	coeffsEarly        = [timeseries.NKinds]float64{0.002, 0.381, 0.469, 0.292, 0.004}
	coeffsIntermediate = [timeseries.NKinds]float64{0.011, 0.193, 0.351, 0.012, 0.051}
	coeffsLate         = [timeseries.NKinds]float64{0.000, 0.033, 0.282, 0.003, 0.024}

	wbeIntermediate = 0.156
	wbeLate         = 0.579
)

// Monitor observes the search tree and applies the configured restart
// policy. It is not safe for concurrent use; the engine must deliver node
// events sequentially.
type Monitor struct {
	eng    core.Engine
	cfg    Config
	log    *slog.Logger
	forest *regforest.Forest

	td     *treedata.TreeData
	series []*timeseries.Series
	wbe    *backtrack.Estimator
	ratio  *progress.SearchProgress

	hitCounter int
	nRestarts  int

	lastReportProgress float64
	nReports           int
	started            time.Time
}

// Option configures a Monitor beyond its Config.
type Option func(*Monitor)

// WithLogger attaches a structured logger; without it the Monitor is silent.
func WithLogger(log *slog.Logger) Option {
	return func(m *Monitor) { m.log = log }
}

// WithForest attaches an already loaded regression forest, overriding
// Config.ForestFile.
func WithForest(forest *regforest.Forest) Option {
	return func(m *Monitor) { m.forest = forest }
}

// New creates a Monitor for the given engine. The configuration is validated
// and, if Config.ForestFile is set, the regression forest is loaded.
func New(eng core.Engine, cfg Config, opts ...Option) (*Monitor, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Monitor{
		eng: eng,
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.forest == nil && cfg.ForestFile != "" {
		forest, err := regforest.Load(cfg.ForestFile)
		if err != nil {
			return nil, err
		}
		m.forest = forest
	}

	if cfg.Estimation == EstimationRegForest && m.forest == nil {
		return nil, ErrForestRequired
	}

	td, err := treedata.New(eng)
	if err != nil {
		return nil, err
	}
	m.td = td
	m.series = timeseries.NewAll(eng)

	// the backtrack estimator only supports fixed or uniform weighting
	wbeMode := backtrack.Uniform
	if cfg.ProgressMeasure == MeasureFixed {
		wbeMode = backtrack.Fixed
	}
	m.wbe, err = backtrack.New(eng, wbeMode)
	if err != nil {
		return nil, err
	}

	m.ratio = progress.New()
	m.Reset()

	return m, nil
}

// Reset returns the Monitor to the one-open-root state of a fresh solve.
// The number of performed restarts is preserved.
func (m *Monitor) Reset() {
	m.td.Reset()
	for _, s := range m.series {
		s.Reset()
	}
	m.wbe.Reset()
	m.ratio.Reset()

	m.hitCounter = 0
	m.lastReportProgress = 0.0
	m.nReports = 0
	m.started = time.Now()
}

// TreeData exposes the live tree counters.
func (m *Monitor) TreeData() *treedata.TreeData { return m.td }

// Series returns the time series of the given kind.
func (m *Monitor) Series(kind timeseries.Kind) *timeseries.Series { return m.series[kind] }

// NRestarts returns the number of restarts performed so far.
func (m *Monitor) NRestarts() int { return m.nRestarts }

// HitCounter returns the current number of consecutive policy hits.
func (m *Monitor) HitCounter() int { return m.hitCounter }

// Observe is the single event entry point. The engine calls it once per
// processed node: nchildren > 0 for a branched node, nchildren == 0 for a
// pruned leaf. At leaves the restart policy is evaluated and, after enough
// consecutive hits, the engine is told to restart.
func (m *Monitor) Observe(node core.NodeID, nchildren int) error {
	if err := m.td.Update(node, nchildren); err != nil {
		return err
	}

	isLeaf := nchildren == 0
	for _, s := range m.series {
		s.Update(m.td, isLeaf)
	}

	m.maybeReport()

	if !isLeaf {
		return nil
	}

	m.updateSearchProgress(node)
	m.wbe.Update(node)

	if !m.checkConditions() {
		return nil
	}

	if !m.shouldApplyRestart() {
		m.hitCounter = 0

		return nil
	}

	m.hitCounter++
	if m.hitCounter < m.cfg.HitCounterLim {
		return nil
	}

	m.nRestarts++
	m.log.Info("triggering restart",
		slog.Int("restart", m.nRestarts),
		slog.Int64("nodes", m.eng.NNodes()),
		slog.Float64("progress", m.td.Progress()))

	m.eng.TriggerRestart()
	m.Reset()

	return nil
}

// updateSearchProgress advances the windowed progress tracker by one leaf.
func (m *Monitor) updateSearchProgress(leaf core.NodeID) {
	current := m.ratio.CurrentProgress()

	switch m.cfg.ProgressMeasure {
	case MeasureGap:
		current = 1.0 - math.Min(m.eng.Gap(), 1.0)
	case MeasureRatio:
		current += m.eng.NodeRatioProbability(leaf)
	case MeasureFixed:
		current += m.eng.NodeFixedProbability(leaf)
	default: // MeasureUniform
		current += math.Pow(0.5, float64(m.eng.NodeDepth(leaf)))
	}

	m.ratio.AddSample(current, float64(m.eng.NNodes()))
}

// checkConditions gates the policy: restart limit and minimum node count.
func (m *Monitor) checkConditions() bool {
	if m.cfg.RestartLimit != -1 && m.nRestarts >= m.cfg.RestartLimit {
		return false
	}

	nnodes := m.eng.NNodes()
	if m.cfg.CountOnlyLeaves {
		nnodes = m.td.NLeaves()
	}

	return nnodes >= m.cfg.MinNodes
}

func (m *Monitor) shouldApplyRestart() bool {
	switch m.cfg.Policy {
	case PolicyAlways:
		return true
	case PolicyEstimation:
		return m.shouldApplyRestartEstimation()
	case PolicyProgress:
		return m.shouldApplyRestartProgress()
	default: // PolicyNever
		return false
	}
}

// overshoots reports whether the estimate exceeds the current node count by
// the configured factor.
func (m *Monitor) overshoots(estimate float64) bool {
	nnodes := float64(m.eng.NNodes())
	if estimate <= nnodes*m.cfg.EstimFactor {
		return false
	}

	m.log.Info("estimate exceeds current tree size",
		slog.Float64("estimate", estimate),
		slog.Int64("nodes", m.eng.NNodes()),
		slog.Float64("factor", estimate/nnodes))

	return true
}

func (m *Monitor) shouldApplyRestartEstimation() bool {
	estimate := -1.0

	switch m.cfg.Estimation {
	case EstimationRegForest:
		if completed, ok := m.Completed(); ok && completed > 0.0 {
			estimate = float64(m.td.NVisited()) / completed
		}
	default: // EstimationTimeSeries
		estimate = m.TotalSizeEstimate()
	}

	// no estimation available yet
	if estimate < 0.0 {
		return false
	}

	return m.overshoots(estimate)
}

func (m *Monitor) shouldApplyRestartProgress() bool {
	remaining := m.forecastRemainingNodes()
	if remaining < 0.0 {
		return false
	}

	return m.overshoots(float64(m.eng.NNodes()) + remaining)
}

// forecastRemainingNodes forecasts the remaining node count via the
// configured method, or -1 when no forecast is available.
func (m *Monitor) forecastRemainingNodes() float64 {
	switch m.cfg.Forecast {
	case ForecastBacktrack:
		return math.Max(0.0, m.wbe.Estimate()-float64(m.eng.NNodes()))
	case ForecastWindow:
		return m.ratio.ForecastRollingAverageWindow(1.0, m.cfg.WindowSize, m.cfg.UseAcceleration)
	default: // ForecastLinear
		return m.ratio.ForecastRemainingResources(1.0)
	}
}

// TotalSizeEstimate blends the five time-series estimates (and, past 30%
// progress, the backtrack estimate) with stage-dependent weights. The result
// is never below the number of nodes already created.
func (m *Monitor) TotalSizeEstimate() float64 {
	var coeffs [timeseries.NKinds]float64
	wbeCoeff := 0.0

	prog := m.td.Progress()
	switch {
	case prog <= 0.3:
		coeffs = coeffsEarly
	case prog <= 0.6:
		coeffs = coeffsIntermediate
		wbeCoeff = wbeIntermediate
	default:
		coeffs = coeffsLate
		wbeCoeff = wbeLate
	}

	estimate := 0.0
	for t, s := range m.series {
		seriesEstimate := s.Estimate(m.td)
		if seriesEstimate < 0.0 {
			seriesEstimate = float64(m.td.NNodes())
		}
		estimate += coeffs[t] * seriesEstimate
	}
	estimate += wbeCoeff * m.wbe.Estimate()

	return math.Max(estimate, float64(m.td.NNodes()))
}

// Completed returns the estimated completion of the search in [0,1]. With a
// loaded forest of the expected dimension the prediction comes from the
// forest over nine engineered features; otherwise a linear interpolation
// between progress and the subtree sum gap is used. ok is false while the
// readout is too early to be meaningful.
func (m *Monitor) Completed() (completed float64, ok bool) {
	if m.forest != nil && m.forest.Dim() == forestFeatureDim {
		features := []float64{
			m.series[timeseries.Progress].Current(),
			m.series[timeseries.Progress].Trend(),
			m.series[timeseries.SubtreeSumGap].Current(),
			m.series[timeseries.SubtreeSumGap].Trend(),
			m.series[timeseries.LeafFrequency].Current(),
			m.series[timeseries.LeafFrequency].Trend(),
			m.series[timeseries.Gap].Current(),
			m.series[timeseries.Gap].Trend(),
			0.0,
		}
		if m.series[timeseries.OpenNodes].Trend() < 0.0 {
			features[8] = 1.0
		}

		completed, _ = m.forest.Predict(features)
	} else {
		completed = 0.5828 + 0.3667*m.td.Progress() - 0.6101*m.series[timeseries.SubtreeSumGap].Current()
	}

	completed = math.Min(completed, 1.0)

	return completed, m.td.Progress() >= 0.005 && completed > 0.0
}

// CompletionString renders the completion readout for display, e.g.
// " 42.17%", or " unknown" while no meaningful readout exists.
func (m *Monitor) CompletionString() string {
	completed, ok := m.Completed()
	if !ok {
		return " unknown"
	}

	return fmt.Sprintf("%7.2f%%", 100.0*completed)
}

// maybeReport emits the next numbered report once the progress has advanced
// by a full percent since the last one.
func (m *Monitor) maybeReport() {
	if !m.cfg.PrintReports || m.nReports >= NReports {
		return
	}
	if m.td.Progress() < m.lastReportProgress+1.0/float64(NReports) {
		return
	}

	m.nReports++
	m.log.Info(m.Report(m.nReports))

	m.lastReportProgress = float64(int(m.td.Progress()*NReports)) / float64(NReports)
}
