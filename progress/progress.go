package progress

import (
	"math"

	"github.com/JasperNL/treestim/core"
	"github.com/JasperNL/treestim/smoothing"
)

// MaxWindow is the capacity of the sample window; older samples are
// overwritten in a circular fashion.
const MaxWindow = 500

// MaxForecast is the sentinel forecast returned while no trend information
// is available yet.
const MaxForecast = math.MaxFloat64

// SearchProgress is a circular window of progress/resource samples with two
// double exponential smoothers following the two streams.
type SearchProgress struct {
	progress  [MaxWindow]float64
	resources [MaxWindow]float64
	curr      int // index of the newest sample, -1 while empty
	nobs      int

	desProgress  *smoothing.DoubleExp
	desResources *smoothing.DoubleExp
}

// New returns an empty search progress tracker.
func New() *SearchProgress {
	sp := &SearchProgress{
		desProgress:  smoothing.NewDoubleExp(smoothing.DefaultAlpha, smoothing.DefaultBeta, 0.0),
		desResources: smoothing.NewDoubleExp(smoothing.DefaultAlpha, smoothing.DefaultBeta, 0.0),
	}
	sp.Reset()

	return sp
}

// Reset discards all samples; called at solve start and at each restart.
func (sp *SearchProgress) Reset() {
	sp.curr = -1
	sp.nobs = 0
	sp.desProgress.Reset(0.0)
	sp.desResources.Reset(0.0)
}

// AddSample records one observation: the progress level reached and the total
// resources (e.g., nodes) spent to reach it.
func (sp *SearchProgress) AddSample(obs, res float64) {
	sp.nobs++
	sp.curr = (sp.curr + 1) % MaxWindow
	sp.progress[sp.curr] = obs
	sp.resources[sp.curr] = res

	sp.desProgress.Update(obs)
	sp.desResources.Update(res)
}

// NObservations returns the number of samples recorded since the last reset.
func (sp *SearchProgress) NObservations() int { return sp.nobs }

// CurrentProgress returns the most recent progress sample, or 0 while empty.
func (sp *SearchProgress) CurrentProgress() float64 {
	if sp.curr == -1 {
		return 0.0
	}

	return sp.progress[sp.curr]
}

// CurrentResources returns the most recent resource sample, or 0 while empty.
func (sp *SearchProgress) CurrentResources() float64 {
	if sp.curr == -1 {
		return 0.0
	}

	return sp.resources[sp.curr]
}

// ForecastRemainingResources estimates how many additional resources are
// needed to lift the progress to targetLevel, assuming every sample marks one
// leaf of an essentially binary tree. Returns 0 once the target is reached
// and MaxForecast while no usable trend exists.
func (sp *SearchProgress) ForecastRemainingResources(targetLevel float64) float64 {
	remProgress := targetLevel - sp.CurrentProgress()
	if remProgress <= 0.0 {
		return 0.0
	}

	if sp.nobs == 0 {
		return MaxForecast
	}

	progressTrend := sp.desProgress.Trend()
	if progressTrend == 0.0 || !core.IsValid(progressTrend) {
		return MaxForecast
	}

	// the target is remProgress/progressTrend samples away; each sample is a
	// leaf, and a tree with N leaves has 2N-1 nodes
	remLeaves := remProgress / progressTrend
	totalLeaves := remLeaves + float64(sp.nobs)

	return 2.0*totalLeaves - 1.0 - sp.CurrentResources()
}

// velocity measures the average progress per resource between two window
// indices.
func (sp *SearchProgress) velocity(t1, t2 int) float64 {
	return (sp.progress[t2] - sp.progress[t1]) / (sp.resources[t2] - sp.resources[t1])
}

// ForecastRollingAverageWindow forecasts the remaining resources to reach
// targetLevel from the most recent windowSize samples. With useAcceleration
// and at least 3 samples in the window, a quadratic displacement curve
//
//	s(r) = s0 + v*r + a/2*r^2
//
// is fitted through the window's start, mid, and end points and solved for
// the target level; otherwise the average window velocity is extrapolated
// linearly.
func (sp *SearchProgress) ForecastRollingAverageWindow(targetLevel float64, windowSize int, useAcceleration bool) float64 {
	if windowSize > sp.nobs {
		windowSize = sp.nobs
	}

	// acceleration needs at least 3 observations in the window
	useAcceleration = useAcceleration && windowSize >= 3

	remProgress := targetLevel - sp.CurrentProgress()
	if remProgress <= 0.0 {
		return 0.0
	}

	windowEnd := sp.curr

	var windowStart int
	if sp.nobs > MaxWindow {
		windowStart = (sp.curr - windowSize + 1 + MaxWindow) % MaxWindow
	} else {
		windowStart = sp.curr - windowSize + 1
	}

	if !useAcceleration {
		return remProgress / sp.velocity(windowStart, windowEnd)
	}

	windowMid := ((windowStart + windowSize) / 2) % MaxWindow
	w1 := sp.resources[windowStart]
	w2 := sp.resources[windowMid]
	w3 := sp.resources[windowEnd]
	vel1 := sp.velocity(windowStart, windowMid)
	velWindow := sp.velocity(windowStart, windowEnd)

	acceleration := (velWindow - vel1) / (w3 - w2) * 2.0

	v := vel1 - 0.5*acceleration*(w1+w2)
	s0 := sp.progress[windowStart] - v*w1 - 0.5*acceleration*w1*w1

	if core.EpsZ(acceleration, core.Eps) {
		// zero acceleration degenerates to the linear displacement formula
		return remProgress / v
	}

	discriminant := v*v - 2.0*acceleration*(s0-targetLevel)
	if discriminant < 0.0 {
		discriminant = 0.0
	}
	rootDiscriminant := math.Sqrt(discriminant)
	remRes1 := (-v + rootDiscriminant) / acceleration
	remRes2 := (-v - rootDiscriminant) / acceleration

	return math.Max(remRes1, remRes2)
}
