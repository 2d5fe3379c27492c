package smoothing

import "github.com/JasperNL/treestim/core"

// Default double exponential smoothing constants, used by components that do
// not carry per-stream tuning (e.g., the windowed progress tracker).
const (
	// DefaultAlpha is the default level smoothing constant.
	DefaultAlpha = 0.95
	// DefaultBeta is the default trend smoothing constant.
	DefaultBeta = 0.10
)

// DoubleExp is an online double exponential smoother over a scalar stream.
// The zero value is unusable; construct with NewDoubleExp or reset an
// embedded instance with Reset before the first Update.
type DoubleExp struct {
	alpha        float64 // level smoothing constant, in [0,1]
	beta         float64 // trend smoothing constant, in [0,1]
	level        float64 // current smoothed level, Invalid before first sample
	trend        float64 // current smoothed trend, Invalid before first sample
	initialValue float64 // level assumed at 0 observations
	n            int64   // number of observations
}

// NewDoubleExp returns a smoother with the given constants, reset to
// initialValue. Panics if alpha or beta lie outside [0,1]; smoothing
// constants are programme configuration, not runtime data.
func NewDoubleExp(alpha, beta, initialValue float64) *DoubleExp {
	if alpha < 0 || alpha > 1 {
		panic("smoothing: alpha out of [0,1]")
	}
	if beta < 0 || beta > 1 {
		panic("smoothing: beta out of [0,1]")
	}
	des := &DoubleExp{alpha: alpha, beta: beta}
	des.Reset(initialValue)

	return des
}

// Reset clears all observation state and re-arms the smoother with the given
// initial value. The smoothing constants are preserved.
func (des *DoubleExp) Reset(initialValue float64) {
	des.n = 0
	des.level = core.Invalid
	des.trend = core.Invalid
	des.initialValue = initialValue
}

// Update feeds one new sample. The first sample initializes level and trend
// deterministically; subsequent samples apply the two weighted blends.
func (des *DoubleExp) Update(x float64) {
	if des.n == 0 {
		des.level = x
		des.trend = x - des.initialValue
		des.n = 1

		return
	}

	newLevel := des.alpha*x + (1.0-des.alpha)*(des.level+des.trend)
	newTrend := des.beta*(newLevel-des.level) + (1.0-des.beta)*des.trend

	des.level = newLevel
	des.trend = newTrend
	des.n++
}

// Trend returns the current smoothed trend (slope), or core.Invalid before
// the first observation.
func (des *DoubleExp) Trend() float64 {
	if des.n == 0 {
		return core.Invalid
	}

	return des.trend
}

// Level returns the current smoothed level, or core.Invalid before the first
// observation.
func (des *DoubleExp) Level() float64 {
	if des.n == 0 {
		return core.Invalid
	}

	return des.level
}

// N returns the number of observations fed so far.
func (des *DoubleExp) N() int64 { return des.n }

// SingleExp is a one-knob exponential smoother used to damp a derived
// estimate stream (e.g., the per-leaf tree-size estimates of a time series).
// The zero value is NOT ready; construct with NewSingleExp.
type SingleExp struct {
	coeff float64 // weight of the newest sample, in (0,1]
	value float64 // smoothed value, Invalid before first sample
}

// NewSingleExp returns a single exponential smoother with the given newest-
// sample weight. Panics if coeff lies outside (0,1].
func NewSingleExp(coeff float64) *SingleExp {
	if coeff <= 0 || coeff > 1 {
		panic("smoothing: coeff out of (0,1]")
	}

	return &SingleExp{coeff: coeff, value: core.Invalid}
}

// Reset discards the smoothed value.
func (ses *SingleExp) Reset() { ses.value = core.Invalid }

// Update blends one new sample into the smoothed value. The first sample is
// adopted as-is.
func (ses *SingleExp) Update(x float64) {
	if !core.IsValid(ses.value) {
		ses.value = x

		return
	}
	ses.value = (1.0-ses.coeff)*ses.value + ses.coeff*x
}

// Value returns the smoothed value, or core.Invalid before the first sample.
func (ses *SingleExp) Value() float64 { return ses.value }
