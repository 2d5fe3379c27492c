package core

import "math"

// Infinity is the saturation threshold for bound values. Any value with
// absolute magnitude at or beyond Infinity is treated as unbounded.
const Infinity = 1e20

// Invalid is the sentinel for "no value available yet". It is far beyond
// Infinity so it can never be mistaken for a real bound.
const Invalid = 1e99

// Eps is the default tolerance for bound equality.
const Eps = 1e-9

// IsInfinite reports whether v is at or beyond the Infinity threshold in
// either direction.
func IsInfinite(v float64) bool {
	return v >= Infinity || v <= -Infinity || math.IsInf(v, 0)
}

// IsValid reports whether v carries a real value (i.e., is not the Invalid
// sentinel).
func IsValid(v float64) bool {
	return v < Invalid
}

// EpsZ reports whether v is zero within tolerance eps.
func EpsZ(v, eps float64) bool {
	return math.Abs(v) < eps
}

// IsEQ reports whether a and b coincide within the default tolerance.
func IsEQ(a, b float64) bool {
	return EpsZ(a-b, Eps)
}

// RelGap computes the relative gap between a primal and a dual bound,
// clamped to [0, 1]:
//
//	|pb − db| / max(|pb|, |db|)
//
// Conventions: 0 when the bounds coincide, 1 when either bound is unbounded
// or when both are zero-free and of opposite sign beyond the clamp.
func RelGap(pb, db float64) float64 {
	if IsInfinite(pb) || IsInfinite(db) {
		return 1.0
	}
	if IsEQ(pb, db) {
		return 0.0
	}
	gap := math.Abs(pb-db) / math.Max(math.Abs(pb), math.Abs(db))

	return math.Min(gap, 1.0)
}
