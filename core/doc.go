// Package core defines the contracts between the estimation subsystem and
// the branch-and-bound engine that hosts it.
//
// The engine owns the search tree. This subsystem never stores engine nodes;
// it refers to them through stable integer NodeIDs that the engine assigns at
// node creation, and it queries node attributes (depth, lower bound, parent)
// back through the Engine interface. That keeps every estimator trivially
// testable with synthetic ids and removes any dependency on pointer identity.
//
// The package also fixes the numeric conventions shared by all estimators:
//
//   - Infinity (1e20) — saturation threshold; values at or beyond it are
//     treated as unbounded (no incumbent, empty subtree, ...).
//   - Invalid (1e99) — "no value yet" sentinel for smoothers and estimates.
//   - RelGap — the relative gap |pb−db| / max(|pb|,|db|), clamped to [0,1].
//
// All bound comparisons go through IsEQ / EpsZ with a fixed epsilon so that
// every package agrees on when two bounds coincide.
package core
