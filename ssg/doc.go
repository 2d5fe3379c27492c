// Package ssg maintains the subtree sum gap (SSG), a normalized measure of
// how much proving work remains in the open part of a branch-and-bound tree.
//
// 🚀 What is the subtree sum gap?
//
//	Whenever the incumbent solution improves, the currently open nodes are
//	partitioned into disjoint subtrees ("a split"). Each subtree contributes
//	the relative gap between the incumbent and the subtree's best (lowest)
//	lower bound; the SSG is the scaled sum of those contributions. It starts
//	at 1, shrinks monotonically between splits as subtrees are pruned, and
//	reaches 0 exactly when the search finishes — which makes it one of the
//	better-behaved progress measures for tree-size forecasting.
//
// ✨ Key properties:
//   - value ∈ [0, nsubtrees]; equals the plain relative gap while the tree
//     is a single subtree
//   - O(log n) per node event: one heap per subtree, keyed by lower bound,
//     with incremental value updates when a subtree's minimum leaves
//   - O(#subtrees) full recomputation after a split, with scaling-factor
//     recalibration so the value stays continuous across relabelings
//   - splits happen only on strict primal-bound improvement; repeated splits
//     without improvement are no-ops
//
// Node bookkeeping lives in an arena of records addressed by stable engine
// NodeIDs; the per-subtree priority queues are index-based binary heaps that
// track each record's heap slot, so removal-by-handle stays O(log n) without
// back-pointers into heap internals.
package ssg
