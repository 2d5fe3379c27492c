// Package treedata aggregates the raw search-tree counters every estimator
// feeds on: total/open/inner/leaf/visited node counts and the cumulative
// uniform progress (the sum of 2^-depth over finished leaves).
//
// TreeData is the single point every tree event flows through: the policy
// layer calls Update exactly once per resolved node, and Update forwards the
// event to the owned subtree-sum-gap tracker unless the engine is currently
// discarding the frontier for a restart.
//
// Counter invariants (hold after every Update):
//
//	nvisited == ninner + nleaves
//	nopen    == nnodes - nvisited
//	nnodes   == 1 + Σ nchildren over all branching updates
//
// All operations are O(1) plus the SSG forwarding cost.
package treedata
