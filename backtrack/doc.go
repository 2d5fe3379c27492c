// Package backtrack implements weighted backtrack estimation (WBE) of the
// total search-tree size.
//
// Each discovered leaf contributes the reciprocal of its path probability —
// the product of the branching probabilities along the root-to-leaf path —
// which makes the running ratio numerator/denominator an unbiased estimator
// of the total number of tree nodes. Two weighting modes exist: Uniform
// assumes probability 2^-depth (every branching splits the mass in half);
// Fixed reads the engine's per-node fixed probabilities and walks the path
// leaf → root explicitly.
//
// The denominator is monotonically non-decreasing across the leaves of one
// solve and resets to zero at solve start and at every restart; a zero
// denominator maps to the −1 "no estimate" sentinel instead of a division.
package backtrack
