// Package sim provides a deterministic synthetic branch-and-bound engine
// for tests, benchmarks, and the command line demo.
//
// The Engine implements core.Engine over a pseudo-random binary tree: every
// Step pops the deepest open node and either branches it into two children
// or prunes it as a leaf, with seeded randomness driving the shape, the
// node lower bounds, and the incumbent improvements. Identical seeds replay
// identical solves.
//
// The engine is a test and demo double, not a solver: it produces a
// plausible node event stream, not meaningful bounds.
package sim
