package backtrack

import (
	"errors"
	"math"

	"github.com/JasperNL/treestim/core"
)

// Mode selects how a leaf's path probability is derived.
type Mode int

const (
	// Uniform assigns every leaf the probability 2^-depth.
	Uniform Mode = iota
	// Fixed walks the root-to-leaf path and multiplies the engine's fixed
	// per-arc probabilities.
	Fixed
)

// ErrNilEngine indicates New was handed a nil engine.
var ErrNilEngine = errors.New("backtrack: engine must be non-nil")

// Estimator accumulates the weighted leaf terms of one solve.
type Estimator struct {
	eng  core.Engine
	mode Mode

	numerator   float64 // weighted sample sizes from path probabilities
	denominator float64 // sum of probability weights (progress mass)
}

// New creates a backtrack estimator bound to the given engine.
func New(eng core.Engine, mode Mode) (*Estimator, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}

	return &Estimator{eng: eng, mode: mode}, nil
}

// Reset clears the accumulators; called at solve start and at each restart.
func (b *Estimator) Reset() {
	b.numerator = 0.0
	b.denominator = 0.0
}

// Mode returns the configured weighting mode.
func (b *Estimator) Mode() Mode { return b.mode }

// Denominator returns the accumulated probability mass; it never decreases
// within one solve.
func (b *Estimator) Denominator() float64 { return b.denominator }

// Update accounts one newly discovered, previously unseen leaf.
func (b *Estimator) Update(leaf core.NodeID) {
	var num, probability float64

	switch b.mode {
	case Fixed:
		probability = b.eng.NodeFixedProbability(leaf)
		pathProbability := probability

		num = 1.0
		// walk back along all arcs of the root-to-leaf path
		current := leaf
		for {
			parent, ok := b.eng.NodeParent(current)
			if !ok {
				break
			}
			arcProbability := b.eng.NodeFixedProbability(current) / b.eng.NodeFixedProbability(parent)
			num += probability / pathProbability
			pathProbability /= arcProbability

			current = parent
		}

	default: // Uniform
		probability = math.Pow(0.5, float64(b.eng.NodeDepth(leaf)))
		num = 2.0 - probability
	}

	b.numerator += num
	b.denominator += probability
}

// Estimate returns the current total-tree-size estimate, or −1 while no leaf
// has been observed (the denominator is exactly zero).
func (b *Estimator) Estimate() float64 {
	if b.denominator == 0.0 {
		return -1.0
	}

	return b.numerator / b.denominator
}
