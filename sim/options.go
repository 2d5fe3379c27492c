package sim

// config collects the tree generation knobs; adjusted through Options.
type config struct {
	seed           int64
	maxDepth       int
	branchProb     float64
	incumbentAfter int
	improveProb    float64
}

func defaultConfig() config {
	return config{
		seed:           1,
		maxDepth:       12,
		branchProb:     0.8,
		incumbentAfter: 5,
		improveProb:    0.3,
	}
}

// Option adjusts one generation knob of a new Engine.
type Option func(*config)

// WithSeed fixes the random seed; identical seeds replay identical solves.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithMaxDepth caps the tree depth; nodes at the cap always become leaves.
// Panics if depth < 1.
func WithMaxDepth(depth int) Option {
	if depth < 1 {
		panic("sim: max depth must be at least 1")
	}

	return func(c *config) { c.maxDepth = depth }
}

// WithBranchProbability sets the probability that a processed node branches
// instead of being pruned. Panics if p lies outside [0,1].
func WithBranchProbability(p float64) Option {
	if p < 0 || p > 1 {
		panic("sim: branch probability out of [0,1]")
	}

	return func(c *config) { c.branchProb = p }
}

// WithIncumbentAfter sets the number of leaves before the first incumbent
// appears. Panics if n < 0.
func WithIncumbentAfter(n int) Option {
	if n < 0 {
		panic("sim: incumbent leaf count must be non-negative")
	}

	return func(c *config) { c.incumbentAfter = n }
}

// WithImproveProbability sets the chance that a later leaf improves the
// incumbent. Panics if p lies outside [0,1].
func WithImproveProbability(p float64) Option {
	if p < 0 || p > 1 {
		panic("sim: improve probability out of [0,1]")
	}

	return func(c *config) { c.improveProb = p }
}
