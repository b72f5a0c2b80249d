package searcher

import (
	"math"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"isolation/experiments/metrics"
	"isolation/game"
)

// Option configures a strategy at construction time. Options a strategy has
// no use for are ignored: depth-limited searchers read the evaluation
// function, MCTS reads the budget, exploration factor and random source.
type Option func(o *options)

type options struct {
	evaluate    game.Evaluate
	iterations  int
	exploration float64
	rng         *rand.Rand
	metrics     metrics.Collector
}

func newOptions(opts []Option) options {
	o := options{ // Default values
		evaluate:    game.EvaluateLibertyDifference,
		iterations:  DefaultIterations,
		exploration: DefaultExploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range opts {
		option(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	return o
}

// WithEvaluationFn replaces the heuristic applied at the depth cutoff.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(o *options) {
		if evaluate != nil {
			o.evaluate = evaluate
		}
	}
}

// WithIterations sets the MCTS iteration budget per search.
func WithIterations(iterations int) Option {
	return func(o *options) {
		if iterations > 0 {
			o.iterations = iterations
		}
	}
}

// WithExploration sets the exploration factor of the UCT policy.
func WithExploration(c float64) Option {
	return func(o *options) {
		if c > 0 {
			o.exploration = c
		}
	}
}

// WithRand injects a seeded random source for reproducible searches.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithMetrics turns on search metrics collection.
func WithMetrics() Option {
	return func(o *options) {
		o.metrics = metrics.NewCollector()
	}
}
