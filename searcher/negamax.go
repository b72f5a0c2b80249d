package searcher

import (
	"context"
	"math"

	"isolation/experiments/metrics"
	"isolation/game"
)

// Negamax is alpha-beta pruning in the single-valued formulation. The
// zero-sum identity value(s, p) = -value(s, opponent of p) folds minValue
// and maxValue into one function that negates child values and swaps the
// negated bounds on the way down. It needs an antisymmetric evaluator (the
// liberty-difference default qualifies); given one, it picks the same action
// as AlphaBeta on the same state.
type Negamax struct {
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func NewNegamax(opts ...Option) *Negamax {
	o := newOptions(opts)
	return &Negamax{evaluate: o.evaluate, metrics: o.metrics}
}

func (s *Negamax) String() string { return "negamax" }

// Search mirrors the AlphaBeta driver but negates each child value before
// comparing, since a child's value is from the opponent's perspective.
func (s *Negamax) Search(ctx context.Context, state game.State, depth int) (game.Square, metrics.SearchMetric, error) {
	s.metrics.Start(s.String(), depth)
	α := math.Inf(-1)
	β := math.Inf(1)
	best := game.NoSquare
	bestValue := math.Inf(-1)
	for _, a := range state.Actions() {
		w, err := s.negamax(ctx, state.Result(a), depth-1, -β, -α)
		if err != nil {
			return game.NoSquare, s.metrics.Complete(), err
		}
		if v := -w; v > bestValue {
			bestValue = v
			best = a
		}
		if bestValue > α {
			α = bestValue
		}
	}
	return best, s.metrics.Complete(), nil
}

func (s *Negamax) negamax(ctx context.Context, state game.State, depth int, α, β float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.metrics.AddNode()
	me := state.Player()
	if state.Terminal() {
		return state.Utility(me), nil
	}
	if depth <= 0 {
		return s.evaluate(state, me), nil
	}
	v := math.Inf(-1)
	for _, a := range state.Actions() {
		w, err := s.negamax(ctx, state.Result(a), depth-1, -β, -α)
		if err != nil {
			return 0, err
		}
		if -w > v {
			v = -w
		}
		if v > α {
			α = v
		}
		if α >= β {
			break
		}
	}
	return v, nil
}
