package searcher

import (
	"context"
	"math"

	"isolation/experiments/metrics"
	"isolation/game"
)

// AlphaBeta is fixed-depth minimax with alpha-beta pruning: two mutually
// recursive value functions for the maximizing root player and the
// minimizing opponent. A branch is cut as soon as its running value crosses
// the opposing bound, which never changes the chosen action because the
// pruned branches are provably no better than one already found.
type AlphaBeta struct {
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func NewAlphaBeta(opts ...Option) *AlphaBeta {
	o := newOptions(opts)
	return &AlphaBeta{evaluate: o.evaluate, metrics: o.metrics}
}

func (s *AlphaBeta) String() string { return "alphabeta" }

// Search returns the root action with the greatest min-value when searching
// depth plies ahead. Ties keep the earliest action in state order. The root
// never prunes: β stays +Inf there, so every action gets an exact value.
func (s *AlphaBeta) Search(ctx context.Context, state game.State, depth int) (game.Square, metrics.SearchMetric, error) {
	s.metrics.Start(s.String(), depth)
	me := state.Player()
	α := math.Inf(-1)
	β := math.Inf(1)
	best := game.NoSquare
	bestValue := math.Inf(-1)
	for _, a := range state.Actions() {
		v, err := s.minValue(ctx, state.Result(a), me, α, β, depth-1)
		if err != nil {
			return game.NoSquare, s.metrics.Complete(), err
		}
		if v > bestValue {
			bestValue = v
			best = a
		}
		if v > α {
			α = v
		}
	}
	return best, s.metrics.Complete(), nil
}

func (s *AlphaBeta) maxValue(ctx context.Context, state game.State, me game.PlayerID, α, β float64, depth int) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.metrics.AddNode()
	if state.Terminal() {
		return state.Utility(me), nil
	}
	if depth <= 0 {
		return s.evaluate(state, me), nil
	}
	v := math.Inf(-1)
	for _, a := range state.Actions() {
		w, err := s.minValue(ctx, state.Result(a), me, α, β, depth-1)
		if err != nil {
			return 0, err
		}
		if w > v {
			v = w
		}
		if v >= β {
			return v, nil
		}
		if v > α {
			α = v
		}
	}
	return v, nil
}

func (s *AlphaBeta) minValue(ctx context.Context, state game.State, me game.PlayerID, α, β float64, depth int) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.metrics.AddNode()
	if state.Terminal() {
		return state.Utility(me), nil
	}
	if depth <= 0 {
		return s.evaluate(state, me), nil
	}
	v := math.Inf(1)
	for _, a := range state.Actions() {
		w, err := s.maxValue(ctx, state.Result(a), me, α, β, depth-1)
		if err != nil {
			return 0, err
		}
		if w < v {
			v = w
		}
		if v <= α {
			return v, nil
		}
		if v < β {
			β = v
		}
	}
	return v, nil
}
