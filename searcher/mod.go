package searcher

import (
	"context"

	"isolation/experiments/metrics"
	"isolation/game"
)

// Strategy picks one action for the player to move at the given state.
//
// depth is the round passed down by an iteratively deepening caller:
// AlphaBeta and Negamax search that many plies ahead, MCTS runs its
// configured iteration budget regardless. A root without legal actions
// yields game.NoSquare with a nil error. A context error aborts the search
// and is returned as-is so the caller can discard the round.
type Strategy interface {
	Search(ctx context.Context, state game.State, depth int) (game.Square, metrics.SearchMetric, error)
}
