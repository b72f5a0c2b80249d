package searcher

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"isolation/game"
)

// minimax is a plain unpruned reference for checking the pruned searchers.
func minimax(state game.State, me game.PlayerID, evaluate game.Evaluate, depth int, maximizing bool) float64 {
	if state.Terminal() {
		return state.Utility(me)
	}
	if depth <= 0 {
		return evaluate(state, me)
	}
	if maximizing {
		v := math.Inf(-1)
		for _, a := range state.Actions() {
			if w := minimax(state.Result(a), me, evaluate, depth-1, false); w > v {
				v = w
			}
		}
		return v
	}
	v := math.Inf(1)
	for _, a := range state.Actions() {
		if w := minimax(state.Result(a), me, evaluate, depth-1, true); w < v {
			v = w
		}
	}
	return v
}

// minimaxAction returns the first action with the maximal minimax value.
func minimaxAction(state game.State, evaluate game.Evaluate, depth int) game.Square {
	me := state.Player()
	best := game.NoSquare
	bestValue := math.Inf(-1)
	for _, a := range state.Actions() {
		if v := minimax(state.Result(a), me, evaluate, depth-1, false); v > bestValue {
			bestValue = v
			best = a
		}
	}
	return best
}

// randomTree grows a game tree with mixed terminal and inner nodes. Inner
// nodes carry a random heuristic value for cutoff scoring.
func randomTree(rng *rand.Rand, player game.PlayerID, depth int) mockState {
	if depth == 0 || rng.Float64() < 0.2 {
		return leaf(player, rng.Float64()*20-10)
	}
	children := map[game.Square]game.State{}
	for i := 0; i < 1+rng.Intn(3); i++ {
		children[game.Square(10*(i+1))] = randomTree(rng, player.Opponent(), depth-1)
	}
	tree := branch(player, children)
	tree.utility = rng.Float64()*20 - 10
	return tree
}

// randomBoard walks a fresh board through the given number of random legal
// moves.
func randomBoard(rng *rand.Rand, plies int) game.State {
	var state game.State = game.NewBoard()
	for i := 0; i < plies && !state.Terminal(); i++ {
		actions := state.Actions()
		state = state.Result(actions[rng.Intn(len(actions))])
	}
	return state
}

func TestAlphaBetaDepthTwoScenario(t *testing.T) {
	tree := branch(0, map[game.Square]game.State{
		game.Square(10): branch(1, map[game.Square]game.State{
			game.Square(11): open(0, 1),
			game.Square(12): open(0, -1),
		}),
		game.Square(20): branch(1, map[game.Square]game.State{
			game.Square(21): open(0, 0),
			game.Square(22): open(0, 2),
		}),
		game.Square(30): branch(1, map[game.Square]game.State{
			game.Square(31): open(0, -3),
			game.Square(32): open(0, 1),
		}),
	})

	s := NewAlphaBeta(WithEvaluationFn(mockEvaluate), WithMetrics())
	got, metric, err := s.Search(context.Background(), tree, 2)

	require.NoError(t, err)
	require.Equal(t, game.Square(20), got, "the middle branch has the best guaranteed value")
	require.Equal(t, int64(8), metric.Nodes, "the last branch should be cut before its second leaf")
	require.Equal(t, "alphabeta", metric.Strategy)
	require.Equal(t, 2, metric.Depth)
}

func TestAlphaBetaSeesImmediateWin(t *testing.T) {
	tree := branch(0, map[game.Square]game.State{
		game.Square(5): leaf(1, game.WinUtility),
		game.Square(9): open(1, 50),
	})

	s := NewAlphaBeta(WithEvaluationFn(mockEvaluate))
	got, _, err := s.Search(context.Background(), tree, 1)

	require.NoError(t, err)
	require.Equal(t, game.Square(5), got, "a terminal win should beat any heuristic score")
}

func TestAlphaBetaTieKeepsFirstAction(t *testing.T) {
	tree := branch(0, map[game.Square]game.State{
		game.Square(4): open(1, 5),
		game.Square(8): open(1, 5),
	})

	s := NewAlphaBeta(WithEvaluationFn(mockEvaluate))
	got, _, err := s.Search(context.Background(), tree, 1)

	require.NoError(t, err)
	require.Equal(t, game.Square(4), got, "equal values keep the earliest action")
}

func TestAlphaBetaMatchesMinimaxOnRandomTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for depth := 1; depth <= 4; depth++ {
		for i := 0; i < 10; i++ {
			tree := randomTree(rng, 0, depth+2)
			want := minimaxAction(tree, mockEvaluate, depth)

			s := NewAlphaBeta(WithEvaluationFn(mockEvaluate))
			got, _, err := s.Search(context.Background(), tree, depth)

			require.NoError(t, err)
			require.Equal(t, want, got, "pruning changed the action at depth %d, tree %d", depth, i)
		}
	}
}

func TestAlphaBetaMatchesMinimaxOnBoards(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for depth := 1; depth <= 3; depth++ {
		for i := 0; i < 5; i++ {
			state := randomBoard(rng, 6)
			want := minimaxAction(state, game.EvaluateLibertyDifference, depth)

			s := NewAlphaBeta()
			got, _, err := s.Search(context.Background(), state, depth)

			require.NoError(t, err)
			require.Equal(t, want, got, "pruning changed the action at depth %d, board %d", depth, i)
		}
	}
}

func TestAlphaBetaNoActions(t *testing.T) {
	s := NewAlphaBeta(WithMetrics())
	got, metric, err := s.Search(context.Background(), leaf(0, -game.WinUtility), 3)

	require.NoError(t, err)
	require.Equal(t, game.NoSquare, got, "a terminal root has nothing to pick")
	require.Zero(t, metric.Nodes)
}

func TestAlphaBetaStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewAlphaBeta()
	got, _, err := s.Search(ctx, game.NewBoard(), 3)

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, game.NoSquare, got)
}
