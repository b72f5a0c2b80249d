package game

import (
	"testing"

	"github.com/matryer/is"
	"golang.org/x/exp/rand"
)

// stubState fixes locations and liberties so the evaluator arithmetic can be
// checked against hand-computed values.
type stubState struct {
	player   PlayerID
	locs     [2]Square
	libs     map[Square][]Square
	terminal bool
	utility  [2]float64
}

func (s stubState) Player() PlayerID             { return s.player }
func (s stubState) Actions() []Square            { return s.libs[s.locs[s.player]] }
func (s stubState) Result(Square) State          { panic("stub state has no successors") }
func (s stubState) Terminal() bool               { return s.terminal }
func (s stubState) Utility(p PlayerID) float64   { return s.utility[p] }
func (s stubState) PlyCount() int                { return 2 }
func (s stubState) Loc(p PlayerID) Square        { return s.locs[p] }
func (s stubState) Liberties(sq Square) []Square { return s.libs[sq] }

func squares(n int, from Square) []Square {
	out := make([]Square, n)
	for i := range out {
		out[i] = from + Square(i)
	}
	return out
}

func TestLibertyDifference(t *testing.T) {
	is := is.New(t)
	s := stubState{
		locs: [2]Square{10, 40},
		libs: map[Square][]Square{
			10: squares(4, 50),
			40: squares(6, 60),
		},
	}

	is.Equal(EvaluateLibertyDifference(s, 0), -2.0)
	is.Equal(EvaluateLibertyDifference(s, 1), 2.0)
}

func TestLibertyDifferenceAntisymmetricOnBoards(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(23))
	var state State = NewBoard()
	for !state.Terminal() && state.PlyCount() < 50 {
		actions := state.Actions()
		state = state.Result(actions[rng.Intn(len(actions))])
		if state.PlyCount() < 2 {
			continue
		}
		is.Equal(EvaluateLibertyDifference(state, 0), -EvaluateLibertyDifference(state, 1))
	}
}

func TestOwnLiberties(t *testing.T) {
	is := is.New(t)
	s := stubState{
		locs: [2]Square{10, 40},
		libs: map[Square][]Square{
			10: squares(5, 50),
			40: squares(2, 60),
		},
	}

	is.Equal(EvaluateOwnLiberties(s, 0), 5.0)
	is.Equal(EvaluateOwnLiberties(s, 1), 2.0)
}

func TestAggressiveTerminalIsExact(t *testing.T) {
	is := is.New(t)
	cells := openAll()
	closeSquare(&cells, sq(0, 0))
	closeSquare(&cells, sq(5, 5))
	closeSquare(&cells, sq(2, 1))
	closeSquare(&cells, sq(1, 2))
	b := Board{cells: cells, locs: [2]Square{sq(0, 0), sq(5, 5)}, ply: 2}

	is.Equal(EvaluateAggressive(b, 0), -WinUtility)
	is.Equal(EvaluateAggressive(b, 1), WinUtility)
}

func TestAggressiveChaseBonus(t *testing.T) {
	is := is.New(t)
	// Player 0 sits on one of the opponent's three liberties and holds six
	// of its own: 2.0 + floor(6/3) = 4.0.
	s := stubState{
		locs: [2]Square{10, 40},
		libs: map[Square][]Square{
			10: squares(6, 50),
			40: {10, 60, 61},
		},
	}

	is.Equal(EvaluateAggressive(s, 0), 4.0)
}

func TestAggressiveRatioTruncates(t *testing.T) {
	is := is.New(t)
	// 5 own vs 2 opponent liberties, no chase bonus: floor(5/2) = 2.0.
	s := stubState{
		locs: [2]Square{10, 40},
		libs: map[Square][]Square{
			10: squares(5, 50),
			40: squares(2, 60),
		},
	}

	is.Equal(EvaluateAggressive(s, 0), 2.0)
}

func TestAggressiveGuardsZeroDenominator(t *testing.T) {
	is := is.New(t)
	// The opponent has no liberties but is not to move, so the state is not
	// terminal; the denominator floors at 1.
	s := stubState{
		locs: [2]Square{10, 40},
		libs: map[Square][]Square{
			10: squares(7, 50),
			40: {},
		},
	}

	is.Equal(EvaluateAggressive(s, 0), 7.0)
}
