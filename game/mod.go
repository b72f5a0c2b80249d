package game

// PlayerID identifies one of the two players. Player 0 always moves first.
type PlayerID int

// NoPlayer marks the absence of a player, e.g. a truncated game with no
// winner.
const NoPlayer PlayerID = -1

// Opponent returns the other player's id.
func (p PlayerID) Opponent() PlayerID { return 1 - p }

// Square indexes a board cell in row-major order. Squares double as actions:
// a legal action is the destination square of the move.
type Square int

// NoSquare is the sentinel square: an unplaced player's location, or the
// absence of a legal action.
const NoSquare Square = -1

// State should be immutable - operations on State always return a new copy.
type State interface {
	// Player returns the id of the player to move.
	Player() PlayerID
	// Actions returns the legal destination squares for the player to move,
	// in a stable order. Empty exactly when no moves exist.
	Actions() []Square
	// Result returns the successor state after applying the action for the
	// player to move. The receiver is left unchanged.
	Result(Square) State
	// Terminal reports whether the game has ended at this state.
	Terminal() bool
	// Utility returns the terminal score for the given player: positive for
	// a win, negative for a loss, symmetric between the two players. It
	// panics when the state is not terminal.
	Utility(PlayerID) float64
	// PlyCount returns the number of actions played since the game started.
	PlyCount() int
	// Loc returns the player's current square, NoSquare before placement.
	Loc(PlayerID) Square
	// Liberties returns the open squares reachable from the given square.
	// Liberties(NoSquare) returns every open square.
	Liberties(Square) []Square
}

// Evaluate scores a state from the given player's perspective, higher
// favoring that player winning.
type Evaluate func(s State, p PlayerID) float64
