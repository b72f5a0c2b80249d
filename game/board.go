package game

import (
	"fmt"
	"math/bits"
	"strings"
)

// Board dimensions. 99 squares fit in two 64-bit words.
const (
	BoardWidth  = 11
	BoardHeight = 9
	BoardSize   = BoardWidth * BoardHeight
)

// WinUtility is the terminal score of the winner. It dominates every
// heuristic magnitude, so a proven outcome always outranks an estimate.
const WinUtility = 100.0

// knight jump offsets as (dx, dy) pairs
var knightJumps = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// Board is one position of knight's Isolation: an 11x9 grid on which the two
// players alternate knight jumps between open squares. A square closes
// permanently when a player lands on it, and the player to move without an
// open destination loses. The first two plies are placements: each player
// picks any open square. Board is a value type, so Result mutates a copy and
// every state handed out stays immutable.
type Board struct {
	cells [2]uint64 // bit per square, set while open
	locs  [2]Square
	ply   int
}

// NewBoard returns the starting position: every square open, neither player
// placed.
func NewBoard() Board {
	return Board{
		cells: [2]uint64{^uint64(0), 1<<(BoardSize-64) - 1},
		locs:  [2]Square{NoSquare, NoSquare},
	}
}

func (b Board) Player() PlayerID { return PlayerID(b.ply % 2) }

func (b Board) PlyCount() int { return b.ply }

func (b Board) Loc(p PlayerID) Square { return b.locs[p] }

func (b Board) Actions() []Square {
	return b.Liberties(b.locs[b.Player()])
}

// Result applies an action for the player to move. It panics when the target
// square is not open: searchers only submit actions obtained from Actions,
// so a closed target means the caller broke the state contract.
func (b Board) Result(a Square) State {
	if a < 0 || a >= BoardSize || !b.open(a) {
		panic(fmt.Sprintf("result: action %v targets a closed square", a))
	}
	b.locs[b.Player()] = a
	b.cells[a>>6] &^= 1 << (uint(a) & 63)
	b.ply++
	return b
}

// Terminal reports whether the player to move is out of liberties. Placement
// plies can never be terminal: the board has far more open squares than the
// two the players consume.
func (b Board) Terminal() bool {
	if b.ply < 2 {
		return false
	}
	return !b.hasLiberties(b.locs[b.Player()])
}

func (b Board) Utility(p PlayerID) float64 {
	if !b.Terminal() {
		panic("utility: state is not terminal")
	}
	if p == b.Player() {
		return -WinUtility
	}
	return WinUtility
}

func (b Board) Liberties(s Square) []Square {
	if s == NoSquare {
		open := make([]Square, 0, b.OpenCount())
		for sq := Square(0); sq < BoardSize; sq++ {
			if b.open(sq) {
				open = append(open, sq)
			}
		}
		return open
	}
	x, y := int(s)%BoardWidth, int(s)/BoardWidth
	libs := make([]Square, 0, len(knightJumps))
	for _, jump := range knightJumps {
		nx, ny := x+jump[0], y+jump[1]
		if nx < 0 || nx >= BoardWidth || ny < 0 || ny >= BoardHeight {
			continue
		}
		if sq := Square(ny*BoardWidth + nx); b.open(sq) {
			libs = append(libs, sq)
		}
	}
	return libs
}

// OpenCount returns the number of squares still open.
func (b Board) OpenCount() int {
	return bits.OnesCount64(b.cells[0]) + bits.OnesCount64(b.cells[1])
}

func (b Board) open(s Square) bool {
	return b.cells[s>>6]&(1<<(uint(s)&63)) != 0
}

func (b Board) hasLiberties(s Square) bool {
	if s == NoSquare {
		return b.OpenCount() > 0
	}
	x, y := int(s)%BoardWidth, int(s)/BoardWidth
	for _, jump := range knightJumps {
		nx, ny := x+jump[0], y+jump[1]
		if nx < 0 || nx >= BoardWidth || ny < 0 || ny >= BoardHeight {
			continue
		}
		if b.open(Square(ny*BoardWidth + nx)) {
			return true
		}
	}
	return false
}

// String renders the grid with '0' and '1' for the players, 'x' for closed
// squares and '-' for open ones.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("   A B C D E F G H I J K\n")
	for y := 0; y < BoardHeight; y++ {
		fmt.Fprintf(&sb, "%2d", y)
		for x := 0; x < BoardWidth; x++ {
			sq := Square(y*BoardWidth + x)
			mark := " -"
			switch {
			case sq == b.locs[0]:
				mark = " 0"
			case sq == b.locs[1]:
				mark = " 1"
			case !b.open(sq):
				mark = " x"
			}
			sb.WriteString(mark)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders the square in file-rank form, e.g. "C4". NoSquare renders
// as "--".
func (s Square) String() string {
	if s < 0 || s >= BoardSize {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'A'+int(s)%BoardWidth, int(s)/BoardWidth)
}
