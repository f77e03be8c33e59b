// Package engine implements the game rules for MetaGrid, an ultimate
// tic-tac-toe played on an NxN grid of NxN boards. Winning a local board
// claims its cell on the meta grid; completing a meta line wins the game.
//
// The engine is pure: every transition produces a new GameState value and
// performs no I/O. Rendering, persistence and feedback live elsewhere.
package engine

import (
	"strconv"
	"strings"
	"time"
)

// Marker is the content of a single cell: X, O, or empty.
type Marker string

const (
	Empty Marker = ""
	X     Marker = "X"
	O     Marker = "O"
)

// Other returns the opposing marker. Empty maps to Empty.
func (m Marker) Other() Marker {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// DefaultSize is the board dimension used when size input is unusable.
const DefaultSize = 3

// MinSize is the smallest playable board dimension.
const MinSize = 2

// NormalizeSize coerces an integer into a valid board size.
// Anything below MinSize falls back to DefaultSize; size input must never
// produce an unplayable board.
func NormalizeSize(n int) int {
	if n < MinSize {
		return DefaultSize
	}
	return n
}

// ParseSize parses a raw size string, falling back to DefaultSize when the
// value is not an integer or is out of range. Never fails.
func ParseSize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultSize
	}
	return NormalizeSize(n)
}

// LocalBoard is one of the N*N inner boards. Once it has a winner or is a
// draw it is resolved and no further moves may alter it.
type LocalBoard struct {
	Cells  []Marker // row-major, len Size*Size
	Winner Marker
	Draw   bool
}

// Resolved reports whether the board has been won or drawn.
func (b LocalBoard) Resolved() bool {
	return b.Winner != Empty || b.Draw
}

// full reports whether every cell carries a marker.
func (b LocalBoard) full() bool {
	for _, c := range b.Cells {
		if c == Empty {
			return false
		}
	}
	return true
}

// MoveRecord describes the most recently applied move. It exists for
// presentation and feedback consumers only; no rule reads it.
type MoveRecord struct {
	Board  int
	Cell   int
	Player Marker
	Seq    int
	At     time.Time
}

// NoBoard is the ForcedBoard value meaning the player may choose any
// unresolved board.
const NoBoard = -1

// GameState is an immutable snapshot of a game. Transitions replace the
// whole value; callers must never mutate a state in place.
type GameState struct {
	Size        int
	Boards      []LocalBoard // row-major on the meta grid, len Size*Size
	Current     Marker
	ForcedBoard int // index into Boards, or NoBoard
	Winner      Marker
	Draw        bool
	MoveCount   int
	LastMove    *MoveRecord
}

// New creates a fresh game of the given size. The size is normalized, all
// boards start empty, and X moves first.
func New(size int) *GameState {
	size = NormalizeSize(size)
	boards := make([]LocalBoard, size*size)
	for i := range boards {
		boards[i] = LocalBoard{Cells: make([]Marker, size*size)}
	}
	return &GameState{
		Size:        size,
		Boards:      boards,
		Current:     X,
		ForcedBoard: NoBoard,
	}
}

// Over reports whether the game has ended, by win or by draw.
func (s *GameState) Over() bool {
	return s.Winner != Empty || s.Draw
}

// OccupiedCells counts markers placed across all local boards. It always
// equals MoveCount for states produced by this package.
func (s *GameState) OccupiedCells() int {
	n := 0
	for _, b := range s.Boards {
		for _, c := range b.Cells {
			if c != Empty {
				n++
			}
		}
	}
	return n
}
