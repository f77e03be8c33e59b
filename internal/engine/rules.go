package engine

import "time"

// RejectReason explains why a move attempt did not change the game.
type RejectReason int

const (
	// RejectNone means the move was applied.
	RejectNone RejectReason = iota
	// RejectGameOver means the game already has a winner or is drawn.
	RejectGameOver
	// RejectIllegalBoard means the board index is out of range, resolved,
	// or not the forced board.
	RejectIllegalBoard
	// RejectIllegalCell means the cell index is out of range.
	RejectIllegalCell
	// RejectOccupiedCell means the target cell already carries a marker.
	RejectOccupiedCell
)

// String returns a human-readable name for the reason.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "applied"
	case RejectGameOver:
		return "game over"
	case RejectIllegalBoard:
		return "board not playable"
	case RejectIllegalCell:
		return "cell out of range"
	case RejectOccupiedCell:
		return "cell occupied"
	default:
		return "unknown"
	}
}

// LineWinner checks a flat row-major grid of size*size markers for a complete
// row, column, or diagonal. X is checked before O; the order is an arbitrary
// but fixed tie-break, irrelevant in normal play where markers are placed one
// at a time. Returns Empty when no line is complete.
//
// The same check runs at both granularities: over a local board's cells, and
// over the meta grid using each local board's winner, where unresolved and
// drawn boards count as empty.
func LineWinner(cells []Marker, size int) Marker {
	for _, m := range []Marker{X, O} {
		if hasLine(cells, size, m) {
			return m
		}
	}
	return Empty
}

func hasLine(cells []Marker, size int, m Marker) bool {
	// Rows.
	for r := 0; r < size; r++ {
		won := true
		for c := 0; c < size; c++ {
			if cells[r*size+c] != m {
				won = false
				break
			}
		}
		if won {
			return true
		}
	}

	// Columns.
	for c := 0; c < size; c++ {
		won := true
		for r := 0; r < size; r++ {
			if cells[r*size+c] != m {
				won = false
				break
			}
		}
		if won {
			return true
		}
	}

	// Main diagonal.
	won := true
	for i := 0; i < size; i++ {
		if cells[i*size+i] != m {
			won = false
			break
		}
	}
	if won {
		return true
	}

	// Anti-diagonal.
	won = true
	for i := 0; i < size; i++ {
		if cells[i*size+(size-1-i)] != m {
			won = false
			break
		}
	}
	return won
}

// CanPlay reports whether the current player may place a marker in the given
// local board: the game is still running, the index is in range, the board is
// unresolved, and it honors the forced-board constraint when one is active.
func (s *GameState) CanPlay(board int) bool {
	if s.Over() {
		return false
	}
	if board < 0 || board >= len(s.Boards) {
		return false
	}
	if s.Boards[board].Resolved() {
		return false
	}
	if s.ForcedBoard != NoBoard {
		return board == s.ForcedBoard
	}
	return true
}

// AllowedBoards returns the indexes of every board the current player may
// play in, ascending. Presentation uses the result both for highlighting and
// for phrasing the turn message (one entry: "must play board"; several:
// "play anywhere").
func (s *GameState) AllowedBoards() []int {
	var allowed []int
	for i := range s.Boards {
		if s.CanPlay(i) {
			allowed = append(allowed, i)
		}
	}
	return allowed
}

// Apply places the current player's marker at (board, cell) and returns the
// next snapshot. A rejected move returns the receiver itself with a non-zero
// reason, so callers may detect rejection either by the reason or by pointer
// identity with the previous state.
//
// Board legality is checked before cell occupancy.
func (s *GameState) Apply(board, cell int) (*GameState, RejectReason) {
	if s.Over() {
		return s, RejectGameOver
	}
	if !s.CanPlay(board) {
		return s, RejectIllegalBoard
	}
	if cell < 0 || cell >= s.Size*s.Size {
		return s, RejectIllegalCell
	}
	if s.Boards[board].Cells[cell] != Empty {
		return s, RejectOccupiedCell
	}

	next := s.clone()

	// Place the marker. Only the target board's cells are copied; the other
	// boards share their backing arrays with the previous snapshot.
	target := &next.Boards[board]
	cells := make([]Marker, len(target.Cells))
	copy(cells, target.Cells)
	cells[cell] = s.Current
	target.Cells = cells

	// Resolve the local board. Its inputs never change afterwards, so the
	// recomputation is idempotent for already resolved boards.
	target.Winner = LineWinner(target.Cells, next.Size)
	target.Draw = target.Winner == Empty && target.full()

	// Resolve the meta grid over local winners; drawn and unresolved boards
	// contribute empty cells and can never complete a meta line.
	winners := make([]Marker, len(next.Boards))
	allResolved := true
	for i, b := range next.Boards {
		winners[i] = b.Winner
		if !b.Resolved() {
			allResolved = false
		}
	}
	next.Winner = LineWinner(winners, next.Size)
	next.Draw = next.Winner == Empty && allResolved

	// Forced-board derivation: the opponent is sent to the board matching
	// the cell just played, unless that board is resolved or the game ended.
	switch {
	case next.Over():
		next.ForcedBoard = NoBoard
	case next.Boards[cell].Resolved():
		next.ForcedBoard = NoBoard
	default:
		next.ForcedBoard = cell
	}

	next.MoveCount++
	if !next.Over() {
		next.Current = s.Current.Other()
	}
	next.LastMove = &MoveRecord{
		Board:  board,
		Cell:   cell,
		Player: s.Current,
		Seq:    next.MoveCount,
		At:     time.Now(),
	}

	return next, RejectNone
}

// clone copies the snapshot shell. The boards slice is fresh but each
// LocalBoard still references the previous cell arrays; Apply replaces the
// one array it writes to.
func (s *GameState) clone() *GameState {
	next := *s
	next.Boards = make([]LocalBoard, len(s.Boards))
	copy(next.Boards, s.Boards)
	return &next
}
