package store

import (
	"strings"

	"github.com/vmordasov/metagrid/internal/engine"
)

// Record is the flat serialized form of a game state: one row in the saves
// table. Cell contents are text ('.', 'X', 'O'), one segment per local board
// joined with '/'. Statuses mirror each board's resolution ('.', 'X', 'O',
// '=' for a draw); they are stored for inspection but recomputed on load.
type Record struct {
	Size      int
	Boards    string
	Statuses  string
	Current   string
	Forced    int
	Winner    string
	Draw      bool
	MoveCount int
}

const (
	cellEmpty = '.'
	cellX     = 'X'
	cellO     = 'O'
	statDraw  = '='

	boardSep = "/"

	// maxRecordSize bounds the dimension accepted from a stored row. A
	// corrupt size would otherwise allocate N^4 cells; anything beyond
	// what a terminal can show is unusable and coerces to a fresh game.
	maxRecordSize = 12
)

// FromState flattens a game state into a Record.
func FromState(s *engine.GameState) Record {
	var boards []string
	var statuses strings.Builder
	for _, b := range s.Boards {
		var seg strings.Builder
		for _, c := range b.Cells {
			seg.WriteRune(markerRune(c))
		}
		boards = append(boards, seg.String())

		switch {
		case b.Winner != engine.Empty:
			statuses.WriteRune(markerRune(b.Winner))
		case b.Draw:
			statuses.WriteRune(statDraw)
		default:
			statuses.WriteRune(cellEmpty)
		}
	}

	return Record{
		Size:      s.Size,
		Boards:    strings.Join(boards, boardSep),
		Statuses:  statuses.String(),
		Current:   string(s.Current),
		Forced:    s.ForcedBoard,
		Winner:    string(s.Winner),
		Draw:      s.Draw,
		MoveCount: s.MoveCount,
	}
}

// Coerce turns a possibly corrupt or legacy-shaped record into a valid game
// state. It is total: it never fails and never hands the engine a
// structurally invalid state.
//
// Policy: the cell text is the source of truth. Non-marker runes become
// empty, missing or oversized segments are padded or trimmed, every derived
// field (local winners and draws, meta winner and draw, move count) is
// recomputed from the surviving cells, the current player falls back to move
// parity when the stored marker is invalid, and a forced index pointing
// outside the grid or at a resolved board clears to free choice. An unusable
// size yields a fresh game of the default size.
func (r Record) Coerce() *engine.GameState {
	size := engine.NormalizeSize(r.Size)
	if size > maxRecordSize {
		return engine.New(engine.DefaultSize)
	}
	s := engine.New(size)

	// Restore cells, dropping anything that is not a marker.
	segments := strings.Split(r.Boards, boardSep)
	for i := 0; i < len(s.Boards) && i < len(segments); i++ {
		for j, ch := range segments[i] {
			if j >= len(s.Boards[i].Cells) {
				break
			}
			s.Boards[i].Cells[j] = runeMarker(ch)
		}
	}

	// Recompute local resolution from the cells; stored statuses are
	// ignored since they are fully derivable.
	for i := range s.Boards {
		b := &s.Boards[i]
		b.Winner = engine.LineWinner(b.Cells, size)
		b.Draw = b.Winner == engine.Empty && boardFull(b.Cells)
	}

	// Recompute the meta result the same way the engine does: drawn and
	// unresolved boards contribute empty meta cells.
	winners := make([]engine.Marker, len(s.Boards))
	allResolved := true
	for i, b := range s.Boards {
		winners[i] = b.Winner
		if !b.Resolved() {
			allResolved = false
		}
	}
	s.Winner = engine.LineWinner(winners, size)
	s.Draw = s.Winner == engine.Empty && allResolved

	// Recount rather than trust the stored total.
	s.MoveCount = s.OccupiedCells()

	// Current player: stored value if valid, otherwise move parity
	// (X always opens).
	switch engine.Marker(r.Current) {
	case engine.X, engine.O:
		s.Current = engine.Marker(r.Current)
	default:
		if s.MoveCount%2 == 0 {
			s.Current = engine.X
		} else {
			s.Current = engine.O
		}
	}

	// Forced board: clamp out-of-range or resolved targets to free choice.
	s.ForcedBoard = engine.NoBoard
	if !s.Over() && r.Forced >= 0 && r.Forced < len(s.Boards) && !s.Boards[r.Forced].Resolved() {
		s.ForcedBoard = r.Forced
	}

	return s
}

func markerRune(m engine.Marker) rune {
	switch m {
	case engine.X:
		return cellX
	case engine.O:
		return cellO
	default:
		return cellEmpty
	}
}

func runeMarker(r rune) engine.Marker {
	switch r {
	case cellX, 'x':
		return engine.X
	case cellO, 'o':
		return engine.O
	default:
		return engine.Empty
	}
}

func boardFull(cells []engine.Marker) bool {
	for _, c := range cells {
		if c == engine.Empty {
			return false
		}
	}
	return true
}
