package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmordasov/metagrid/internal/engine"
)

func TestClassifyRejected(t *testing.T) {
	s := engine.New(3)
	s = mustApply(t, s, 0, 4)

	// Forced into board 4 where cell 4 is taken.
	next, _ := s.Apply(4, 4)
	require.Same(t, s, next)

	assert.Equal(t, EventRejected, Classify(s, next))
}

func TestClassifyMove(t *testing.T) {
	prev := engine.New(3)
	next := mustApply(t, prev, 0, 4)

	assert.Equal(t, EventMove, Classify(prev, next))
}

func TestClassifyBoardCaptured(t *testing.T) {
	prev := engine.New(3)
	prev.Boards[0].Cells = cells("XX.", "OO.", "...")
	prev.ForcedBoard = 0
	prev.MoveCount = prev.OccupiedCells()

	next := mustApply(t, prev, 0, 2)
	require.Equal(t, engine.X, next.Boards[0].Winner)

	assert.Equal(t, EventBoardCaptured, Classify(prev, next))
}

func TestClassifyLocalDrawIsPlainMove(t *testing.T) {
	prev := engine.New(3)
	prev.Boards[0].Cells = cells("XXO", "OOX", "XX.")
	prev.Current = engine.O
	prev.ForcedBoard = 0
	prev.MoveCount = prev.OccupiedCells()

	next := mustApply(t, prev, 0, 8)
	require.True(t, next.Boards[0].Draw)

	assert.Equal(t, EventMove, Classify(prev, next))
}

func TestClassifyGameWon(t *testing.T) {
	prev := engine.New(3)
	prev.Boards[0].Winner = engine.X
	prev.Boards[1].Winner = engine.X
	prev.Boards[2].Cells = cells("XX.", "OO.", "...")
	prev.ForcedBoard = 2
	prev.MoveCount = prev.OccupiedCells()

	next := mustApply(t, prev, 2, 2)
	require.Equal(t, engine.X, next.Winner)

	// Winning the game outranks the board capture that caused it.
	assert.Equal(t, EventGameWon, Classify(prev, next))
}

func TestClassifyGameDrawn(t *testing.T) {
	prev := engine.New(3)
	dead := cells("XXO", "OOX", "XXO")
	for i := 0; i < 8; i++ {
		prev.Boards[i].Cells = dead
		prev.Boards[i].Draw = true
	}
	prev.Boards[8].Cells = cells("XXO", "OOX", "XX.")
	prev.Current = engine.O
	prev.ForcedBoard = 8
	prev.MoveCount = prev.OccupiedCells()

	next := mustApply(t, prev, 8, 8)
	require.True(t, next.Draw)

	assert.Equal(t, EventGameDrawn, Classify(prev, next))
}

func TestClassifyNilStates(t *testing.T) {
	s := engine.New(3)
	assert.Equal(t, EventNone, Classify(nil, s))
	assert.Equal(t, EventNone, Classify(s, nil))
}

func TestCueFor(t *testing.T) {
	assert.Equal(t, ToneError, CueFor(EventRejected, engine.X).Tone)
	assert.Equal(t, ToneSuccess, CueFor(EventBoardCaptured, engine.X).Tone)
	assert.Equal(t, ToneFinal, CueFor(EventGameWon, engine.O).Tone)
	assert.Equal(t, ToneFinal, CueFor(EventGameDrawn, engine.X).Tone)
	assert.Empty(t, CueFor(EventMove, engine.X).Text, "ordinary moves show no cue")

	assert.Contains(t, CueFor(EventGameWon, engine.O).Text, "O")
	assert.Contains(t, CueFor(EventBoardCaptured, engine.X).Text, "X")
}

func mustApply(t *testing.T, s *engine.GameState, board, cell int) *engine.GameState {
	t.Helper()
	next, reason := s.Apply(board, cell)
	require.Equal(t, engine.RejectNone, reason)
	return next
}

func cells(rows ...string) []engine.Marker {
	var out []engine.Marker
	for _, r := range rows {
		for _, ch := range r {
			switch ch {
			case 'X':
				out = append(out, engine.X)
			case 'O':
				out = append(out, engine.O)
			default:
				out = append(out, engine.Empty)
			}
		}
	}
	return out
}
