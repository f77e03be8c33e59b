// Package feedback classifies game-state transitions into the events the UI
// reacts to. The engine emits nothing itself; the classification is derived
// entirely by diffing the previous and next snapshots.
package feedback

import "github.com/vmordasov/metagrid/internal/engine"

// Event is the kind of transition a move attempt produced.
type Event int

const (
	// EventNone means nothing happened (both states nil or equal content).
	EventNone Event = iota
	// EventRejected means the move was refused and the state is unchanged.
	EventRejected
	// EventMove is an ordinary applied move.
	EventMove
	// EventBoardCaptured means a local board was just won.
	EventBoardCaptured
	// EventGameWon means the meta grid was just completed.
	EventGameWon
	// EventGameDrawn means every board resolved with no meta winner.
	EventGameDrawn
)

// String returns a short name for the event.
func (e Event) String() string {
	switch e {
	case EventRejected:
		return "rejected"
	case EventMove:
		return "move"
	case EventBoardCaptured:
		return "board_captured"
	case EventGameWon:
		return "game_won"
	case EventGameDrawn:
		return "game_drawn"
	default:
		return "none"
	}
}

// Classify diffs two snapshots from the same move attempt. Pointer identity
// between prev and next signals a rejected move; otherwise the more specific
// outcome wins: game won > game drawn > board captured > plain move.
//
// A local board that fills up drawn is not a capture and classifies as a
// plain move.
func Classify(prev, next *engine.GameState) Event {
	if prev == nil || next == nil {
		return EventNone
	}
	if prev == next {
		return EventRejected
	}
	if next.Winner != engine.Empty && prev.Winner == engine.Empty {
		return EventGameWon
	}
	if next.Draw && !prev.Draw {
		return EventGameDrawn
	}
	if capturedBoards(next) > capturedBoards(prev) {
		return EventBoardCaptured
	}
	return EventMove
}

func capturedBoards(s *engine.GameState) int {
	n := 0
	for _, b := range s.Boards {
		if b.Winner != engine.Empty {
			n++
		}
	}
	return n
}

// Tone groups events by the kind of cue the UI should show.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneError
	ToneSuccess
	ToneFinal
)

// Cue is a ready-to-display reaction to an event.
type Cue struct {
	Text string
	Tone Tone
}

// CueFor maps an event to its status-line cue. The player argument is the
// marker that made (or attempted) the move.
func CueFor(e Event, player engine.Marker) Cue {
	switch e {
	case EventRejected:
		return Cue{Text: "that square is not playable", Tone: ToneError}
	case EventBoardCaptured:
		return Cue{Text: string(player) + " captures a board!", Tone: ToneSuccess}
	case EventGameWon:
		return Cue{Text: string(player) + " wins the game!", Tone: ToneFinal}
	case EventGameDrawn:
		return Cue{Text: "the game is a draw", Tone: ToneFinal}
	default:
		return Cue{}
	}
}
