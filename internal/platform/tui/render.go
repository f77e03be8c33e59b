package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vmordasov/metagrid/internal/engine"
	"github.com/vmordasov/metagrid/internal/feedback"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	markerXStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	markerOStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)

	borderForced   = lipgloss.Color("3")
	borderAllowed  = lipgloss.Color("2")
	borderResolved = lipgloss.Color("238")
	borderIdle     = lipgloss.Color("245")

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	flashError   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	flashSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	flashFinal   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	flashNeutral = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func renderTitle(s *engine.GameState) string {
	return titleStyle.Render(fmt.Sprintf(" MetaGrid %dx%d — move %d", s.Size, s.Size, s.MoveCount))
}

// renderBoard draws the meta grid: one bordered mini-board per local board,
// joined row by row. Border color encodes playability; the forced board gets
// its own accent.
func renderBoard(s *engine.GameState, cursorRow, cursorCol int, highContrast bool) string {
	n := s.Size
	allowed := make(map[int]bool)
	for _, i := range s.AllowedBoards() {
		allowed[i] = true
	}

	metaRows := make([]string, 0, n)
	for br := 0; br < n; br++ {
		cells := make([]string, 0, n)
		for bc := 0; bc < n; bc++ {
			bi := br*n + bc
			cells = append(cells, renderLocalBoard(s, bi, cursorRow, cursorCol, allowed[bi], highContrast))
		}
		metaRows = append(metaRows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(metaRows, "\n")
}

// renderLocalBoard draws one inner board with its border.
func renderLocalBoard(s *engine.GameState, bi, cursorRow, cursorCol int, playable, highContrast bool) string {
	n := s.Size
	b := s.Boards[bi]
	resolved := b.Resolved()

	lines := make([]string, 0, n)
	for r := 0; r < n; r++ {
		row := make([]string, 0, n)
		for c := 0; c < n; c++ {
			ci := r*n + c
			globalRow := (bi/n)*n + r
			globalCol := (bi%n)*n + c
			row = append(row, renderCell(b.Cells[ci], resolved, globalRow == cursorRow && globalCol == cursorCol))
		}
		lines = append(lines, strings.Join(row, " "))
	}

	border := borderIdle
	switch {
	case s.ForcedBoard == bi:
		border = borderForced
	case playable:
		border = borderAllowed
	case resolved:
		border = borderResolved
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if highContrast && playable {
		style = style.Bold(true)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderCell(m engine.Marker, resolvedBoard, underCursor bool) string {
	var out string
	switch m {
	case engine.X:
		out = markerXStyle.Render("X")
	case engine.O:
		out = markerOStyle.Render("O")
	default:
		out = emptyStyle.Render("·")
	}
	if resolvedBoard && m == engine.Empty {
		out = dimStyle.Render("·")
	}
	if underCursor {
		out = cursorStyle.Render(markerText(m))
	}
	return out
}

func markerText(m engine.Marker) string {
	if m == engine.Empty {
		return "·"
	}
	return string(m)
}

// renderStatus phrases whose turn it is and where they may play. A single
// eligible board reads as a constraint; several read as free choice.
func renderStatus(s *engine.GameState) string {
	switch {
	case s.Winner != engine.Empty:
		return statusStyle.Render(fmt.Sprintf(" %s has won — press r for a new game", s.Winner))
	case s.Draw:
		return statusStyle.Render(" draw — press r for a new game")
	}

	allowed := s.AllowedBoards()
	if len(allowed) == 1 {
		n := s.Size
		bi := allowed[0]
		return statusStyle.Render(fmt.Sprintf(" %s to move — must play board (%d,%d)", s.Current, bi/n+1, bi%n+1))
	}
	return statusStyle.Render(fmt.Sprintf(" %s to move — play anywhere", s.Current))
}

func renderFlash(c feedback.Cue) string {
	switch c.Tone {
	case feedback.ToneError:
		return flashError.Render(" " + c.Text)
	case feedback.ToneSuccess:
		return flashSuccess.Render(" " + c.Text)
	case feedback.ToneFinal:
		return flashFinal.Render(" " + c.Text)
	default:
		return flashNeutral.Render(" " + c.Text)
	}
}
