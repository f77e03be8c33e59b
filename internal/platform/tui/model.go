// Package tui provides the Bubble Tea integration for metagrid: the board
// renderer, key handling, autosave wiring, and the Wish SSH server.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vmordasov/metagrid/internal/config"
	"github.com/vmordasov/metagrid/internal/engine"
	"github.com/vmordasov/metagrid/internal/feedback"
	"github.com/vmordasov/metagrid/internal/store"
)

// Model is the Bubble Tea model for a hot-seat game session.
type Model struct {
	cfg   config.Config
	store *store.Store // nil means no persistence
	state *engine.GameState
	keys  KeyMap
	help  help.Model

	// Cursor position on the N^2 x N^2 cell grid.
	cursorRow int
	cursorCol int

	flash    feedback.Cue
	recorded bool // Finished game already written to match history
	quitting bool
	width    int
	height   int
}

// NewModel creates a model for the given game. A nil initial state starts a
// fresh game of the configured size.
func NewModel(cfg config.Config, st *store.Store, initial *engine.GameState) Model {
	state := initial
	if state == nil {
		state = engine.New(cfg.Game.Size)
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		cfg:   cfg,
		store: st,
		state: state,
		keys:  DefaultKeyMap(),
		help:  h,
	}
	// Start the cursor on the center cell.
	grid := state.Size * state.Size
	m.cursorRow = grid / 2
	m.cursorCol = grid / 2
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	grid := m.state.Size * m.state.Size

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.cursorRow = (m.cursorRow - 1 + grid) % grid
	case key.Matches(msg, m.keys.Down):
		m.cursorRow = (m.cursorRow + 1) % grid
	case key.Matches(msg, m.keys.Left):
		m.cursorCol = (m.cursorCol - 1 + grid) % grid
	case key.Matches(msg, m.keys.Right):
		m.cursorCol = (m.cursorCol + 1) % grid

	case key.Matches(msg, m.keys.Place):
		m.placeMarker()

	case key.Matches(msg, m.keys.Reset):
		m.reset()
	}

	return m, nil
}

// placeMarker applies the move under the cursor and reacts to the outcome.
func (m *Model) placeMarker() {
	board, cell := m.cursorTarget()
	prev := m.state
	next, _ := prev.Apply(board, cell)

	event := feedback.Classify(prev, next)
	m.flash = feedback.CueFor(event, prev.Current)
	m.state = next

	if event == feedback.EventRejected {
		return
	}
	m.autosave()

	if m.state.Over() && !m.recorded {
		m.recorded = true
		if m.store != nil {
			//nolint:errcheck // Best-effort history write, game continues regardless
			m.store.RecordMatch(m.state)
			//nolint:errcheck // The finished game no longer needs its autosave
			m.store.DeleteGame(store.AutosaveSlot)
		}
	}
}

// reset starts a fresh game of the same size.
func (m *Model) reset() {
	m.state = engine.New(m.state.Size)
	m.flash = feedback.Cue{}
	m.recorded = false
	m.autosave()
}

// autosave persists the in-progress game when enabled.
func (m *Model) autosave() {
	if m.store == nil || !m.cfg.Storage.Autosave || m.state.Over() {
		return
	}
	//nolint:errcheck // Best-effort save
	m.store.SaveGame(store.AutosaveSlot, m.state)
}

// cursorTarget converts the grid cursor into (board, cell) indexes.
func (m Model) cursorTarget() (board, cell int) {
	n := m.state.Size
	board = (m.cursorRow/n)*n + m.cursorCol/n
	cell = (m.cursorRow%n)*n + m.cursorCol%n
	return board, cell
}

// View renders the whole session screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := renderTitle(m.state)
	v += "\n" + renderBoard(m.state, m.cursorRow, m.cursorCol, m.cfg.UI.HighContrast)
	v += "\n" + renderStatus(m.state)
	if m.flash.Text != "" {
		v += "\n" + renderFlash(m.flash)
	}
	if m.cfg.UI.ShowHelp {
		v += "\n\n" + m.help.View(m.keys)
	}
	return v
}

// Run starts the Bubble Tea program for a local terminal session.
func Run(cfg config.Config, st *store.Store, initial *engine.GameState) error {
	p := tea.NewProgram(
		NewModel(cfg, st, initial),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
