package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmordasov/metagrid/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deep", "test.db")

	s, err := Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	_, statErr := os.Stat(dbPath)
	assert.NoError(t, statErr, "database file created along with parent directories")
}

func TestStoreMigrationIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening must not re-run applied migrations.
	s, err = Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	var version int
	require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, len(migrations), version)
}

func TestSaveAndLoadGame(t *testing.T) {
	s := openTestStore(t)

	state := engine.New(3)
	state, reason := state.Apply(0, 4)
	require.Equal(t, engine.RejectNone, reason)
	state, reason = state.Apply(4, 7)
	require.Equal(t, engine.RejectNone, reason)

	require.NoError(t, s.SaveGame(AutosaveSlot, state))

	loaded, err := s.LoadGame(AutosaveSlot)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, state.Size, loaded.Size)
	assert.Equal(t, state.Current, loaded.Current)
	assert.Equal(t, state.ForcedBoard, loaded.ForcedBoard)
	assert.Equal(t, state.MoveCount, loaded.MoveCount)
	assert.Equal(t, state.Winner, loaded.Winner)
	assert.Equal(t, state.Draw, loaded.Draw)
	for i := range state.Boards {
		assert.Equal(t, state.Boards[i].Cells, loaded.Boards[i].Cells, "board %d", i)
	}
}

func TestSaveGameOverwritesSlot(t *testing.T) {
	s := openTestStore(t)

	first := engine.New(3)
	require.NoError(t, s.SaveGame(AutosaveSlot, first))

	second, reason := first.Apply(2, 6)
	require.Equal(t, engine.RejectNone, reason)
	require.NoError(t, s.SaveGame(AutosaveSlot, second))

	loaded, err := s.LoadGame(AutosaveSlot)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 1, loaded.MoveCount)
	assert.Equal(t, engine.X, loaded.Boards[2].Cells[6])
}

func TestLoadGameEmptySlot(t *testing.T) {
	s := openTestStore(t)

	loaded, err := s.LoadGame(AutosaveSlot)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadGameCoercesCorruptRow(t *testing.T) {
	s := openTestStore(t)

	// A legacy-shaped row written by some earlier version: junk cells, an
	// impossible forced index, a bogus count.
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, size, boards, statuses, current, forced, winner, draw, move_count)
		 VALUES ('autosave', 3, 'XQQQQQQQQ/OZZZZZZZZ', '?', 'banana', 77, 'O', 1, -5)`,
	)
	require.NoError(t, err)

	loaded, err := s.LoadGame(AutosaveSlot)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, 3, loaded.Size)
	assert.Equal(t, engine.X, loaded.Boards[0].Cells[0])
	assert.Equal(t, engine.O, loaded.Boards[1].Cells[0])
	assert.Equal(t, 2, loaded.MoveCount)
	assert.Equal(t, engine.NoBoard, loaded.ForcedBoard)
	assert.Equal(t, engine.Empty, loaded.Winner)
	assert.False(t, loaded.Draw)
	assert.Equal(t, engine.X, loaded.Current, "even move count means X to play")
}

func TestDeleteGame(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveGame(AutosaveSlot, engine.New(3)))
	require.NoError(t, s.DeleteGame(AutosaveSlot))

	loaded, err := s.LoadGame(AutosaveSlot)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting an empty slot is not an error.
	assert.NoError(t, s.DeleteGame(AutosaveSlot))
}

func TestRecordMatchAndRecent(t *testing.T) {
	s := openTestStore(t)

	won := engine.New(3)
	won.Winner = engine.X
	won.MoveCount = 41

	drawn := engine.New(4)
	drawn.Draw = true
	drawn.MoveCount = 100

	idWon, err := s.RecordMatch(won)
	require.NoError(t, err)
	assert.NotEmpty(t, idWon)

	idDrawn, err := s.RecordMatch(drawn)
	require.NoError(t, err)
	assert.NotEqual(t, idWon, idDrawn, "match IDs are unique")

	matches, err := s.RecentMatches(10)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Newest first.
	assert.Equal(t, idDrawn, matches[0].MatchID)
	assert.Equal(t, 4, matches[0].Size)
	assert.True(t, matches[0].Draw)
	assert.Equal(t, 100, matches[0].Moves)

	assert.Equal(t, idWon, matches[1].MatchID)
	assert.Equal(t, "X", matches[1].Winner)
	assert.False(t, matches[1].Draw)
}

func TestRecentMatchesLimit(t *testing.T) {
	s := openTestStore(t)

	state := engine.New(3)
	state.Winner = engine.O
	for i := 0; i < 5; i++ {
		_, err := s.RecordMatch(state)
		require.NoError(t, err)
	}

	matches, err := s.RecentMatches(3)
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	// Zero falls back to the default limit.
	matches, err = s.RecentMatches(0)
	require.NoError(t, err)
	assert.Len(t, matches, 5)
}
