package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vmordasov/metagrid/internal/config"
	"github.com/vmordasov/metagrid/internal/engine"
	"github.com/vmordasov/metagrid/internal/platform/tui"
	"github.com/vmordasov/metagrid/internal/store"
)

var (
	flagSize  int
	flagFresh bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the current terminal",
	Long: `Start a hot-seat game. An unfinished game is resumed from the
autosave unless --fresh is given or a different --size is requested.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter/Space  - Place marker
  R            - New game
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  metagrid play
  metagrid play --size 4
  metagrid play --fresh`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board dimension N (0 = config value)")
	playCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Ignore the autosave and start a new game")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "metagrid"})

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sizeOverride := flagSize > 0
	if sizeOverride {
		cfg.Game.Size = engine.NormalizeSize(flagSize)
		if cfg.Game.Size > config.MaxSize {
			cfg.Game.Size = config.MaxSize
		}
	}

	warnIfCramped(cfg.Game.Size, logger)

	st, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open database, playing without persistence", "error", err)
		st = nil
	}

	// Resume the autosave unless the user asked for a fresh game or a
	// specific size. The loader coerces corrupt saves into a valid state.
	var initial *engine.GameState
	if st != nil && !flagFresh && !sizeOverride {
		saved, loadErr := st.LoadGame(store.AutosaveSlot)
		if loadErr != nil {
			logger.Warn("could not load autosave", "error", loadErr)
		} else if saved != nil && !saved.Over() {
			initial = saved
			logger.Info("resuming saved game", "size", saved.Size, "moves", saved.MoveCount)
		}
	}

	runErr := tui.Run(cfg, st, initial)

	if st != nil {
		st.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// warnIfCramped checks the terminal against the rendered board footprint.
// The game still runs; big boards in small terminals just scroll.
func warnIfCramped(size int, logger *log.Logger) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return
	}
	// One bordered local board is 2N+3 columns and N+2 rows.
	needW := size * (2*size + 3)
	needH := size*(size+2) + 4
	if w < needW || h < needH {
		logger.Warn("terminal may be too small for this board",
			"size", size, "need", fmt.Sprintf("%dx%d", needW, needH), "have", fmt.Sprintf("%dx%d", w, h))
	}
}
