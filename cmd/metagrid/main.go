// metagrid is a terminal ultimate tic-tac-toe: an NxN grid of NxN boards
// where winning a local board claims a cell on the meta grid.
//
// Usage:
//
//	metagrid play             - Play in the current terminal
//	metagrid serve            - Start SSH server for remote play
//	metagrid history          - Show recent finished matches
//
// Global flags:
//
//	--config <path>  - Path to a config YAML
//	--db <path>      - Database path (default: ~/.metagrid/metagrid.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmordasov/metagrid/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "metagrid",
	Short: "MetaGrid - ultimate tic-tac-toe in your terminal",
	Long: `MetaGrid is a two-player hot-seat ultimate tic-tac-toe.

The board is an NxN grid of NxN boards. Your move's cell decides which board
your opponent must play in; win boards to claim meta cells, complete a meta
line to win the game.

Examples:
  metagrid play
  metagrid play --size 4
  metagrid serve --ssh :2222
  metagrid history`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig resolves the effective configuration from the config file and
// the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	cfg.Normalize()
	return cfg, nil
}
