package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmordasov/metagrid/internal/store"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent finished matches",
	Long: `Display the most recently finished games: board size, result, and
move count.

Examples:
  metagrid history
  metagrid history --limit 25`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	matches, err := st.RecentMatches(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No finished matches yet.")
		fmt.Println()
		fmt.Println("Play 'metagrid play' to record the first one!")
		return
	}

	fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "Board", "Result", "Moves", "Date")
	fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "-----", "------", "-----", "----")

	for _, m := range matches {
		result := m.Winner
		if m.Draw {
			result = "draw"
		}
		dateStr := m.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %dx%-3d  %-6s  %-6d  %s\n", m.Size, m.Size, result, m.Moves, dateStr)
	}
}
