package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/platform/tui"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions",
	Run:   runHistory,
}

var scoresCmd = &cobra.Command{
	Use:   "scores <map>",
	Short: "Show high scores for a map",
	Long: `Display the top scores recorded for the specified map.

Examples:
  pacman scores default
  pacman scores arena --limit 20
  pacman scores arena --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded session for the map")
}

// openHistory opens the session database named by --db.
func openHistory() (*storage.Store, error) {
	path, err := expandHome(flagDBPath)
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}

func openStore() *storage.Store {
	store, err := openHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runHistory(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pacman play' to start one!")
		return
	}
	fmt.Println(tui.RenderSessions("Recent Sessions", sessions, tui.HistoryRecent))
}

func runScores(cmd *cobra.Command, args []string) {
	mapID := args[0]

	store := openStore()
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(mapID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared history for %s.\n", mapID)
		return
	}

	scores, err := store.TopScores(mapID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pacman play --map %s' to set the first high score!\n", mapID)
		return
	}

	fmt.Println(tui.RenderSessions("High Scores - "+mapID, scores, tui.HistoryRanked))

	if stats, err := store.Stats(mapID); err == nil {
		fmt.Printf("Best: %d  Average: %.0f  Sessions: %d\n",
			stats.HighScore, stats.AvgScore, stats.Sessions)
	}
}
