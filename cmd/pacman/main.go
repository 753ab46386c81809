// pacman is a terminal pac-man maze: a tile map of walls, food, power pellets
// and fruit rendered and animated at a fixed frame rate.
//
// Usage:
//
//	pacman play [--map id]       - Play a map
//	pacman maps                  - List built-in maps
//	pacman backends              - List presentation backends
//	pacman history               - Show recent sessions
//	pacman scores <map>          - Show top scores for a map
//
// Global flags:
//
//	--db <path>          - Session history database (default: ~/.pacman/history.db)
//	--log-level <level>  - debug, info, warn, error (default: info, or $PACMAN_LOG_LEVEL)
//	--log-file <path>    - Log destination while a game owns the terminal
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	logger = newLogger(os.Stderr, "info")
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("command failed", "err", err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pacman",
	Short: "PAC-MAN in your terminal",
	Long: `A terminal pac-man maze. Maps are plain-text grids of walls, food,
power pellets and fruit, animated at a fixed frame rate.

Available commands:
  play      - Play a map
  maps      - List built-in maps
  backends  - List presentation backends
  history   - Show recent sessions
  scores    - Show top scores for a map

Examples:
  pacman play
  pacman play --map arena --backend tcell
  pacman play --map-file ./my.map --sound
  pacman scores default`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; variables may be set directly.
		envErr := godotenv.Load()

		level := flagLogLevel
		if !cmd.Flags().Changed("log-level") {
			if env := os.Getenv("PACMAN_LOG_LEVEL"); env != "" {
				level = env
			}
		}
		logger = newLogger(os.Stderr, level)
		if envErr != nil && !os.IsNotExist(envErr) {
			logger.Debug(".env not loaded", "err", envErr)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pacman/history.db", "Path to session history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.pacman/pacman.log", "Log file used while a game owns the terminal")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(scoresCmd)
}
