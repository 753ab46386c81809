package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/level"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/tile"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List built-in maps",
	Long:  `Shows the maps shipped with the binary, with their collectible counts.`,
	Run:   runMaps,
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List presentation backends",
	Run:   runBackends,
}

func runMaps(cmd *cobra.Command, args []string) {
	catalog := level.Builtin()
	ids, err := catalog.IDs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(ids) == 0 {
		fmt.Println("No maps available.")
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, id := range ids {
		if len(id) > maxIDLen {
			maxIDLen = len(id)
		}
	}

	fmt.Printf("  %-*s  %5s  %6s  %5s  %s\n", maxIDLen, "ID", "Food", "Power", "Fruit", "Size")
	fmt.Printf("  %-*s  %5s  %6s  %5s  %s\n", maxIDLen, "--", "----", "-----", "-----", "----")
	for _, id := range ids {
		rows, err := catalog.Rows(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		c := countSymbols(rows)
		fmt.Printf("  %-*s  %5d  %6d  %5d  %dx%d\n",
			maxIDLen, id, c.food, c.power, c.fruit, c.width, len(rows))
	}

	fmt.Println()
	fmt.Println("Run 'pacman play --map <id>' to play a map.")
}

type symbolCounts struct {
	food, power, fruit, width int
}

func countSymbols(rows []string) symbolCounts {
	var c symbolCounts
	for _, row := range rows {
		n := 0
		for _, r := range row {
			n++
			switch r {
			case tile.SymbolFood:
				c.food++
			case tile.SymbolPowerPellet:
				c.power++
			case tile.SymbolFruit:
				c.fruit++
			}
		}
		if n > c.width {
			c.width = n
		}
	}
	return c
}

func runBackends(cmd *cobra.Command, args []string) {
	fmt.Println("Available backends:")
	fmt.Println()
	for _, b := range registry.List() {
		fmt.Printf("  %-6s  %s\n", b.ID, b.Title)
	}
	fmt.Println()
	fmt.Println("Run 'pacman play --backend <id>' to use a backend.")
}
