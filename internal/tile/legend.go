package tile

import (
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Map symbols with a fixed meaning.
const (
	SymbolFood        = '*'
	SymbolPowerPellet = '0'
	SymbolFruit       = 'f'
)

// WallSymbols lists every symbol that produces a wall segment.
const WallSymbols = "123456!@#$%^"

// Animation is one animation cycle: texture ids shown Step ticks each.
type Animation struct {
	Frames []string
	Step   int
}

// Legend maps input symbols to tile variants and their sprites.
type Legend struct {
	Food        Animation
	PowerPellet Animation
	Fruit       Animation
	Walls       map[rune]string // wall symbol -> texture id
}

// NewLegend builds a legend from configuration. Every wall symbol must have
// a sprite.
func NewLegend(cfg config.TilesConfig) (Legend, error) {
	l := Legend{
		Food:        Animation{Frames: cfg.Food.Frames, Step: cfg.Food.Step},
		PowerPellet: Animation{Frames: cfg.PowerPellet.Frames, Step: cfg.PowerPellet.Step},
		Fruit:       Animation{Frames: cfg.Fruit.Frames, Step: cfg.Fruit.Step},
		Walls:       make(map[rune]string, len(WallSymbols)),
	}

	for key, tex := range cfg.Walls {
		r := []rune(key)
		if len(r) != 1 || !IsWall(r[0]) {
			return Legend{}, fmt.Errorf("tile: %q is not a wall symbol", key)
		}
		l.Walls[r[0]] = tex
	}
	for _, sym := range WallSymbols {
		if _, ok := l.Walls[sym]; !ok {
			return Legend{}, fmt.Errorf("tile: no sprite for wall symbol %q", sym)
		}
	}
	return l, nil
}

// IsWall reports whether sym selects a wall segment.
func IsWall(sym rune) bool {
	for _, w := range WallSymbols {
		if w == sym {
			return true
		}
	}
	return false
}

// Classify returns the tile kind for an input symbol, or false when the
// symbol leaves its slot empty.
func Classify(sym rune) (Kind, bool) {
	switch {
	case IsWall(sym):
		return KindWall, true
	case sym == SymbolFood:
		return KindFood, true
	case sym == SymbolPowerPellet:
		return KindPowerPellet, true
	case sym == SymbolFruit:
		return KindFruit, true
	default:
		return 0, false
	}
}

// New allocates the tile variant for sym at pos. It returns false for
// symbols that leave the slot empty. The tile is not initialized.
func (l Legend) New(sym rune, pos core.Vec2) (*Tile, bool) {
	kind, ok := Classify(sym)
	if !ok {
		return nil, false
	}
	switch kind {
	case KindWall:
		return NewWall(pos, sym, l.Walls[sym]), true
	case KindFood:
		return NewFood(pos, l.Food), true
	case KindPowerPellet:
		return NewPowerPellet(pos, l.PowerPellet), true
	default:
		return NewFruit(pos, l.Fruit), true
	}
}
