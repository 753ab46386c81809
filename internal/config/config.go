// Package config provides YAML-based game configuration loading for the game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid")

// GameConfig contains all configuration for a game session.
type GameConfig struct {
	Window WindowConfig `yaml:"window"`
	Map    MapConfig    `yaml:"map"`
	Tiles  TilesConfig  `yaml:"tiles"`
	Title  TitleConfig  `yaml:"title"`
	Sounds SoundsConfig `yaml:"sounds"`
}

// WindowConfig defines the presentation surface parameters.
type WindowConfig struct {
	Title     string `yaml:"title"`
	FrameRate int    `yaml:"frame_rate"`
	VSync     bool   `yaml:"vsync"`
}

// MapConfig defines the fixed map geometry.
type MapConfig struct {
	Default  string `yaml:"default"`   // Catalog id used when no map is given
	Width    int    `yaml:"width"`     // Columns per row
	Height   int    `yaml:"height"`    // Number of rows
	TileSize int    `yaml:"tile_size"` // Pixels per tile edge
	YOffset  int    `yaml:"y_offset"`  // Height of the title band above the map, in pixels
}

// AnimationConfig defines one animation cycle.
type AnimationConfig struct {
	Frames []string `yaml:"frames"` // Texture ids, in cycle order
	Step   int      `yaml:"step"`   // Ticks each frame stays on screen
}

// TilesConfig defines the sprites used by every tile variant.
type TilesConfig struct {
	Food        AnimationConfig   `yaml:"food"`
	PowerPellet AnimationConfig   `yaml:"power_pellet"`
	Fruit       AnimationConfig   `yaml:"fruit"`
	Walls       map[string]string `yaml:"walls"` // Map symbol -> texture id
}

// TitleConfig defines the title text.
type TitleConfig struct {
	Font string `yaml:"font"`
}

// SoundsConfig names the sound effects triggered by the game.
type SoundsConfig struct {
	Intro string `yaml:"intro"`
	Chomp string `yaml:"chomp"`
	Power string `yaml:"power"`
	Fruit string `yaml:"fruit"`
}

// Runtime converts the window and map settings into the parameters a
// presentation surface is opened with.
func (c GameConfig) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		Title:     c.Window.Title,
		ScreenW:   c.Map.Width * c.Map.TileSize,
		ScreenH:   c.Map.Height*c.Map.TileSize + c.Map.YOffset,
		CellSize:  c.Map.TileSize,
		FrameRate: c.Window.FrameRate,
		VSync:     c.Window.VSync,
	}
}

// Validate checks the configuration for values the game cannot run with.
func (c GameConfig) Validate() error {
	if c.Window.FrameRate <= 0 {
		return fmt.Errorf("%w: window.frame_rate must be positive, got %d", ErrInvalid, c.Window.FrameRate)
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("%w: map size must be positive, got %dx%d", ErrInvalid, c.Map.Width, c.Map.Height)
	}
	if c.Map.TileSize <= 0 {
		return fmt.Errorf("%w: map.tile_size must be positive, got %d", ErrInvalid, c.Map.TileSize)
	}
	if c.Map.YOffset < 0 {
		return fmt.Errorf("%w: map.y_offset must not be negative, got %d", ErrInvalid, c.Map.YOffset)
	}

	anims := map[string]AnimationConfig{
		"food":         c.Tiles.Food,
		"power_pellet": c.Tiles.PowerPellet,
		"fruit":        c.Tiles.Fruit,
	}
	for name, a := range anims {
		if err := a.validate(); err != nil {
			return fmt.Errorf("%w: tiles.%s: %v", ErrInvalid, name, err)
		}
	}
	for sym, id := range c.Tiles.Walls {
		if len([]rune(sym)) != 1 {
			return fmt.Errorf("%w: tiles.walls: key %q must be a single symbol", ErrInvalid, sym)
		}
		if id == "" {
			return fmt.Errorf("%w: tiles.walls[%q]: empty texture id", ErrInvalid, sym)
		}
	}

	if c.Title.Font == "" {
		return fmt.Errorf("%w: title.font is required", ErrInvalid)
	}
	return nil
}

// validate checks that the cycle length divides the tick rate, so the frame
// shown after k ticks is always (k / step) mod len(frames).
func (a AnimationConfig) validate() error {
	if len(a.Frames) == 0 {
		return errors.New("frames must not be empty")
	}
	if a.Step <= 0 {
		return fmt.Errorf("step must be positive, got %d", a.Step)
	}
	if cycle := a.Step * len(a.Frames); core.TickRate%cycle != 0 {
		return fmt.Errorf("cycle of %d ticks does not divide %d", cycle, core.TickRate)
	}
	return nil
}
