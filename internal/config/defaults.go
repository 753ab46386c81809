package config

import (
	_ "embed"
)

//go:embed defaults/pacman.yaml
var defaultGameYAML []byte

// Default returns the built-in game configuration.
func Default() GameConfig {
	return GameConfig{
		Window: WindowConfig{
			Title:     "PAC-MAN",
			FrameRate: 60,
			VSync:     true,
		},
		Map: MapConfig{
			Default:  "default",
			Width:    28,
			Height:   28,
			TileSize: 16,
			YOffset:  32,
		},
		Tiles: TilesConfig{
			Food: AnimationConfig{
				Frames: []string{"food"},
				Step:   1,
			},
			PowerPellet: AnimationConfig{
				Frames: []string{"pellet_on", "pellet_off"},
				Step:   10, // 6 blinks per second
			},
			Fruit: AnimationConfig{
				Frames: []string{"cherry_a", "cherry_b"},
				Step:   15,
			},
			Walls: map[string]string{
				"1": "wall_corner_tl",
				"2": "wall_corner_tr",
				"3": "wall_corner_bl",
				"4": "wall_corner_br",
				"5": "wall_horizontal",
				"6": "wall_vertical",
				"!": "wall_tee_down",
				"@": "wall_tee_up",
				"#": "wall_tee_right",
				"$": "wall_tee_left",
				"%": "wall_cross",
				"^": "wall_gate",
			},
		},
		Title: TitleConfig{
			Font: "emulogic",
		},
		Sounds: SoundsConfig{
			Intro: "intro",
			Chomp: "chomp",
			Power: "power",
			Fruit: "fruit",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
