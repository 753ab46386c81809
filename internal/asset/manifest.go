package asset

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Manifest is the YAML index of an asset pack.
type Manifest struct {
	Textures map[string]TextureSpec `yaml:"textures"`
	Fonts    map[string]FontSpec    `yaml:"fonts"`
	Sounds   map[string]string      `yaml:"sounds"` // id -> path relative to the manifest
}

// TextureSpec describes a single-cell sprite before decoding.
type TextureSpec struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"` // palette name or #rrggbb
}

// FontSpec describes how text drawn with a font looks.
type FontSpec struct {
	Color   string `yaml:"color"`
	Spacing int    `yaml:"spacing"` // blank cells inserted between letters
}

// ParseManifest decodes manifest YAML.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: manifest: %v", ErrDecode, err)
	}
	return m, nil
}

// decodeTexture turns a texture spec into a Texture.
func decodeTexture(id string, spec TextureSpec) (Texture, error) {
	if utf8.RuneCountInString(spec.Glyph) != 1 {
		return Texture{}, fmt.Errorf("%w: texture %q: glyph must be exactly one character, got %q", ErrDecode, id, spec.Glyph)
	}
	glyph, _ := utf8.DecodeRuneInString(spec.Glyph)

	color, err := decodeColor(spec.Color)
	if err != nil {
		return Texture{}, fmt.Errorf("%w: texture %q: %v", ErrDecode, id, err)
	}

	return Texture{ID: id, Glyph: glyph, Color: color}, nil
}

// decodeFont turns a font spec into a Font.
func decodeFont(id string, spec FontSpec) (Font, error) {
	if spec.Spacing < 0 {
		return Font{}, fmt.Errorf("%w: font %q: negative spacing %d", ErrDecode, id, spec.Spacing)
	}
	color, err := decodeColor(spec.Color)
	if err != nil {
		return Font{}, fmt.Errorf("%w: font %q: %v", ErrDecode, id, err)
	}
	return Font{ID: id, Color: color, Spacing: spec.Spacing}, nil
}

// paletteHex holds the sRGB value of each palette entry, used to map
// arbitrary hex colors onto the terminal palette.
var paletteHex = map[core.Color]string{
	core.ColorRed:           "#cd0000",
	core.ColorGreen:         "#00cd00",
	core.ColorYellow:        "#cdcd00",
	core.ColorBlue:          "#0000ee",
	core.ColorMagenta:       "#cd00cd",
	core.ColorCyan:          "#00cdcd",
	core.ColorWhite:         "#e5e5e5",
	core.ColorBrightRed:     "#ff0000",
	core.ColorBrightGreen:   "#00ff00",
	core.ColorBrightYellow:  "#ffff00",
	core.ColorBrightBlue:    "#5c5cff",
	core.ColorBrightMagenta: "#ff00ff",
	core.ColorBrightCyan:    "#00ffff",
	core.ColorBrightWhite:   "#ffffff",
	core.ColorOrange:        "#ff8700",
	core.ColorGray:          "#8a8a8a",
	core.ColorPink:          "#ffafd7",
}

// decodeColor accepts a palette name, a #rrggbb value (snapped to the nearest
// palette entry) or an empty string (default color).
func decodeColor(s string) (core.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.ColorDefault, nil
	}
	if !strings.HasPrefix(s, "#") {
		c, ok := core.ParseColor(s)
		if !ok {
			return core.ColorDefault, fmt.Errorf("unknown color %q", s)
		}
		return c, nil
	}

	want, err := colorful.Hex(s)
	if err != nil {
		return core.ColorDefault, fmt.Errorf("invalid hex color %q: %v", s, err)
	}

	best := core.ColorDefault
	bestDist := -1.0
	for _, c := range core.Palette() {
		ref, err := colorful.Hex(paletteHex[c])
		if err != nil {
			continue
		}
		if d := want.DistanceLab(ref); bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, nil
}
