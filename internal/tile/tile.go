// Package tile implements the stationary map features of the game: walls,
// food, power pellets and fruit. A Tile owns its position, its animation
// cycle and the textures it acquired for that cycle.
package tile

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pacman/internal/asset"
	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Kind identifies the variant of a tile.
type Kind uint8

const (
	KindWall Kind = iota
	KindFood
	KindPowerPellet
	KindFruit
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "Wall"
	case KindFood:
		return "Food"
	case KindPowerPellet:
		return "PowerPellet"
	case KindFruit:
		return "Fruit"
	default:
		return "Unknown"
	}
}

// Collectible reports whether a mover can consume tiles of this kind.
func (k Kind) Collectible() bool {
	return k == KindFood || k == KindPowerPellet || k == KindFruit
}

// Points returns the score awarded for consuming a tile of this kind.
func (k Kind) Points() int {
	switch k {
	case KindFood:
		return 10
	case KindPowerPellet:
		return 50
	case KindFruit:
		return 100
	default:
		return 0
	}
}

// ErrNoTextures is returned when a tile has no animation frames to load.
var ErrNoTextures = errors.New("tile: no textures")

// TextureSource resolves texture ids. Every successful Texture call is
// matched by exactly one Release when the tile is torn down.
type TextureSource interface {
	Texture(id string) (asset.Texture, error)
	Release(id string)
}

// Canvas receives the visual primitives of a frame.
type Canvas interface {
	Draw(p core.Primitive)
}

// Tile is one cell's visual and behavioral unit.
type Tile struct {
	kind     Kind
	symbol   rune
	position core.Vec2
	paths    []string
	step     int

	src          TextureSource
	textures     []asset.Texture
	frameCounter int
	frame        int
}

func newTile(kind Kind, symbol rune, pos core.Vec2, anim Animation) *Tile {
	step := anim.Step
	if step <= 0 {
		step = 1
	}
	paths := make([]string, len(anim.Frames))
	copy(paths, anim.Frames)
	return &Tile{
		kind:     kind,
		symbol:   symbol,
		position: pos,
		paths:    paths,
		step:     step,
	}
}

// NewWall creates a wall segment. The symbol is the wall subtype and
// texture is the sprite selected for it.
func NewWall(pos core.Vec2, symbol rune, texture string) *Tile {
	return newTile(KindWall, symbol, pos, Animation{Frames: []string{texture}, Step: 1})
}

// NewFood creates a small collectible.
func NewFood(pos core.Vec2, anim Animation) *Tile {
	return newTile(KindFood, SymbolFood, pos, anim)
}

// NewPowerPellet creates a large, blinking collectible.
func NewPowerPellet(pos core.Vec2, anim Animation) *Tile {
	return newTile(KindPowerPellet, SymbolPowerPellet, pos, anim)
}

// NewFruit creates a bonus collectible.
func NewFruit(pos core.Vec2, anim Animation) *Tile {
	return newTile(KindFruit, SymbolFruit, pos, anim)
}

// Initialize resolves every texture path through src. On failure the
// textures acquired so far are released and the tile stays unloaded.
func (t *Tile) Initialize(src TextureSource) error {
	if len(t.paths) == 0 {
		return fmt.Errorf("%w: %s at %v", ErrNoTextures, t.kind, t.position)
	}

	// Reloading returns the previous cycle first.
	t.Release()

	textures := make([]asset.Texture, 0, len(t.paths))
	for _, path := range t.paths {
		tex, err := src.Texture(path)
		if err != nil {
			for _, loaded := range textures {
				src.Release(loaded.ID)
			}
			return fmt.Errorf("tile: %s at %v: %w", t.kind, t.position, err)
		}
		textures = append(textures, tex)
	}

	t.src = src
	t.textures = textures
	t.frameCounter = 0
	t.frame = 0
	return nil
}

// Advance moves the animation clock forward by one tick.
// frameCounter cycles over [0, core.TickRate) and the active frame is
// (frameCounter / step) mod len(textures).
func (t *Tile) Advance() {
	t.frameCounter = (t.frameCounter + 1) % core.TickRate
	if n := len(t.textures); n > 0 {
		t.frame = (t.frameCounter / t.step) % n
	}
}

// Sprite returns the current animation frame at the tile's position.
func (t *Tile) Sprite() core.Sprite {
	if len(t.textures) == 0 {
		return core.Sprite{Pos: t.position, Glyph: ' '}
	}
	tex := t.textures[t.frame]
	return core.Sprite{Pos: t.position, Glyph: tex.Glyph, Color: tex.Color}
}

// Draw submits the current frame to the canvas.
func (t *Tile) Draw(c Canvas) {
	c.Draw(t.Sprite())
}

// Assign replaces this tile's state with a copy of other's: kind, position,
// texture paths, loaded textures and animation clock. Textures held by t are
// released and other's textures are acquired again, so both tiles own their
// references independently.
func (t *Tile) Assign(other *Tile) error {
	return t.AssignAt(other, other.position)
}

// AssignAt is Assign, except the copy is placed at pos instead of other's
// position. A grid slot uses it to take on another tile's identity without
// moving off its own cell.
func (t *Tile) AssignAt(other *Tile, pos core.Vec2) error {
	if t == other {
		t.position = pos
		return nil
	}

	var textures []asset.Texture
	if other.src != nil && len(other.textures) > 0 {
		textures = make([]asset.Texture, 0, len(other.textures))
		for _, tex := range other.textures {
			acquired, err := other.src.Texture(tex.ID)
			if err != nil {
				for _, a := range textures {
					other.src.Release(a.ID)
				}
				return fmt.Errorf("tile: assign %s at %v: %w", other.kind, other.position, err)
			}
			textures = append(textures, acquired)
		}
	}

	t.Release()

	t.kind = other.kind
	t.symbol = other.symbol
	t.position = pos
	t.paths = append([]string(nil), other.paths...)
	t.step = other.step
	t.frameCounter = other.frameCounter
	t.frame = other.frame
	t.textures = textures
	if textures != nil {
		t.src = other.src
	}
	return nil
}

// Release returns every acquired texture to its source exactly once.
// Calling Release again is a no-op.
func (t *Tile) Release() {
	if t.src == nil {
		return
	}
	for _, tex := range t.textures {
		t.src.Release(tex.ID)
	}
	t.textures = nil
	t.src = nil
}

// Loaded reports whether the tile currently holds textures.
func (t *Tile) Loaded() bool { return len(t.textures) > 0 }

// Kind returns the tile variant.
func (t *Tile) Kind() Kind { return t.kind }

// Symbol returns the map symbol the tile was built from. For walls this is
// the subtype selecting the wall-segment sprite.
func (t *Tile) Symbol() rune { return t.symbol }

// Position returns the fixed pixel position of the tile.
func (t *Tile) Position() core.Vec2 { return t.position }

// TexturePaths returns a copy of the animation cycle's texture ids.
func (t *Tile) TexturePaths() []string { return append([]string(nil), t.paths...) }

// Step returns the number of ticks each animation frame is shown.
func (t *Tile) Step() int { return t.step }

// FrameCounter returns the animation clock in [0, core.TickRate).
func (t *Tile) FrameCounter() int { return t.frameCounter }

// Frame returns the index of the active animation frame.
func (t *Tile) Frame() int { return t.frame }
