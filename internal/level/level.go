// Package level builds the tile grid of a stage from its text form and keeps
// it for the rest of the session.
//
// A map is a grid of Height rows by Width columns. Each input character
// selects a tile variant (see tile.Classify) or leaves its slot empty.
// Tile (col, row) sits at pixel position (col*TileSize, row*TileSize).
package level

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/tile"
)

var (
	// ErrOpen is returned when a map file cannot be opened.
	ErrOpen = errors.New("level: cannot open map")
	// ErrRowWidth is returned when a row does not have exactly Width symbols.
	ErrRowWidth = errors.New("level: row width mismatch")
	// ErrRowCount is returned when the input does not have exactly Height rows.
	ErrRowCount = errors.New("level: row count mismatch")
)

// Options is the fixed geometry of a map.
type Options struct {
	Width    int
	Height   int
	TileSize int
}

// OptionsFrom extracts map geometry from the game configuration.
func OptionsFrom(cfg config.MapConfig) Options {
	return Options{Width: cfg.Width, Height: cfg.Height, TileSize: cfg.TileSize}
}

// Map is the fixed-size grid of optional tiles.
type Map struct {
	opts      Options
	slots     []*tile.Tile // row-major, nil for empty
	destroyed bool
}

// Parse splits map text into rows. A trailing carriage return is dropped
// from every row so maps saved with CRLF line endings load unchanged.
func Parse(r io.Reader) ([]string, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("level: read map: %w", err)
	}
	return rows, nil
}

// Build constructs and initializes every tile of the map. Row i, column j
// produces the tile at pixel position (j*TileSize, i*TileSize).
//
// On any failure the tiles initialized so far are released and no map is
// returned.
func Build(rows []string, opts Options, legend tile.Legend, src tile.TextureSource) (*Map, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.TileSize <= 0 {
		return nil, fmt.Errorf("level: invalid geometry %dx%d@%d", opts.Width, opts.Height, opts.TileSize)
	}

	m := &Map{
		opts:  opts,
		slots: make([]*tile.Tile, opts.Width*opts.Height),
	}

	for i, row := range rows {
		if i >= opts.Height {
			m.Destroy()
			return nil, fmt.Errorf("%w: got more than %d rows", ErrRowCount, opts.Height)
		}
		if n := utf8.RuneCountInString(row); n != opts.Width {
			m.Destroy()
			return nil, fmt.Errorf("%w: row %d has %d symbols, want %d", ErrRowWidth, i, n, opts.Width)
		}

		j := 0
		for _, sym := range row {
			pos := core.V(j*opts.TileSize, i*opts.TileSize)
			if t, ok := legend.New(sym, pos); ok {
				if err := t.Initialize(src); err != nil {
					m.Destroy()
					return nil, fmt.Errorf("level: row %d col %d: %w", i, j, err)
				}
				m.slots[m.index(j, i)] = t
			}
			j++
		}
	}

	if len(rows) != opts.Height {
		m.Destroy()
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrRowCount, len(rows), opts.Height)
	}
	return m, nil
}

// Load reads a map file and builds it.
func Load(path string, opts Options, legend tile.Legend, src tile.TextureSource) (*Map, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(rows, opts, legend, src)
}

// ReadFile reads the rows of a map file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	defer f.Close()
	return Parse(f)
}

func (m *Map) index(col, row int) int {
	return row*m.opts.Width + col
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.opts.Width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.opts.Height }

// TileSize returns the pixel size of a tile edge.
func (m *Map) TileSize() int { return m.opts.TileSize }

// Bounds returns the pixel rectangle covered by the grid.
func (m *Map) Bounds() core.Rect {
	return core.NewRect(0, 0, m.opts.Width*m.opts.TileSize, m.opts.Height*m.opts.TileSize)
}

// InBounds reports whether (col, row) addresses a slot of the grid.
func (m *Map) InBounds(col, row int) bool {
	return col >= 0 && col < m.opts.Width && row >= 0 && row < m.opts.Height
}

// At returns the tile at (col, row), or nil when the slot is empty or
// outside the grid.
func (m *Map) At(col, row int) *tile.Tile {
	if !m.InBounds(col, row) {
		return nil
	}
	return m.slots[m.index(col, row)]
}

// TileAt returns the tile covering the pixel position p.
func (m *Map) TileAt(p core.Vec2) *tile.Tile {
	if !m.Bounds().Contains(p) {
		return nil
	}
	col, row := p.Cell(m.opts.TileSize)
	return m.At(col, row)
}

// Neighbors returns the tiles in the four slots orthogonally adjacent to
// (col, row), in up, down, left, right order. Empty slots yield nil.
func (m *Map) Neighbors(col, row int) [4]*tile.Tile {
	return [4]*tile.Tile{
		m.At(col, row-1),
		m.At(col, row+1),
		m.At(col-1, row),
		m.At(col+1, row),
	}
}

// Blocked reports whether (col, row) is a wall or lies outside the grid.
func (m *Map) Blocked(col, row int) bool {
	if !m.InBounds(col, row) {
		return true
	}
	t := m.At(col, row)
	return t != nil && t.Kind() == tile.KindWall
}

// ForEach visits every non-empty slot in row-major order.
func (m *Map) ForEach(fn func(col, row int, t *tile.Tile)) {
	for i, t := range m.slots {
		if t == nil {
			continue
		}
		fn(i%m.opts.Width, i/m.opts.Width, t)
	}
}

// Remove empties the slot at (col, row), releasing the tile's textures.
// It returns the removed tile, or nil when the slot was already empty.
func (m *Map) Remove(col, row int) *tile.Tile {
	if !m.InBounds(col, row) {
		return nil
	}
	i := m.index(col, row)
	t := m.slots[i]
	if t == nil {
		return nil
	}
	t.Release()
	m.slots[i] = nil
	return t
}

// Replace overwrites the tile in slot (col, row) with a copy of t, keeping
// the slot's storage and its pixel position. An empty slot gets a fresh
// tile, installed only once the copy succeeded.
func (m *Map) Replace(col, row int, t *tile.Tile) error {
	if !m.InBounds(col, row) {
		return fmt.Errorf("level: slot (%d,%d) outside %dx%d grid", col, row, m.opts.Width, m.opts.Height)
	}
	i := m.index(col, row)
	pos := core.V(col*m.opts.TileSize, row*m.opts.TileSize)
	if m.slots[i] != nil {
		return m.slots[i].AssignAt(t, pos)
	}
	fresh := new(tile.Tile)
	if err := fresh.AssignAt(t, pos); err != nil {
		return err
	}
	m.slots[i] = fresh
	return nil
}

// Count returns the number of tiles of the given kind.
func (m *Map) Count(kind tile.Kind) int {
	n := 0
	for _, t := range m.slots {
		if t != nil && t.Kind() == kind {
			n++
		}
	}
	return n
}

// Len returns the number of non-empty slots.
func (m *Map) Len() int {
	n := 0
	for _, t := range m.slots {
		if t != nil {
			n++
		}
	}
	return n
}

// Remaining returns how many collectibles are still on the map.
func (m *Map) Remaining() int {
	return m.Count(tile.KindFood) + m.Count(tile.KindPowerPellet) + m.Count(tile.KindFruit)
}

// Destroy releases every tile exactly once. Calling it again is a no-op.
func (m *Map) Destroy() {
	if m.destroyed {
		return
	}
	for i, t := range m.slots {
		if t != nil {
			t.Release()
			m.slots[i] = nil
		}
	}
	m.destroyed = true
}
