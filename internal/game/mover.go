package game

import (
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/level"
)

// Mover is an actor walking the grid. Every running tick the game moves it,
// then consumes whatever collectible sits in its slot.
type Mover interface {
	// Move advances the mover by one tick.
	Move(in core.InputFrame, m *level.Map)
	// Cell returns the slot the mover occupies.
	Cell() (col, row int)
	// Sprite returns the mover's visual in map pixel space.
	Sprite() core.Sprite
}

// WalkerStep is the default number of ticks a Walker spends on each cell.
const WalkerStep = 8

var directions = [...]struct {
	action   core.Action
	dcol, dr int
}{
	{core.ActionUp, 0, -1},
	{core.ActionDown, 0, 1},
	{core.ActionLeft, -1, 0},
	{core.ActionRight, 1, 0},
}

// Walker is a keyboard-steered Mover. It keeps going in its current
// direction until a wall stops it; a newly pressed direction is queued and
// taken at the first cell where it is open.
type Walker struct {
	col, row int
	tileSize int
	step     int
	wait     int
	dir      core.Action
	next     core.Action
	glyph    rune
	color    core.Color
}

// NewWalker places a walker at (col, row). It moves one cell every step
// ticks; a non-positive step means WalkerStep.
func NewWalker(col, row, tileSize, step int) *Walker {
	if step <= 0 {
		step = WalkerStep
	}
	return &Walker{
		col:      col,
		row:      row,
		tileSize: tileSize,
		step:     step,
		glyph:    'C',
		color:    core.ColorBrightYellow,
	}
}

// Move implements Mover.
func (w *Walker) Move(in core.InputFrame, m *level.Map) {
	for _, d := range directions {
		if in.Has(d.action) {
			w.next = d.action
		}
	}

	w.wait++
	if w.wait < w.step {
		return
	}
	w.wait = 0

	if w.next != core.ActionNone && w.open(w.next, m) {
		w.dir = w.next
		w.next = core.ActionNone
	}
	if w.dir == core.ActionNone || !w.open(w.dir, m) {
		return
	}
	dc, dr := delta(w.dir)
	w.col += dc
	w.row += dr
}

func (w *Walker) open(a core.Action, m *level.Map) bool {
	dc, dr := delta(a)
	return !m.Blocked(w.col+dc, w.row+dr)
}

// Cell implements Mover.
func (w *Walker) Cell() (col, row int) { return w.col, w.row }

// Direction returns the direction the walker is heading, or ActionNone.
func (w *Walker) Direction() core.Action { return w.dir }

// Sprite implements Mover.
func (w *Walker) Sprite() core.Sprite {
	return core.Sprite{
		Pos:   core.V(w.col*w.tileSize, w.row*w.tileSize),
		Glyph: w.glyph,
		Color: w.color,
	}
}

func delta(a core.Action) (dcol, drow int) {
	for _, d := range directions {
		if d.action == a {
			return d.dcol, d.dr
		}
	}
	return 0, 0
}

// Spawn returns the open slot closest to the middle of the map, scanning
// row-major on ties. ok is false when every slot is a wall.
func Spawn(m *level.Map) (col, row int, ok bool) {
	cc, cr := m.Width()/2, m.Height()/2
	best := -1
	for r := 0; r < m.Height(); r++ {
		for c := 0; c < m.Width(); c++ {
			if m.Blocked(c, r) {
				continue
			}
			d := abs(c-cc) + abs(r-cr)
			if best < 0 || d < best {
				best, col, row = d, c, r
			}
		}
	}
	return col, row, best >= 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
