package game

import (
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/asset"
	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/level"
	"github.com/vovakirdan/tui-pacman/internal/tile"
)

// scriptedMover visits a fixed list of cells, one per tick, then stays put.
type scriptedMover struct {
	path  [][2]int
	i     int
	moves int
}

func (m *scriptedMover) Move(core.InputFrame, *level.Map) {
	m.moves++
	if m.i < len(m.path)-1 {
		m.i++
	}
}

func (m *scriptedMover) Cell() (int, int) { return m.path[m.i][0], m.path[m.i][1] }

func (m *scriptedMover) Sprite() core.Sprite {
	return core.Sprite{Pos: core.V(m.path[m.i][0]*10, m.path[m.i][1]*10), Glyph: 'C'}
}

func newGameWithMovers(t *testing.T, surface *fakeSurface, player SoundPlayer, movers ...Mover) *Game {
	t.Helper()
	g, err := New(Options{
		Surface: surface,
		Map:     buildMap(t, &countingSource{}),
		MapID:   "fixture",
		Title:   "PAC-MAN",
		Font:    asset.Font{ID: "emulogic", Color: core.ColorYellow},
		Sounds:  config.Default().Sounds,
		Player:  player,
		Movers:  movers,
		YOffset: 20,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestUpdateResolvesMovers(t *testing.T) {
	player := &recordingPlayer{}
	surface := newFakeSurface()
	// Starts on a wall, then food, pellet, fruit.
	mover := &scriptedMover{path: [][2]int{{0, 0}, {1, 0}, {1, 1}, {1, 2}}}
	g := newGameWithMovers(t, surface, player, mover)
	before := g.Remaining()

	for i := 0; i < 4; i++ {
		g.Update()
	}

	if g.Score() != 160 {
		t.Errorf("score = %d, want 160", g.Score())
	}
	if g.Consumed() != 3 || g.Remaining() != before-3 {
		t.Errorf("consumed = %d remaining = %d, want 3 and %d", g.Consumed(), g.Remaining(), before-3)
	}
	want := []string{"intro", "chomp", "power", "fruit"}
	if len(player.played) != len(want) {
		t.Fatalf("played = %v, want %v", player.played, want)
	}
	for i := range want {
		if player.played[i] != want[i] {
			t.Errorf("played[%d] = %q, want %q", i, player.played[i], want[i])
		}
	}

	s := g.Summary()
	if s.Score != 160 || s.Consumed != 3 {
		t.Errorf("summary = %+v", s)
	}
}

func TestPausedMoversStayPut(t *testing.T) {
	surface := newFakeSurface()
	mover := &scriptedMover{path: [][2]int{{1, 1}, {1, 0}}}
	g := newGameWithMovers(t, surface, nil, mover)

	surface.push(core.ActionEvent(core.ActionPause))
	g.Update()
	g.Update()
	if mover.moves != 0 {
		t.Errorf("moves while paused = %d, want 0", mover.moves)
	}
	if g.Score() != 0 {
		t.Errorf("score while paused = %d, want 0", g.Score())
	}
}

func TestRenderDrawsMoversAfterTiles(t *testing.T) {
	surface := newFakeSurface()
	mover := &scriptedMover{path: [][2]int{{1, 1}}}
	g := newGameWithMovers(t, surface, nil, mover)

	g.Update() // eats the pellet under the mover
	g.Render()

	if len(surface.frame) != 1+8+1 {
		t.Fatalf("drew %d primitives, want 10", len(surface.frame))
	}
	last, ok := surface.frame[len(surface.frame)-1].(core.Sprite)
	if !ok || last.Glyph != 'C' || last.Pos != core.V(10, 30) {
		t.Errorf("last primitive = %+v, want mover sprite at (10,30)", surface.frame[len(surface.frame)-1])
	}
}

func TestWalkerSteering(t *testing.T) {
	m := buildMap(t, &countingSource{})
	col, row, ok := Spawn(m)
	if !ok || col != 1 || row != 1 {
		t.Fatalf("Spawn = (%d,%d,%v), want (1,1,true)", col, row, ok)
	}
	w := NewWalker(col, row, 10, 1)

	press := func(a core.Action) core.InputFrame {
		in := core.NewInputFrame()
		if a != core.ActionNone {
			in.Set(a)
		}
		return in
	}

	steps := []struct {
		press    core.Action
		col, row int
	}{
		{core.ActionUp, 1, 0},    // into food
		{core.ActionNone, 1, 0},  // edge of the grid stops it
		{core.ActionLeft, 1, 0},  // wall at (0,0): queued
		{core.ActionDown, 1, 1},  // replaces the queued turn
		{core.ActionNone, 1, 2},  // keeps heading down
		{core.ActionNone, 1, 2},  // edge again
		{core.ActionRight, 1, 2}, // wall at (2,2)
		{core.ActionUp, 1, 1},    // turn back
		{core.ActionRight, 2, 1}, // open to the right
	}
	for i, s := range steps {
		w.Move(press(s.press), m)
		if c, r := w.Cell(); c != s.col || r != s.row {
			t.Fatalf("step %d (%s): at (%d,%d), want (%d,%d)", i, s.press, c, r, s.col, s.row)
		}
	}
	if w.Direction() != core.ActionRight {
		t.Errorf("direction = %s, want Right", w.Direction())
	}
	if got := w.Sprite().Pos; got != core.V(20, 10) {
		t.Errorf("sprite at %v, want (20,10)", got)
	}
}

func TestWalkerStep(t *testing.T) {
	m := buildMap(t, &countingSource{})
	w := NewWalker(1, 1, 10, 3)
	in := core.NewInputFrame()
	in.Set(core.ActionRight)

	w.Move(in, m)
	w.Move(core.NewInputFrame(), m)
	if c, _ := w.Cell(); c != 1 {
		t.Fatalf("moved after 2 ticks to col %d", c)
	}
	w.Move(core.NewInputFrame(), m)
	if c, _ := w.Cell(); c != 2 {
		t.Errorf("col after 3 ticks = %d, want 2", c)
	}

	if NewWalker(0, 0, 10, 0).step != WalkerStep {
		t.Error("non-positive step not defaulted")
	}
}

func TestSpawnAllWalls(t *testing.T) {
	legend, err := tile.NewLegend(config.Default().Tiles)
	if err != nil {
		t.Fatalf("NewLegend: %v", err)
	}
	m, err := level.Build([]string{"12", "34"}, level.Options{Width: 2, Height: 2, TileSize: 10}, legend, &countingSource{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, _, ok := Spawn(m); ok {
		t.Error("Spawn found an open slot in a map of walls")
	}
}
