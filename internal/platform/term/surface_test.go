package term

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-pacman/internal/asset"
	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/game"
	"github.com/vovakirdan/tui-pacman/internal/level"
	"github.com/vovakirdan/tui-pacman/internal/tile"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	ss.SetSize(40, 20)
	return ss
}

func testConfig(frameRate int) core.RuntimeConfig {
	return core.RuntimeConfig{
		Title:     "PAC-MAN",
		ScreenW:   40,
		ScreenH:   20,
		CellSize:  1,
		FrameRate: frameRate,
	}
}

// waitEvent polls until the pump delivers an event or the deadline passes.
func waitEvent(t *testing.T, s *Surface) core.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ev, ok := s.PollEvent(); ok {
			return ev
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no event delivered")
	return core.Event{}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want core.Event
		ok   bool
	}{
		{"ctrl+c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), core.CloseEvent(), true},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), core.ActionEvent(core.ActionPause), true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), core.ActionEvent(core.ActionQuit), true},
		{"p", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), core.ActionEvent(core.ActionPause), true},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), core.ActionEvent(core.ActionLeft), true},
		{"d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), core.ActionEvent(core.ActionRight), true},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), core.Event{}, false},
		{"resize", tcell.NewEventResize(10, 10), core.Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.ev)
			if ok != tt.ok || got != tt.want {
				t.Errorf("translate = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPumpDeliversEvents(t *testing.T) {
	ss := newSimScreen(t)
	s := NewWithScreen(ss, testConfig(0))
	defer s.Close()

	if _, ok := s.PollEvent(); ok {
		t.Fatal("event before any input")
	}
	if err := ss.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	if ev := waitEvent(t, s); ev != core.ActionEvent(core.ActionPause) {
		t.Errorf("event = %+v, want pause", ev)
	}
}

func TestDrawAndPresent(t *testing.T) {
	ss := newSimScreen(t)
	s := NewWithScreen(ss, testConfig(0))
	defer s.Close()

	s.Clear()
	s.Draw(core.Sprite{Pos: core.V(3, 4), Glyph: '●', Color: core.ColorBrightWhite})
	s.Draw(core.Label{Pos: core.V(0, 0), Text: "PAC", Color: core.ColorYellow, Centered: true})
	s.Present()

	r, _, _, _ := ss.GetContent(3, 4)
	if r != '●' {
		t.Errorf("sprite cell = %q, want '●'", r)
	}
	var title strings.Builder
	for x := 18; x < 21; x++ {
		r, _, _, _ := ss.GetContent(x, 0)
		title.WriteRune(r)
	}
	if title.String() != "PAC" {
		t.Errorf("centered title = %q, want PAC", title.String())
	}
}

func TestPresentEnforcesFrameCap(t *testing.T) {
	ss := newSimScreen(t)
	s := NewWithScreen(ss, testConfig(100))
	defer s.Close()

	start := time.Now()
	for i := 0; i < 5; i++ {
		s.Present()
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("5 frames at 100 fps took %v, want at least 40ms", elapsed)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	ss := newSimScreen(t)
	s := NewWithScreen(ss, testConfig(0))
	s.Close()
	s.Close()
	if s.IsOpen() {
		t.Error("open after Close")
	}
	if _, ok := s.PollEvent(); ok {
		t.Error("closed surface returned an event")
	}
	s.Draw(core.Sprite{Glyph: 'x'})
	s.Present()
}

type stubSource struct{}

func (stubSource) Texture(id string) (asset.Texture, error) {
	return asset.Texture{ID: id, Glyph: '#'}, nil
}

func (stubSource) Release(string) {}

func TestDriveStopsOnQuitKey(t *testing.T) {
	ss := newSimScreen(t)
	s := NewWithScreen(ss, testConfig(200))

	legend, err := tile.NewLegend(config.Default().Tiles)
	if err != nil {
		t.Fatalf("NewLegend: %v", err)
	}
	m, err := level.Build([]string{"1*1", "*0*", "1f1"}, level.Options{Width: 3, Height: 3, TileSize: 1}, legend, stubSource{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g, err := game.New(game.Options{Surface: s, Map: m, Title: "PAC", YOffset: 2})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = ss.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Drive(ctx, g); err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if g.State() != game.StateStopped {
		t.Errorf("state = %s, want Stopped", g.State())
	}
	if g.Ticks() == 0 {
		t.Error("no ticks ran")
	}
	if s.IsOpen() {
		t.Error("surface open after Drive")
	}
}
