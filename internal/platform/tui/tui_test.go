package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pacman/internal/asset"
	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/game"
	"github.com/vovakirdan/tui-pacman/internal/level"
	"github.com/vovakirdan/tui-pacman/internal/tile"
)

type stubSource struct{}

func (stubSource) Texture(id string) (asset.Texture, error) {
	return asset.Texture{ID: id, Glyph: '#', Color: core.ColorBlue}, nil
}

func (stubSource) Release(string) {}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		Title:     "PAC-MAN",
		ScreenW:   30,
		ScreenH:   50,
		CellSize:  10,
		FrameRate: 60,
	}
}

func newSession(t *testing.T, s *Surface) *game.Game {
	t.Helper()
	legend, err := tile.NewLegend(config.Default().Tiles)
	if err != nil {
		t.Fatalf("NewLegend: %v", err)
	}
	m, err := level.Build([]string{"1*1", "*0*", "1f1"}, level.Options{Width: 3, Height: 3, TileSize: 10}, legend, stubSource{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g, err := game.New(game.Options{
		Surface: s,
		Map:     m,
		Title:   "PAC",
		Font:    asset.Font{Color: core.ColorYellow},
		YOffset: 20,
	})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return g
}

func TestSurfaceBuffers(t *testing.T) {
	s := NewSurface(testConfig())
	if s.Frame().Width() != 3 || s.Frame().Height() != 5 {
		t.Fatalf("frame size = %dx%d, want 3x5", s.Frame().Width(), s.Frame().Height())
	}

	s.Draw(core.Sprite{Pos: core.V(10, 20), Glyph: '*', Color: core.ColorWhite})
	if s.Frame().Get(1, 2) == '*' {
		t.Error("draw visible before Present")
	}
	s.Present()
	if got := s.Frame().GetCell(1, 2); got.Rune != '*' || got.Color != core.ColorWhite {
		t.Errorf("presented cell = %+v", got)
	}
	s.Clear()
	s.Present()
	if s.Frame().Get(1, 2) != ' ' {
		t.Error("Clear did not blank the frame")
	}
	if s.Frames() != 2 {
		t.Errorf("frames = %d, want 2", s.Frames())
	}
}

func TestSurfaceEvents(t *testing.T) {
	s := NewSurface(testConfig())
	if _, ok := s.PollEvent(); ok {
		t.Fatal("event on empty queue")
	}
	s.Push(core.ActionEvent(core.ActionPause))
	s.Push(core.CloseEvent())

	if ev, ok := s.PollEvent(); !ok || ev.Action != core.ActionPause {
		t.Errorf("first event = %+v, %v", ev, ok)
	}
	if ev, ok := s.PollEvent(); !ok || ev.Kind != core.EventClose {
		t.Errorf("second event = %+v, %v", ev, ok)
	}

	s.Close()
	s.Push(core.CloseEvent())
	if _, ok := s.PollEvent(); ok {
		t.Error("closed surface queued an event")
	}
	if s.IsOpen() {
		t.Error("surface open after Close")
	}
}

func TestKeyMap(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Event
		ok   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionEvent(core.ActionUp), true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.ActionEvent(core.ActionLeft), true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.ActionEvent(core.ActionPause), true},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionEvent(core.ActionPause), true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionEvent(core.ActionQuit), true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.CloseEvent(), true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, core.Event{}, false},
	}
	for _, tt := range tests {
		got, ok := keys.Event(tt.msg)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Event(%q) = %+v, %v; want %+v, %v", tt.msg.String(), got, ok, tt.want, tt.ok)
		}
	}
}

func TestModelTicksAndQuits(t *testing.T) {
	s := NewSurface(testConfig())
	g := newSession(t, s)
	var model tea.Model = NewModel(g, s, DefaultKeyMap())

	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		model, cmd = model.Update(TickMsg{})
		if cmd == nil {
			t.Fatalf("tick %d: no follow-up command", i)
		}
	}
	if g.Ticks() != 3 || s.Frames() != 3 {
		t.Fatalf("ticks=%d frames=%d, want 3", g.Ticks(), s.Frames())
	}

	view := model.View()
	if !strings.Contains(view, "SCORE 000000") || !strings.Contains(view, "LEFT 5") {
		t.Errorf("view missing HUD:\n%s", view)
	}
	if !strings.Contains(view, "P A C") && !strings.Contains(view, "PAC") {
		t.Errorf("view missing title:\n%s", view)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	model, cmd := model.Update(TickMsg{})
	if cmd == nil {
		t.Fatal("no command after quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("model did not quit after the session stopped")
	}
	if g.State() != game.StateStopped {
		t.Errorf("state = %s, want Stopped", g.State())
	}
	if model.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorBlue)
	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output %q missing %q", out, want)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("rendered %d newlines, want 1", strings.Count(out, "\n"))
	}
}
