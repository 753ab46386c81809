package tui

import (
	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Surface is a presentation surface backed by two cell buffers. Draw calls
// go to the back buffer and Present copies it to the front buffer, which is
// what the Bubble Tea view shows. Surface is used from the Bubble Tea event
// loop only.
type Surface struct {
	cfg    core.RuntimeConfig
	back   *core.Screen
	front  *core.Screen
	events []core.Event
	open   bool
	frames uint64
}

// NewSurface opens a surface sized to cfg.
func NewSurface(cfg core.RuntimeConfig) *Surface {
	return &Surface{
		cfg:   cfg,
		back:  core.NewScreen(cfg.Cols(), cfg.Rows()),
		front: core.NewScreen(cfg.Cols(), cfg.Rows()),
		open:  true,
	}
}

// Push queues an input event for the next PollEvent.
func (s *Surface) Push(ev core.Event) {
	if !s.open {
		return
	}
	s.events = append(s.events, ev)
}

// PollEvent returns the oldest queued event.
func (s *Surface) PollEvent() (core.Event, bool) {
	if len(s.events) == 0 {
		return core.Event{}, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

// IsOpen reports whether the surface accepts frames.
func (s *Surface) IsOpen() bool { return s.open }

// Close closes the surface and drops pending events.
func (s *Surface) Close() {
	s.open = false
	s.events = nil
}

// Clear blanks the back buffer.
func (s *Surface) Clear() { s.back.Clear() }

// Draw rasterizes p into the back buffer.
func (s *Surface) Draw(p core.Primitive) { s.back.Draw(p, s.cfg.CellSize) }

// Present makes the back buffer visible. Pacing comes from the tick
// command, so Present never blocks.
func (s *Surface) Present() {
	s.front.CopyFrom(s.back)
	s.frames++
}

// Frame returns the last presented frame.
func (s *Surface) Frame() *core.Screen { return s.front }

// Frames returns the number of presented frames.
func (s *Surface) Frames() uint64 { return s.frames }

// Config returns the parameters the surface was opened with.
func (s *Surface) Config() core.RuntimeConfig { return s.cfg }
