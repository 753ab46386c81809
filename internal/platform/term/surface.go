// Package term provides a presentation surface drawn directly with tcell.
// Unlike the Bubble Tea backend it paces itself: Present holds each frame
// until the frame-rate cap allows the next one.
package term

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/game"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

// eventBuffer bounds the input events queued between two ticks.
const eventBuffer = 64

// Surface implements game.Surface on a tcell screen.
type Surface struct {
	screen   tcell.Screen
	cfg      core.RuntimeConfig
	styles   map[core.Color]tcell.Style
	events   chan core.Event
	done     chan struct{}
	resized  atomic.Bool
	interval time.Duration
	last     time.Time
	open     bool
	once     sync.Once
}

// New opens the terminal and returns a surface drawing on it.
func New(cfg core.RuntimeConfig) (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(screen, cfg), nil
}

// NewWithScreen wraps an initialized tcell screen. The surface takes
// ownership of the screen and finalizes it on Close.
func NewWithScreen(screen tcell.Screen, cfg core.RuntimeConfig) *Surface {
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.HideCursor()
	screen.Clear()

	s := &Surface{
		screen: screen,
		cfg:    cfg,
		styles: paletteStyles(),
		events: make(chan core.Event, eventBuffer),
		done:   make(chan struct{}),
		open:   true,
	}
	if cfg.FrameRate > 0 {
		s.interval = time.Second / time.Duration(cfg.FrameRate)
	}

	go s.pump()
	return s
}

func paletteStyles() map[core.Color]tcell.Style {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	styles := map[core.Color]tcell.Style{
		core.ColorDefault: base.Foreground(tcell.ColorWhite),
	}
	for _, c := range core.Palette() {
		n, err := strconv.Atoi(c.ANSI())
		if err != nil {
			continue
		}
		styles[c] = base.Foreground(tcell.PaletteColor(n))
	}
	return styles
}

// pump moves terminal events into the event queue until the screen is
// finalized.
func (s *Surface) pump() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.resized.Store(true)
			continue
		}
		e, ok := translate(ev)
		if !ok {
			continue
		}
		select {
		case s.events <- e:
		case <-s.done:
			return
		}
	}
}

// translate maps a tcell event onto a surface event.
func translate(ev tcell.Event) (core.Event, bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return core.Event{}, false
	}

	switch key.Key() {
	case tcell.KeyCtrlC:
		return core.CloseEvent(), true
	case tcell.KeyEscape:
		return core.ActionEvent(core.ActionPause), true
	case tcell.KeyUp:
		return core.ActionEvent(core.ActionUp), true
	case tcell.KeyDown:
		return core.ActionEvent(core.ActionDown), true
	case tcell.KeyLeft:
		return core.ActionEvent(core.ActionLeft), true
	case tcell.KeyRight:
		return core.ActionEvent(core.ActionRight), true
	case tcell.KeyRune:
		switch key.Rune() {
		case 'q':
			return core.ActionEvent(core.ActionQuit), true
		case 'p':
			return core.ActionEvent(core.ActionPause), true
		case 'w':
			return core.ActionEvent(core.ActionUp), true
		case 's':
			return core.ActionEvent(core.ActionDown), true
		case 'a':
			return core.ActionEvent(core.ActionLeft), true
		case 'd':
			return core.ActionEvent(core.ActionRight), true
		}
	}
	return core.Event{}, false
}

// PollEvent returns the next queued event without blocking.
func (s *Surface) PollEvent() (core.Event, bool) {
	if !s.open {
		return core.Event{}, false
	}
	select {
	case ev := <-s.events:
		return ev, true
	default:
		return core.Event{}, false
	}
}

// IsOpen reports whether the terminal is still owned by the surface.
func (s *Surface) IsOpen() bool { return s.open }

// Close restores the terminal. It is safe to call more than once.
func (s *Surface) Close() {
	s.once.Do(func() {
		s.open = false
		close(s.done)
		s.screen.Fini()
	})
}

// Clear blanks the frame.
func (s *Surface) Clear() {
	if s.open {
		s.screen.Clear()
	}
}

// Draw puts p into the frame. Positions are in pixels.
func (s *Surface) Draw(p core.Primitive) {
	if !s.open {
		return
	}
	switch v := p.(type) {
	case core.Sprite:
		x, y := v.Pos.Cell(s.cfg.CellSize)
		s.screen.SetContent(x, y, v.Glyph, nil, s.style(v.Color))
	case core.Label:
		x, y := v.Pos.Cell(s.cfg.CellSize)
		runes := []rune(v.Text)
		if v.Centered {
			x = (s.cfg.Cols() - len(runes)) / 2
		}
		style := s.style(v.Color)
		for i, r := range runes {
			s.screen.SetContent(x+i, y, r, nil, style)
		}
	}
}

func (s *Surface) style(c core.Color) tcell.Style {
	if st, ok := s.styles[c]; ok {
		return st
	}
	return s.styles[core.ColorDefault]
}

// Present shows the frame, then waits out the rest of the frame interval.
func (s *Surface) Present() {
	if !s.open {
		return
	}
	if s.resized.Swap(false) {
		s.screen.Sync()
	} else {
		s.screen.Show()
	}

	if s.interval <= 0 {
		return
	}
	now := time.Now()
	if wait := s.last.Add(s.interval).Sub(now); wait > 0 {
		time.Sleep(wait)
		now = now.Add(wait)
	}
	s.last = now
}

// Drive runs g on this surface until it stops or ctx is done. The terminal
// is restored on return.
func (s *Surface) Drive(ctx context.Context, g *game.Game) error {
	defer s.Close()
	return game.Run(ctx, g)
}

func init() {
	registry.Register("tcell", "tcell, self-paced", func(cfg core.RuntimeConfig) (registry.Backend, error) {
		s, err := New(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
