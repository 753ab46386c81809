// Package game runs one play session: it owns the map for the session's
// lifetime and drives the per-tick input, update and render sequence against
// a presentation surface.
package game

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pacman/internal/asset"
	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/level"
	"github.com/vovakirdan/tui-pacman/internal/tile"
)

// State is the session lifecycle state.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateStopped
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Surface is the presentation surface a session draws into.
type Surface interface {
	// PollEvent returns the next pending input event, or false when none
	// is pending. It never blocks.
	PollEvent() (core.Event, bool)
	IsOpen() bool
	Close()
	Clear()
	Draw(p core.Primitive)
	// Present shows the frame. The surface enforces its frame-rate cap here.
	Present()
}

// SoundPlayer triggers named sound effects.
type SoundPlayer interface {
	Play(id string)
}

var (
	ErrClosedSurface = errors.New("game: surface is not open")
	ErrNoMap         = errors.New("game: no map")
)

const pausedText = "PAUSED"

// Options configures a new session.
type Options struct {
	Surface Surface
	Map     *level.Map
	MapID   string
	Title   string
	Font    asset.Font
	Sounds  config.SoundsConfig
	Player  SoundPlayer // nil plays nothing
	Movers  []Mover     // Moved and resolved every running tick
	Logger  *log.Logger // nil discards
	YOffset int         // Height of the title band above the map, in pixels
}

// Game is one play session.
type Game struct {
	id      string
	mapID   string
	surface Surface
	level   *level.Map
	title   core.Label
	paused  core.Label
	offset  core.Vec2
	sounds  config.SoundsConfig
	player  SoundPlayer
	movers  []Mover
	logger  *log.Logger

	state     State
	isPaused  bool
	input     core.InputFrame
	ticks     uint64
	score     int
	consumed  int
	startedAt time.Time
	closed    bool
}

// New starts a session. The map is owned by the returned Game and released
// by Close. On error the map is left untouched.
func New(opts Options) (*Game, error) {
	if opts.Map == nil {
		return nil, ErrNoMap
	}
	if opts.Surface == nil || !opts.Surface.IsOpen() {
		return nil, ErrClosedSurface
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == nil {
		player = silent{}
	}

	tileSize := opts.Map.TileSize()
	titleY := (opts.YOffset - tileSize) / 2
	if titleY < 0 {
		titleY = 0
	}
	mapH := opts.Map.Height() * tileSize

	g := &Game{
		id:      uuid.NewString(),
		mapID:   opts.MapID,
		surface: opts.Surface,
		level:   opts.Map,
		title: core.Label{
			Pos:      core.V(0, titleY),
			Text:     opts.Font.Apply(opts.Title),
			Color:    opts.Font.Color,
			Centered: true,
		},
		paused: core.Label{
			Pos:      core.V(0, opts.YOffset+mapH/2),
			Text:     pausedText,
			Color:    core.ColorBrightWhite,
			Centered: true,
		},
		offset:    core.V(0, opts.YOffset),
		sounds:    opts.Sounds,
		player:    player,
		movers:    opts.Movers,
		logger:    logger,
		input:     core.NewInputFrame(),
		startedAt: time.Now(),
	}

	g.state = StateRunning
	g.logger.Debug("session started", "id", g.id, "map", g.mapID, "tiles", g.level.Len())
	g.play(g.sounds.Intro)
	return g, nil
}

// Update runs the input and simulation half of one tick: it drains pending
// events, advances every tile, then moves each mover and consumes what it
// stepped on. A close event closes the surface, which
// IsRunning observes from the next tick on.
func (g *Game) Update() {
	if g.state != StateRunning || !g.surface.IsOpen() {
		return
	}

	g.input.Clear()
	for {
		ev, ok := g.surface.PollEvent()
		if !ok {
			break
		}
		g.handle(ev)
	}
	if !g.surface.IsOpen() {
		return
	}

	if !g.isPaused {
		g.level.ForEach(func(_, _ int, t *tile.Tile) {
			t.Advance()
		})
		for _, mv := range g.movers {
			mv.Move(g.input, g.level)
			g.Consume(mv.Cell())
		}
	}
	g.ticks++
}

func (g *Game) handle(ev core.Event) {
	switch ev.Kind {
	case core.EventClose:
		g.logger.Debug("close requested", "tick", g.ticks)
		g.surface.Close()
	case core.EventAction:
		g.input.Set(ev.Action)
		switch ev.Action {
		case core.ActionQuit:
			g.logger.Debug("quit requested", "tick", g.ticks)
			g.surface.Close()
		case core.ActionPause:
			g.isPaused = !g.isPaused
			g.logger.Debug("pause toggled", "paused", g.isPaused)
		}
	}
}

// Render draws one frame: title, every tile, the movers, the pause banner
// when paused.
func (g *Game) Render() {
	if g.state != StateRunning || !g.surface.IsOpen() {
		return
	}

	g.surface.Clear()
	g.surface.Draw(g.title)
	g.level.ForEach(func(_, _ int, t *tile.Tile) {
		g.surface.Draw(core.Translate(t.Sprite(), g.offset))
	})
	for _, mv := range g.movers {
		g.surface.Draw(core.Translate(mv.Sprite(), g.offset))
	}
	if g.isPaused {
		g.surface.Draw(g.paused)
	}
	g.surface.Present()
}

// IsRunning reports whether the session is still running. Once the surface
// reports itself closed the session stops for good.
func (g *Game) IsRunning() bool {
	if g.state == StateRunning && !g.surface.IsOpen() {
		g.state = StateStopped
		g.logger.Debug("session stopped", "id", g.id, "ticks", g.ticks, "score", g.score)
	}
	return g.state == StateRunning
}

// Consume resolves a mover entering slot (col, row). A collectible there is
// removed from the map, its points are added to the score and its sound is
// triggered. It returns the consumed kind, or false when nothing was eaten.
func (g *Game) Consume(col, row int) (tile.Kind, bool) {
	if g.state != StateRunning {
		return 0, false
	}
	t := g.level.At(col, row)
	if t == nil || !t.Kind().Collectible() {
		return 0, false
	}

	kind := t.Kind()
	g.level.Remove(col, row)
	g.score += kind.Points()
	g.consumed++

	switch kind {
	case tile.KindPowerPellet:
		g.play(g.sounds.Power)
	case tile.KindFruit:
		g.play(g.sounds.Fruit)
	default:
		g.play(g.sounds.Chomp)
	}
	g.logger.Debug("consumed", "kind", kind, "col", col, "row", row, "score", g.score)
	return kind, true
}

func (g *Game) play(id string) {
	if id != "" {
		g.player.Play(id)
	}
}

// Close releases the map. Calling it again is a no-op.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.level.Destroy()
}

// ID returns the unique session id.
func (g *Game) ID() string { return g.id }

// MapID returns the id of the map being played.
func (g *Game) MapID() string { return g.mapID }

// State returns the lifecycle state.
func (g *Game) State() State { return g.state }

// Paused reports whether tile animation is suspended.
func (g *Game) Paused() bool { return g.isPaused }

// Input returns the actions polled during the last Update.
func (g *Game) Input() core.InputFrame { return g.input }

// Ticks returns the number of completed update ticks.
func (g *Game) Ticks() uint64 { return g.ticks }

// Score returns the points collected so far.
func (g *Game) Score() int { return g.score }

// Consumed returns the number of collectibles eaten.
func (g *Game) Consumed() int { return g.consumed }

// Remaining returns the number of collectibles still on the map.
func (g *Game) Remaining() int { return g.level.Remaining() }

// StartedAt returns when the session entered Running.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// Map returns the map owned by the session.
func (g *Game) Map() *level.Map { return g.level }

type silent struct{}

func (silent) Play(string) {}
