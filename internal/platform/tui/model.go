package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/game"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

var hudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorBrightWhite.ANSI())).Bold(true)

// Model is the Bubble Tea model driving one session.
type Model struct {
	game     *game.Game
	surface  *Surface
	keys     KeyMap
	help     help.Model
	quitting bool
}

// NewModel creates a model that drives g on s.
func NewModel(g *game.Game, s *Surface, keys KeyMap) Model {
	return Model{
		game:    g,
		surface: s,
		keys:    keys,
		help:    help.New(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.surface.cfg.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if ev, ok := m.keys.Event(msg); ok {
			m.surface.Push(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick runs one game tick and schedules the next one.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.game.IsRunning() {
		m.quitting = true
		return m, tea.Quit
	}

	m.game.Update()
	m.game.Render()

	if !m.game.IsRunning() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.surface.cfg.FrameRate)
}

// View renders the last presented frame with the score line and key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	hud := fmt.Sprintf("SCORE %06d   LEFT %d", m.game.Score(), m.game.Remaining())
	return RenderScreen(m.surface.Frame()) + "\n" +
		hudStyle.Render(hud) + "  " + m.help.View(m.keys)
}

// Backend is the Bubble Tea presentation backend.
type Backend struct {
	*Surface
	keys    KeyMap
	options []tea.ProgramOption
}

// NewBackend opens a Bubble Tea backend sized to cfg.
func NewBackend(cfg core.RuntimeConfig, options ...tea.ProgramOption) *Backend {
	return &Backend{
		Surface: NewSurface(cfg),
		keys:    DefaultKeyMap(),
		options: options,
	}
}

// Drive runs the Bubble Tea program until the session stops or ctx is
// done. The surface is closed on return.
func (b *Backend) Drive(ctx context.Context, g *game.Game) error {
	defer b.Close()

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, b.options...)
	p := tea.NewProgram(NewModel(g, b.Surface, b.keys), opts...)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func init() {
	registry.Register("tea", "Bubble Tea, alternate screen", func(cfg core.RuntimeConfig) (registry.Backend, error) {
		return NewBackend(cfg), nil
	})
}
