package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/game"
)

type nullBackend struct {
	cfg  core.RuntimeConfig
	open bool
}

func (b *nullBackend) PollEvent() (core.Event, bool) { return core.Event{}, false }
func (b *nullBackend) IsOpen() bool { return b.open }
func (b *nullBackend) Close() { b.open = false }
func (b *nullBackend) Clear() {}
func (b *nullBackend) Draw(core.Primitive) {}
func (b *nullBackend) Present() {}
func (b *nullBackend) Drive(ctx context.Context, g *game.Game) error { return game.Run(ctx, g) }

func TestRegisterOpenList(t *testing.T) {
	Register("test-null", "Null backend", func(cfg core.RuntimeConfig) (Backend, error) {
		return &nullBackend{cfg: cfg, open: true}, nil
	})
	errOpen := errors.New("no terminal")
	Register("test-broken", "Broken backend", func(core.RuntimeConfig) (Backend, error) {
		return nil, errOpen
	})

	if !Exists("test-null") || Exists("test-missing") {
		t.Fatal("Exists mismatch")
	}

	cfg := core.DefaultConfig()
	b, err := Open("test-null", cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if nb := b.(*nullBackend); nb.cfg != cfg || !nb.IsOpen() {
		t.Errorf("backend opened with %+v", nb.cfg)
	}

	if _, err := Open("test-broken", cfg); !errors.Is(err, errOpen) {
		t.Errorf("Open broken error = %v, want wrapped errOpen", err)
	}
	if _, err := Open("test-missing", cfg); err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("Open missing error = %v", err)
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List not sorted: %v", list)
		}
	}
	found := false
	for _, info := range list {
		if info.ID == "test-null" && info.Title == "Null backend" {
			found = true
		}
	}
	if !found {
		t.Errorf("List = %v, missing test-null", list)
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	f := func(core.RuntimeConfig) (Backend, error) { return &nullBackend{open: true}, nil }
	Register("test-dup", "dup", f)

	defer func() {
		if recover() == nil {
			t.Error("second Register did not panic")
		}
	}()
	Register("test-dup", "dup", f)
}
