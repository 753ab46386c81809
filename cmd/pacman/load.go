package main

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vovakirdan/tui-pacman/internal/asset"
	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/level"
	"github.com/vovakirdan/tui-pacman/internal/telemetry"
	"github.com/vovakirdan/tui-pacman/internal/tile"
)

// session holds everything a game is started from. The assets outlive the
// map: close the map (through the game) before closing assets.
type session struct {
	cfg    config.GameConfig
	assets *asset.Store
	font   asset.Font
	mapID  string
	level  *level.Map
}

type loadOptions struct {
	configPath string
	assetsDir  string
	mapID      string
	mapFile    string
	sound      bool
}

// loadSession reads the configuration, opens the asset store and builds the
// map. Any failure aborts startup; nothing is left acquired on error.
func loadSession(ctx context.Context, opts loadOptions) (s *session, err error) {
	ctx, span := telemetry.Tracer("session").Start(ctx, "session.load")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store, err := openAssets(ctx, opts.assetsDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = store.Close()
		}
	}()

	font, err := store.Font(cfg.Title.Font)
	if err != nil {
		return nil, fmt.Errorf("load title font: %w", err)
	}
	if opts.sound {
		snd := cfg.Sounds
		if err := store.Require(snd.Intro, snd.Chomp, snd.Power, snd.Fruit); err != nil {
			return nil, fmt.Errorf("load sounds: %w", err)
		}
	}

	legend, err := tile.NewLegend(cfg.Tiles)
	if err != nil {
		return nil, fmt.Errorf("tile legend: %w", err)
	}

	mapID, rows, err := mapRows(opts, cfg.Map.Default)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("map.id", mapID))

	_, buildSpan := telemetry.Tracer("session").Start(ctx, "map.build")
	m, err := level.Build(rows, level.OptionsFrom(cfg.Map), legend, store)
	if err != nil {
		buildSpan.RecordError(err)
		buildSpan.End()
		return nil, fmt.Errorf("build map %q: %w", mapID, err)
	}
	buildSpan.SetAttributes(
		attribute.Int("map.tiles", m.Len()),
		attribute.Int("map.collectibles", m.Remaining()),
		attribute.Int("textures.live", store.Live()),
	)
	buildSpan.End()

	return &session{
		cfg:    cfg,
		assets: store,
		font:   font,
		mapID:  mapID,
		level:  m,
	}, nil
}

func openAssets(ctx context.Context, dir string) (*asset.Store, error) {
	_, span := telemetry.Tracer("session").Start(ctx, "assets.open")
	defer span.End()

	var (
		store *asset.Store
		err   error
	)
	if dir == "" {
		store, err = asset.Default()
	} else {
		span.SetAttributes(attribute.String("assets.dir", dir))
		store, err = asset.OpenDir(dir)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("open assets: %w", err)
	}
	span.SetAttributes(attribute.Int("assets.textures", len(store.TextureIDs())))
	return store, nil
}

// mapRows resolves the map text: an explicit file wins over a catalog id,
// which wins over the configured default.
func mapRows(opts loadOptions, fallback string) (string, []string, error) {
	if opts.mapFile != "" {
		rows, err := level.ReadFile(opts.mapFile)
		if err != nil {
			return "", nil, err
		}
		return opts.mapFile, rows, nil
	}

	id := opts.mapID
	if id == "" {
		id = fallback
	}
	if id == "" {
		return "", nil, errors.New("no map selected")
	}
	rows, err := level.Builtin().Rows(id)
	if err != nil {
		return "", nil, fmt.Errorf("%w (run 'pacman maps' to list maps)", err)
	}
	return id, rows, nil
}

// Close releases the map, then the assets.
func (s *session) Close() error {
	s.level.Destroy()
	return s.assets.Close()
}
