package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/game"
	"github.com/vovakirdan/tui-pacman/internal/platform/audio"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
	"github.com/vovakirdan/tui-pacman/internal/telemetry"

	// Backends register themselves.
	_ "github.com/vovakirdan/tui-pacman/internal/platform/term"
	_ "github.com/vovakirdan/tui-pacman/internal/platform/tui"
)

var (
	flagMap     string
	flagMapFile string
	flagBackend string
	flagConfig  string
	flagAssets  string
	flagSound   bool
	flagFPS     int
)

// HUD and help lines drawn below the map by the tea backend.
const hudLines = 2

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a map",
	Long: `Load a map and run it until the window is closed.

Controls:
  Arrows/WASD  - Move
  P/Esc        - Pause
  Q            - Quit
  Ctrl+C       - Close

Examples:
  pacman play
  pacman play --map arena
  pacman play --map-file ./my.map --backend tcell
  pacman play --config ./pacman.yaml --assets ./assets --sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMap, "map", "", "Built-in map id (default from config)")
	playCmd.Flags().StringVar(&flagMapFile, "map-file", "", "Path to a map text file")
	playCmd.Flags().StringVar(&flagBackend, "backend", "tea", "Presentation backend: tea, tcell")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagAssets, "assets", "", "Directory holding manifest.yaml and asset files")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Frame-rate cap (default from config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	if !registry.Exists(flagBackend) {
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q\n", flagBackend)
		fmt.Fprintln(os.Stderr, "Run 'pacman backends' to see available backends.")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, traced, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("tracing disabled", "err", err)
	} else {
		defer func() { _ = shutdown(context.Background()) }()
		logger.Debug("telemetry", "export", traced)
	}

	sess, err := loadSession(ctx, loadOptions{
		configPath: flagConfig,
		assetsDir:  flagAssets,
		mapID:      flagMap,
		mapFile:    flagMapFile,
		sound:      flagSound,
	})
	if err != nil {
		logger.Fatal("startup failed", "err", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Warn("close assets", "err", err)
		}
	}()

	cfg := sess.cfg.Runtime()
	if flagFPS > 0 {
		cfg.FrameRate = flagFPS
	}
	checkTerminal(cfg)

	// The backend owns the terminal from here on.
	gameLog := logger
	if f, err := openLogFile(flagLogFile); err == nil {
		defer f.Close()
		gameLog = newLogger(f, logger.GetLevel().String())
	} else {
		logger.Warn("logging to a file failed, game logs discarded", "err", err)
		gameLog = newLogger(io.Discard, "error")
	}

	backend, err := registry.Open(flagBackend, cfg)
	if err != nil {
		logger.Fatal("open backend", "backend", flagBackend, "err", err)
	}

	var player game.SoundPlayer = audio.Silent{}
	if flagSound {
		p := audio.NewPlayer(sess.assets, gameLog)
		if err := p.Init(); err != nil {
			gameLog.Warn("audio unavailable", "err", err)
		} else {
			defer p.Close()
			player = p
		}
	}

	var movers []game.Mover
	if col, row, ok := game.Spawn(sess.level); ok {
		movers = append(movers, game.NewWalker(col, row, sess.level.TileSize(), game.WalkerStep))
	} else {
		gameLog.Warn("no open slot to spawn on", "map", sess.mapID)
	}

	g, err := game.New(game.Options{
		Surface: backend,
		Map:     sess.level,
		MapID:   sess.mapID,
		Title:   sess.cfg.Window.Title,
		Font:    sess.font,
		Sounds:  sess.cfg.Sounds,
		Player:  player,
		Movers:  movers,
		Logger:  gameLog,
		YOffset: sess.cfg.Map.YOffset,
	})
	if err != nil {
		backend.Close()
		logger.Fatal("start game", "err", err)
	}
	defer g.Close()

	ctx, span := telemetry.Tracer("session").Start(ctx, "session.play")
	span.SetAttributes(
		attribute.String("session.id", g.ID()),
		attribute.String("map.id", g.MapID()),
		attribute.String("backend", flagBackend),
	)
	runErr := backend.Drive(ctx, g)
	span.SetAttributes(
		attribute.Int("session.score", g.Score()),
		attribute.Int64("session.ticks", int64(g.Ticks())),
	)
	span.End()

	summary := g.Summary()
	saveSession(summary, time.Since(g.StartedAt()))
	printSummary(summary)

	if runErr != nil && ctx.Err() == nil {
		logger.Fatal("game error", "err", runErr)
	}
}

// checkTerminal warns when the terminal cannot show the whole map.
func checkTerminal(cfg core.RuntimeConfig) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return
	}
	needW, needH := cfg.Cols(), cfg.Rows()
	if flagBackend == "tea" {
		needH += hudLines
	}
	if w < needW || h < needH {
		logger.Warn("terminal too small, the map will be clipped",
			"have", fmt.Sprintf("%dx%d", w, h),
			"need", fmt.Sprintf("%dx%d", needW, needH))
	}
}

func saveSession(s game.Summary, elapsed time.Duration) {
	store, err := openHistory()
	if err != nil {
		logger.Warn("could not open history database", "err", err)
		return
	}
	defer store.Close()

	best, _ := store.HighScore(s.MapID)
	if _, err := store.SaveSession(storage.Session{
		SessionID: s.ID,
		MapID:     s.MapID,
		Backend:   flagBackend,
		Score:     s.Score,
		Ticks:     s.Ticks,
		Consumed:  s.Consumed,
		Remaining: s.Remaining,
		Duration:  elapsed,
	}); err != nil {
		logger.Warn("could not save session", "err", err)
		return
	}
	if s.Score > best && s.Score > 0 {
		fmt.Printf("New high score on %s!\n", s.MapID)
	}
}

func printSummary(s game.Summary) {
	fmt.Printf("Map: %s  Score: %d  Eaten: %d  Left: %d  Frames: %d\n",
		s.MapID, s.Score, s.Consumed, s.Remaining, s.Ticks)
}
