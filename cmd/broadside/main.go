// cmd/broadside/main.go
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-broadside/pkg/config"
	"github.com/opd-ai/go-broadside/pkg/engine"
	"github.com/opd-ai/go-broadside/pkg/event"
	"github.com/opd-ai/go-broadside/pkg/input"
	"github.com/opd-ai/go-broadside/pkg/logging"
	engorender "github.com/opd-ai/go-broadside/pkg/render/engo"
	"github.com/opd-ai/go-broadside/pkg/render/sound"
	"github.com/opd-ai/go-broadside/pkg/render/tui"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal' or 'engo'")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (Engo only)")
	width := flag.Int("width", 1024, "Window width (Engo only)")
	height := flag.Int("height", 768, "Window height (Engo only)")
	logPath := flag.String("log", "", "Write logs to this file (terminal renderer logs nowhere by default)")
	withSound := flag.Bool("sound", false, "Play tones for shots, hits and the result")
	flag.Parse()

	logger, closeLog := newLogger(*renderer, *logPath)
	defer closeLog()
	ctx := context.Background()

	gameConfig, err := loadConfig(*configPath, logger)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	bus := event.NewEventBus()
	if *withSound {
		player, err := sound.NewPlayer(logger)
		if err != nil {
			logger.Warn(ctx, "Sound disabled", "error", err.Error())
		} else {
			player.Attach(bus)
		}
	}

	switch *renderer {
	case "engo":
		startEngoRenderer(gameConfig, bus, logger, *width, *height, *fullscreen)
	case "terminal":
		if err := startTerminalRenderer(gameConfig, bus, logger); err != nil {
			logger.Error(ctx, "Terminal client failed", err)
			os.Exit(1)
		}
	default:
		log.Fatalf("unknown renderer %q", *renderer)
	}
}

// newLogger picks the log destination. The terminal client owns stdout,
// so it only logs when given a file.
func newLogger(renderer, path string) (*logging.Logger, func()) {
	level := logging.ParseLevel(os.Getenv(logging.LevelEnvVar))
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		return logging.NewLoggerWithWriter(f, level), func() { f.Close() }
	}
	if renderer == "terminal" {
		return logging.NewLoggerWithWriter(io.Discard, level), func() {}
	}
	return logging.NewLogger(), func() {}
}

// loadConfig reads path, or only defaults and environment overrides when
// path does not exist.
func loadConfig(path string, logger *logging.Logger) (*config.GameConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(context.Background(), "Configuration file not found, using default configuration",
			"config_path", path,
		)
		path = ""
	}
	return config.LoadConfig(path)
}

// startEngoRenderer starts the Engo GUI client
func startEngoRenderer(cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger, width, height int, fullscreen bool) {
	scene := engorender.NewBattleScene(cfg, bus, logger)

	opts := engo.RunOptions{
		Title:      "Broadside",
		Width:      width,
		Height:     height,
		Fullscreen: fullscreen,
		VSync:      true,
	}

	engo.Run(opts, scene)
}

// startTerminalRenderer plays in the current terminal until the user quits
// or the process is interrupted.
func startTerminalRenderer(cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger) error {
	match, err := engine.NewMatch(cfg, engine.WithEventBus(bus), engine.WithLogger(logger))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "failed to open terminal")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "failed to initialize terminal")
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := tui.NewClient(screen, match, input.NewKeyState(0, nil), logger)
	return client.Run(ctx)
}
