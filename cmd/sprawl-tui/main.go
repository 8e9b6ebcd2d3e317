package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"crimson-sprawl/internal/app"
	"crimson-sprawl/internal/growth"
	"crimson-sprawl/internal/logging"
	"crimson-sprawl/internal/tui"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file (the screen is busy)")
	flag.Parse()

	if err := run(cfg, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "sprawl-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config, logPath string) error {
	settings, err := cfg.Resolve()
	if err != nil {
		return err
	}
	logger, err := logging.ToFile(settings.File.Logging, logPath)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	defer screen.Fini()

	chime, err := tui.NewChime(settings.File.Terminal.Chime)
	if err != nil {
		logger.Warn("audio unavailable, chime disabled", zap.Error(err))
	}
	defer chime.Close()

	world := growth.NewWorld(settings.Growth, growth.WithLogger(logger))
	viewer := tui.NewViewer(screen, world, settings.Schedule(), chime, settings.File.Terminal.FrameInterval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("terminal viewer started", zap.String("profile", world.Name()))
	if err := viewer.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
