//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"crimson-sprawl/internal/app"
	"crimson-sprawl/internal/growth"
	"crimson-sprawl/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const hudWidth = 240

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	settings, err := cfg.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(settings.File.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	world := growth.NewWorld(settings.Growth, growth.WithLogger(logger))
	display := settings.File.Display
	panel := 0
	if display.ShowHUD {
		panel = hudWidth
	}
	game := app.New(world, settings.Schedule(), display.Scale, panel, display.ShowOverlay)
	size := world.Size()

	logger.Info("starting sprawl",
		zap.String("profile", world.Name()),
		zap.Int("width", size.W),
		zap.Int("height", size.H),
		zap.Int("scale", display.Scale))

	ebiten.SetWindowTitle("crimson-sprawl - " + world.Name())
	ebiten.SetTPS(display.TPS)
	ebiten.SetWindowSize(size.W*display.Scale+panel, size.H*display.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game exited", zap.Error(err))
	}
}
