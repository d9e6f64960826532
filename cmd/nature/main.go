//go:build ebiten

package main

import (
	"errors"
	"log"
	"log/slog"
	"os"

	"nature-ca/internal/app"
	"nature-ca/internal/config"
	"nature-ca/internal/render"
	"nature-ca/internal/sims/nature"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.FromArgs(os.Args[0], os.Args[1:], nil)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	catalog, err := cfg.LoadCatalog()
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	world, err := nature.NewWithConfig(cfg.NatureConfig(), catalog)
	if err != nil {
		log.Fatalf("world: %v", err)
	}
	logger.Info("world ready", "tiles", catalog.Len(), "width", world.Size().W, "height", world.Size().H)

	assets := render.LoadAssets(cfg.Window.AssetDir, catalog, logger)
	game := app.New(world, assets, app.Options{
		Scale:        cfg.Window.Scale,
		TileWidth:    cfg.Window.TileWidth,
		TileHeight:   cfg.Window.TileHeight,
		TickInterval: cfg.Simulation.TickInterval,
		Autostart:    cfg.Simulation.Autostart,
		Seed:         cfg.Simulation.Seed,
	})

	ebiten.SetWindowTitle("nature-ca")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1040, 640)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
