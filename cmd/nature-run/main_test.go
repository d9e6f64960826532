package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"nature-ca/internal/config"
)

func TestSetupRejectedWorldLeavesNoCSV(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	csv := filepath.Join(t.TempDir(), "out", "stats.csv")
	cfg.Telemetry.CSV = csv
	cfg.Generator.Base = "lava"

	if _, _, err := setup(cfg); err == nil {
		t.Fatal("expected an error for an unknown base tile")
	}
	if _, err := os.Stat(csv); !os.IsNotExist(err) {
		t.Fatalf("telemetry file created for a rejected world: %v", err)
	}
}

func TestSetupAndRun(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	csv := filepath.Join(t.TempDir(), "stats.csv")
	cfg.Telemetry.CSV = csv
	cfg.Simulation.Seed = 3

	world, rec, err := setup(cfg)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer rec.Close()
	if _, err := os.Stat(csv); err != nil {
		t.Fatalf("telemetry file missing: %v", err)
	}

	if got := run(context.Background(), world, 5, false, cfg.Simulation.TickInterval); got != 5 || world.Tick() != 5 {
		t.Fatalf("run took %d ticks, world at tick %d", got, world.Tick())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := run(ctx, world, 5, false, cfg.Simulation.TickInterval); got != 0 {
		t.Fatalf("cancelled run took %d ticks", got)
	}
}
