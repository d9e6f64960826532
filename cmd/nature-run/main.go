// Command nature-run advances the simulation without a window, logging
// lattice statistics and optionally writing them to CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"nature-ca/internal/config"
	"nature-ca/internal/render"
	"nature-ca/internal/sims/nature"
	"nature-ca/internal/telemetry"
)

func main() {
	var (
		steps    int
		realtime bool
		ansi     bool
		verbose  bool
	)
	cfg, err := config.FromArgs(os.Args[0], os.Args[1:], func(fs *flag.FlagSet) {
		fs.IntVar(&steps, "steps", 200, "ticks to simulate")
		fs.BoolVar(&realtime, "realtime", false, "wait the tick interval between steps")
		fs.BoolVar(&ansi, "ansi", false, "print the lattice to stdout after the run")
		fs.BoolVar(&verbose, "v", false, "log every tick")
	})
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	world, rec, err := setup(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer rec.Close()

	every := cfg.Telemetry.LogEvery
	observe := func(w *nature.World) {
		stats := telemetry.Collect(w)
		if err := rec.Write(stats); err != nil {
			logger.Error("telemetry write failed", "err", err)
		}
		if every > 0 && w.Tick()%every == 0 {
			logger.Info("tick", "stats", stats)
		} else {
			logger.Debug("tick", "stats", stats)
		}
	}
	// The observer only sees ticks after it is attached, so report the
	// initial state explicitly.
	world.SetObserver(observe)
	observe(world)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	done := run(ctx, world, steps, realtime, cfg.Simulation.TickInterval)
	size := world.Size()
	logger.Info("run finished",
		"ticks", done,
		"width", size.W,
		"height", size.H,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if ansi {
		if err := render.WriteANSI(os.Stdout, world.Grid()); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// setup builds the world and only then opens the telemetry output, so a
// configuration the world rejects leaves no file behind.
func setup(cfg *config.Config) (*nature.World, *telemetry.Recorder, error) {
	catalog, err := cfg.LoadCatalog()
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: %w", err)
	}
	world, err := nature.NewWithConfig(cfg.NatureConfig(), catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("world: %w", err)
	}
	rec, err := telemetry.CreateRecorder(cfg.Telemetry.CSV)
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: %w", err)
	}
	return world, rec, nil
}

// run steps the world until steps ticks have completed or ctx is cancelled,
// and returns the number of ticks taken.
func run(ctx context.Context, world *nature.World, steps int, realtime bool, interval time.Duration) int {
	var tick <-chan time.Time
	if realtime {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}
	for i := 0; i < steps; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return i
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return i
		}
		world.Step()
	}
	return steps
}
