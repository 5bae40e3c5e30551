package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/curvedemo/demo"
)

func main() {
	cfg := demo.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Headless: include GC pause totals in the report.")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	if cfg.Headless {
		runHeadless(cfg, *gcPauseMetrics)
		return
	}

	log.Printf("Opening %dx%d window at %d TPS (debug UI %t)", cfg.Width, cfg.Height, cfg.TPS, cfg.DebugUI)
	game, err := newGame(cfg)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Game loop failed: %v", err)
	}
}

func runHeadless(cfg demo.Config, gcPauseMetrics bool) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Running headless at %d TPS (ticks=%d), reading w/s from stdin", cfg.TPS, cfg.Ticks)
	report, err := demo.RunHeadless(ctx, cfg, demo.HeadlessOptions{
		Commands:       os.Stdin,
		Logf:           log.Printf,
		GCPauseMetrics: gcPauseMetrics,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Headless run failed: %v", err)
	}
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}
