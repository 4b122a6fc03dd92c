// Command ridgeline streams fractal terrain strips, classifies the
// assembled surface, and optionally persists, renders, and serves it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/ridgeline/internal/api"
	"github.com/talgya/ridgeline/internal/entropy"
	"github.com/talgya/ridgeline/internal/fold"
	"github.com/talgya/ridgeline/internal/persistence"
	"github.com/talgya/ridgeline/internal/render"
	"github.com/talgya/ridgeline/internal/terrain"
)

func main() {
	var (
		levels    = flag.Int("levels", 7, "resolution levels; strips hold 2^levels+1 samples")
		strips    = flag.Int("strips", 512, "number of strips to generate")
		fdim      = flag.Float64("fdim", 0.65, "fractal dimension")
		length    = flag.Float64("length", 1.0, "physical length of the top-level update square")
		mean      = flag.Float64("mean", 0.0, "mean surface height")
		start     = flag.Float64("start", 0.0, "initial flat surface height")
		smooth    = flag.Bool("smooth", true, "enable crease smoothing")
		seed      = flag.Int64("seed", 0, "PRNG seed (0 = random)")
		dbPath    = flag.String("db", "", "SQLite path to persist the run (empty = no persistence)")
		pngPath   = flag.String("png", "", "PNG path for a hypsometric render (empty = no render)")
		grayPath  = flag.String("gray", "", "PNG path for a grayscale heightmap (empty = no render)")
		servePort = flag.Int("serve", 0, "serve the finished surface on this port (0 = no server)")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// ── Entropy ───────────────────────────────────────────────────────
	var src entropy.Source
	if key := os.Getenv("RANDOM_ORG_KEY"); key != "" {
		src = entropy.NewClient(key)
		slog.Info("entropy source: random.org")
	} else {
		src = entropy.NewRand(*seed)
		slog.Info("entropy source: seeded PRNG", "seed", *seed)
	}

	// ── Chain ─────────────────────────────────────────────────────────
	chain, err := fold.New(fold.Config{
		Levels:    *levels,
		Smoothing: *smooth,
		Length:    *length,
		Start:     *start,
		Mean:      *mean,
		Dimension: *fdim,
		Source:    src,
	})
	if err != nil {
		slog.Error("chain construction failed", "error", err)
		os.Exit(1)
	}
	defer chain.Release()

	slog.Info("chain built",
		"levels", *levels,
		"width", chain.Width(),
		"smoothing", *smooth,
		"fdim", *fdim,
	)

	// ── Persistence ───────────────────────────────────────────────────
	var db *persistence.DB
	var run *persistence.Run
	if *dbPath != "" {
		db, err = persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		run, err = db.CreateRun(persistence.Run{
			Levels:    *levels,
			Smoothing: *smooth,
			Length:    *length,
			Start:     *start,
			Mean:      *mean,
			Dimension: *fdim,
			Seed:      *seed,
		})
		if err != nil {
			slog.Error("failed to create run", "error", err)
			os.Exit(1)
		}
		slog.Info("database opened", "path", *dbPath, "run", run.ID)
	}

	// ── Generation ────────────────────────────────────────────────────
	tty := isatty.IsTerminal(os.Stdout.Fd())
	surface := terrain.NewSurface(chain.Width())

	for i := 0; i < *strips; i++ {
		strip, err := chain.Next()
		if err != nil {
			slog.Error("generation failed", "strip", i, "error", err)
			os.Exit(1)
		}
		if err := surface.Append(strip.D); err != nil {
			slog.Error("surface append failed", "strip", i, "error", err)
			os.Exit(1)
		}
		if db != nil {
			if err := db.AppendStrip(run.ID, i, strip.D); err != nil {
				slog.Error("persist failed", "strip", i, "error", err)
				os.Exit(1)
			}
		}
		if tty && (i+1)%64 == 0 {
			fmt.Printf("\rgenerated %s strips", humanize.Comma(int64(i+1)))
		}
	}
	if tty && *strips >= 64 {
		fmt.Println()
	}

	min, max := surface.Bounds()
	slog.Info("surface complete",
		"strips", humanize.Comma(int64(surface.Len())),
		"samples", humanize.Comma(int64(surface.Len()*surface.Width())),
		"min", fmt.Sprintf("%.3f", min),
		"max", fmt.Sprintf("%.3f", max),
		"mean", fmt.Sprintf("%.3f", surface.Mean()),
	)

	// ── Classification ────────────────────────────────────────────────
	ccfg := terrain.DefaultClassifyConfig()
	ccfg.Seed = *seed
	classes := terrain.Classify(surface, ccfg)
	for c, n := range terrain.ClassCounts(classes) {
		slog.Info("terrain", "class", terrain.ClassName(c), "cells", n)
	}

	// ── Render ────────────────────────────────────────────────────────
	if *grayPath != "" {
		if err := render.WritePNG(*grayPath, render.Grayscale(surface)); err != nil {
			slog.Error("grayscale render failed", "error", err)
			os.Exit(1)
		}
		slog.Info("heightmap written", "path", *grayPath)
	}
	if *pngPath != "" {
		if err := render.WritePNG(*pngPath, render.Hypsometric(surface, classes)); err != nil {
			slog.Error("hypsometric render failed", "error", err)
			os.Exit(1)
		}
		slog.Info("render written", "path", *pngPath)
	}

	// ── Serve ─────────────────────────────────────────────────────────
	if *servePort > 0 {
		srv := &api.Server{
			Surface: surface,
			Classes: classes,
			Port:    *servePort,
		}
		if run != nil {
			srv.RunID = run.ID
		}
		srv.Start()
		fmt.Printf("Surface ready: http://localhost:%d/api/v1/status (Ctrl+C to stop)\n", *servePort)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
	}
}
