// Command sovmap is the thin CLI host adapter around the engine
// package's plain function API: load a universe, propagate influence,
// render it, and write the outputs. The renderer itself mandates no CLI
// or environment variables; everything here is a convenience layer the
// teacher's own main.go played for its HTTP server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"sovmap/internal/config"
	"sovmap/internal/engine"
	"sovmap/internal/logger"
	"sovmap/internal/store"
)

var version = "dev"

func main() {
	inputPath := flag.String("input", "", "path to the binary universe input file")
	outPNG := flag.String("out", "sovmap.png", "path to write the rendered PNG")
	outOwnerImage := flag.String("owner-out", "", "optional path to write the SOVNV1.0 owner index")
	oldOwnerImage := flag.String("old-owner-in", "", "optional path to a prior SOVNV1.0 owner index for the hatch overlay")
	storePath := flag.String("store", "", "optional path to a SQLite render-run ledger")
	width := flag.Int("width", 0, "override image width (0 = use default)")
	height := flag.Int("height", 0, "override image height (0 = use default)")
	sampleRate := flag.Int("sample-rate", 0, "override label sample rate (0 = use default)")
	flag.Parse()

	logger.Banner(version)

	if *inputPath == "" {
		logger.Error("SOVMAP", "missing required -input flag")
		os.Exit(1)
	}

	cfg := config.Default()
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *sampleRate > 0 {
		cfg.SampleRate = *sampleRate
	}

	m := engine.New(cfg)

	if *storePath != "" {
		ledger, err := store.Open(*storePath)
		if err != nil {
			logger.Error("SOVMAP", fmt.Sprintf("open ledger: %v", err))
			os.Exit(1)
		}
		defer ledger.Close()
		m.SetLedger(ledger)
	}

	logger.Section("Load")
	if err := m.LoadDataFile(*inputPath); err != nil {
		logger.Error("SOVMAP", fmt.Sprintf("load data: %v", err))
		os.Exit(1)
	}

	if *oldOwnerImage != "" {
		if err := m.LoadOldOwnerImage(*oldOwnerImage); err != nil {
			logger.Error("SOVMAP", fmt.Sprintf("load old owner image: %v", err))
			os.Exit(1)
		}
	}

	logger.Section("Propagate")
	if err := m.CalculateInfluence(); err != nil {
		logger.Error("SOVMAP", fmt.Sprintf("calculate influence: %v", err))
		os.Exit(1)
	}

	logger.Section("Render")
	startedAt := time.Now()
	renderErr := m.RenderMultithreaded()
	if err := m.RecordRun(startedAt, renderErr); err != nil {
		logger.Warn("SOVMAP", fmt.Sprintf("record render run: %v", err))
	}
	if renderErr != nil {
		logger.Error("SOVMAP", fmt.Sprintf("render: %v", renderErr))
		os.Exit(1)
	}

	if err := m.SavePNG(*outPNG); err != nil {
		logger.Error("SOVMAP", fmt.Sprintf("save png: %v", err))
		os.Exit(1)
	}
	logger.Success("SOVMAP", fmt.Sprintf("wrote %s", *outPNG))

	if *outOwnerImage != "" {
		if err := m.SaveOwnerImage(*outOwnerImage); err != nil {
			logger.Error("SOVMAP", fmt.Sprintf("save owner image: %v", err))
			os.Exit(1)
		}
		logger.Success("SOVMAP", fmt.Sprintf("wrote %s", *outOwnerImage))
	}

	logger.Section("Labels")
	regions := m.CalculateLabels()
	logger.Stats("labels", len(regions))
	for _, l := range regions {
		fmt.Printf("owner=%d x=%d y=%d count=%d\n", l.OwnerID, l.X, l.Y, l.Count)
	}
}
