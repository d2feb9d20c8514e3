package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"colorcloud/internal/camera"
	"colorcloud/internal/colorspace"
	"colorcloud/internal/config"
	"colorcloud/internal/dataset"
	"colorcloud/internal/engine"
	"colorcloud/internal/snapshot"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	dataCSV := flag.String("data", "", "Path to the color CSV dataset")
	outputDir := flag.String("output", "", "Output directory (default: snapshots)")
	space := flag.String("space", "", "Color space: lab or rgb (default: lab)")
	selectIdx := flag.Int("select", -1, "Select this record index and fly the camera to it")
	size := flag.Int("size", 0, "Output image size in pixels")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")
	hideUnflagged := flag.Bool("hide-unflagged", false, "Hide records without the quality flag")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		DataCSV:   *dataCSV,
		OutputDir: *outputDir,
		Space:     *space,
		Quality:   *quality,
	})
	if *size > 0 {
		cfg.RenderSize = *size
	}

	if cfg.DataCSV == "" {
		fmt.Fprintln(os.Stderr, "Error: no dataset. Use -data flag or config.json.")
		os.Exit(1)
	}

	records, err := dataset.LoadFile(cfg.DataCSV, func(pct float64, msg string) {
		if int(pct)%25 == 0 {
			fmt.Printf("  [%3.0f%%] %s\n", pct, msg)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Dataset: %d records\n", len(records))

	sp, ok := colorspace.ByName(cfg.Space)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown color space %q\n", cfg.Space)
		os.Exit(1)
	}

	start := time.Now()
	eng := engine.New(records, sp, engine.Notifier{})
	if cfg.HideUnflagged || *hideUnflagged {
		eng.SetHideUnflagged(true)
	}

	// Drain the chunked placement pass.
	for eng.RemapActive() {
		eng.Step(1.0/60, camera.Move{})
	}

	if *selectIdx >= 0 {
		eng.FlyToIndex(*selectIdx)
		// Let the fly-in settle.
		for i := 0; i < 600; i++ {
			eng.Step(1.0/60, camera.Move{})
			orbit, dist := eng.Rig.Animating()
			if !orbit && !dist {
				break
			}
		}
	}

	outPath := filepath.Join(cfg.OutputDir, "frame.webp")
	if err := snapshot.Save(eng, outPath, cfg.RenderSize, cfg.Supersample); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())
	fmt.Printf("Snapshot: %s\n", outPath)
}
