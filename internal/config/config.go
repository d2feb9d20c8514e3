package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	DataCSV   string `json:"data_csv"`
	OutputDir string `json:"output_dir"`

	// Viewer settings
	Space         string  `json:"space"`
	PointSize     float64 `json:"point_size"`
	HideUnflagged bool    `json:"hide_unflagged"`
	WindowWidth   int     `json:"window_width"`
	WindowHeight  int     `json:"window_height"`

	// Snapshot settings
	RenderSize  int `json:"render_size"`
	Supersample int `json:"supersample"`
	WebPQuality int `json:"webp_quality"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataCSV   string
	OutputDir string
	Space     string
	Quality   int
}

// Resolve fills in any empty fields with defaults. CLI flags take
// priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.DataCSV != "" {
		c.DataCSV = flags.DataCSV
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Space != "" {
		c.Space = flags.Space
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}

	if c.DataCSV == "" {
		c.DataCSV = detectDataCSV()
	}
	if c.OutputDir == "" {
		c.OutputDir = "snapshots"
	}
	if c.Space == "" {
		c.Space = "lab"
	}
	if c.PointSize <= 0 {
		c.PointSize = 0.045
	}
	if c.WindowWidth <= 0 {
		c.WindowWidth = 1280
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = 800
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 1024
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
}

func detectDataCSV() string {
	cwd, _ := os.Getwd()
	for _, base := range []string{cwd, filepath.Dir(cwd)} {
		p := filepath.Join(base, "colors.csv")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
