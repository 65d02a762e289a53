// Package config loads the JSON run configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/hubastard/tesseract/engine/math4d"
	"github.com/hubastard/tesseract/engine/tesseract"
)

// Backends understood by cmd/tesseract.
const (
	BackendGL   = "gl"
	BackendTerm = "term"
	BackendPNG  = "png"
	BackendGIF  = "gif"
)

type WindowCfg struct {
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	VSync  bool   `json:"vsync"`
	FPS    int    `json:"fps"` // frame pacing for the terminal backend
}

type HypercubeCfg struct {
	Plane    [2]int  `json:"plane"`
	Step     float64 `json:"step"`
	Distance float64 `json:"distance"`
	Offset   float64 `json:"offset"`
	MaxScale float64 `json:"maxScale"`
	Policy   string  `json:"policy"`
}

type CameraCfg struct {
	FovDeg     float64 `json:"fovDeg"`
	Near       float64 `json:"near"`
	Far        float64 `json:"far"`
	Radius     float64 `json:"radius"`
	Height     float64 `json:"height"`
	OrbitSpeed float64 `json:"orbitSpeed"` // radians per second
}

type MarkerCfg struct {
	Radius  float64 `json:"radius"`
	Rings   int     `json:"rings"`
	Sectors int     `json:"sectors"`
}

// OutputCfg drives the offscreen backends.
type OutputCfg struct {
	Dir      string `json:"dir"`
	Prefix   string `json:"prefix"`
	Frames   int    `json:"frames"`
	GIFDelay int    `json:"gifDelay"` // 100ths of a second
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type Config struct {
	Backend    string       `json:"backend"`
	LogLevel   string       `json:"logLevel"`
	ClearColor [4]float32   `json:"clearColor"`
	StatsEvery int          `json:"statsEvery"` // frames between stats lines, 0 disables
	Window     WindowCfg    `json:"window"`
	Hypercube  HypercubeCfg `json:"hypercube"`
	Camera     CameraCfg    `json:"camera"`
	Marker     MarkerCfg    `json:"marker"`
	Output     OutputCfg    `json:"output"`
}

// Default mirrors the classic tesseract demo.
func Default() Config {
	return Config{
		Backend:    BackendGL,
		LogLevel:   "info",
		ClearColor: [4]float32{0.06, 0.06, 0.06, 1},
		StatsEvery: 600,
		Window: WindowCfg{
			Title:  "Tesseract",
			Width:  700,
			Height: 700,
			VSync:  true,
			FPS:    60,
		},
		Hypercube: HypercubeCfg{
			Plane:    [2]int{0, 3},
			Step:     tesseract.DefaultStep,
			Distance: math4d.DefaultDistance,
			Offset:   math4d.DefaultOffset,
			MaxScale: math4d.DefaultMaxScale,
			Policy:   math4d.PolicyClamp.String(),
		},
		Camera: CameraCfg{
			FovDeg:     45,
			Near:       0.1,
			Far:        100,
			Radius:     8,
			Height:     8,
			OrbitSpeed: 0.3,
		},
		Marker: MarkerCfg{Radius: 0.1, Rings: 8, Sectors: 8},
		Output: OutputCfg{
			Dir:      "out",
			Prefix:   "tesseract",
			Frames:   315,
			GIFDelay: 3,
			Width:    400,
			Height:   400,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment: TESSERACT_BACKEND,
// TESSERACT_FRAMES and DEBUG.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("TESSERACT_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := getenv("TESSERACT_FRAMES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TESSERACT_FRAMES: %w", err)
		}
		c.Output.Frames = n
	}
	if getenv("DEBUG") != "" {
		c.LogLevel = "debug"
	}
	return c.Validate()
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendGL, BackendTerm, BackendPNG, BackendGIF:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be > 0, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS < 0 {
		return fmt.Errorf("window fps must be >= 0, got %d", c.Window.FPS)
	}
	if _, err := c.HypercubeOptions(); err != nil {
		return err
	}
	if !(c.Camera.FovDeg > 0 && c.Camera.FovDeg < 180) {
		return fmt.Errorf("camera fov must be in (0,180), got %g", c.Camera.FovDeg)
	}
	if !(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near) {
		return fmt.Errorf("camera clip planes must satisfy 0 < near < far, got %g..%g", c.Camera.Near, c.Camera.Far)
	}
	if !(c.Marker.Radius > 0) || c.Marker.Rings < 2 || c.Marker.Sectors < 3 {
		return fmt.Errorf("marker needs radius > 0, rings >= 2, sectors >= 3, got %+v", c.Marker)
	}
	if c.Backend == BackendPNG || c.Backend == BackendGIF {
		if c.Output.Frames <= 0 || c.Output.Width <= 0 || c.Output.Height <= 0 {
			return fmt.Errorf("offscreen output needs frames and size > 0, got %+v", c.Output)
		}
	}
	return nil
}

// HypercubeOptions converts the hypercube section.
func (c Config) HypercubeOptions() (tesseract.Options, error) {
	h := c.Hypercube
	policy, err := math4d.ParsePolicy(h.Policy)
	if err != nil {
		return tesseract.Options{}, err
	}
	opts := tesseract.Options{
		Plane: math4d.Plane{A: h.Plane[0], B: h.Plane[1]},
		Step:  h.Step,
		Projector: math4d.Projector{
			Distance: h.Distance,
			Offset:   h.Offset,
			MaxScale: h.MaxScale,
			Policy:   policy,
		},
	}
	if err := opts.Plane.Validate(); err != nil {
		return opts, err
	}
	if math.IsNaN(h.Step) || math.IsInf(h.Step, 0) {
		return opts, fmt.Errorf("hypercube step must be finite, got %g", h.Step)
	}
	if err := opts.Projector.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
