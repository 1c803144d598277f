// Package config loads nullpick settings.
//
// Settings are layered: built-in defaults, then an optional JSON file, then
// NULLPICK_* environment variables, then command-line flags.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/nullpick/internal/colour"
	"github.com/jmylchreest/nullpick/internal/sampler"
)

// Defaults.
const (
	DefaultSampleSize   = 1
	DefaultHistoryLimit = 15
	DefaultZoom         = 10
	DefaultGrabSize     = 20
	DefaultGamma        = 1.0

	maxZoom     = 64
	maxGrabSize = 256
	maxGamma    = 10.0
)

// PreviewMode controls ANSI colour swatches in text output.
type PreviewMode string

const (
	PreviewAuto   PreviewMode = "auto"
	PreviewAlways PreviewMode = "always"
	PreviewNever  PreviewMode = "never"
)

// Enabled resolves the mode given whether stdout is a terminal.
func (m PreviewMode) Enabled(isTerminal bool) bool {
	switch m {
	case PreviewAlways:
		return true
	case PreviewNever:
		return false
	default:
		return isTerminal
	}
}

// Correction configures colour correction of sampled pixels.
type Correction struct {
	// Gamma is applied per channel; 1 leaves colours unchanged.
	Gamma float64 `json:"gamma"`
}

// Config holds every nullpick setting.
type Config struct {
	SampleSize   int         `json:"sample_size"`
	TargetRatio  float64     `json:"target_ratio"`
	HistoryLimit int         `json:"history_limit"`
	Snapshot     string      `json:"snapshot"`
	Fill         Colour      `json:"fill"`
	Zoom         int         `json:"zoom"`
	GrabSize     int         `json:"grab_size"`
	Correction   Correction  `json:"correction"`
	Preview      PreviewMode `json:"preview"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SampleSize:   DefaultSampleSize,
		TargetRatio:  colour.DefaultTargetRatio,
		HistoryLimit: DefaultHistoryLimit,
		Fill:         Colour(colour.Black),
		Zoom:         DefaultZoom,
		GrabSize:     DefaultGrabSize,
		Correction:   Correction{Gamma: DefaultGamma},
		Preview:      PreviewAuto,
	}
}

// Load returns the defaults overlaid with the JSON file at path. An empty
// path returns the defaults. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified config path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Environment variable names.
const (
	EnvSampleSize   = "NULLPICK_SAMPLE_SIZE"
	EnvTargetRatio  = "NULLPICK_TARGET_RATIO"
	EnvHistoryLimit = "NULLPICK_HISTORY_LIMIT"
	EnvSnapshot     = "NULLPICK_SNAPSHOT"
	EnvFill         = "NULLPICK_FILL"
	EnvZoom         = "NULLPICK_ZOOM"
	EnvGrabSize     = "NULLPICK_GRAB_SIZE"
	EnvGamma        = "NULLPICK_GAMMA"
	EnvPreview      = "NULLPICK_PREVIEW"
)

// ApplyEnv overlays settings from NULLPICK_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

// ApplyEnvFile overlays settings from NULLPICK_* entries of a dotenv file.
// The process environment is not modified.
func (c *Config) ApplyEnvFile(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read env file: %w", err)
	}
	return c.applyEnv(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	})
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	intVar := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid integer %q", key, v))
				return
			}
			*dst = n
		}
	}
	floatVar := func(key string, dst *float64) {
		if v, ok := lookup(key); ok && v != "" {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid number %q", key, v))
				return
			}
			*dst = f
		}
	}

	intVar(EnvSampleSize, &c.SampleSize)
	floatVar(EnvTargetRatio, &c.TargetRatio)
	intVar(EnvHistoryLimit, &c.HistoryLimit)
	intVar(EnvZoom, &c.Zoom)
	intVar(EnvGrabSize, &c.GrabSize)
	floatVar(EnvGamma, &c.Correction.Gamma)

	if v, ok := lookup(EnvSnapshot); ok && v != "" {
		c.Snapshot = v
	}
	if v, ok := lookup(EnvPreview); ok && v != "" {
		c.Preview = PreviewMode(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := lookup(EnvFill); ok && v != "" {
		if err := c.Fill.Set(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvFill, err))
		}
	}

	return errors.Join(errs...)
}

// Flag names.
const (
	FlagSampleSize   = "sample-size"
	FlagTargetRatio  = "target"
	FlagHistoryLimit = "history-limit"
	FlagSnapshot     = "snapshot"
	FlagFill         = "fill"
	FlagZoom         = "zoom"
	FlagGrabSize     = "grab-size"
	FlagGamma        = "gamma"
	FlagPreview      = "preview"
)

// BindFlags registers a flag for every setting on fs, using the current
// values as flag defaults. Call ApplyFlags after parsing to copy the flags
// the user set.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.Int(FlagSampleSize, c.SampleSize, "Edge length of the sampled pixel block (odd, 1-31)")
	fs.Float64(FlagTargetRatio, c.TargetRatio, "Target WCAG contrast ratio")
	fs.Int(FlagHistoryLimit, c.HistoryLimit, "Number of picked colours kept in history")
	fs.String(FlagSnapshot, c.Snapshot, "Snapshot image to sample from")
	fill := c.Fill
	fs.Var(&fill, FlagFill, "Colour reported when no snapshot is configured")
	fs.Int(FlagZoom, c.Zoom, "Magnifier zoom factor")
	fs.Int(FlagGrabSize, c.GrabSize, "Magnifier grab size in pixels")
	fs.Float64(FlagGamma, c.Correction.Gamma, "Gamma correction applied to sampled colours")
	fs.String(FlagPreview, string(c.Preview), "Colour swatch preview (auto, always, never)")
}

// ApplyFlags copies every flag bound by BindFlags that was set on fs.
// Flags not registered on fs are ignored.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	changed := func(name string) bool {
		return fs.Lookup(name) != nil && fs.Changed(name)
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if changed(FlagSampleSize) {
		v, err := fs.GetInt(FlagSampleSize)
		collect(err)
		c.SampleSize = v
	}
	if changed(FlagTargetRatio) {
		v, err := fs.GetFloat64(FlagTargetRatio)
		collect(err)
		c.TargetRatio = v
	}
	if changed(FlagHistoryLimit) {
		v, err := fs.GetInt(FlagHistoryLimit)
		collect(err)
		c.HistoryLimit = v
	}
	if changed(FlagSnapshot) {
		v, err := fs.GetString(FlagSnapshot)
		collect(err)
		c.Snapshot = v
	}
	if changed(FlagFill) {
		if v, ok := fs.Lookup(FlagFill).Value.(*Colour); ok {
			c.Fill = *v
		}
	}
	if changed(FlagZoom) {
		v, err := fs.GetInt(FlagZoom)
		collect(err)
		c.Zoom = v
	}
	if changed(FlagGrabSize) {
		v, err := fs.GetInt(FlagGrabSize)
		collect(err)
		c.GrabSize = v
	}
	if changed(FlagGamma) {
		v, err := fs.GetFloat64(FlagGamma)
		collect(err)
		c.Correction.Gamma = v
	}
	if changed(FlagPreview) {
		v, err := fs.GetString(FlagPreview)
		collect(err)
		c.Preview = PreviewMode(strings.ToLower(v))
	}

	return errors.Join(errs...)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if err := sampler.ValidateSampleSize(c.SampleSize); err != nil {
		errs = append(errs, err)
	}
	if c.TargetRatio < 1 || c.TargetRatio > 21 {
		errs = append(errs, fmt.Errorf("target ratio must be between 1 and 21, got %g", c.TargetRatio))
	}
	if c.HistoryLimit < 1 {
		errs = append(errs, fmt.Errorf("history limit must be at least 1, got %d", c.HistoryLimit))
	}
	if c.Zoom < 1 || c.Zoom > maxZoom {
		errs = append(errs, fmt.Errorf("zoom must be between 1 and %d, got %d", maxZoom, c.Zoom))
	}
	if c.GrabSize < 1 || c.GrabSize > maxGrabSize {
		errs = append(errs, fmt.Errorf("grab size must be between 1 and %d, got %d", maxGrabSize, c.GrabSize))
	}
	if c.Correction.Gamma <= 0 || c.Correction.Gamma > maxGamma {
		errs = append(errs, fmt.Errorf("gamma must be in (0, %g], got %g", maxGamma, c.Correction.Gamma))
	}
	switch c.Preview {
	case PreviewAuto, PreviewAlways, PreviewNever:
	default:
		errs = append(errs, fmt.Errorf("preview must be auto, always or never, got %q", c.Preview))
	}

	return errors.Join(errs...)
}

// Corrector returns the colour correction described by the configuration.
func (c *Config) Corrector() sampler.Corrector {
	return sampler.NewGammaCurve(c.Correction.Gamma)
}
