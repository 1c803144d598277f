package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/nullpick/internal/colour"
	"github.com/jmylchreest/nullpick/internal/sampler"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nullpick.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	want := &Config{
		SampleSize:   1,
		TargetRatio:  4.5,
		HistoryLimit: 15,
		Fill:         Colour(colour.Black),
		Zoom:         10,
		GrabSize:     20,
		Correction:   Correction{Gamma: 1},
		Preview:      PreviewAuto,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"sample_size": 5,
		"target_ratio": 7,
		"fill": "#336699",
		"correction": {"gamma": 2.2}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SampleSize != 5 || cfg.TargetRatio != 7 || cfg.Correction.Gamma != 2.2 {
		t.Errorf("Load() = %+v, want file values", cfg)
	}
	if cfg.Fill.RGB() != (colour.RGB{R: 0x33, G: 0x66, B: 0x99}) {
		t.Errorf("Fill = %v, want #336699", cfg.Fill.RGB())
	}
	// Keys missing from the file keep defaults.
	if cfg.HistoryLimit != DefaultHistoryLimit || cfg.Zoom != DefaultZoom {
		t.Errorf("Load() lost defaults: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"sample_size": `},
		{name: "unknown key", body: `{"sample_sise": 3}`},
		{name: "bad colour", body: `{"fill": "not-a-colour"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() of missing file succeeded, want error")
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(envMap(map[string]string{
		EnvSampleSize:   "3",
		EnvTargetRatio:  "3.0",
		EnvHistoryLimit: "4",
		EnvSnapshot:     "/tmp/shot.png",
		EnvFill:         "#FFFFFF",
		EnvGamma:        "0.5",
		EnvPreview:      "NEVER",
		EnvZoom:         "",
	}))
	if err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}

	want := Default()
	want.SampleSize = 3
	want.TargetRatio = 3
	want.HistoryLimit = 4
	want.Snapshot = "/tmp/shot.png"
	want.Fill = Colour(colour.White)
	want.Correction.Gamma = 0.5
	want.Preview = PreviewNever

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("applyEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nullpick.env")
	body := "# picker defaults\nNULLPICK_SAMPLE_SIZE=5\nNULLPICK_FILL=\"#336699\"\nOTHER=ignored\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	cfg := Default()
	if err := cfg.ApplyEnvFile(path); err != nil {
		t.Fatalf("ApplyEnvFile() error: %v", err)
	}
	if cfg.SampleSize != 5 || cfg.Fill.RGB() != (colour.RGB{R: 0x33, G: 0x66, B: 0x99}) {
		t.Errorf("ApplyEnvFile() = %+v", cfg)
	}
	if _, ok := os.LookupEnv("OTHER"); ok {
		t.Error("ApplyEnvFile() modified the process environment")
	}

	if err := cfg.ApplyEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("ApplyEnvFile() of missing file succeeded")
	}
}

func TestApplyEnvErrors(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(envMap(map[string]string{
		EnvSampleSize: "three",
		EnvGamma:      "x",
		EnvFill:       "#12",
	}))
	if err == nil {
		t.Fatal("applyEnv() succeeded, want error")
	}
	for _, key := range []string{EnvSampleSize, EnvGamma, EnvFill} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
	if cfg.SampleSize != DefaultSampleSize {
		t.Errorf("SampleSize = %d after failed parse, want default", cfg.SampleSize)
	}
}

func TestFlagsOverride(t *testing.T) {
	cfg := Default()
	cfg.SampleSize = 7 // e.g. from the config file

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)

	if got := fs.Lookup(FlagSampleSize).DefValue; got != "7" {
		t.Errorf("sample-size default = %s, want current value 7", got)
	}

	if err := fs.Parse([]string{"--target", "7", "--fill", "255,0,0", "--preview", "Always"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		t.Fatalf("ApplyFlags() error: %v", err)
	}

	if cfg.SampleSize != 7 {
		t.Errorf("SampleSize = %d, want unset flag to keep 7", cfg.SampleSize)
	}
	if cfg.TargetRatio != 7 {
		t.Errorf("TargetRatio = %v, want 7", cfg.TargetRatio)
	}
	if cfg.Fill.RGB() != (colour.RGB{R: 255}) {
		t.Errorf("Fill = %v, want red", cfg.Fill.RGB())
	}
	if cfg.Preview != PreviewAlways {
		t.Errorf("Preview = %s, want always", cfg.Preview)
	}
}

func TestFlagRejectsBadColour(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(&strings.Builder{})
	Default().BindFlags(fs)
	if err := fs.Parse([]string{"--fill", "bogus"}); err == nil {
		t.Error("Parse() accepted an invalid colour")
	}
}

func TestPrecedence(t *testing.T) {
	path := writeConfig(t, `{"sample_size": 5, "history_limit": 9, "zoom": 4}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := cfg.applyEnv(envMap(map[string]string{EnvSampleSize: "9", EnvHistoryLimit: "3"})); err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse([]string{"--sample-size", "11"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		t.Fatalf("ApplyFlags() error: %v", err)
	}

	if cfg.SampleSize != 11 {
		t.Errorf("SampleSize = %d, want flag value 11", cfg.SampleSize)
	}
	if cfg.HistoryLimit != 3 {
		t.Errorf("HistoryLimit = %d, want env value 3", cfg.HistoryLimit)
	}
	if cfg.Zoom != 4 {
		t.Errorf("Zoom = %d, want file value 4", cfg.Zoom)
	}
	if cfg.GrabSize != DefaultGrabSize {
		t.Errorf("GrabSize = %d, want default", cfg.GrabSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "even sample size", mutate: func(c *Config) { c.SampleSize = 4 }, want: "odd"},
		{name: "large sample size", mutate: func(c *Config) { c.SampleSize = 33 }, want: "sample size"},
		{name: "target too low", mutate: func(c *Config) { c.TargetRatio = 0.5 }, want: "target ratio"},
		{name: "target too high", mutate: func(c *Config) { c.TargetRatio = 22 }, want: "target ratio"},
		{name: "history", mutate: func(c *Config) { c.HistoryLimit = 0 }, want: "history limit"},
		{name: "zoom", mutate: func(c *Config) { c.Zoom = 0 }, want: "zoom"},
		{name: "grab size", mutate: func(c *Config) { c.GrabSize = 1000 }, want: "grab size"},
		{name: "gamma", mutate: func(c *Config) { c.Correction.Gamma = 0 }, want: "gamma"},
		{name: "preview", mutate: func(c *Config) { c.Preview = "sometimes" }, want: "preview"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.SampleSize = 2
	cfg.Zoom = -1
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "odd") || !strings.Contains(err.Error(), "zoom") {
		t.Errorf("Validate() = %v, want every problem reported", err)
	}
}

func TestPreviewEnabled(t *testing.T) {
	tests := []struct {
		mode PreviewMode
		tty  bool
		want bool
	}{
		{PreviewAuto, true, true},
		{PreviewAuto, false, false},
		{PreviewAlways, false, true},
		{PreviewNever, true, false},
	}
	for _, tt := range tests {
		if got := tt.mode.Enabled(tt.tty); got != tt.want {
			t.Errorf("%s.Enabled(%v) = %v, want %v", tt.mode, tt.tty, got, tt.want)
		}
	}
}

func TestCorrector(t *testing.T) {
	if Default().Corrector() != sampler.Identity {
		t.Error("default gamma should give the identity corrector")
	}

	cfg := Default()
	cfg.Correction.Gamma = 2
	if got := cfg.Corrector().Correct(colour.RGB{G: 128}); got.G != 64 {
		t.Errorf("Correct() G = %d, want 64", got.G)
	}
}

func TestColourText(t *testing.T) {
	c := Colour(colour.RGB{R: 1, G: 2, B: 3})
	text, err := c.MarshalText()
	if err != nil || string(text) != "#010203" {
		t.Errorf("MarshalText() = %s, %v; want #010203", text, err)
	}
	if c.Type() != "colour" || c.String() != "#010203" {
		t.Errorf("Type()/String() = %s/%s", c.Type(), c.String())
	}
}
