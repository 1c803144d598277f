// Package cli provides the command-line interface for nullpick.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/nullpick/internal/config"
	"github.com/jmylchreest/nullpick/internal/version"
)

// EnvLogLevel overrides the log level chosen by --verbose and --quiet.
const EnvLogLevel = "NULLPICK_LOG_LEVEL"

// app is the state shared by every command of one root command.
type app struct {
	cfg    *config.Config
	logger hclog.Logger

	configPath string
	envFile    string
	verbose    bool
	quiet      bool
}

// NewRootCmd builds the nullpick command tree.
func NewRootCmd() *cobra.Command {
	a := &app{
		cfg:    config.Default(),
		logger: hclog.NewNullLogger(),
	}

	rootCmd := &cobra.Command{
		Use:   "nullpick",
		Short: "Colour conversion, harmony and contrast tool",
		Long: `nullpick converts colours between notations, builds harmonic palettes,
checks WCAG contrast and samples colours from snapshot images.

Colours may be given as hex (#336699, 369), comma triples (51,102,153),
rgb(51, 102, 153) or a basic colour name.`,
		Version:           version.GetInfo().Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.StringVar(&a.configPath, "config", "", "path to a JSON config file")
	flags.StringVar(&a.envFile, "env-file", "", "path to a dotenv file of NULLPICK_* settings")
	a.cfg.BindFlags(flags)

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newConvertCmd(a),
		newPaletteCmd(a),
		newContrastCmd(a),
		newSuggestCmd(a),
		newSampleCmd(a),
		newBatchCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}


// setup builds the logger and resolves configuration from the config file,
// the env file, the environment and the flags, in that order.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.envFile != "" {
		if err := cfg.ApplyEnvFile(a.envFile); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.logger.Debug("configuration resolved",
		"config", a.configPath,
		"sample_size", cfg.SampleSize,
		"target_ratio", cfg.TargetRatio,
		"snapshot", cfg.Snapshot,
		"gamma", cfg.Correction.Gamma)

	return nil
}

// newLogger returns the CLI logger. NULLPICK_LOG_LEVEL, when valid, takes
// precedence over the verbosity flags.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}
	if env := os.Getenv(EnvLogLevel); env != "" {
		if l := hclog.LevelFromString(env); l != hclog.NoLevel {
			level = l
		}
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "nullpick",
		Output: w,
		Level:  level,
	})
}

// previewEnabled reports whether swatches go to w.
func (a *app) previewEnabled(w io.Writer) bool {
	return a.cfg.Preview.Enabled(isTerminal(w))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
