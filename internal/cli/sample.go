package cli

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	imgload "github.com/jmylchreest/nullpick/internal/image"
	"github.com/jmylchreest/nullpick/internal/sampler"
)

func newSampleCmd(a *app) *cobra.Command {
	var (
		x, y    int
		method  string
		format  string
		magnify string
	)

	cmd := &cobra.Command{
		Use:   "sample [image]",
		Short: "Pick the colour at a point of a snapshot image",
		Long: `Pick the colour at a point of a snapshot image. The picked colour is the
average of a square block centred on the point (--sample-size, default 1)
after colour correction (--gamma).

The image may be PNG, JPEG, GIF or WebP, optionally compressed with gzip,
xz or bzip2. Without an image argument the configured snapshot is used, and
without a snapshot every point reports the --fill colour.

Examples:
  nullpick sample screenshot.png --x 120 --y 40
  nullpick sample screenshot.png.xz --x 120 --y 40 --sample-size 5
  nullpick sample screenshot.png --x 120 --y 40 --magnify zoom.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			snapshot := a.cfg.Snapshot
			if len(args) == 1 {
				snapshot = args[0]
			}

			s, err := a.newSampler(snapshot)
			if err != nil {
				return err
			}

			picker, err := a.newPicker(s, sampler.Method(method))
			if err != nil {
				return err
			}

			pt := image.Pt(x, y)
			if !pt.In(s.Bounds()) {
				a.logger.Warn("point outside sampled area", "point", pt.String(), "bounds", s.Bounds().String())
			}

			rgb, err := picker.PickAt(cmd.Context(), pt)
			if err != nil {
				return fmt.Errorf("failed to sample colour: %w", err)
			}

			if magnify != "" {
				if err := a.writeMagnified(cmd, picker, pt, magnify); err != nil {
					return err
				}
			}

			return a.writeConversion(cmd.OutOrStdout(), rgb, format)
		},
	}

	cmd.Flags().IntVar(&x, "x", 0, "x coordinate of the sampled point")
	cmd.Flags().IntVar(&y, "y", 0, "y coordinate of the sampled point")
	cmd.Flags().StringVar(&method, "method", string(sampler.MethodAverage), "block reduction (average, dominant)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().StringVar(&magnify, "magnify", "", "write a magnified view of the point to this PNG file")
	return cmd
}

// newSampler loads snapshot, when set, and selects the matching sampler.
func (a *app) newSampler(snapshot string) (sampler.Sampler, error) {
	opts := sampler.Options{Fill: a.cfg.Fill.RGB()}

	if snapshot != "" {
		if err := imgload.ValidateImagePath(snapshot); err != nil {
			return nil, fmt.Errorf("invalid image path: %w", err)
		}
		img, err := imgload.NewFileLoader(a.logger).Load(snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to load image: %w", err)
		}
		opts.Snapshot = img
	}

	s, err := sampler.DefaultRegistry().Select(opts)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("selected sampler", "sampler", s.Name(), "bounds", s.Bounds().String())
	return s, nil
}

func (a *app) newPicker(s sampler.Sampler, method sampler.Method) (*sampler.Picker, error) {
	switch method {
	case sampler.MethodAverage, sampler.MethodDominant:
	default:
		return nil, fmt.Errorf("unsupported method: %s (supported: average, dominant)", method)
	}

	picker := sampler.NewPicker(s,
		sampler.WithCorrector(a.cfg.Corrector()),
		sampler.WithMethod(method),
		sampler.WithLogger(a.logger))
	if err := picker.SetSampleSize(a.cfg.SampleSize); err != nil {
		return nil, err
	}
	return picker, nil
}

func (a *app) writeMagnified(cmd *cobra.Command, picker *sampler.Picker, pt image.Point, path string) error {
	view, err := picker.Magnify(cmd.Context(), pt, a.cfg.GrabSize, a.cfg.Zoom)
	if err != nil {
		return fmt.Errorf("failed to magnify: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create magnifier output: %w", err)
	}
	if err := png.Encode(f, view); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode magnifier output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write magnifier output: %w", err)
	}

	a.logger.Info("wrote magnified view", "path", path, "grab", a.cfg.GrabSize, "zoom", a.cfg.Zoom)
	return nil
}

