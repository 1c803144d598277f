package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nullpick/internal/colour"
)

func newContrastCmd(a *app) *cobra.Command {
	var (
		format string
		swap   bool
	)

	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Check the WCAG contrast of a colour pair",
		Long: `Compute the WCAG 2.x contrast ratio of a foreground and background colour
and report the normal and large text AA/AAA levels. When the ratio is below
the target (--target, default 4.5) a foreground with the same hue that
reaches it is suggested.

Examples:
  nullpick contrast '#777777' '#FFFFFF'
  nullpick contrast white navy --format json
  nullpick contrast '#336699' black --target 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			fg, bg, err := parsePair(args[0], args[1])
			if err != nil {
				return err
			}
			if swap {
				fg, bg = bg, fg
			}
			return a.writeContrast(cmd.OutOrStdout(), fg, bg, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().BoolVar(&swap, "swap", false, "swap foreground and background")
	return cmd
}

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <foreground> <background>",
		Short: "Suggest a foreground that meets the target contrast",
		Long: `Print a foreground colour with the same hue and saturation as the given one
that reaches the target contrast (--target, default 4.5) against the
background. Lighter candidates are tried before darker ones. When no
lightness reaches the target the foreground is printed unchanged and the
command fails.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, bg, err := parsePair(args[0], args[1])
			if err != nil {
				return err
			}

			target := a.cfg.TargetRatio
			got, ok := colour.SuggestForeground(fg, bg, target)
			fmt.Fprintln(cmd.OutOrStdout(), got.Hex())
			if !ok {
				return fmt.Errorf("no foreground with the hue of %s reaches %.2f:1 against %s", fg.Hex(), target, bg.Hex())
			}
			a.logger.Debug("suggested foreground",
				"foreground", fg.Hex(),
				"background", bg.Hex(),
				"suggested", got.Hex(),
				"ratio", colour.ContrastRatio(got, bg))
			return nil
		},
	}
}

func parsePair(fgArg, bgArg string) (colour.RGB, colour.RGB, error) {
	fg, err := colour.ParseColour(fgArg)
	if err != nil {
		return colour.RGB{}, colour.RGB{}, fmt.Errorf("invalid foreground: %w", err)
	}
	bg, err := colour.ParseColour(bgArg)
	if err != nil {
		return colour.RGB{}, colour.RGB{}, fmt.Errorf("invalid background: %w", err)
	}
	return fg, bg, nil
}

// contrastOutput is the JSON form of a contrast check.
type contrastOutput struct {
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	Ratio      float64 `json:"ratio"`
	Target     float64 `json:"target"`
	colour.Compliance
	Suggestion string `json:"suggestion,omitempty"`
}

func (a *app) writeContrast(w io.Writer, fg, bg colour.RGB, format string) error {
	res := colour.Analyse(fg, bg)
	target := a.cfg.TargetRatio

	var (
		suggestion   colour.RGB
		hasSuggested bool
		needsHelp    = res.Ratio < target
	)
	if needsHelp {
		suggestion, hasSuggested = colour.SuggestForeground(fg, bg, target)
	}

	if format == formatJSON {
		out := contrastOutput{
			Foreground: fg.Hex(),
			Background: bg.Hex(),
			Ratio:      res.Ratio,
			Target:     target,
			Compliance: res.Compliance,
		}
		if hasSuggested {
			out.Suggestion = suggestion.Hex()
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if a.previewEnabled(w) {
		fmt.Fprintln(w, colour.ColourString(fg, " Sample Text ", true)+" on "+colour.Swatch(bg, swatchWidth))
	}

	table := NewTable()
	table.AddRow("Foreground", fg.Hex())
	table.AddRow("Background", bg.Hex())
	table.AddRow("Ratio", res.String())
	table.AddRow("Normal text", level("AA", res.NormalAA), level("AAA", res.NormalAAA))
	table.AddRow("Large text", level("AA", res.LargeAA), level("AAA", res.LargeAAA))
	switch {
	case hasSuggested:
		table.AddRow("Suggestion", suggestion.Hex(), fmt.Sprintf("%.2f:1", colour.ContrastRatio(suggestion, bg)))
	case needsHelp:
		table.AddRow("Suggestion", "none", fmt.Sprintf("no lightness reaches %.2f:1", target))
	}

	_, err := io.WriteString(w, table.Render())
	return err
}

func level(name string, pass bool) string {
	if pass {
		return name + " Pass"
	}
	return name + " Fail"
}
