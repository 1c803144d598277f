package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nullpick/internal/colour"
)

func newPaletteCmd(a *app) *cobra.Command {
	var (
		format string
		scheme string
	)

	cmd := &cobra.Command{
		Use:   "palette <colour>",
		Short: "Generate harmonic palettes from a base colour",
		Long: `Generate the monochromatic, analogous, complementary, split complementary,
triadic and tetradic palettes of a base colour.

Examples:
  nullpick palette '#336699'
  nullpick palette red --scheme triadic
  nullpick palette 51,102,153 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			base, err := colour.ParseColour(args[0])
			if err != nil {
				return err
			}

			set := colour.GeneratePalettes(base)
			if scheme != "" {
				name, err := colour.ParseSchemeName(scheme)
				if err != nil {
					return err
				}
				s, _ := set.Scheme(name)
				set.Schemes = []colour.Scheme{s}
			}

			a.logger.Debug("generated palettes", "base", base.Hex(), "schemes", len(set.Schemes))
			return a.writePalettes(cmd.OutOrStdout(), set, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().StringVarP(&scheme, "scheme", "s", "", "only show one scheme (e.g. triadic, split-complementary)")
	return cmd
}

func (a *app) writePalettes(w io.Writer, set colour.PaletteSet, format string) error {
	if format == formatJSON {
		data, err := set.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	preview := a.previewEnabled(w)
	table := NewTable("Scheme", "Colours")
	for _, s := range set.Schemes {
		cells := make([]string, len(s.Entries))
		for i, e := range s.Entries {
			if preview {
				cells[i] = colour.SwatchWithText(e.RGB, e.Hex, swatchWidth)
			} else {
				cells[i] = e.Hex
			}
		}
		table.AddRow(string(s.Name), strings.Join(cells, " "))
	}

	_, err := io.WriteString(w, table.Render())
	return err
}
