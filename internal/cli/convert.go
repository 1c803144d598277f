package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nullpick/internal/colour"
)

const swatchWidth = 9

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}

func newConvertCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "convert <colour>",
		Short: "Show a colour in every notation",
		Long: `Show a colour as hex, RGB, HLS, HSL and CMYK, along with the nearest
basic colour name.

Examples:
  nullpick convert '#336699'
  nullpick convert 51,102,153 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			rgb, err := colour.ParseColour(args[0])
			if err != nil {
				return err
			}
			return a.writeConversion(cmd.OutOrStdout(), rgb, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	return cmd
}

// conversionOutput is the JSON form of a conversion.
type conversionOutput struct {
	colour.Conversion
	Name string `json:"name"`
}

func (a *app) writeConversion(w io.Writer, rgb colour.RGB, format string) error {
	conv := colour.Convert(rgb)

	if format == formatJSON {
		data, err := json.MarshalIndent(conversionOutput{Conversion: conv, Name: colour.NearestName(rgb)}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if a.previewEnabled(w) {
		fmt.Fprintln(w, colour.SwatchWithText(rgb, conv.Hex, swatchWidth))
	}
	_, err := io.WriteString(w, conversionTable(conv).Render())
	return err
}

func conversionTable(conv colour.Conversion) *Table {
	table := NewTable()
	table.AddRow("hex", conv.Hex)
	table.AddRow("rgb", conv.RGB.String())
	table.AddRow("hls", fmt.Sprintf("hls(%.3f, %.3f, %.3f)", conv.HLS.H, conv.HLS.L, conv.HLS.S))
	table.AddRow("hsl", conv.HSL)
	table.AddRow("cmyk", conv.CMYK.String())
	table.AddRow("name", colour.NearestName(conv.RGB))
	return table
}
