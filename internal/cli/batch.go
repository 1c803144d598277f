package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nullpick/internal/colour"
	"github.com/jmylchreest/nullpick/internal/history"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Convert a list of colours",
		Long: `Convert one colour per line from a file, or from stdin when no file is
given. Blank lines are ignored, as are lines starting with '#' that are not
hex colours. The most recent colours (--history-limit, default 15) are listed
at the end, newest first.

Examples:
  nullpick batch colours.txt
  printf '#336699\n255,0,0\n' | nullpick batch --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0]) // #nosec G304 - User-specified input path, intended to be read
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			colours, invalid, err := a.readColours(in)
			if err != nil {
				return err
			}
			if invalid > 0 && strict {
				return fmt.Errorf("%d invalid colour(s) in input", invalid)
			}

			hist := history.New(a.cfg.HistoryLimit)
			for _, c := range colours {
				hist.Add(c)
			}

			return a.writeBatch(cmd.OutOrStdout(), colours, hist, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any line is not a valid colour")
	return cmd
}

// readColours parses one colour per line, logging and counting lines that
// do not parse.
func (a *app) readColours(r io.Reader) ([]colour.RGB, int, error) {
	var (
		colours []colour.RGB
		invalid int
	)

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if _, err := colour.ParseHex(line); err != nil {
				continue
			}
		}

		rgb, err := colour.ParseColour(line)
		if err != nil {
			invalid++
			a.logger.Warn("skipping invalid colour", "line", lineNo, "error", err)
			continue
		}
		colours = append(colours, rgb)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read input: %w", err)
	}

	return colours, invalid, nil
}

// batchOutput is the JSON form of a batch run.
type batchOutput struct {
	Colours []conversionOutput `json:"colours"`
	History []string           `json:"history"`
}

func (a *app) writeBatch(w io.Writer, colours []colour.RGB, hist *history.History, format string) error {
	recent := hist.Newest()
	recentHex := make([]string, len(recent))
	for i, c := range recent {
		recentHex[i] = c.Hex()
	}

	if format == formatJSON {
		out := batchOutput{
			Colours: make([]conversionOutput, len(colours)),
			History: recentHex,
		}
		for i, c := range colours {
			out.Colours[i] = conversionOutput{Conversion: colour.Convert(c), Name: colour.NearestName(c)}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	preview := a.previewEnabled(w)
	table := NewTable("Hex", "RGB", "HSL", "CMYK", "Name")
	for _, c := range colours {
		conv := colour.Convert(c)
		hex := conv.Hex
		if preview {
			hex = colour.FormatWithSwatch(c, 2)
		}
		table.AddRow(hex, conv.RGB.String(), conv.HSL, conv.CMYK.String(), colour.NearestName(c))
	}

	if _, err := io.WriteString(w, table.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nHistory (%d/%d): %s\n", hist.Len(), hist.Limit(), strings.Join(recentHex, " "))
	return err
}
