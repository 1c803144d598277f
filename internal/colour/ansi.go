package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Swatch returns an ANSI true-colour block for a colour.
// Width specifies how many characters wide the block should be.
func Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// SwatchWithText returns a colour block with centred text drawn in
// whichever of black or white contrasts more with the block.
func SwatchWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	ink := White
	if ContrastRatio(Black, c) > ContrastRatio(White, c) {
		ink = Black
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fg := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, ink.R, ink.G, ink.B, ansiSuffix)

	// Pad or truncate text to fit width.
	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bg + fg + display + ansiReset
}

// FormatWithSwatch formats a colour as its swatch followed by its hex code.
func FormatWithSwatch(rgb RGB, width int) string {
	return fmt.Sprintf("%s %s", Swatch(rgb, width), rgb.Hex())
}

// ColourString returns text drawn in the given colour, or plain text when
// enabled is false.
func ColourString(rgb RGB, text string, enabled bool) string {
	if !enabled {
		return text
	}
	fg := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
	return fg + text + ansiReset
}
