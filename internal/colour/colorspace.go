// Package colour provides the colour-math core of nullpick: colour space
// conversion, harmonic palette generation and WCAG contrast analysis.
//
// Every function in this package is pure. Values are passed by copy and
// nothing is cached, so the package is safe for concurrent use.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a colour string cannot be parsed.
var ErrInvalidFormat = errors.New("invalid colour format")

// Sector boundaries used by the HLS conversion.
const (
	oneThird  = 1.0 / 3.0
	oneSixth  = 1.0 / 6.0
	twoThirds = 2.0 / 3.0
)

// RGB represents a colour as three 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Common colours.
var (
	Black = RGB{R: 0, G: 0, B: 0}
	White = RGB{R: 255, G: 255, B: 255}
)

// ClampRGB builds an RGB from arbitrary integers, clamping each to [0,255].
func ClampRGB(r, g, b int) RGB {
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the canonical uppercase hex form (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return RGBToHex(rgb)
}

// HLS represents a colour as hue, lightness and saturation, each in [0,1].
// Hue is circular.
type HLS struct {
	H float64 `json:"h"`
	L float64 `json:"l"`
	S float64 `json:"s"`
}

// Clamp returns a copy with hue wrapped into [0,1) and lightness and
// saturation clamped to [0,1].
func (c HLS) Clamp() HLS {
	return HLS{H: wrapUnit(c.H), L: clampUnit(c.L), S: clampUnit(c.S)}
}

// CMYK holds cyan, magenta, yellow and key as integer percentages.
type CMYK struct {
	C int `json:"c"`
	M int `json:"m"`
	Y int `json:"y"`
	K int `json:"k"`
}

// String returns the CMYK colour as "cmyk(c%, m%, y%, k%)".
func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%d%%, %d%%, %d%%, %d%%)", c.C, c.M, c.Y, c.K)
}

// RGBToHLS converts an RGB colour to normalized HLS.
func RGBToHLS(rgb RGB) HLS {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	sumc := maxc + minc
	rangec := maxc - minc

	l := sumc / 2.0
	if minc == maxc {
		return HLS{H: 0, L: l, S: 0}
	}

	var s float64
	if l <= 0.5 {
		s = rangec / sumc
	} else {
		s = rangec / (2.0 - maxc - minc)
	}

	rc := (maxc - r) / rangec
	gc := (maxc - g) / rangec
	bc := (maxc - b) / rangec

	var h float64
	switch maxc {
	case r:
		h = bc - gc
	case g:
		h = 2.0 + rc - bc
	default:
		h = 4.0 + gc - rc
	}

	return HLS{H: wrapUnit(h / 6.0), L: l, S: s}
}

// HLSToRGB converts HLS back to RGB. Out-of-range components are clamped
// (hue wrapped) first. Channels are truncated, not rounded, so the round trip
// is exact for primaries but may drift by one for other colours.
func HLSToRGB(c HLS) RGB {
	c = c.Clamp()

	if c.S == 0 {
		v := toChannel(c.L)
		return RGB{R: v, G: v, B: v}
	}

	var m2 float64
	if c.L <= 0.5 {
		m2 = c.L * (1.0 + c.S)
	} else {
		m2 = c.L + c.S - float64(c.L*c.S)
	}
	m1 := 2.0*c.L - m2

	return RGB{
		R: toChannel(hueValue(m1, m2, c.H+oneThird)),
		G: toChannel(hueValue(m1, m2, c.H)),
		B: toChannel(hueValue(m1, m2, c.H-oneThird)),
	}
}

// hueValue evaluates one channel of the HLS to RGB conversion. The explicit
// float64 conversions keep the compiler from fusing multiply-adds, which
// would shift truncated channels by one on some architectures.
func hueValue(m1, m2, hue float64) float64 {
	hue = floorMod(hue, 1.0)
	switch {
	case hue < oneSixth:
		return m1 + float64((m2-m1)*hue*6.0)
	case hue < 0.5:
		return m2
	case hue < twoThirds:
		return m1 + float64((m2-m1)*(twoThirds-hue)*6.0)
	default:
		return m1
	}
}

// toChannel truncates a unit value to an 8-bit channel.
func toChannel(v float64) uint8 {
	return clampChannel(int(v * 255))
}

// RGBToHex formats an RGB colour as "#RRGGBB" with uppercase digits.
func RGBToHex(rgb RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// ParseHex parses "#RRGGBB", "RRGGBB", "#RGB" or "RGB" in either case.
// The error wraps ErrInvalidFormat.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q: expected 3 or 6 hex digits", ErrInvalidFormat, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q: non-hex characters", ErrInvalidFormat, s)
	}

	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// ParseColour parses a hex string, an "r,g,b" triple, "rgb(r, g, b)" or a
// colour name. Triple components outside [0,255] are rejected.
func ParseColour(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		return parseTriple(s, lower[4:len(lower)-1])
	}
	if strings.Contains(s, ",") {
		return parseTriple(s, s)
	}

	rgb, err := ParseHex(s)
	if err == nil {
		return rgb, nil
	}
	if named, ok := LookupName(s); ok {
		return named, nil
	}
	return RGB{}, err
}

func parseTriple(orig, body string) (RGB, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("%w: %q: expected three components", ErrInvalidFormat, orig)
	}

	var channels [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: component %d is not an integer", ErrInvalidFormat, orig, i+1)
		}
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("%w: %q: component %d out of range (0-255)", ErrInvalidFormat, orig, i+1)
		}
		channels[i] = uint8(v)
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// RGBToCMYK converts RGB to CMYK percentages. Pure black is special-cased to
// (0, 0, 0, 100).
func RGBToCMYK(rgb RGB) CMYK {
	if rgb == Black {
		return CMYK{C: 0, M: 0, Y: 0, K: 100}
	}

	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	k := 1 - math.Max(r, math.Max(g, b))
	c := (1 - r - k) / (1 - k)
	m := (1 - g - k) / (1 - k)
	y := (1 - b - k) / (1 - k)

	return CMYK{
		C: percent(c),
		M: percent(m),
		Y: percent(y),
		K: percent(k),
	}
}

// percent rounds a unit value to an integer percentage, ties to even.
func percent(v float64) int {
	return int(math.RoundToEven(v * 100))
}

// HSLString formats a colour as "hsl(H, S%, L%)".
func HSLString(rgb RGB) string {
	c := RGBToHLS(rgb)
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)",
		int(math.RoundToEven(c.H*360)), percent(c.S), percent(c.L))
}

// RotateHue rotates a unit hue by degrees. The result is in [0,1).
func RotateHue(h, degrees float64) float64 {
	return wrapUnit(h + degrees/360.0)
}

// Conversion bundles every derived representation of one colour.
type Conversion struct {
	RGB  RGB    `json:"rgb"`
	Hex  string `json:"hex"`
	HLS  HLS    `json:"hls"`
	CMYK CMYK   `json:"cmyk"`
	HSL  string `json:"hsl"`
}

// Convert derives all representations of an RGB colour.
func Convert(rgb RGB) Conversion {
	return Conversion{
		RGB:  rgb,
		Hex:  rgb.Hex(),
		HLS:  RGBToHLS(rgb),
		CMYK: RGBToCMYK(rgb),
		HSL:  HSLString(rgb),
	}
}

// floorMod is the floored modulo, so the result has the sign of m.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// wrapUnit wraps x into [0,1).
func wrapUnit(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	r := floorMod(x, 1.0)
	if r >= 1.0 {
		return 0
	}
	return r
}

func clampUnit(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0.0, math.Min(1.0, x))
}
