package colour

import (
	"fmt"
	"math"
)

// WCAG 2.0 contrast thresholds.
const (
	ThresholdNormalAA  = 4.5
	ThresholdNormalAAA = 7.0
	ThresholdLargeAA   = 3.0
	ThresholdLargeAAA  = 4.5

	// DefaultTargetRatio is the target used when a suggestion is requested
	// without one.
	DefaultTargetRatio = ThresholdNormalAA

	// lightnessStep is the increment of the suggestion scan.
	lightnessStep = 0.01
)

// RelativeLuminance calculates the relative luminance of a colour according to
// WCAG 2.0. Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func RelativeLuminance(rgb RGB) float64 {
	r := linearize(float64(rgb.R) / 255.0)
	g := linearize(float64(rgb.G) / 255.0)
	b := linearize(float64(rgb.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// linearize applies the sRGB transfer function inverse to one channel.
func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the WCAG 2.0 contrast ratio between two colours.
// Returns a value between 1 and 21.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(fg, bg RGB) float64 {
	return ratioOf(RelativeLuminance(fg), RelativeLuminance(bg))
}

func ratioOf(l1, l2 float64) float64 {
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// ContrastRatioHex is ContrastRatio over hex strings. If either string is
// invalid the worst-case ratio (1.0) is returned instead of an error.
func ContrastRatioHex(fgHex, bgHex string) float64 {
	fg, err := ParseHex(fgHex)
	if err != nil {
		return 1.0
	}
	bg, err := ParseHex(bgHex)
	if err != nil {
		return 1.0
	}
	return ContrastRatio(fg, bg)
}

// Compliance reports which WCAG levels a ratio passes.
type Compliance struct {
	NormalAA  bool `json:"normal_aa"`
	NormalAAA bool `json:"normal_aaa"`
	LargeAA   bool `json:"large_aa"`
	LargeAAA  bool `json:"large_aaa"`
}

// Classify checks a ratio against the AA and AAA thresholds for normal and
// large text. A level passes when ratio >= threshold.
func Classify(ratio float64) Compliance {
	return Compliance{
		NormalAA:  ratio >= ThresholdNormalAA,
		NormalAAA: ratio >= ThresholdNormalAAA,
		LargeAA:   ratio >= ThresholdLargeAA,
		LargeAAA:  ratio >= ThresholdLargeAAA,
	}
}

// ContrastResult is the full contrast analysis of a colour pair.
type ContrastResult struct {
	Foreground          RGB     `json:"foreground"`
	Background          RGB     `json:"background"`
	ForegroundLuminance float64 `json:"foreground_luminance"`
	BackgroundLuminance float64 `json:"background_luminance"`
	Ratio               float64 `json:"ratio"`
	Compliance
}

// String returns the ratio formatted as "4.50:1".
func (r ContrastResult) String() string {
	return fmt.Sprintf("%.2f:1", r.Ratio)
}

// Analyse computes the contrast analysis of two colours.
func Analyse(fg, bg RGB) ContrastResult {
	fl := RelativeLuminance(fg)
	bl := RelativeLuminance(bg)
	ratio := ratioOf(fl, bl)

	return ContrastResult{
		Foreground:          fg,
		Background:          bg,
		ForegroundLuminance: fl,
		BackgroundLuminance: bl,
		Ratio:               ratio,
		Compliance:          Classify(ratio),
	}
}

// ComputeContrast analyses two hex colours. Invalid input yields ratio 1.0
// with every level failing.
func ComputeContrast(fgHex, bgHex string) ContrastResult {
	fg, fgErr := ParseHex(fgHex)
	bg, bgErr := ParseHex(bgHex)
	if fgErr != nil || bgErr != nil {
		return ContrastResult{Ratio: 1.0, Compliance: Classify(1.0)}
	}
	return Analyse(fg, bg)
}

// SuggestForeground looks for a foreground with the same hue and saturation
// as fg that reaches target against bg. Lightness is scanned upward and then
// downward from fg's own lightness in fixed steps, each scan stopping at its
// first passing colour. When both scans succeed the upward result wins, even
// if the downward one is closer. If neither succeeds fg is returned with ok
// set to false.
func SuggestForeground(fg, bg RGB, target float64) (RGB, bool) {
	if target <= 0 {
		target = DefaultTargetRatio
	}

	bgLum := RelativeLuminance(bg)
	base := RGBToHLS(fg)

	passes := func(l float64) (RGB, bool) {
		candidate := HLSToRGB(HLS{H: base.H, L: l, S: base.S})
		return candidate, ratioOf(RelativeLuminance(candidate), bgLum) >= target
	}

	if up, ok := scanLightness(base.L, lightnessStep, passes); ok {
		return up, true
	}
	if down, ok := scanLightness(base.L, -lightnessStep, passes); ok {
		return down, true
	}
	return fg, false
}

// scanLightness walks from start in increments of step while the lightness
// stays within [0,1], returning the first colour accepted by test.
func scanLightness(start, step float64, test func(float64) (RGB, bool)) (RGB, bool) {
	for l := start; l >= 0.0 && l <= 1.0; l += step {
		if rgb, ok := test(l); ok {
			return rgb, true
		}
	}
	return RGB{}, false
}

// SuggestForegroundHex is SuggestForeground over hex strings. Invalid input,
// or no passing lightness, returns fgHex unchanged.
func SuggestForegroundHex(fgHex, bgHex string, target float64) string {
	fg, err := ParseHex(fgHex)
	if err != nil {
		return fgHex
	}
	bg, err := ParseHex(bgHex)
	if err != nil {
		return fgHex
	}

	suggested, ok := SuggestForeground(fg, bg, target)
	if !ok {
		return fgHex
	}
	return suggested.Hex()
}
