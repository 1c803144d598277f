package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemeName identifies one of the harmonic palette schemes.
type SchemeName string

const (
	SchemeMonochromatic      SchemeName = "Monochromatic"
	SchemeAnalogous          SchemeName = "Analogous"
	SchemeComplementary      SchemeName = "Complementary"
	SchemeSplitComplementary SchemeName = "Split Complementary"
	SchemeTriadic            SchemeName = "Triadic"
	SchemeTetradic           SchemeName = "Tetradic"
)

// SchemeNames returns every scheme in display order.
func SchemeNames() []SchemeName {
	return []SchemeName{
		SchemeMonochromatic,
		SchemeAnalogous,
		SchemeComplementary,
		SchemeSplitComplementary,
		SchemeTriadic,
		SchemeTetradic,
	}
}

// ParseSchemeName matches a scheme case-insensitively, accepting '-' or '_'
// in place of the space (e.g. "split-complementary").
func ParseSchemeName(s string) (SchemeName, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, name := range SchemeNames() {
		if strings.ToLower(string(name)) == norm {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown scheme: %s (valid schemes: %v)", s, SchemeNames())
}

// monochromeSteps are the lightness deltas of the monochromatic scheme.
var monochromeSteps = []float64{-0.30, -0.15, 0, 0.15, 0.30}

// PaletteEntry is one displayable colour of a scheme.
type PaletteEntry struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// Scheme is a named, ordered list of palette entries.
type Scheme struct {
	Name    SchemeName     `json:"name"`
	Entries []PaletteEntry `json:"colors"`
}

// Len returns the number of entries in the scheme.
func (s Scheme) Len() int {
	return len(s.Entries)
}

// PaletteSet holds every harmonic scheme derived from one base colour.
type PaletteSet struct {
	Base    RGB      `json:"base"`
	Schemes []Scheme `json:"schemes"`
}

// Scheme returns the scheme with the given name.
func (p PaletteSet) Scheme(name SchemeName) (Scheme, bool) {
	for _, s := range p.Schemes {
		if s.Name == name {
			return s, true
		}
	}
	return Scheme{}, false
}

// ToJSON renders the palette set as indented JSON.
func (p PaletteSet) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// GeneratePalettes derives all six harmonic schemes from a base colour.
func GeneratePalettes(base RGB) PaletteSet {
	hls := RGBToHLS(base)

	schemes := make([]Scheme, 0, len(SchemeNames()))
	for _, name := range SchemeNames() {
		schemes = append(schemes, Scheme{
			Name:    name,
			Entries: toEntries(schemeColours(name, hls)),
		})
	}

	return PaletteSet{Base: base, Schemes: schemes}
}

// schemeColours builds the HLS colours of one scheme. Only hue or lightness
// changes; saturation is always carried from the base.
func schemeColours(name SchemeName, c HLS) []HLS {
	withHue := func(h float64) HLS { return HLS{H: h, L: c.L, S: c.S} }

	switch name {
	case SchemeMonochromatic:
		out := make([]HLS, len(monochromeSteps))
		for i, delta := range monochromeSteps {
			out[i] = HLS{H: c.H, L: clampUnit(c.L + delta), S: c.S}
		}
		return out
	case SchemeAnalogous:
		return []HLS{c, withHue(RotateHue(c.H, 30)), withHue(RotateHue(c.H, -30))}
	case SchemeComplementary:
		return []HLS{c, withHue(RotateHue(c.H, 180))}
	case SchemeSplitComplementary:
		opposite := RotateHue(c.H, 180)
		return []HLS{c, withHue(RotateHue(opposite, 30)), withHue(RotateHue(opposite, -30))}
	case SchemeTriadic:
		return []HLS{c, withHue(RotateHue(c.H, 120)), withHue(RotateHue(c.H, -120))}
	case SchemeTetradic:
		// Rectangle: two complementary pairs 60 degrees apart.
		h2 := RotateHue(c.H, 180)
		return []HLS{c, withHue(h2), withHue(RotateHue(c.H, 60)), withHue(RotateHue(h2, 60))}
	default:
		return nil
	}
}

func toEntries(colours []HLS) []PaletteEntry {
	entries := make([]PaletteEntry, len(colours))
	for i, c := range colours {
		rgb := HLSToRGB(c)
		entries[i] = PaletteEntry{Hex: rgb.Hex(), RGB: rgb}
	}
	return entries
}
