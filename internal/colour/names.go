package colour

import (
	"math"
	"strings"
)

// namedColour is a colour name with its typical RGB value.
type namedColour struct {
	Name    string
	RGB     RGB
	Aliases []string
}

// Terminal (xterm basic 16) names plus a few common extras.
// Actual terminals may vary slightly.
var namedColours = []namedColour{
	{Name: "black", RGB: RGB{0, 0, 0}, Aliases: []string{"color0"}},
	{Name: "red", RGB: RGB{205, 49, 49}, Aliases: []string{"color1"}},
	{Name: "green", RGB: RGB{13, 188, 121}, Aliases: []string{"color2"}},
	{Name: "yellow", RGB: RGB{229, 229, 16}, Aliases: []string{"color3"}},
	{Name: "blue", RGB: RGB{36, 114, 200}, Aliases: []string{"color4"}},
	{Name: "magenta", RGB: RGB{188, 63, 188}, Aliases: []string{"color5", "purple"}},
	{Name: "cyan", RGB: RGB{17, 168, 205}, Aliases: []string{"color6"}},
	{Name: "white", RGB: RGB{229, 229, 229}, Aliases: []string{"color7", "gray", "grey"}},

	{Name: "brightblack", RGB: RGB{102, 102, 102}, Aliases: []string{"color8", "darkgray", "darkgrey"}},
	{Name: "brightred", RGB: RGB{241, 76, 76}, Aliases: []string{"color9"}},
	{Name: "brightgreen", RGB: RGB{35, 209, 139}, Aliases: []string{"color10"}},
	{Name: "brightyellow", RGB: RGB{245, 245, 67}, Aliases: []string{"color11"}},
	{Name: "brightblue", RGB: RGB{59, 142, 234}, Aliases: []string{"color12"}},
	{Name: "brightmagenta", RGB: RGB{214, 112, 214}, Aliases: []string{"color13", "brightpurple"}},
	{Name: "brightcyan", RGB: RGB{41, 184, 219}, Aliases: []string{"color14"}},
	{Name: "brightwhite", RGB: RGB{255, 255, 255}, Aliases: []string{"color15"}},

	{Name: "orange", RGB: RGB{255, 165, 0}},
	{Name: "pink", RGB: RGB{255, 192, 203}},
	{Name: "brown", RGB: RGB{165, 42, 42}},
	{Name: "lime", RGB: RGB{0, 255, 0}},
	{Name: "navy", RGB: RGB{0, 0, 128}, Aliases: []string{"darkblue"}},
	{Name: "teal", RGB: RGB{0, 128, 128}, Aliases: []string{"darkcyan"}},
	{Name: "maroon", RGB: RGB{128, 0, 0}, Aliases: []string{"darkred"}},
	{Name: "olive", RGB: RGB{128, 128, 0}, Aliases: []string{"darkyellow"}},
	{Name: "violet", RGB: RGB{238, 130, 238}},
	{Name: "indigo", RGB: RGB{75, 0, 130}},
}

// normalizeName lowercases and removes spaces and dashes.
func normalizeName(name string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name))
}

// LookupName returns the colour for a name or alias (case-insensitive).
func LookupName(name string) (RGB, bool) {
	n := normalizeName(name)
	if n == "" {
		return RGB{}, false
	}
	for _, nc := range namedColours {
		if nc.Name == n {
			return nc.RGB, true
		}
		for _, alias := range nc.Aliases {
			if alias == n {
				return nc.RGB, true
			}
		}
	}
	return RGB{}, false
}

// NearestName returns the canonical name of the closest named colour.
func NearestName(rgb RGB) string {
	best := ""
	minDistance := math.MaxFloat64
	for _, nc := range namedColours {
		if d := colourDistance(rgb, nc.RGB); d < minDistance {
			minDistance = d
			best = nc.Name
		}
	}
	return best
}

// ColourNames returns every canonical name and alias.
func ColourNames() []string {
	names := make([]string, 0, len(namedColours)*2)
	for _, nc := range namedColours {
		names = append(names, nc.Name)
		names = append(names, nc.Aliases...)
	}
	return names
}

// colourDistance is a weighted Euclidean distance in RGB space, weighting
// green most as human vision does.
func colourDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(2*dr*dr + 4*dg*dg + 3*db*db)
}
