package sampler

import (
	"math"

	"github.com/jmylchreest/nullpick/internal/colour"
)

// Corrector transforms a sampled colour before it reaches the colour core.
// It stands in for display colour management, which is opaque to nullpick.
type Corrector interface {
	Correct(rgb colour.RGB) colour.RGB
}

// CorrectorFunc adapts a function to the Corrector interface.
type CorrectorFunc func(colour.RGB) colour.RGB

// Correct calls f(rgb).
func (f CorrectorFunc) Correct(rgb colour.RGB) colour.RGB {
	return f(rgb)
}

type identity struct{}

func (identity) Correct(rgb colour.RGB) colour.RGB { return rgb }

// Identity leaves colours unchanged.
var Identity Corrector = identity{}

// GammaCurve applies out = 255 * (in/255)^Gamma to every channel.
type GammaCurve struct {
	Gamma float64
	table [256]uint8
}

// NewGammaCurve precomputes the curve. A non-positive gamma, or exactly 1,
// yields Identity.
func NewGammaCurve(gamma float64) Corrector {
	if gamma <= 0 || gamma == 1 {
		return Identity
	}

	g := &GammaCurve{Gamma: gamma}
	for i := range g.table {
		v := math.Round(255 * math.Pow(float64(i)/255, gamma))
		g.table[i] = uint8(math.Max(0, math.Min(255, v)))
	}
	return g
}

// Correct maps each channel through the curve.
func (g *GammaCurve) Correct(rgb colour.RGB) colour.RGB {
	return colour.RGB{R: g.table[rgb.R], G: g.table[rgb.G], B: g.table[rgb.B]}
}

// Chain applies correctors in order.
func Chain(correctors ...Corrector) Corrector {
	return CorrectorFunc(func(rgb colour.RGB) colour.RGB {
		for _, c := range correctors {
			if c != nil {
				rgb = c.Correct(rgb)
			}
		}
		return rgb
	})
}
