package sampler

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/draw"

	"github.com/jmylchreest/nullpick/internal/colour"
)

// Sample size limits. Sizes are odd so the block has a centre pixel.
const (
	MinSampleSize = 1
	MaxSampleSize = 31
)

// Method selects how a sampled block is reduced to one colour.
type Method string

const (
	// MethodAverage averages every pixel of the block.
	MethodAverage Method = "average"

	// MethodDominant picks the most frequent colour of the block.
	MethodDominant Method = "dominant"
)

// ValidateSampleSize checks that n is odd and within limits.
func ValidateSampleSize(n int) error {
	if n < MinSampleSize || n > MaxSampleSize {
		return fmt.Errorf("sample size must be between %d and %d, got %d", MinSampleSize, MaxSampleSize, n)
	}
	if n%2 == 0 {
		return fmt.Errorf("sample size must be odd, got %d", n)
	}
	return nil
}

// Picker turns a point on a sampler into a picked colour.
type Picker struct {
	sampler    Sampler
	corrector  Corrector
	sampleSize int
	method     Method
	logger     hclog.Logger
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithCorrector sets the colour correction applied to picked colours.
func WithCorrector(c Corrector) PickerOption {
	return func(p *Picker) {
		if c != nil {
			p.corrector = c
		}
	}
}

// WithMethod sets the block reduction method.
func WithMethod(m Method) PickerOption {
	return func(p *Picker) {
		p.method = m
	}
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) PickerOption {
	return func(p *Picker) {
		if l != nil {
			p.logger = l.Named("picker")
		}
	}
}

// NewPicker creates a picker reading single pixels from s.
func NewPicker(s Sampler, opts ...PickerOption) *Picker {
	p := &Picker{
		sampler:    s,
		corrector:  Identity,
		sampleSize: MinSampleSize,
		method:     MethodAverage,
		logger:     hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SampleSize returns the edge length of the sampled block.
func (p *Picker) SampleSize() int {
	return p.sampleSize
}

// SetSampleSize changes the edge length of the sampled block.
func (p *Picker) SetSampleSize(n int) error {
	if err := ValidateSampleSize(n); err != nil {
		return err
	}
	p.sampleSize = n
	return nil
}

// Area returns the sampled block centred on pt.
func (p *Picker) Area(pt image.Point) image.Rectangle {
	return centred(pt, p.sampleSize)
}

// centred returns the size x size square whose centre pixel is pt. For even
// sizes pt sits just right of and below the middle.
func centred(pt image.Point, size int) image.Rectangle {
	half := size / 2
	return image.Rect(pt.X-half, pt.Y-half, pt.X-half+size, pt.Y-half+size)
}

// PickAt samples the block around pt, reduces it and applies correction.
// A block entirely outside the source picks black.
func (p *Picker) PickAt(ctx context.Context, pt image.Point) (colour.RGB, error) {
	area := p.Area(pt).Intersect(p.sampler.Bounds())

	img, err := p.sampler.Grab(ctx, area)
	if err != nil {
		return colour.RGB{}, fmt.Errorf("failed to grab %v from %s sampler: %w", area, p.sampler.Name(), err)
	}

	var raw colour.RGB
	switch p.method {
	case MethodDominant:
		raw = dominant(img, area)
	default:
		raw = colour.AverageImage(img, area)
	}
	picked := p.corrector.Correct(raw)

	p.logger.Debug("picked colour",
		"point", pt.String(),
		"area", area.String(),
		"method", string(p.method),
		"raw", raw.Hex(),
		"picked", picked.Hex())

	return picked, nil
}

// dominant returns the most frequent colour in rect. Ties go to the colour
// seen first in row-major order.
func dominant(img image.Image, rect image.Rectangle) colour.RGB {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return colour.Black
	}

	counts := make(map[colour.RGB]int)
	best, bestCount := colour.Black, 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := colour.FromColor(img.At(x, y))
			counts[c]++
			if counts[c] > bestCount {
				best, bestCount = c, counts[c]
			}
		}
	}
	return best
}

// Magnify renders the grab x grab block around pt scaled by zoom with
// nearest-neighbour sampling, outlining the centre pixel. Pixels outside the
// source stay transparent.
func (p *Picker) Magnify(ctx context.Context, pt image.Point, grab, zoom int) (*image.RGBA, error) {
	if grab < 1 || zoom < 1 {
		return nil, fmt.Errorf("grab size and zoom must be positive, got %d and %d", grab, zoom)
	}

	area := centred(pt, grab)
	canvas := image.NewRGBA(image.Rect(0, 0, grab*zoom, grab*zoom))

	visible := area.Intersect(p.sampler.Bounds())
	if !visible.Empty() {
		src, err := p.sampler.Grab(ctx, visible)
		if err != nil {
			return nil, fmt.Errorf("failed to grab %v from %s sampler: %w", visible, p.sampler.Name(), err)
		}
		dst := image.Rectangle{
			Min: visible.Min.Sub(area.Min).Mul(zoom),
			Max: visible.Max.Sub(area.Min).Mul(zoom),
		}
		draw.NearestNeighbor.Scale(canvas, dst, src, visible, draw.Src, nil)
	}

	centre := pt.Sub(area.Min).Mul(zoom)
	box := image.Rect(centre.X, centre.Y, centre.X+zoom, centre.Y+zoom)
	outline(canvas, box.Inset(-1), color.White)
	outline(canvas, box, color.Black)

	return canvas, nil
}

// outline draws a one-pixel rectangle just inside r.
func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}
