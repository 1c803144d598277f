// Package sampler reads pixel blocks from a colour source and reduces them to
// a single picked colour.
//
// A Sampler is selected once at startup and passed to the components that
// need it. There is no process-wide sampler.
package sampler

import (
	"context"
	"fmt"
	"image"
	"slices"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/nullpick/internal/colour"
)

// Sampler captures rectangular blocks of pixels.
type Sampler interface {
	// Name returns the sampler's registry name (e.g., "image", "uniform").
	Name() string

	// Grab returns the pixels of area. Parts of area outside the source are
	// not returned, so the result may be smaller than area or empty.
	Grab(ctx context.Context, area image.Rectangle) (image.Image, error)

	// Bounds returns the extent of the source.
	Bounds() image.Rectangle
}

// ImageSampler samples from a decoded snapshot image.
type ImageSampler struct {
	img image.Image
}

// NewImageSampler creates a sampler over img.
func NewImageSampler(img image.Image) *ImageSampler {
	return &ImageSampler{img: img}
}

// Name returns the sampler name.
func (s *ImageSampler) Name() string {
	return "image"
}

// Bounds returns the snapshot bounds.
func (s *ImageSampler) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Grab returns the part of area covered by the snapshot.
func (s *ImageSampler) Grab(ctx context.Context, area image.Rectangle) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	area = area.Intersect(s.img.Bounds())
	if sub, ok := s.img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(area), nil
	}

	// Fall back to copying for images without SubImage.
	out := image.NewRGBA(area)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			out.Set(x, y, s.img.At(x, y))
		}
	}
	return out, nil
}

// UniformSampler reports the same colour everywhere inside its bounds.
type UniformSampler struct {
	rgb    colour.RGB
	bounds image.Rectangle
}

// NewUniformSampler creates a sampler of one colour over bounds.
func NewUniformSampler(rgb colour.RGB, bounds image.Rectangle) *UniformSampler {
	return &UniformSampler{rgb: rgb, bounds: bounds}
}

// Name returns the sampler name.
func (s *UniformSampler) Name() string {
	return "uniform"
}

// Bounds returns the sampler bounds.
func (s *UniformSampler) Bounds() image.Rectangle {
	return s.bounds
}

// Grab returns a uniform image covering the part of area inside the bounds.
func (s *UniformSampler) Grab(ctx context.Context, area image.Rectangle) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := image.NewRGBA(area.Intersect(s.bounds))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: s.rgb.ToColor()}, image.Point{}, draw.Src)
	return out, nil
}

// Factory builds a sampler from options.
type Factory func(opts Options) (Sampler, error)

// Options configure sampler construction.
type Options struct {
	// Snapshot is a decoded image for the image sampler.
	Snapshot image.Image

	// Fill is the colour of the uniform sampler.
	Fill colour.RGB

	// Bounds is the extent of the uniform sampler.
	Bounds image.Rectangle
}

// Registry holds the available sampler implementations.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with the built-in samplers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("image", func(opts Options) (Sampler, error) {
		if opts.Snapshot == nil {
			return nil, fmt.Errorf("image sampler requires a snapshot")
		}
		return NewImageSampler(opts.Snapshot), nil
	})
	r.Register("uniform", func(opts Options) (Sampler, error) {
		bounds := opts.Bounds
		if bounds.Empty() {
			bounds = image.Rect(0, 0, 1, 1)
		}
		return NewUniformSampler(opts.Fill, bounds), nil
	})
	return r
}

// Register adds a factory under name, replacing any existing one.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Get builds the named sampler.
func (r *Registry) Get(name string, opts Options) (Sampler, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown sampler: %s (available: %v)", name, r.List())
	}
	return f(opts)
}

// List returns all registered sampler names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Select picks the image sampler when a snapshot is present and the uniform
// sampler otherwise.
func (r *Registry) Select(opts Options) (Sampler, error) {
	if opts.Snapshot != nil {
		return r.Get("image", opts)
	}
	return r.Get("uniform", opts)
}
