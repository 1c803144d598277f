package config

import (
	"github.com/jmylchreest/nullpick/internal/colour"
)

// Colour is a colour setting. It reads any form colour.ParseColour accepts
// and writes hex, both as JSON text and as a pflag.Value.
type Colour colour.RGB

// RGB returns the colour.
func (c Colour) RGB() colour.RGB {
	return colour.RGB(c)
}

// String returns the colour as hex.
func (c *Colour) String() string {
	if c == nil {
		return colour.Black.Hex()
	}
	return c.RGB().Hex()
}

// Set parses s.
func (c *Colour) Set(s string) error {
	rgb, err := colour.ParseColour(s)
	if err != nil {
		return err
	}
	*c = Colour(rgb)
	return nil
}

// Type names the value in help output.
func (c *Colour) Type() string {
	return "colour"
}

// MarshalText implements encoding.TextMarshaler.
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.RGB().Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Colour) UnmarshalText(text []byte) error {
	return c.Set(string(text))
}
