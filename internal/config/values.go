package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Gamma is the exponent used to linearize sRGB-like hex colours.
const Gamma = 2.2

// Color is an RGB colour in linear space, each channel in [0,1).
type Color struct {
	R, G, B float32
	hex     string
}

// ParseColor reads a 24-bit hex colour ("db5461") and linearizes it.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	raw, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	c := Color{
		R:   float32((raw&0x00ff0000)>>16) / 256,
		G:   float32((raw&0x0000ff00)>>8) / 256,
		B:   float32(raw&0x000000ff) / 256,
		hex: s,
	}
	return c.Linear(), nil
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Linear applies the gamma curve to each channel.
func (c Color) Linear() Color {
	return Color{
		R:   float32(math.Pow(float64(c.R), Gamma)),
		G:   float32(math.Pow(float64(c.G), Gamma)),
		B:   float32(math.Pow(float64(c.B), Gamma)),
		hex: c.hex,
	}
}

func (c Color) Vec3() mgl32.Vec3 { return mgl32.Vec3{c.R, c.G, c.B} }

func (c Color) String() string { return c.hex }

// Set implements flag.Value.
func (c *Color) Set(s string) error {
	v, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

var (
	ErrMissingDelimiter = errors.New("missing '..' delimiter")
	ErrMissingLeft      = errors.New("missing left-hand side of range")
	ErrMissingRight     = errors.New("missing right-hand side of range")
)

// FloatError reports which side of a range failed to parse.
type FloatError struct {
	Side string // "left" or "right"
	Err  error
}

func (e *FloatError) Error() string {
	return fmt.Sprintf("invalid float on %s-hand side: %v", e.Side, e.Err)
}

func (e *FloatError) Unwrap() error { return e.Err }

// Range is an inclusive float interval written "min..max".
type Range struct {
	Min, Max float32
}

func ParseRange(s string) (Range, error) {
	left, right, ok := strings.Cut(s, "..")
	if !ok {
		return Range{}, ErrMissingDelimiter
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" {
		return Range{}, ErrMissingLeft
	}
	if right == "" {
		return Range{}, ErrMissingRight
	}
	lo, err := strconv.ParseFloat(left, 32)
	if err != nil {
		return Range{}, &FloatError{Side: "left", Err: err}
	}
	hi, err := strconv.ParseFloat(right, 32)
	if err != nil {
		return Range{}, &FloatError{Side: "right", Err: err}
	}
	return Range{Min: float32(lo), Max: float32(hi)}, nil
}

func (r Range) String() string {
	return strconv.FormatFloat(float64(r.Min), 'f', -1, 32) + ".." +
		strconv.FormatFloat(float64(r.Max), 'f', -1, 32)
}

// Set implements flag.Value.
func (r *Range) Set(s string) error {
	v, err := ParseRange(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
