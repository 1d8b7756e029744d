package config

import (
	"errors"
	"io"
	"math"
	"strconv"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("ff8000")
	require.NoError(t, err)

	assert.InDelta(t, math.Pow(255.0/256, Gamma), c.R, 1e-6)
	assert.InDelta(t, math.Pow(128.0/256, Gamma), c.G, 1e-6)
	assert.Equal(t, float32(0), c.B)
	assert.Equal(t, "ff8000", c.String())
	assert.Equal(t, mgl32.Vec3{c.R, c.G, c.B}, c.Vec3())

	hashed, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, c, hashed)
}

func TestParseColor_Invalid(t *testing.T) {
	for _, s := range []string{"", "zzzzzz", "-1", "1ffffffff"} {
		_, err := ParseColor(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("0.5..1.0")
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 0.5, Max: 1}, r)

	r, err = ParseRange("32.0..128.0")
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 32, Max: 128}, r)
	assert.Equal(t, "32..128", r.String())

	r, err = ParseRange("-2..-1")
	require.NoError(t, err)
	assert.Equal(t, Range{Min: -2, Max: -1}, r)
}

func TestParseRange_Errors(t *testing.T) {
	cases := []struct {
		in   string
		want error
		side string
	}{
		{in: "1.0", want: ErrMissingDelimiter},
		{in: "", want: ErrMissingDelimiter},
		{in: "..2", want: ErrMissingLeft},
		{in: "1..", want: ErrMissingRight},
		{in: "..", want: ErrMissingLeft},
		{in: "a..2", side: "left"},
		{in: "1..b", side: "right"},
		{in: "1..2x", side: "right"},
	}
	for _, tc := range cases {
		_, err := ParseRange(tc.in)
		require.Error(t, err, "input %q", tc.in)
		if tc.want != nil {
			assert.ErrorIs(t, err, tc.want, "input %q", tc.in)
			continue
		}
		var fe *FloatError
		require.True(t, errors.As(err, &fe), "input %q: %v", tc.in, err)
		assert.Equal(t, tc.side, fe.Side)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Setenv(SeedEnv, "")
	opts, err := Parse(nil, io.Discard)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Background, opts.Background)
	assert.Equal(t, def.Foreground, opts.Foreground)
	assert.Equal(t, DefaultThreshold, opts.Threshold)
	assert.Equal(t, DefaultSmoothness, opts.Smoothness)
	assert.Equal(t, DefaultSpawnChance, opts.SpawnChance)
	assert.Equal(t, DefaultBlobSpeed, opts.BlobSpeed)
	assert.Equal(t, DefaultBlobSize, opts.BlobSize)
	assert.NotZero(t, opts.Seed)
}

func TestParse_Flags(t *testing.T) {
	opts, err := Parse([]string{
		"-b", "000000",
		"-foreground-color", "ffffff",
		"-threshold", "0.5",
		"-smooth", "0.1",
		"-c", "1",
		"-speed", "2..3",
		"-S", "10..20",
		"-seed", "42",
		"-width", "1024",
		"-height", "768",
		"-debug",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, float32(0), opts.Background.R)
	assert.InDelta(t, math.Pow(255.0/256, Gamma), opts.Foreground.G, 1e-6)
	assert.Equal(t, 0.5, opts.Threshold)
	assert.Equal(t, 0.1, opts.Smoothness)
	assert.Equal(t, 1.0, opts.SpawnChance)
	assert.Equal(t, Range{Min: 2, Max: 3}, opts.BlobSpeed)
	assert.Equal(t, Range{Min: 10, Max: 20}, opts.BlobSize)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.Equal(t, 1024, opts.Width)
	assert.Equal(t, 768, opts.Height)
	assert.True(t, opts.Debug)
}

func TestParse_SeedFromEnv(t *testing.T) {
	t.Setenv(SeedEnv, "1234")
	opts, err := Parse(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), opts.Seed)

	t.Setenv(SeedEnv, "nope")
	_, err = Parse(nil, io.Discard)
	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	bad := [][]string{
		{"-speed", "1.0"},
		{"-size", "a..2"},
		{"-b", "nothex"},
		{"-c", "1.5"},
		{"-c", "-0.1"},
		{"-speed", "2..1"},
		{"-size", "-5..10"},
		{"-width", "0"},
		{"extra"},
	}
	for _, args := range bad {
		_, err := Parse(args, io.Discard)
		assert.Error(t, err, "args %v", args)
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	o := Default()
	o.SpawnChance = 2
	o.BlobSize = Range{Min: 10, Max: 1}
	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spawn chance")
	assert.Contains(t, err.Error(), "size range")

	assert.NoError(t, Default().Validate())
}
