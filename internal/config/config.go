package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Defaults.
const (
	DefaultBackground  = "db5461"
	DefaultForeground  = "e57369"
	DefaultThreshold   = 0.4
	DefaultSmoothness  = 0.025
	DefaultSpawnChance = 0.02
	DefaultWidth       = 800
	DefaultHeight      = 600
)

var (
	DefaultBlobSpeed = Range{Min: 0.5, Max: 1.0}
	DefaultBlobSize  = Range{Min: 32, Max: 128}
)

// SeedEnv overrides the random seed when -seed is not given.
const SeedEnv = "LAVALAMP_SEED"

// Options is everything the lamp can be configured with.
type Options struct {
	Background  Color
	Foreground  Color
	Threshold   float64
	Smoothness  float64
	SpawnChance float64
	BlobSpeed   Range // pixels per step
	BlobSize    Range // diameter in pixels
	Width       int
	Height      int
	Seed        uint64
	Debug       bool
}

func Default() Options {
	return Options{
		Background:  MustParseColor(DefaultBackground),
		Foreground:  MustParseColor(DefaultForeground),
		Threshold:   DefaultThreshold,
		Smoothness:  DefaultSmoothness,
		SpawnChance: DefaultSpawnChance,
		BlobSpeed:   DefaultBlobSpeed,
		BlobSize:    DefaultBlobSize,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
	}
}

// Parse reads command line arguments (without the program name). The seed
// falls back to $LAVALAMP_SEED, then to the clock.
func Parse(args []string, stderr io.Writer) (Options, error) {
	opts := Default()

	fs := flag.NewFlagSet("lavalamp", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Var(&opts.Background, "b", "background colour (hex RGB)")
	fs.Var(&opts.Background, "background-color", "background colour (hex RGB)")
	fs.Var(&opts.Foreground, "f", "blob colour (hex RGB)")
	fs.Var(&opts.Foreground, "foreground-color", "blob colour (hex RGB)")
	fs.Float64Var(&opts.Threshold, "threshold", opts.Threshold, "alpha threshold where blobs merge")
	fs.Float64Var(&opts.Smoothness, "smooth", opts.Smoothness, "softness of the blob edge")
	fs.Float64Var(&opts.SpawnChance, "c", opts.SpawnChance, "blob spawn chance per step (0..1)")
	fs.Float64Var(&opts.SpawnChance, "spawn-chance", opts.SpawnChance, "blob spawn chance per step (0..1)")
	fs.Var(&opts.BlobSpeed, "s", "blob speed range, min..max pixels per step")
	fs.Var(&opts.BlobSpeed, "speed", "blob speed range, min..max pixels per step")
	fs.Var(&opts.BlobSize, "S", "blob diameter range, min..max pixels")
	fs.Var(&opts.BlobSize, "size", "blob diameter range, min..max pixels")
	fs.IntVar(&opts.Width, "width", opts.Width, "initial window width")
	fs.IntVar(&opts.Height, "height", opts.Height, "initial window height")
	seed := fs.String("seed", "", "random seed (default $"+SeedEnv+" or the clock)")
	fs.BoolVar(&opts.Debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	s := *seed
	if s == "" {
		s = os.Getenv(SeedEnv)
	}
	if s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Options{}, fmt.Errorf("invalid seed %q: %w", s, err)
		}
		opts.Seed = v
	} else {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks value ranges that flag parsing cannot.
func (o Options) Validate() error {
	var errs []error
	if o.SpawnChance < 0 || o.SpawnChance > 1 {
		errs = append(errs, fmt.Errorf("spawn chance %v outside 0..1", o.SpawnChance))
	}
	if o.BlobSpeed.Min > o.BlobSpeed.Max {
		errs = append(errs, fmt.Errorf("speed range %v is inverted", o.BlobSpeed))
	}
	if o.BlobSpeed.Min < 0 {
		errs = append(errs, fmt.Errorf("speed range %v is negative", o.BlobSpeed))
	}
	if o.BlobSize.Min > o.BlobSize.Max {
		errs = append(errs, fmt.Errorf("size range %v is inverted", o.BlobSize))
	}
	if o.BlobSize.Min < 0 {
		errs = append(errs, fmt.Errorf("size range %v is negative", o.BlobSize))
	}
	if o.Width <= 0 || o.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", o.Width, o.Height))
	}
	return errors.Join(errs...)
}
