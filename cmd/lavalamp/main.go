package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"lavalamp/internal/app"
	"lavalamp/internal/config"
	"lavalamp/internal/gfx"
)

func main() {
	opts, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "lavalamp: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gfx.SetLogger(logger.With("component", "gfx"))

	if err := app.RunDesktop(opts); err != nil {
		logger.Error("lavalamp failed", "err", err)
		os.Exit(1)
	}
}
