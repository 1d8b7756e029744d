package app

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"lavalamp/internal/config"
	"lavalamp/internal/gfx"
	"lavalamp/internal/lamp"
)

func lampConfig(opts config.Options) lamp.Config {
	return lamp.Config{
		SpawnChance: float32(opts.SpawnChance),
		BlobSpeed:   opts.BlobSpeed,
		BlobSize:    opts.BlobSize,
	}
}

// simulate runs every fixed step that elapsed seconds pay for on a
// width x height area and returns how far the lamp is into the next step.
func simulate(l *lamp.LavaLamp, clock *lamp.Clock, elapsed float64, width, height int) float32 {
	for range clock.Advance(elapsed) {
		l.Update(width, height)
	}
	return clock.Fraction()
}

// RunDesktop opens the window and runs the lamp until it is closed or Escape
// is pressed. Setup, allocation and draw errors end the run and are returned.
func RunDesktop(opts config.Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	dev, err := gfx.NewGLDevice()
	if err != nil {
		return err
	}
	defer dev.Destroy()

	fbW, fbH := window.GetFramebufferSize()
	rend, err := NewRenderer(dev, max(fbW, 1), max(fbH, 1), opts)
	if err != nil {
		return err
	}
	defer rend.Destroy()

	lava := lamp.New(lampConfig(opts), opts.Seed)

	bus := NewEventBus()
	var resize resizeLatch
	resize.watch(bus)
	closed := false
	bus.Subscribe(EventClose, func(Event) { closed = true })
	bindWindowEvents(window, bus)

	input := NewInput()
	var clock lamp.Clock

	slog.Info("lavalamp running", "width", fbW, "height", fbH, "seed", opts.Seed)

	last := glfw.GetTime()
	for !closed && !window.ShouldClose() {
		now := glfw.GetTime()
		elapsed := now - last
		last = now

		glfw.PollEvents()
		if input.JustPressed(window, glfw.KeyEscape) {
			window.SetShouldClose(true)
		}

		// Surfaces must match the window before anything is drawn this frame.
		if w, h, ok := resize.take(); ok && w > 0 && h > 0 {
			slog.Debug("framebuffer resized", "width", w, "height", h)
			if err := rend.Resize(w, h); err != nil {
				return err
			}
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			// Minimized.
			continue
		}

		w, h := rend.Size()
		step := simulate(lava, &clock, elapsed, w, h)
		if err := rend.DrawFrame(lava, step, gfx.Screen{Width: fbW, Height: fbH}); err != nil {
			return err
		}
		window.SwapBuffers()
	}

	slog.Info("lavalamp stopped", "blobs", lava.Len())
	return nil
}
