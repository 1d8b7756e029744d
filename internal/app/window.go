package app

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const WindowTitle = "lavalamp"

func initWindow(width, height int) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)

	window, err := glfw.CreateWindow(width, height, WindowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// bindWindowEvents forwards glfw window callbacks onto bus.
func bindWindowEvents(window *glfw.Window, bus *EventBus) {
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		bus.Emit(Event{Type: EventResize, Width: width, Height: height})
	})
	window.SetCloseCallback(func(_ *glfw.Window) {
		bus.Emit(Event{Type: EventClose})
	})
}
