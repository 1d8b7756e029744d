package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// keySource is the part of *glfw.Window that Input polls.
type keySource interface {
	GetKey(key glfw.Key) glfw.Action
}

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

// JustPressed reports a key going down since the previous call for that key.
func (in *Input) JustPressed(src keySource, key glfw.Key) bool {
	down := src.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}
