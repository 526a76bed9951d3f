package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/paperboard/solarsystem/input"
)

// glfwClock is the scene's time source: seconds since glfw.Init.
type glfwClock struct{}

func (glfwClock) Now() float64 { return glfw.GetTime() }

var namedKeys = map[string]glfw.Key{
	"space":     glfw.KeySpace,
	"escape":    glfw.KeyEscape,
	"enter":     glfw.KeyEnter,
	"tab":       glfw.KeyTab,
	"backspace": glfw.KeyBackspace,
	"left":      glfw.KeyLeft,
	"right":     glfw.KeyRight,
	"up":        glfw.KeyUp,
	"down":      glfw.KeyDown,
	"pageup":    glfw.KeyPageUp,
	"pagedown":  glfw.KeyPageDown,
	"home":      glfw.KeyHome,
	"end":       glfw.KeyEnd,
}

// keyByName resolves a binding such as "left", "space", "p" or "7".
func keyByName(name string) (glfw.Key, error) {
	if k, ok := namedKeys[name]; ok {
		return k, nil
	}
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'a' && c <= 'z':
			return glfw.KeyA + glfw.Key(c-'a'), nil
		case c >= '0' && c <= '9':
			return glfw.Key0 + glfw.Key(c-'0'), nil
		}
	}
	return glfw.KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// glfwInput polls the window's keyboard state through the configured
// bindings.
type glfwInput struct {
	window *glfw.Window
	keys   map[input.Signal]glfw.Key
}

func newGLFWInput(window *glfw.Window, bindings input.Bindings) (*glfwInput, error) {
	if err := bindings.Validate(); err != nil {
		return nil, err
	}
	in := &glfwInput{window: window, keys: map[input.Signal]glfw.Key{}}
	for sig, name := range bindings {
		k, err := keyByName(name)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", sig, err)
		}
		in.keys[sig] = k
	}
	return in, nil
}

func (in *glfwInput) Poll() input.State {
	var s input.State
	for sig, k := range in.keys {
		s.Set(sig, in.window.GetKey(k) == glfw.Press)
	}
	return s
}
