package main

import (
	"math"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperboard/solarsystem/config"
	"github.com/paperboard/solarsystem/input"
)

func TestKeyByName(t *testing.T) {
	cases := map[string]glfw.Key{
		"space":  glfw.KeySpace,
		"escape": glfw.KeyEscape,
		"left":   glfw.KeyLeft,
		"a":      glfw.KeyA,
		"p":      glfw.KeyP,
		"z":      glfw.KeyZ,
		"0":      glfw.Key0,
		"9":      glfw.Key9,
	}
	for name, want := range cases {
		got, err := keyByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, bad := range []string{"", "shift-a", "F13", "é"} {
		_, err := keyByName(bad)
		assert.Error(t, err, bad)
	}
}

func TestDefaultBindingsResolve(t *testing.T) {
	for sig, name := range input.DefaultBindings() {
		_, err := keyByName(name)
		assert.NoError(t, err, sig)
	}
}

func TestProjection(t *testing.T) {
	p := config.Default().Projection

	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(p.FOV), 1280.0/720.0, p.Near, p.Far), projection(p, 1280, 720))

	// minimized: no Inf or NaN from a zero height
	for _, size := range [][2]int{{0, 0}, {800, 0}, {0, 600}} {
		m := projection(p, size[0], size[1])
		for i, v := range m {
			assert.False(t, math.IsInf(float64(v), 0) || math.IsNaN(float64(v)), "%v element %d = %v", size, i, v)
		}
		assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(p.FOV), 1, p.Near, p.Far), m)
	}
}
