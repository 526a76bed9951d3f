package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperboard/solarsystem/input"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solarsystem.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(-90), cfg.Camera.Yaw)
	assert.Equal(t, float32(3), cfg.Camera.Radius)
	assert.Equal(t, float32(1.4), cfg.Earth.OrbitRadius)
	assert.Equal(t, 5, cfg.Planets.Count)
	assert.Len(t, cfg.Planets.Asset.Textures, 3)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Earth, cfg.Earth)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 800
height = 600

[earth]
orbit_radius = 2.5
orbit_speed = 10

[input]
pause = "P"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, float32(2.5), cfg.Earth.OrbitRadius)
	assert.Equal(t, float32(10), cfg.Earth.OrbitSpeed)
	// untouched values keep their defaults
	assert.Equal(t, float32(200), cfg.Earth.RotationSpeed)
	assert.Equal(t, "OpenGL Project: Solar System", cfg.Window.Title)

	b := cfg.Bindings()
	assert.Equal(t, "p", b[input.Pause])
	assert.Equal(t, "left", b[input.YawLeft])

	assert.Equal(t, filepath.Dir(path), cfg.Root)
}

func TestLoadRelativeRoot(t *testing.T) {
	path := writeConfig(t, `root = "data"`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "data"), cfg.Root)
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, `
[earth]
orbit_radious = 2
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "orbit_radious")
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, `[earth`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"window":        func(c *Config) { c.Window.Width = 0 },
		"samples":       func(c *Config) { c.Window.Samples = -4 },
		"near far":      func(c *Config) { c.Projection.Near = 200 },
		"fov":           func(c *Config) { c.Projection.FOV = 0 },
		"camera radius": func(c *Config) { c.Camera.Radius = -1 },
		"earth radius":  func(c *Config) { c.Earth.OrbitRadius = 0 },
		"moon scale":    func(c *Config) { c.Moon.Scale = 0 },
		"textures":      func(c *Config) { c.Planets.Asset.Textures = nil },
		"distance":      func(c *Config) { c.Planets.DistanceMin = 20 },
		"scale":         func(c *Config) { c.Planets.ScaleMax = 0.01 },
		"binding":       func(c *Config) { c.Input = map[string]string{"jump": "j"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestNoPlanetsNeedNoTextures(t *testing.T) {
	cfg := Default()
	cfg.Planets.Count = 0
	cfg.Planets.Asset.Textures = nil
	assert.NoError(t, cfg.Validate())
}

func TestEncodeDecodeDefaults(t *testing.T) {
	data, err := Encode(Default())
	require.NoError(t, err)

	var cfg Config
	require.NoError(t, Decode(data, &cfg))

	want := Default()
	assert.Equal(t, want.Camera, cfg.Camera)
	assert.Equal(t, want.Earth, cfg.Earth)
	assert.Equal(t, want.Planets, cfg.Planets)
	assert.Equal(t, want.Window, cfg.Window)
}

func TestParamsAndBounds(t *testing.T) {
	cfg := Default()
	p := cfg.Earth.Params()
	assert.Equal(t, float32(10), p.OrbitAngle)
	assert.Equal(t, float32(1.4), p.OrbitRadius)

	b := cfg.Planets.Bounds()
	assert.Equal(t, float32(2), b.DistanceMin)
	assert.Equal(t, float32(0.2), b.ScaleMax)
}

func TestAssetResolve(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "v.glsl")
	a := Asset{
		Mesh:         "m.obj",
		VertexShader: abs,
		Textures:     []string{"a.png", "b.png"},
	}.Resolve("root")

	assert.Equal(t, filepath.Join("root", "m.obj"), a.Mesh)
	assert.Equal(t, abs, a.VertexShader)
	assert.Empty(t, a.FragmentShader)
	assert.Equal(t, []string{filepath.Join("root", "a.png"), filepath.Join("root", "b.png")}, a.Textures)
}
