// Package config loads the demo settings from a TOML file. Every value
// has a default, so an empty or missing file reproduces the stock scene.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/paperboard/solarsystem/input"
	"github.com/paperboard/solarsystem/orbit"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config is the complete set of demo settings.
type Config struct {
	// Root is the directory relative asset paths are resolved against.
	// Load sets it to the config file's directory when left empty.
	Root string `toml:"root"`

	Window     Window            `toml:"window"`
	Projection Projection        `toml:"projection"`
	Camera     Camera            `toml:"camera"`
	Input      map[string]string `toml:"input"`
	Sun        Static            `toml:"sun"`
	Earth      Orbiting          `toml:"earth"`
	Moon       Orbiting          `toml:"moon"`
	Planets    Planets           `toml:"planets"`
	Log        Log               `toml:"log"`
	Debug      Debug             `toml:"debug"`
	Metrics    Metrics           `toml:"metrics"`
}

type Window struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Fullscreen bool       `toml:"fullscreen"` // use the primary monitor's video mode
	ClearColor [4]float32 `toml:"clear_color"`
	Samples    int        `toml:"samples"` // multisample anti-aliasing; 0 draws straight to the window
}

type Projection struct {
	FOV  float32 `toml:"fov"` // vertical, degrees
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
}

type Camera struct {
	Yaw           float32 `toml:"yaw"`
	Pitch         float32 `toml:"pitch"`
	Radius        float32 `toml:"radius"`
	RotationSpeed float32 `toml:"rotation_speed"`
}

// Asset names the files one body is drawn from. Empty shader paths select
// the built-in shaders.
type Asset struct {
	Mesh           string   `toml:"mesh"`
	VertexShader   string   `toml:"vertex_shader"`
	FragmentShader string   `toml:"fragment_shader"`
	Textures       []string `toml:"textures"`
}

// Static is a body with a fixed placement.
type Static struct {
	Asset       Asset      `toml:"asset"`
	Translation [3]float32 `toml:"translation"`
	Scale       float32    `toml:"scale"`
}

// Orbiting is a body that spins and revolves.
type Orbiting struct {
	Asset         Asset   `toml:"asset"`
	RotationAngle float32 `toml:"rotation_angle"`
	RotationSpeed float32 `toml:"rotation_speed"`
	OrbitAngle    float32 `toml:"orbit_angle"`
	OrbitSpeed    float32 `toml:"orbit_speed"`
	OrbitRadius   float32 `toml:"orbit_radius"`
	Scale         float32 `toml:"scale"`
}

// Planets configures the randomly scattered decorative planets.
type Planets struct {
	Asset       Asset   `toml:"asset"`
	Count       int     `toml:"count"`
	Seed        int64   `toml:"seed"` // 0 seeds from the current time
	DistanceMin float32 `toml:"distance_min"`
	DistanceMax float32 `toml:"distance_max"`
	ScaleMin    float32 `toml:"scale_min"`
	ScaleMax    float32 `toml:"scale_max"`
}

type Log struct {
	Level string `toml:"level"`
}

type Debug struct {
	WatchShaders bool `toml:"watch_shaders"` // recompile shaders when their files change
	CheckErrors  bool `toml:"check_errors"`  // drain glGetError after every frame
}

type Metrics struct {
	Addr string `toml:"addr"` // serve /metrics here when non-empty
}

// Default returns the stock solar system.
func Default() Config {
	return Config{
		Root: ".",
		Window: Window{
			Title:      "OpenGL Project: Solar System",
			Width:      1280,
			Height:     720,
			ClearColor: [4]float32{0.2, 0.2, 0.2, 1},
		},
		Projection: Projection{FOV: 60, Near: 0.1, Far: 100},
		Camera: Camera{
			Yaw:           -90,
			Pitch:         0,
			Radius:        3,
			RotationSpeed: 50,
		},
		Sun: Static{
			Asset: Asset{
				Mesh:     "assets/sun/sun.obj",
				Textures: []string{"assets/sun/sun.jpg"},
			},
			Translation: [3]float32{-0.35, -0.35, 0},
			Scale:       0.35,
		},
		Earth: Orbiting{
			Asset: Asset{
				Mesh:     "assets/earth/Earth.obj",
				Textures: []string{"assets/earth/Earth.png"},
			},
			RotationAngle: 180,
			RotationSpeed: 200,
			OrbitAngle:    10,
			OrbitSpeed:    50,
			OrbitRadius:   1.4,
			Scale:         0.05,
		},
		Moon: Orbiting{
			Asset: Asset{
				Mesh:     "assets/moon/Moon.obj",
				Textures: []string{"assets/moon/Moon.png"},
			},
			RotationAngle: 0,
			RotationSpeed: 100,
			OrbitAngle:    0,
			OrbitSpeed:    120,
			OrbitRadius:   0.3,
			Scale:         0.015,
		},
		Planets: Planets{
			Asset: Asset{
				Mesh: "assets/planet/Planet.obj",
				Textures: []string{
					"assets/planet/Planet_1.png",
					"assets/planet/Planet_2.png",
					"assets/planet/Planet_3.png",
				},
			},
			Count:       5,
			DistanceMin: 2,
			DistanceMax: 12,
			ScaleMin:    0.03,
			ScaleMax:    0.2,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg.Root = ""
	if err := Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Root == "" {
		cfg.Root = filepath.Dir(path)
	} else if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	return cfg, cfg.Validate()
}

// Decode strictly decodes TOML data over cfg; unknown keys are errors.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks the settings that would otherwise produce a broken scene.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.Samples >= 0 && c.Window.Samples <= 16, "window samples %d", c.Window.Samples)
	check(c.Projection.FOV > 0 && c.Projection.FOV < 180, "projection fov %v", c.Projection.FOV)
	check(c.Projection.Near > 0 && c.Projection.Near < c.Projection.Far, "projection near %v far %v", c.Projection.Near, c.Projection.Far)
	check(c.Camera.Radius > 0, "camera radius %v", c.Camera.Radius)
	check(c.Sun.Scale > 0, "sun scale %v", c.Sun.Scale)
	check(c.Earth.OrbitRadius > 0, "earth orbit_radius %v", c.Earth.OrbitRadius)
	check(c.Earth.Scale > 0, "earth scale %v", c.Earth.Scale)
	check(c.Moon.OrbitRadius > 0, "moon orbit_radius %v", c.Moon.OrbitRadius)
	check(c.Moon.Scale > 0, "moon scale %v", c.Moon.Scale)
	check(c.Planets.Count >= 0, "planets count %d", c.Planets.Count)
	if c.Planets.Count > 0 {
		check(len(c.Planets.Asset.Textures) > 0, "planets need at least one texture")
		check(c.Planets.DistanceMin >= 0 && c.Planets.DistanceMin <= c.Planets.DistanceMax,
			"planets distance [%v, %v]", c.Planets.DistanceMin, c.Planets.DistanceMax)
		check(c.Planets.ScaleMin > 0 && c.Planets.ScaleMin <= c.Planets.ScaleMax,
			"planets scale [%v, %v]", c.Planets.ScaleMin, c.Planets.ScaleMax)
	}
	if err := input.DefaultBindings().Merge(c.bindings()).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}

	return errors.Join(errs...)
}

// Bindings returns the default key bindings with the [input] table applied.
func (c Config) Bindings() input.Bindings {
	return input.DefaultBindings().Merge(c.bindings())
}

func (c Config) bindings() input.Bindings {
	b := make(input.Bindings, len(c.Input))
	for k, v := range c.Input {
		b[input.Signal(k)] = v
	}
	return b
}

// Params converts an orbiting body's settings to clock parameters.
func (o Orbiting) Params() orbit.Params {
	return orbit.Params{
		RotationAngle: o.RotationAngle,
		RotationSpeed: o.RotationSpeed,
		OrbitAngle:    o.OrbitAngle,
		OrbitSpeed:    o.OrbitSpeed,
		OrbitRadius:   o.OrbitRadius,
	}
}

// Bounds converts the planet settings to scatter bounds.
func (p Planets) Bounds() orbit.ScatterBounds {
	return orbit.ScatterBounds{
		DistanceMin: p.DistanceMin,
		DistanceMax: p.DistanceMax,
		ScaleMin:    p.ScaleMin,
		ScaleMax:    p.ScaleMax,
	}
}

// Resolve returns a with every non-empty relative path joined to root.
func (a Asset) Resolve(root string) Asset {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	out := Asset{
		Mesh:           join(a.Mesh),
		VertexShader:   join(a.VertexShader),
		FragmentShader: join(a.FragmentShader),
	}
	for _, t := range a.Textures {
		out.Textures = append(out.Textures, join(t))
	}
	return out
}
