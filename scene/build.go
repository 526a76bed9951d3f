package scene

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/solarsystem/camera"
	"github.com/paperboard/solarsystem/config"
	"github.com/paperboard/solarsystem/orbit"
)

// Loader turns an asset description into something drawable. It never
// fails: a loader that cannot read the files logs why and returns a
// renderable that draws nothing.
type Loader interface {
	Load(name string, asset config.Asset) Renderable
}

// LoaderFunc adapts a function to a Loader.
type LoaderFunc func(name string, asset config.Asset) Renderable

func (f LoaderFunc) Load(name string, asset config.Asset) Renderable { return f(name, asset) }

// Body names used by Build.
const (
	Sun   = "sun"
	Earth = "earth"
	Moon  = "moon"
)

// PlanetName names the i-th decorative planet, counting from zero.
func PlanetName(i int) string { return fmt.Sprintf("planet-%d", i+1) }

// Build assembles the stock scene from cfg: the sun, the earth, the moon
// orbiting the earth, and cfg.Planets.Count scattered planets each with a
// texture picked at random. Asset paths are resolved against cfg.Root.
func Build(cfg config.Config, loader Loader, rng *rand.Rand, start float64, opts ...Option) (*System, error) {
	cam := camera.New(cfg.Camera.Yaw, cfg.Camera.Pitch, cfg.Camera.Radius,
		camera.WithRotationSpeed(cfg.Camera.RotationSpeed))
	sys := NewSystem(cam, start, opts...)

	load := func(name string, a config.Asset) Renderable {
		return loader.Load(name, a.Resolve(cfg.Root))
	}

	sun := NewStatic(Sun, mgl32.Vec3(cfg.Sun.Translation), cfg.Sun.Scale)
	earth := NewOrbiting(Earth, cfg.Earth.Params(), cfg.Earth.Scale, start)
	moon := NewSatellite(Moon, earth, cfg.Moon.Params(), cfg.Moon.Scale, start)

	type placed struct {
		b Body
		a config.Asset
	}
	bodies := []placed{
		{sun, cfg.Sun.Asset},
		{earth, cfg.Earth.Asset},
		{moon, cfg.Moon.Asset},
	}

	bounds := cfg.Planets.Bounds()
	for i := 0; i < cfg.Planets.Count; i++ {
		asset := cfg.Planets.Asset
		if n := orbit.Pick(rng, len(asset.Textures)); n >= 0 {
			asset.Textures = []string{asset.Textures[n]}
		}
		bodies = append(bodies, placed{NewScattered(PlanetName(i), orbit.Scatter(rng, bounds)), asset})
	}

	for _, b := range bodies {
		r := load(b.b.Name(), b.a)
		if err := sys.Add(b.b, r); err != nil {
			if r != nil {
				r.Release()
			}
			sys.Release()
			return nil, err
		}
	}
	sys.log.Info("scene built", "bodies", len(bodies))
	return sys, nil
}
