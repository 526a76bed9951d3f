package scene

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperboard/solarsystem/camera"
	"github.com/paperboard/solarsystem/config"
	"github.com/paperboard/solarsystem/input"
	"github.com/paperboard/solarsystem/internal/vectest"
	"github.com/paperboard/solarsystem/orbit"
	"github.com/paperboard/solarsystem/stats"
)

const tol = 1e-4

type recorder struct {
	name     string
	models   []mgl32.Mat4
	views    []mgl32.Mat4
	released int
	log      *[]string
}

func (r *recorder) Render(model, view mgl32.Mat4) {
	r.models = append(r.models, model)
	r.views = append(r.views, view)
	if r.log != nil {
		*r.log = append(*r.log, r.name)
	}
}

func (r *recorder) Release() { r.released++ }

func earthParams() orbit.Params {
	return orbit.Params{RotationAngle: 180, RotationSpeed: 200, OrbitAngle: 10, OrbitSpeed: 50, OrbitRadius: 1.4}
}

func moonParams() orbit.Params {
	return orbit.Params{RotationSpeed: 100, OrbitSpeed: 120, OrbitRadius: 0.3}
}

func TestModelMatrix(t *testing.T) {
	pos := mgl32.Vec3{1, 2, 3}
	m := ModelMatrix(pos, 90, 2)

	origin := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	vectest.InDelta3(t, pos, origin, tol)

	// scale first, then spin +X onto -Z, then translate
	x := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	vectest.InDelta3(t, mgl32.Vec3{1, 2, 1}, x, tol)
}

func TestStaticBody(t *testing.T) {
	b := NewStatic(Sun, mgl32.Vec3{-0.35, -0.35, 0}, 0.35)
	b.Update(100, nil)
	assert.Equal(t, mgl32.Vec3{-0.35, -0.35, 0}, b.Position())
	assert.Equal(t, ModelMatrix(b.Position(), 0, 0.35), b.Model())
}

func TestOrbitingBody(t *testing.T) {
	b := NewOrbiting(Earth, earthParams(), 0.05, 0)
	b.Update(1, nil)

	vectest.InDelta3(t, mgl32.Vec3{0.7, 0, 1.2124}, b.Position(), tol)
	assert.InDelta(t, 380, b.Spin(), tol)
	assert.Equal(t, ModelMatrix(b.Position(), b.Spin(), 0.05), b.Model())
}

func TestSatelliteFollowsParent(t *testing.T) {
	earth := NewOrbiting(Earth, earthParams(), 0.05, 0)
	moon := NewSatellite(Moon, earth, moonParams(), 0.015, 0)

	assert.Same(t, earth, moon.Parent().(*Orbiting))

	for _, now := range []float64{0.5, 1, 2.25} {
		earth.Update(now, nil)
		moon.Update(now, nil)

		offset := moon.Position().Sub(earth.Position())
		assert.InDelta(t, 0.3, offset.Len(), tol)
		vectest.InDelta3(t, moon.Clock().Position(), offset, tol)
	}
}

func TestScatteredBody(t *testing.T) {
	p := orbit.Placement{Translation: mgl32.Vec3{3, -4, 5}, Scale: 0.1}
	b := NewScattered(PlanetName(0), p)
	assert.Equal(t, "planet-1", b.Name())
	before := b.Model()
	b.Update(1000, nil)
	assert.Equal(t, before, b.Model())
	assert.Equal(t, p, b.Placement())
}

func newSystem(t *testing.T, opts ...Option) (*System, *Orbiting, *Satellite, *[]string) {
	t.Helper()
	var order []string
	sys := NewSystem(camera.New(-90, 0, 3), 0, opts...)
	earth := NewOrbiting(Earth, earthParams(), 0.05, 0)
	moon := NewSatellite(Moon, earth, moonParams(), 0.015, 0)

	require.NoError(t, sys.Add(NewStatic(Sun, mgl32.Vec3{}, 0.35), &recorder{name: Sun, log: &order}))
	require.NoError(t, sys.Add(earth, &recorder{name: Earth, log: &order}))
	require.NoError(t, sys.Add(moon, &recorder{name: Moon, log: &order}))
	return sys, earth, moon, &order
}

func TestSystemUpdateOrder(t *testing.T) {
	sys, earth, moon, order := newSystem(t)

	sys.Frame(1, input.State{})

	assert.Equal(t, []string{Sun, Earth, Moon}, *order)
	// moon was placed against the earth's position from this frame
	offset := moon.Position().Sub(earth.Position())
	assert.InDelta(t, 0.3, offset.Len(), tol)
	assert.InDelta(t, 60, earth.Clock().OrbitAngle(), tol)
}

func TestSystemRejectsOrphanSatellite(t *testing.T) {
	sys := NewSystem(camera.New(-90, 0, 3), 0)
	earth := NewOrbiting(Earth, earthParams(), 0.05, 0)
	moon := NewSatellite(Moon, earth, moonParams(), 0.015, 0)

	err := sys.Add(moon, nil)
	assert.ErrorIs(t, err, ErrParentMissing)

	// same name, different body
	require.NoError(t, sys.Add(NewOrbiting(Earth, earthParams(), 0.05, 0), nil))
	assert.ErrorIs(t, sys.Add(moon, nil), ErrParentMissing)
}

func TestSystemRejectsDuplicate(t *testing.T) {
	sys := NewSystem(camera.New(-90, 0, 3), 0)
	require.NoError(t, sys.Add(NewStatic(Sun, mgl32.Vec3{}, 1), nil))
	assert.ErrorIs(t, sys.Add(NewStatic(Sun, mgl32.Vec3{}, 2), nil), ErrDuplicateBody)
}

func TestSystemPassesMatrices(t *testing.T) {
	sys := NewSystem(camera.New(-90, 0, 3), 0)
	earth := NewOrbiting(Earth, earthParams(), 0.05, 0)
	r := &recorder{}
	require.NoError(t, sys.Add(earth, r))

	view := sys.Frame(0.5, input.State{YawLeft: true})

	require.Len(t, r.models, 1)
	assert.Equal(t, earth.Model(), r.models[0])
	assert.Equal(t, view, r.views[0])
	assert.Equal(t, sys.Camera().View(), view)
	assert.InDelta(t, -65, sys.Camera().Yaw(), tol)
}

func TestSystemPauseAndResume(t *testing.T) {
	sys, earth, _, _ := newSystem(t)

	sys.Frame(0, input.State{Pause: true}) // pause
	assert.True(t, sys.Paused())

	sys.Frame(5, input.State{Pause: true}) // held: still paused
	sys.Frame(5, input.State{})
	assert.True(t, sys.Paused())
	assert.InDelta(t, 10, earth.Clock().OrbitAngle(), tol)

	sys.Frame(5, input.State{Pause: true}) // resume
	assert.False(t, sys.Paused())
	sys.Frame(6, input.State{})

	assert.InDelta(t, 10+1*50, earth.Clock().OrbitAngle(), tol)
	assert.Equal(t, 2, sys.Switch().Toggles())
}

func TestSatelliteHoldsWhilePaused(t *testing.T) {
	sys, earth, moon, _ := newSystem(t)
	offset := func() mgl32.Vec3 { return moon.Position().Sub(earth.Position()) }

	sys.Frame(1, input.State{})
	require.InDelta(t, 120, moon.Clock().OrbitAngle(), tol)
	assert.InDelta(t, 0.3, offset().Len(), tol)

	sys.Frame(1, input.State{Pause: true})
	held := moon.Position()
	for _, now := range []float64{2, 3.5, 4} {
		sys.Frame(now, input.State{})
		assert.InDelta(t, 120, moon.Clock().OrbitAngle(), tol)
		vectest.InDelta3(t, held, moon.Position(), tol)
		assert.InDelta(t, 0.3, offset().Len(), tol)
	}

	// resuming does not replay the three paused seconds
	sys.Frame(4, input.State{Pause: true})
	require.False(t, sys.Paused())
	assert.InDelta(t, 120, moon.Clock().OrbitAngle(), tol)
	vectest.InDelta3(t, held, moon.Position(), tol)

	sys.Frame(5, input.State{})
	assert.InDelta(t, 120+1*120, moon.Clock().OrbitAngle(), tol)
	assert.InDelta(t, 0.3, offset().Len(), tol)
	vectest.InDelta3(t, moon.Clock().Position(), offset(), tol)
}

func TestCameraMovesWhilePaused(t *testing.T) {
	sys, _, _, _ := newSystem(t)
	sys.Frame(0, input.State{Pause: true})
	sys.Frame(1, input.State{PitchUp: true})
	assert.InDelta(t, 50, sys.Camera().Pitch(), tol)
}

func TestSystemRelease(t *testing.T) {
	sys := NewSystem(camera.New(-90, 0, 3), 0)
	r := &recorder{}
	require.NoError(t, sys.Add(NewStatic(Sun, mgl32.Vec3{}, 1), r))

	sys.Release()
	sys.Release()
	assert.Equal(t, 1, r.released)

	assert.NotPanics(t, func() { sys.Frame(1, input.State{}) })
	assert.Empty(t, r.models)
}

func TestSystemStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := stats.New(reg)
	require.NoError(t, err)

	sys, _, _, _ := newSystem(t, WithStats(c))
	sys.Frame(0.016, input.State{Pause: true})
	sys.Frame(0.032, input.State{})

	assert.Equal(t, float64(3), testutil.ToFloat64(c.Bodies))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.Frames))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.PauseToggles))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.Paused))
}

func TestBuild(t *testing.T) {
	cfg := config.Default()
	cfg.Root = "data"

	loaded := map[string]config.Asset{}
	loader := LoaderFunc(func(name string, a config.Asset) Renderable {
		loaded[name] = a
		return &recorder{name: name}
	})

	sys, err := Build(cfg, loader, rand.New(rand.NewSource(5)), 0)
	require.NoError(t, err)

	bodies := sys.Bodies()
	require.Len(t, bodies, 3+cfg.Planets.Count)
	assert.Equal(t, Sun, bodies[0].Name())
	assert.Equal(t, Earth, bodies[1].Name())
	assert.Equal(t, Moon, bodies[2].Name())
	assert.Equal(t, "planet-5", bodies[7].Name())

	moon, ok := sys.Body(Moon)
	require.True(t, ok)
	earth, _ := sys.Body(Earth)
	assert.Equal(t, earth, moon.(*Satellite).Parent())

	assert.Equal(t, filepath.Join("data", "assets/earth/Earth.obj"), loaded[Earth].Mesh)

	for i := 0; i < cfg.Planets.Count; i++ {
		a := loaded[PlanetName(i)]
		require.Len(t, a.Textures, 1)
		var candidates []string
		for _, tex := range cfg.Planets.Asset.Textures {
			candidates = append(candidates, filepath.Join("data", tex))
		}
		assert.Contains(t, candidates, a.Textures[0])

		b, ok := sys.Body(PlanetName(i))
		require.True(t, ok)
		p := b.(*Scattered).Placement()
		assert.GreaterOrEqual(t, p.Scale, cfg.Planets.ScaleMin)
	}

	// the configured list itself is untouched
	assert.Len(t, cfg.Planets.Asset.Textures, 3)

	_, ok = sys.Body("pluto")
	assert.False(t, ok)
}

func TestBuildNoPlanets(t *testing.T) {
	cfg := config.Default()
	cfg.Planets.Count = 0

	sys, err := Build(cfg, LoaderFunc(func(string, config.Asset) Renderable { return nil }), rand.New(rand.NewSource(1)), 0)
	require.NoError(t, err)
	assert.Len(t, sys.Bodies(), 3)
	assert.NotPanics(t, func() { sys.Frame(1, input.State{}) })
}
