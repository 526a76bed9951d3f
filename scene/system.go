// Package scene wires the camera, the pause switch and every body into a
// per-frame update, and hands the resulting matrices to renderables.
package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/solarsystem/camera"
	"github.com/paperboard/solarsystem/input"
	"github.com/paperboard/solarsystem/logx"
	"github.com/paperboard/solarsystem/orbit"
	"github.com/paperboard/solarsystem/stats"
)

var (
	ErrDuplicateBody = errors.New("duplicate body name")
	ErrParentMissing = errors.New("parent body not in scene")
)

// Renderable draws itself with the given model and view matrices.
// Release frees whatever it holds and is called exactly once.
type Renderable interface {
	Render(model, view mgl32.Mat4)
	Release()
}

// Empty renders nothing. Used for bodies whose assets failed to load.
type Empty struct{}

func (Empty) Render(model, view mgl32.Mat4) {}
func (Empty) Release()                      {}

// TimeSource returns monotonic seconds since an arbitrary epoch.
type TimeSource interface {
	Now() float64
}

type entry struct {
	body Body
	r    Renderable
}

// System owns the camera, the shared pause switch and the bodies. Bodies
// are updated in insertion order; a satellite can only be added after its
// parent, so parents always move first.
type System struct {
	cam     *camera.Camera
	pause   *orbit.Switch
	entries []entry
	index   map[string]int

	lastFrame float64

	log   *slog.Logger
	stats *stats.Collector
}

// Option configures a System.
type Option func(*System)

func WithLogger(l *slog.Logger) Option {
	return func(s *System) { s.log = l }
}

func WithStats(c *stats.Collector) Option {
	return func(s *System) { s.stats = c }
}

// NewSystem creates an empty scene; the first frame measures elapsed time
// from start.
func NewSystem(cam *camera.Camera, start float64, opts ...Option) *System {
	s := &System{
		cam:       cam,
		pause:     &orbit.Switch{},
		index:     make(map[string]int),
		lastFrame: start,
		log:       logx.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a body and the renderable that draws it. A nil renderable
// is replaced by Empty.
func (s *System) Add(b Body, r Renderable) error {
	if _, ok := s.index[b.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBody, b.Name())
	}
	if sat, ok := b.(*Satellite); ok {
		i, found := s.index[sat.Parent().Name()]
		if !found || s.entries[i].body != sat.Parent() {
			return fmt.Errorf("%w: %q orbits %q", ErrParentMissing, b.Name(), sat.Parent().Name())
		}
	}
	if r == nil {
		r = Empty{}
	}

	s.index[b.Name()] = len(s.entries)
	s.entries = append(s.entries, entry{body: b, r: r})
	s.stats.SetBodies(len(s.entries))
	return nil
}

// Frame advances everything to now and draws it. The pause key feeds the
// shared switch, the camera gets the time since the previous frame, then
// every body is updated and rendered in order. It returns the view matrix.
func (s *System) Frame(now float64, in input.State) mgl32.Mat4 {
	elapsed := now - s.lastFrame
	s.lastFrame = now

	if s.pause.Observe(in.Pause) {
		s.stats.PauseToggled()
		s.log.Info("animation toggled", "paused", s.pause.Paused())
	}

	view := s.cam.Advance(float32(elapsed), in)

	for _, e := range s.entries {
		e.body.Update(now, s.pause)
		if e.r != nil {
			e.r.Render(e.body.Model(), view)
		}
	}

	s.stats.ObserveFrame(elapsed, s.pause.Paused())
	return view
}

// Body looks up a body by name.
func (s *System) Body(name string) (Body, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.entries[i].body, true
}

// Bodies returns the bodies in update order.
func (s *System) Bodies() []Body {
	out := make([]Body, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.body
	}
	return out
}

func (s *System) Camera() *camera.Camera { return s.cam }
func (s *System) Switch() *orbit.Switch  { return s.pause }
func (s *System) Paused() bool           { return s.pause.Paused() }

// Release frees every renderable. Calling it again does nothing.
func (s *System) Release() {
	for i := range s.entries {
		if s.entries[i].r == nil {
			continue
		}
		s.entries[i].r.Release()
		s.entries[i].r = nil
	}
}
