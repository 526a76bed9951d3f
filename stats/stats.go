// Package stats records frame and asset metrics for Prometheus.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the demo's metrics. All methods are safe on a nil
// Collector, which records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Frames        prometheus.Counter
	FrameSeconds  prometheus.Histogram
	Paused        prometheus.Gauge
	PauseToggles  prometheus.Counter
	AssetFailures *prometheus.CounterVec
	Bodies        prometheus.Gauge
}

// New registers the metrics against reg, defaulting to the global registry
// when nil.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solarsystem_frames_total",
			Help: "Frames rendered since startup.",
		}),
		FrameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "solarsystem_frame_seconds",
			Help:    "Wall time between consecutive frames.",
			Buckets: []float64{0.001, 0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25, 1},
		}),
		Paused: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solarsystem_paused",
			Help: "1 while the orbit animation is paused.",
		}),
		PauseToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solarsystem_pause_toggles_total",
			Help: "Number of times the pause switch flipped.",
		}),
		AssetFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solarsystem_asset_failures_total",
			Help: "Assets that failed to load, labeled by kind (mesh, shader, texture).",
		}, []string{"kind"}),
		Bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "solarsystem_bodies",
			Help: "Bodies in the scene.",
		}),
	}

	for _, col := range []prometheus.Collector{c.Frames, c.FrameSeconds, c.Paused, c.PauseToggles, c.AssetFailures, c.Bodies} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return c, nil
}

// ObserveFrame records one frame that took elapsed seconds.
func (c *Collector) ObserveFrame(elapsed float64, paused bool) {
	if c == nil {
		return
	}
	c.Frames.Inc()
	if elapsed >= 0 {
		c.FrameSeconds.Observe(elapsed)
	}
	if paused {
		c.Paused.Set(1)
	} else {
		c.Paused.Set(0)
	}
}

// PauseToggled counts a flip of the pause switch.
func (c *Collector) PauseToggled() {
	if c == nil {
		return
	}
	c.PauseToggles.Inc()
}

// AssetFailed counts a failed asset load of the given kind.
func (c *Collector) AssetFailed(kind string) {
	if c == nil {
		return
	}
	c.AssetFailures.WithLabelValues(kind).Inc()
}

// SetBodies records the number of bodies in the scene.
func (c *Collector) SetBodies(n int) {
	if c == nil {
		return
	}
	c.Bodies.Set(float64(n))
}

// Handler exposes the metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled. It returns once
// the listener is bound; serving continues in the background.
func (c *Collector) Serve(ctx context.Context, addr string, log *slog.Logger) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server stopped", "err", err)
		}
	}()

	return ln.Addr(), nil
}
