// Command gl33-solarsystem renders the sun, the earth, the moon and a few
// scattered planets with an orbiting camera.
//
//	arrows  rotate the camera
//	space   pause / resume the orbits
//	escape  quit
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/paperboard/solarsystem/config"
	"github.com/paperboard/solarsystem/input"
	"github.com/paperboard/solarsystem/logx"
	"github.com/paperboard/solarsystem/render"
	"github.com/paperboard/solarsystem/scene"
	"github.com/paperboard/solarsystem/stats"
	"github.com/paperboard/solarsystem/watch"
)

func init() {
	// glfw must be on main thread
	runtime.LockOSThread()
}

func main() {

	configPath := flag.String("config", "", "TOML config file (defaults are used when empty)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln("failed to load config:", err)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	logger := logx.SetDefault(cfg.Log.Level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var collector *stats.Collector
	if cfg.Metrics.Addr != "" {
		collector, err = stats.New(prometheus.NewRegistry())
		if err != nil {
			log.Fatalln("failed to register metrics:", err)
		}
		addr, err := collector.Serve(ctx, cfg.Metrics.Addr, logger)
		if err != nil {
			log.Fatalln("failed to serve metrics:", err)
		}
		logger.Info("serving metrics", "addr", addr.String())
	}

	// initalize glfw
	if err := glfw.Init(); err != nil {
		log.Fatalln("failed to initialize glfw:", err)
	}
	defer glfw.Terminate()

	// use OpenGL v3.3 core
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	// create window handle
	window, err := createWindow(cfg.Window)
	if err != nil {
		log.Fatalln("failed to create window:", err)
	}
	window.MakeContextCurrent()

	// initialize OpenGL
	if err := gl.Init(); err != nil {
		log.Fatalln("failed to initialize OpenGL:", err)
	}
	logger.Info("OpenGL ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	// do not render pixels hidden behind nearer ones
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	width, height := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))

	loader := render.NewLoader(projection(cfg.Projection, width, height), logger, collector)

	// optional multisampled proxy screen
	var fbo *render.Framebuffer
	if cfg.Window.Samples > 0 {
		if fbo, err = render.NewFramebuffer(width, height, cfg.Window.Samples); err != nil {
			logger.Warn("multisampling disabled", "err", err)
			fbo = nil
		} else {
			defer fbo.Release()
			logger.Info("multisampling", "samples", fbo.Samples())
		}
	}

	// keep viewport, projection and proxy screen in step with the framebuffer
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width int, height int) {
		if width == 0 || height == 0 {
			return // minimized
		}
		gl.Viewport(0, 0, int32(width), int32(height))
		loader.SetProjection(projection(cfg.Projection, width, height))
		if fbo != nil {
			if err := fbo.Resize(width, height); err != nil {
				logger.Warn("framebuffer resize", "err", err)
			}
		}
	})

	seed := cfg.Planets.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("scattering planets", "seed", seed)

	clock := glfwClock{}
	sys, err := scene.Build(cfg, loader, rand.New(rand.NewSource(seed)), clock.Now(),
		scene.WithLogger(logger), scene.WithStats(collector))
	if err != nil {
		log.Fatalln("failed to build scene:", err)
	}
	defer sys.Release()

	keys, err := newGLFWInput(window, cfg.Bindings())
	if err != nil {
		log.Fatalln("failed to bind keys:", err)
	}

	var watcher *watch.Watcher
	if cfg.Debug.WatchShaders {
		if watcher, err = watch.New(loader.ShaderPaths(), logger); err != nil {
			logger.Warn("shader watching disabled", "err", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	run(ctx, window, sys, keys, clock, loader, watcher, fbo, cfg, logger)
	logger.Info("bye")

}

// run is the gameloop: one time query, one input poll, one scene frame.
func run(ctx context.Context, window *glfw.Window, sys *scene.System, keys input.Source, clock scene.TimeSource,
	loader *render.Loader, watcher *watch.Watcher, fbo *render.Framebuffer, cfg config.Config, logger *slog.Logger) {

	bg := cfg.Window.ClearColor

	for !window.ShouldClose() {

		if ctx.Err() != nil {
			break
		}

		state := keys.Poll()
		if state.Exit {
			window.SetShouldClose(true)
			break
		}

		if watcher != nil {
			for _, path := range watcher.Changed() {
				loader.Reload(path)
			}
		}

		if fbo != nil {
			fbo.Bind()
		}

		// clear color and depth so the previous frame does not leak in
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		sys.Frame(clock.Now(), state)

		if fbo != nil {
			fbo.Resolve()
		}

		if cfg.Debug.CheckErrors {
			if err := render.CheckError(); err != nil {
				logger.Warn("frame", "err", err)
			}
		}

		// render buffer to screen
		window.SwapBuffers()

		// glfw events?
		glfw.PollEvents()

	}

}

func createWindow(w config.Window) (*glfw.Window, error) {
	if w.Fullscreen {
		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		return glfw.CreateWindow(mode.Width, mode.Height, w.Title, monitor, nil)
	}
	return glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
}

// projection builds the perspective matrix for a framebuffer size. A
// minimized window reports 0x0; it gets a square aspect until the next
// resize.
func projection(p config.Projection, width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), aspect, p.Near, p.Far)
}
