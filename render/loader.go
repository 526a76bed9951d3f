package render

import (
	"log/slog"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/solarsystem/config"
	"github.com/paperboard/solarsystem/mesh"
	"github.com/paperboard/solarsystem/scene"
	"github.com/paperboard/solarsystem/stats"
)

// Asset kinds reported to the failure counter.
const (
	KindMesh    = "mesh"
	KindShader  = "shader"
	KindTexture = "texture"
)

// Loader builds Models from asset descriptions and keeps track of them
// so projection changes and shader edits reach every model.
//
// A mesh or shader that fails to load leaves the body drawing nothing; a
// texture that fails to load leaves it drawn untextured. Either way the
// failure is logged and the demo keeps running.
type Loader struct {
	projection     mgl32.Mat4
	maxTextureSize int
	log            *slog.Logger
	stats          *stats.Collector

	models  []*loaded
	shaders map[string]struct{}
}

type loaded struct {
	model          *Model
	vertexShader   string
	fragmentShader string
}

// NewLoader creates a loader. It queries the GL context, so it must be
// called after gl.Init.
func NewLoader(projection mgl32.Mat4, log *slog.Logger, st *stats.Collector) *Loader {
	return &Loader{
		projection:     projection,
		maxTextureSize: MaxTextureSize(),
		log:            log,
		stats:          st,
		shaders:        map[string]struct{}{},
	}
}

// Load implements scene.Loader.
func (l *Loader) Load(name string, asset config.Asset) scene.Renderable {
	log := l.log.With("body", name)

	m, err := mesh.Load(asset.Mesh)
	if err != nil {
		log.Warn("mesh not loaded, body will not be drawn", "path", asset.Mesh, "err", err)
		l.stats.AssetFailed(KindMesh)
		return scene.Empty{}
	}

	program, err := LoadProgram(asset.VertexShader, asset.FragmentShader)
	if err != nil {
		log.Warn("shader program not built, body will not be drawn",
			"vertex", asset.VertexShader, "fragment", asset.FragmentShader, "err", err)
		l.stats.AssetFailed(KindShader)
		return scene.Empty{}
	}

	model := &Model{
		name:    name,
		program: program,
		buffer:  NewBuffer(m),
	}

	if len(asset.Textures) > 0 {
		path := asset.Textures[0]
		tex, err := LoadTexture(path, l.maxTextureSize)
		if err != nil {
			log.Warn("texture not loaded, drawing untextured", "path", path, "err", err)
			l.stats.AssetFailed(KindTexture)
		} else {
			model.texture = tex
		}
	}

	if err := CheckError(); err != nil {
		log.Warn("opengl errors while loading", "err", err)
	}

	model.SetProjection(l.projection)
	l.models = append(l.models, &loaded{
		model:          model,
		vertexShader:   asset.VertexShader,
		fragmentShader: asset.FragmentShader,
	})
	for _, p := range []string{asset.VertexShader, asset.FragmentShader} {
		if p != "" {
			l.shaders[absPath(p)] = struct{}{}
		}
	}

	log.Debug("model loaded", "vertices", m.VertexCount(), "textured", model.texture != nil)
	return model
}

// SetProjection updates every loaded model.
func (l *Loader) SetProjection(p mgl32.Mat4) {
	l.projection = p
	for _, lm := range l.models {
		lm.model.SetProjection(p)
	}
}

// ShaderPaths lists the shader files in use by loaded models.
func (l *Loader) ShaderPaths() []string {
	out := make([]string, 0, len(l.shaders))
	for p := range l.shaders {
		out = append(out, p)
	}
	return out
}

// Reload rebuilds the program of every model that uses the changed
// shader file. A broken edit keeps the previous program.
func (l *Loader) Reload(path string) {
	path = absPath(path)
	for _, lm := range l.models {
		if lm.model.program == nil {
			continue
		}
		if !usesShader(lm, path) {
			continue
		}
		program, err := LoadProgram(lm.vertexShader, lm.fragmentShader)
		if err != nil {
			l.log.Warn("shader reload failed, keeping previous program", "body", lm.model.name, "path", path, "err", err)
			l.stats.AssetFailed(KindShader)
			continue
		}
		lm.model.swapProgram(program)
		l.log.Info("shader reloaded", "body", lm.model.name, "path", path)
	}
}

func usesShader(lm *loaded, path string) bool {
	return (lm.vertexShader != "" && absPath(lm.vertexShader) == path) ||
		(lm.fragmentShader != "" && absPath(lm.fragmentShader) == path)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
