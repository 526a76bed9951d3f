package render

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Framebuffer is an offscreen multisampled proxy screen. The scene is drawn
// into it and then resolved (blitted) onto the window's default framebuffer.
//
// https://learnopengl.com/Advanced-OpenGL/Anti-Aliasing
type Framebuffer struct {
	fbo     uint32
	color   uint32 // multisampled color renderbuffer
	depth   uint32 // multisampled combined depth and stencil renderbuffer
	samples int32
	width   int32
	height  int32
}

// NewFramebuffer allocates a framebuffer of the given pixel size with the
// given sample count, clamped to what the driver supports.
func NewFramebuffer(width, height, samples int) (*Framebuffer, error) {
	var maxSamples int32
	gl.GetIntegerv(gl.MAX_SAMPLES, &maxSamples)
	f := &Framebuffer{samples: min(int32(samples), maxSamples)}

	gl.GenFramebuffers(1, &f.fbo)
	gl.GenRenderbuffers(1, &f.color)
	gl.GenRenderbuffers(1, &f.depth)

	if err := f.Resize(width, height); err != nil {
		f.Release()
		return nil, err
	}
	return f, nil
}

// Resize reallocates the attachments for a new framebuffer size.
func (f *Framebuffer) Resize(width, height int) error {
	f.width, f.height = int32(width), int32(height)

	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)

	gl.BindRenderbuffer(gl.RENDERBUFFER, f.color)
	gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, f.samples, gl.RGBA8, f.width, f.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, f.color)

	gl.BindRenderbuffer(gl.RENDERBUFFER, f.depth)
	gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, f.samples, gl.DEPTH24_STENCIL8, f.width, f.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, f.depth)

	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	// check if FBO is ready and valid
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer %dx%d with %d samples incomplete: 0x%x", width, height, f.samples, status)
	}
	return nil
}

// Bind directs drawing into the framebuffer.
func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
}

// Resolve copies the multisampled image onto the default framebuffer and
// leaves the default framebuffer bound.
func (f *Framebuffer) Resolve() {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, f.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, f.width, f.height, 0, 0, f.width, f.height, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (f *Framebuffer) Samples() int { return int(f.samples) }

// Release deletes the framebuffer and its attachments. Safe on nil and on
// repeated calls.
func (f *Framebuffer) Release() {
	if f == nil {
		return
	}
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
		f.fbo = 0
	}
	if f.color != 0 {
		gl.DeleteRenderbuffers(1, &f.color)
		f.color = 0
	}
	if f.depth != 0 {
		gl.DeleteRenderbuffers(1, &f.depth)
		f.depth = 0
	}
}
