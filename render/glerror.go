// Package render owns the OpenGL objects behind every drawn body: shader
// programs, vertex buffers and textures. Everything here must run on the
// thread that holds the GL context.
package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

var glErrorNames = map[uint32]string{
	0x500: `GL_INVALID_ENUM`,
	0x501: `GL_INVALID_VALUE`,
	0x502: `GL_INVALID_OPERATION`,
	0x503: `GL_STACK_OVERFLOW`,
	0x504: `GL_STACK_UNDERFLOW`,
	0x505: `GL_OUT_OF_MEMORY`,
	0x506: `GL_INVALID_FRAMEBUFFER_OPERATION`,
	0x507: `GL_CONTEXT_LOST`,
}

// ErrorName returns the GL_* name of an error code.
func ErrorName(code uint32) string {
	if name, ok := glErrorNames[code]; ok {
		return name
	}
	return fmt.Sprintf("GL_ERROR_UNKNOWN(0x%x)", code)
}

// CheckError drains every accumulated OpenGL error into one error value.
func CheckError() error {
	var names []string
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		names = append(names, ErrorName(code))
		if len(names) > 16 {
			// a lost context can report forever
			break
		}
	}
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("opengl: %s", strings.Join(names, ", "))
}
