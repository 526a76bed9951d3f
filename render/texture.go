package render

import (
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/paperboard/solarsystem/imagex"
)

// Texture is a mipmapped 2D texture.
type Texture struct {
	handle uint32
	width  int
	height int
}

// LoadTexture decodes an image file and uploads it, scaling it down first
// when it is larger than maxSize (0 = no limit).
func LoadTexture(path string, maxSize int) (*Texture, error) {
	img, _, err := imagex.Open(path)
	if err != nil {
		return nil, err
	}
	return NewTexture(imagex.Fit(imagex.AsRGBA(img), maxSize)), nil
}

// NewTexture uploads an RGBA image with repeat wrapping and linear
// filtering.
func NewTexture(img *image.RGBA) *Texture {
	t := &Texture{width: img.Rect.Dx(), height: img.Rect.Dy()}

	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	internal := int32(gl.RGB)
	if imagex.HasAlpha(img) {
		internal = gl.RGBA
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(t.width), int32(t.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// MaxTextureSize asks the driver for the largest supported texture side.
func MaxTextureSize() int {
	var size int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &size)
	return int(size)
}

// Bind makes the texture current on the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
}

func (t *Texture) Size() (int, int) { return t.width, t.height }

// Release deletes the texture. Safe on nil and on repeated calls.
func (t *Texture) Release() {
	if t == nil || t.handle == 0 {
		return
	}
	gl.DeleteTextures(1, &t.handle)
	t.handle = 0
}
