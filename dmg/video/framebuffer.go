// Package video implements the GPU: scanline state machine, tile cache,
// and RGB framebuffer.
package video

const (
	Width  = 160
	Height = 144
)

// shadeRGB maps a 2-bit shade index to the four fixed DMG gray RGB
// triples, in lightest-to-darkest order.
var shadeRGB = [4][3]byte{
	{255, 255, 255},
	{170, 170, 170},
	{85, 85, 85},
	{0, 0, 0},
}

// FrameBuffer is a 160x144 RGB image, row-major, top-to-bottom, three
// contiguous bytes per pixel.
type FrameBuffer struct {
	Pixels []byte // len == Width*Height*3
}

// NewFrameBuffer returns a black (all-zero) framebuffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{Pixels: make([]byte, Width*Height*3)}
}

// SetShade writes the RGB triple for shade (0-3, lightest to darkest) at
// pixel (x,y).
func (fb *FrameBuffer) SetShade(x, y int, shade byte) {
	rgb := shadeRGB[shade&3]
	offset := (y*Width + x) * 3
	fb.Pixels[offset] = rgb[0]
	fb.Pixels[offset+1] = rgb[1]
	fb.Pixels[offset+2] = rgb[2]
}

// At returns the RGB triple at pixel (x,y).
func (fb *FrameBuffer) At(x, y int) (r, g, b byte) {
	offset := (y*Width + x) * 3
	return fb.Pixels[offset], fb.Pixels[offset+1], fb.Pixels[offset+2]
}
