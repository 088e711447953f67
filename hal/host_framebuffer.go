//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
)

// hostFramebuffer is the RGB565 pixel buffer the window presents.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) fill(x0, y0, x1, y1 int, c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()

	x0, x1 = clampInt(x0, 0, f.width), clampInt(x1, 0, f.width)
	y0, y1 = clampInt(y0, 0, f.height), clampInt(y1, 0, f.height)
	pixel := rgb565(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	for y := y0; y < y1; y++ {
		row := y * f.stride
		for x := x0; x < x1; x++ {
			f.buf[row+x*2] = lo
			f.buf[row+x*2+1] = hi
		}
	}
}

func (f *hostFramebuffer) set(x, y int, c color.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	pixel := rgb565(c.R, c.G, c.B)
	off := y*f.stride + x*2
	f.buf[off] = byte(pixel)
	f.buf[off+1] = byte(pixel >> 8)
}

func (f *hostFramebuffer) at(x, y int) color.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*2
	r, g, b := rgb888From565(uint16(f.buf[off]) | uint16(f.buf[off+1])<<8)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// fbRegion exposes a rectangle of the framebuffer as a TinyGo displayer so
// tinyfont and tinyterm can draw into it. Coordinates are region-relative.
type fbRegion struct {
	fb   *hostFramebuffer
	x, y int
	w, h int
}

var _ drivers.Displayer = fbRegion{}

func (d fbRegion) Size() (x, y int16) { return int16(d.w), int16(d.h) }

func (d fbRegion) SetPixel(x, y int16, c color.RGBA) {
	if int(x) < 0 || int(x) >= d.w || int(y) < 0 || int(y) >= d.h {
		return
	}
	d.fb.set(d.x+int(x), d.y+int(y), c)
}

func (d fbRegion) Display() error { return nil }

func (d fbRegion) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, d.w)
	y0 := clampInt(int(y), 0, d.h)
	x1 := clampInt(int(x)+int(width), 0, d.w)
	y1 := clampInt(int(y)+int(height), 0, d.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}
	d.fb.fill(d.x+x0, d.y+y0, d.x+x1, d.y+y1, c)
	return nil
}

func (d fbRegion) clear(c color.RGBA) {
	_ = d.FillRectangle(0, 0, int16(d.w), int16(d.h), c)
}

// SetScroll is a no-op; the log terminal is redrawn from scratch instead.
func (d fbRegion) SetScroll(line int16) {
	_ = line
}

func (d fbRegion) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8(((p >> 11) & 0x1F) * 255 / 31)
	g = uint8(((p >> 5) & 0x3F) * 255 / 63)
	b = uint8((p & 0x1F) * 255 / 31)
	return r, g, b
}
