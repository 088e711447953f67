//go:build !tinygo && cgo

package hal

import (
	"image"

	"padcalc/internal/buildinfo"
	"padcalc/keypad"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Scale         int
	StepsPerFrame int
	Layout        keypad.Layout
}

// RunWindow opens a desktop window showing the simulated LCD and HID log and
// forwarding host keys to the keypad matrix. It blocks until the window closes.
func RunWindow(h *Host, step func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.StepsPerFrame <= 0 {
		cfg.StepsPerFrame = 1
	}

	g := &hostGame{
		h:     h,
		step:  step,
		steps: cfg.StepsPerFrame,
		kbd:   newHostKeyboard(h, &cfg.Layout),
		r:     newHostRenderer(h),
	}
	ebiten.SetWindowTitle("padcalc (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(screenWidth*cfg.Scale, screenHeight*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *Host
	step  func() error
	steps int
	kbd   *hostKeyboard
	r     *hostRenderer

	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	dirty   bool
}

func (g *hostGame) Update() error {
	g.kbd.poll()
	if g.step != nil {
		for i := 0; i < g.steps; i++ {
			if err := g.step(); err != nil {
				return err
			}
		}
	}
	if g.r.render() {
		g.dirty = true
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.r.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.dirty = true
	}

	if g.dirty {
		fb.snapshotRGB565(g.scratch)
		src := g.scratch
		dst := g.img.Pix
		for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
			r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
			j := (i / 2) * 4
			dst[j+0] = r
			dst[j+1] = gg
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
		g.fbImg.WritePixels(g.img.Pix)
		g.dirty = false
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
