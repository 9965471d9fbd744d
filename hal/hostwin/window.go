//go:build !tinygo && cgo

// Package hostwin shows the host software panel in a desktop window.
package hostwin

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"rgbpanel/hal"
	"rgbpanel/internal/buildinfo"
)

// Run opens a window onto a fresh host HAL and calls the app's step function
// once per frame. It blocks until the window closes.
func Run(newApp func(hal.HAL) (func() error, error)) error {
	return RunOn(hal.NewHost(), newApp)
}

// RunOn is Run on a caller-provided host.
func RunOn(h *hal.Host, newApp func(hal.HAL) (func() error, error)) error {
	step, err := newApp(h)
	if err != nil {
		return err
	}

	cfg := h.PanelConfig()
	scale := 1
	if cfg.Width < 640 {
		scale = 2
	}
	g := &panelGame{panel: h.MemPanel(), host: h, step: step, w: cfg.Width, h: cfg.Height}
	ebiten.SetWindowTitle("rgbpanel " + cfg.String() + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width*scale, cfg.Height*scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type panelGame struct {
	panel *hal.MemPanel
	host  *hal.Host
	step  func() error
	w, h  int

	img   *image.RGBA
	ebImg *ebiten.Image
}

func (g *panelGame) Update() error {
	if g.step != nil {
		return g.step()
	}
	return nil
}

func (g *panelGame) Draw(screen *ebiten.Image) {
	// An unlit backlight shows nothing, whatever is in panel memory.
	if !g.host.BacklightOn() {
		return
	}
	g.img = g.panel.Snapshot(g.img)
	if g.img == nil {
		return
	}
	b := g.img.Bounds()
	if g.ebImg == nil || g.ebImg.Bounds().Dx() != b.Dx() || g.ebImg.Bounds().Dy() != b.Dy() {
		if g.ebImg != nil {
			g.ebImg.Deallocate()
		}
		g.ebImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.ebImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.ebImg, nil)
}

func (g *panelGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}
