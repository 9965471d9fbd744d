//go:build !tinygo

package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"rgbpanel/hal"
	"rgbpanel/internal/config"
)

func TestUpscaleKeepsPixelsSharp(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	src.SetRGBA(1, 0, color.RGBA{B: 255, A: 255})

	got := upscale(src, 3)
	if got.Bounds().Dx() != 6 || got.Bounds().Dy() != 3 {
		t.Fatalf("bounds=%v, want 6x3", got.Bounds())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			want := src.RGBAAt(x/3, 0)
			if c := got.RGBAAt(x, y); c != want {
				t.Fatalf("(%d,%d)=%v, want %v", x, y, c, want)
			}
		}
	}
	if upscale(src, 1) != src {
		t.Fatalf("factor 1 should return the input")
	}
}

func TestRunWritesPanelPNG(t *testing.T) {
	cfg := config.ForPanel(hal.PanelConfig{Width: 320, Height: 240, WireFormat: hal.PixelFormatRGB565})
	cfg.BufferLines = 40

	out := filepath.Join(t.TempDir(), "snap.png")
	if err := run(cfg, out, 2, 500, 2); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Fatalf("bounds=%v, want 640x480", b)
	}
	// The demo screen clears to white; the corner is never covered by a widget.
	r, g, b, _ := img.At(0, img.Bounds().Dy()-1).RGBA()
	if r>>8 != 0xFF || g>>8 != 0xFF || b>>8 != 0xFF {
		t.Fatalf("corner=(%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}
