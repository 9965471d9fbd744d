//go:build !tinygo

// Command panelsnap runs the pipeline headless for a number of ticks and
// writes what ended up in panel memory to a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"rgbpanel/app"
	"rgbpanel/hal"
	"rgbpanel/internal/config"
)

const defaultSnapPath = "panel.png"

func main() {
	var outPath string
	var ticks uint64
	var hz int
	var scale int
	flag.StringVar(&outPath, "out", defaultSnapPath, "Output PNG path.")
	flag.Uint64Var(&ticks, "ticks", 1, "Ticks to run before the snapshot.")
	flag.IntVar(&hz, "hz", 200, "Tick rate.")
	flag.IntVar(&scale, "scale", 1, "Integer upscale factor for the PNG.")

	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}
	if scale < 1 {
		fmt.Fprintln(os.Stderr, "error: -scale must be at least 1")
		os.Exit(2)
	}

	if err := run(cfg, outPath, ticks, hz, scale); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, outPath string, ticks uint64, hz, scale int) error {
	if ticks == 0 {
		return fmt.Errorf("ticks must be positive")
	}
	h := hal.NewHost()
	err := hal.RunHeadlessOn(context.Background(), h, app.NewStep(cfg), hal.HeadlessConfig{
		Enabled: true,
		Hz:      hz,
		Ticks:   ticks,
	})
	if err != nil {
		return err
	}

	img := h.MemPanel().Snapshot(nil)
	if img == nil {
		return fmt.Errorf("panel never initialized")
	}
	return writePNG(outPath, upscale(img, scale))
}

// upscale enlarges img by an integer factor without smoothing so single
// pixels stay inspectable.
func upscale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}
