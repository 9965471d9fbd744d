package app

import (
	"fmt"
	"image/color"

	"tinygo.org/x/tinyfont/freemono"

	"rgbpanel/internal/scene"
)

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
	red   = color.RGBA{R: 0xFF, A: 0xFF}
	blue  = color.RGBA{B: 0xFF, A: 0xFF}
)

const (
	greeting = "Hello from rgbpanel!\nRGB panel demo"
	caption  = "Blue Rectangle"
)

// demoScreen is the boot UI: a greeting, a running uptime clock and a
// captioned rectangle. The clock ticks once per second from a scene timer.
type demoScreen struct {
	greeting *scene.Label
	clock    *scene.Label
	rect     *scene.Box
	caption  *scene.Label

	seconds int
}

func newDemoScreen(d *scene.Display) *demoScreen {
	s := &demoScreen{}
	screen := d.Screen()
	d.SetBackground(white)

	s.greeting = scene.NewLabel(screen, greeting, &freemono.Bold12pt7b, black, scene.AlignTopMid, 0, 30)
	s.clock = scene.NewLabel(screen, formatClock(0), &freemono.Bold18pt7b, red, scene.AlignCenter, 0, -50)

	x, y := scene.Place(screen, 250, 70, scene.AlignCenter, 0, 100)
	s.rect = scene.NewBox(scene.Rect(x, y, 250, 70), blue)
	s.caption = scene.NewLabel(s.rect.Bounds(), caption, &freemono.Regular12pt7b, white, scene.AlignCenter, 0, 0)

	d.Add(s.greeting)
	d.Add(s.clock)
	d.Add(s.rect)
	d.Add(s.caption)
	d.AddTimer(1000, s.tick)
	return s
}

func (s *demoScreen) tick(*scene.Timer) {
	s.seconds++
	s.clock.SetText(formatClock(s.seconds))
}

func formatClock(sec int) string {
	return fmt.Sprintf("Timer: %02d:%02d:%02d", sec/3600, sec/60%60, sec%60)
}
