package scene

import (
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
)

// Widget is something the scene can draw.
type Widget interface {
	Bounds() Area
	draw(t *target)
	attach(d *Display)
}

type obj struct {
	d    *Display
	area Area
}

func (o *obj) Bounds() Area      { return o.area }
func (o *obj) attach(d *Display) { o.d = d }

func (o *obj) invalidate() {
	if o.d != nil {
		o.d.Invalidate(o.area)
	}
}

// move changes the widget's area, invalidating both the old and new spot.
func (o *obj) move(a Area) {
	if a == o.area {
		return
	}
	o.invalidate()
	o.area = a
	o.invalidate()
}

// Box is a filled rectangle with an optional border.
type Box struct {
	obj
	fill   color.RGBA
	border color.RGBA
	bw     int
}

// NewBox returns a filled rectangle covering a.
func NewBox(a Area, fill color.RGBA) *Box {
	return &Box{obj: obj{area: a}, fill: fill}
}

// SetFill changes the fill color.
func (b *Box) SetFill(c color.RGBA) {
	if b.fill == c {
		return
	}
	b.fill = c
	b.invalidate()
}

// SetBorder draws a border of width w inside the box.
func (b *Box) SetBorder(w int, c color.RGBA) {
	b.bw = w
	b.border = c
	b.invalidate()
}

// Move places the box at a.
func (b *Box) Move(a Area) { b.move(a) }

func (b *Box) draw(t *target) {
	if b.bw <= 0 || b.bw*2 >= b.area.Width() || b.bw*2 >= b.area.Height() {
		if b.bw > 0 {
			t.fill(b.area, b.border)
			return
		}
		t.fill(b.area, b.fill)
		return
	}
	a := b.area
	t.fill(Area{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y1 + b.bw - 1}, b.border)
	t.fill(Area{X1: a.X1, Y1: a.Y2 - b.bw + 1, X2: a.X2, Y2: a.Y2}, b.border)
	t.fill(Area{X1: a.X1, Y1: a.Y1 + b.bw, X2: a.X1 + b.bw - 1, Y2: a.Y2 - b.bw}, b.border)
	t.fill(Area{X1: a.X2 - b.bw + 1, Y1: a.Y1 + b.bw, X2: a.X2, Y2: a.Y2 - b.bw}, b.border)
	t.fill(Area{X1: a.X1 + b.bw, Y1: a.Y1 + b.bw, X2: a.X2 - b.bw, Y2: a.Y2 - b.bw}, b.fill)
}

// Align positions a widget relative to a parent area.
type Align uint8

const (
	AlignTopLeft Align = iota
	AlignTopMid
	AlignCenter
	AlignBottomMid
)

// Place returns the top-left corner for a w x h child aligned in parent and
// shifted by (dx, dy).
func Place(parent Area, w, h int, align Align, dx, dy int) (x, y int) {
	switch align {
	case AlignTopMid:
		x = parent.X1 + (parent.Width()-w)/2
		y = parent.Y1
	case AlignCenter:
		x = parent.X1 + (parent.Width()-w)/2
		y = parent.Y1 + (parent.Height()-h)/2
	case AlignBottomMid:
		x = parent.X1 + (parent.Width()-w)/2
		y = parent.Y2 - h + 1
	default:
		x, y = parent.X1, parent.Y1
	}
	return x + dx, y + dy
}

// Label draws text with a tinyfont font. Multi-line text is split on '\n'
// and each line is centered within the widest one.
type Label struct {
	obj
	text  string
	font  tinyfont.Fonter
	color color.RGBA

	parent Area
	align  Align
	dx, dy int
}

// NewLabel returns a label aligned inside parent.
func NewLabel(parent Area, text string, font tinyfont.Fonter, c color.RGBA, align Align, dx, dy int) *Label {
	l := &Label{text: text, font: font, color: c, parent: parent, align: align, dx: dx, dy: dy}
	l.area = l.layout()
	return l
}

// Text returns the current text.
func (l *Label) Text() string { return l.text }

// SetText replaces the text and invalidates the old and new extents.
func (l *Label) SetText(s string) {
	if s == l.text {
		return
	}
	l.text = s
	l.move(l.layout())
	l.invalidate()
}

// SetColor changes the text color.
func (l *Label) SetColor(c color.RGBA) {
	if c == l.color {
		return
	}
	l.color = c
	l.invalidate()
}

func (l *Label) lineHeight() int {
	h := int(l.font.GetYAdvance())
	if h <= 0 {
		h = 1
	}
	return h
}

func (l *Label) layout() Area {
	lines := strings.Split(l.text, "\n")
	w := 0
	for _, s := range lines {
		_, outbox := tinyfont.LineWidth(l.font, s)
		w = max(w, int(outbox))
	}
	w = max(w, 1)
	h := l.lineHeight() * len(lines)
	x, y := Place(l.parent, w, h, l.align, l.dx, l.dy)
	return Rect(x, y, w, h)
}

func (l *Label) draw(t *target) {
	lh := l.lineHeight()
	// tinyfont positions glyphs on their baseline.
	ascent := lh * 3 / 4
	for i, s := range strings.Split(l.text, "\n") {
		_, outbox := tinyfont.LineWidth(l.font, s)
		x := l.area.X1 + (l.area.Width()-int(outbox))/2
		y := l.area.Y1 + i*lh + ascent
		tinyfont.WriteLine(t, l.font, int16(x), int16(y), s, l.color)
	}
}
