package scene

// Area is a rectangle with inclusive bounds, in panel coordinates.
type Area struct {
	X1, Y1, X2, Y2 int
}

func (a Area) Width() int  { return a.X2 - a.X1 + 1 }
func (a Area) Height() int { return a.Y2 - a.Y1 + 1 }
func (a Area) Empty() bool { return a.X2 < a.X1 || a.Y2 < a.Y1 }
func (a Area) Size() int {
	if a.Empty() {
		return 0
	}
	return a.Width() * a.Height()
}

// Intersect returns the overlap of a and b.
func (a Area) Intersect(b Area) (Area, bool) {
	r := Area{
		X1: max(a.X1, b.X1),
		Y1: max(a.Y1, b.Y1),
		X2: min(a.X2, b.X2),
		Y2: min(a.Y2, b.Y2),
	}
	if r.Empty() {
		return Area{}, false
	}
	return r, true
}

// Union returns the bounding box of a and b.
func (a Area) Union(b Area) Area {
	return Area{
		X1: min(a.X1, b.X1),
		Y1: min(a.Y1, b.Y1),
		X2: max(a.X2, b.X2),
		Y2: max(a.Y2, b.Y2),
	}
}

// Contains reports whether b lies inside a.
func (a Area) Contains(b Area) bool {
	return b.X1 >= a.X1 && b.Y1 >= a.Y1 && b.X2 <= a.X2 && b.Y2 <= a.Y2
}

// Rect builds an Area from a top-left corner and a size.
func Rect(x, y, w, h int) Area {
	return Area{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}
}
