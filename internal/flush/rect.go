package flush

import "fmt"

// Rect is a dirty rectangle in panel coordinates with inclusive bounds.
type Rect struct {
	X1, Y1, X2, Y2 int
}

func (r Rect) Width() int  { return r.X2 - r.X1 + 1 }
func (r Rect) Height() int { return r.Y2 - r.Y1 + 1 }

// Area is the number of pixels covered.
func (r Rect) Area() int { return r.Width() * r.Height() }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}

// Check reports whether r lies entirely inside a w x h panel. Rectangles are
// never clipped: a rectangle that does not fit is a toolkit bug.
func (r Rect) Check(w, h int) error {
	if r.X1 < 0 || r.Y1 < 0 || r.X1 > r.X2 || r.Y1 > r.Y2 || r.X2 >= w || r.Y2 >= h {
		return fmt.Errorf("rect %s on %dx%d panel: %w", r, w, h, ErrOutOfBounds)
	}
	return nil
}
