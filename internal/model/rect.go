package model

// Rect is a snapshot of an element's on-screen bounding box in window
// coordinates (logical pixels). Rects go stale as soon as the layout scrolls
// or resizes, so callers re-measure right before use instead of holding one.
type Rect struct {
	Left   float32
	Top    float32
	Width  float32
	Height float32
}

// NewRect builds a Rect from a top-left corner and a size
func NewRect(left, top, width, height float32) Rect {
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

// IsZero returns true if the rect carries no geometry at all
func (r Rect) IsZero() bool {
	return r.Left == 0 && r.Top == 0 && r.Width == 0 && r.Height == 0
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float32 {
	return r.Left + r.Width
}

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float32 {
	return r.Top + r.Height
}

// CenterX returns the x coordinate of the rect center
func (r Rect) CenterX() float32 {
	return r.Left + r.Width/2
}

// CenterY returns the y coordinate of the rect center
func (r Rect) CenterY() float32 {
	return r.Top + r.Height/2
}

// Contains returns true if the point (x, y) lies inside the rect
func (r Rect) Contains(x, y float32) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Offset returns the rect shifted by (dx, dy) with the same size
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Width: r.Width, Height: r.Height}
}

// Lerp returns the rect linearly interpolated toward target.
// t is clamped to [0, 1]: 0 yields the receiver, 1 yields target.
func (r Rect) Lerp(target Rect, t float32) Rect {
	if t <= 0 {
		return r
	}
	if t >= 1 {
		return target
	}
	return Rect{
		Left:   r.Left + (target.Left-r.Left)*t,
		Top:    r.Top + (target.Top-r.Top)*t,
		Width:  r.Width + (target.Width-r.Width)*t,
		Height: r.Height + (target.Height-r.Height)*t,
	}
}

// ApproxEqual returns true if every component of the two rects is within
// tolerance logical pixels of the other
func (r Rect) ApproxEqual(other Rect, tolerance float32) bool {
	return abs32(r.Left-other.Left) <= tolerance &&
		abs32(r.Top-other.Top) <= tolerance &&
		abs32(r.Width-other.Width) <= tolerance &&
		abs32(r.Height-other.Height) <= tolerance
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
