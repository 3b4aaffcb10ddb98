package observer

// Rect is an element's bounds in terminal cells.
type Rect struct {
	X, Y int
	W, H int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return !r.Empty() && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// IntersectionRatio is the fraction of element's area inside viewport,
// in [0, 1]. An empty element is never visible.
func IntersectionRatio(element, viewport Rect) float64 {
	if element.Empty() {
		return 0
	}
	overlap := element.Intersect(viewport)
	if overlap.Empty() {
		return 0
	}
	return float64(overlap.W*overlap.H) / float64(element.W*element.H)
}

// Width converts a terminal width in columns to px using cellPx per column.
func Width(cols, cellPx int) int {
	if cols < 0 || cellPx <= 0 {
		return 0
	}
	return cols * cellPx
}
