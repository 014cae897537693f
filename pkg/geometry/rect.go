// Package geometry tracks monitor rectangles and the overall screen bounds.
package geometry

import "fmt"

// Rect is a half-open rectangle: a point (x, y) lies inside when
// X1 <= x < X2 and Y1 <= y < Y2. Monitor rectangles are expressed in
// root-window coordinates.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x < r.X2 && y >= r.Y1 && y < r.Y2
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Width returns the horizontal extent.
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height returns the vertical extent.
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Empty reports whether the rectangle encloses no points.
func (r Rect) Empty() bool { return r.X2 <= r.X1 || r.Y2 <= r.Y1 }

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	out := r
	if other.X1 < out.X1 {
		out.X1 = other.X1
	}
	if other.Y1 < out.Y1 {
		out.Y1 = other.Y1
	}
	if other.X2 > out.X2 {
		out.X2 = other.X2
	}
	if other.Y2 > out.Y2 {
		out.Y2 = other.Y2
	}
	return out
}

// Clamp returns the point moved to the nearest position inside the rectangle.
func (r Rect) Clamp(x, y int) (int, int) {
	if x < r.X1 {
		x = r.X1
	}
	if x > r.X2-1 {
		x = r.X2 - 1
	}
	if y < r.Y1 {
		y = r.Y1
	}
	if y > r.Y2-1 {
		y = r.Y2 - 1
	}
	return x, y
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width(), r.Height(), r.X1, r.Y1)
}
