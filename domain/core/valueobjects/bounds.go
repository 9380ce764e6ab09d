package valueobjects

import "fmt"

// Bounds is the position and size of a diagram object inside its container.
// Width and height of -1 mean "use the default figure size".
type Bounds struct {
	x      int
	y      int
	width  int
	height int
}

// NewBounds creates bounds from raw values
func NewBounds(x, y, width, height int) Bounds {
	return Bounds{x: x, y: y, width: width, height: height}
}

// DefaultBounds is the zero origin with default size
func DefaultBounds() Bounds {
	return Bounds{width: -1, height: -1}
}

func (b Bounds) X() int      { return b.x }
func (b Bounds) Y() int      { return b.y }
func (b Bounds) Width() int  { return b.width }
func (b Bounds) Height() int { return b.height }

// WithSize returns a copy with the given size, keeping the position
func (b Bounds) WithSize(width, height int) Bounds {
	b.width, b.height = width, height
	return b
}

// WithLocation returns a copy moved to x,y, keeping the size
func (b Bounds) WithLocation(x, y int) Bounds {
	b.x, b.y = x, y
	return b
}

// Equals checks if two bounds are equal
func (b Bounds) Equals(other Bounds) bool {
	return b == other
}

// ToMap returns the script-facing representation
func (b Bounds) ToMap() map[string]int {
	return map[string]int{
		"x":      b.x,
		"y":      b.y,
		"width":  b.width,
		"height": b.height,
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", b.x, b.y, b.width, b.height)
}
