package spatial

import "iter"

// Rectangle is an origin position plus a size offset. The size's signs
// control enumeration direction; a negative component walks that axis
// downward from the origin.
type Rectangle struct {
	Origin Position
	Size   Offset
}

// NewRectangle builds a Rectangle from an origin and a size offset.
func NewRectangle(origin Position, size Offset) Rectangle {
	return Rectangle{Origin: origin, Size: size}
}

// Area returns the absolute number of cells the rectangle covers.
func (r Rectangle) Area() int {
	return abs(r.Size.X) * abs(r.Size.Y)
}

// Contains reports whether pos falls within the rectangle, accounting for
// the size vector's sign on each axis.
func (r Rectangle) Contains(pos Position) bool {
	loX, hiX := span(r.Origin.X, r.Size.X)
	loY, hiY := span(r.Origin.Y, r.Size.Y)
	return pos.X >= loX && pos.X < hiX && pos.Y >= loY && pos.Y < hiY
}

// Positions lazily enumerates every cell in the rectangle in row-major order,
// following the sign of Size on each axis.
func (r Rectangle) Positions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		stepX, stepY := sign(r.Size.X), sign(r.Size.Y)
		nx, ny := abs(r.Size.X), abs(r.Size.Y)
		for dy := 0; dy < ny; dy++ {
			y := r.Origin.Y + dy*stepY
			for dx := 0; dx < nx; dx++ {
				x := r.Origin.X + dx*stepX
				if !yield(Position{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

func span(origin, size int) (lo, hi int) {
	if size >= 0 {
		return origin, origin + size
	}
	return origin + size + 1, origin + 1
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
