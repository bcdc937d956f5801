package spatial

// Offset is a displacement in grid units.
type Offset struct {
	X, Y int
}

// Scale multiplies the offset by a scalar.
func (o Offset) Scale(n int) Offset {
	return Offset{X: o.X * n, Y: o.Y * n}
}

// Add returns the sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Position is an integer grid coordinate.
type Position struct {
	X, Y int
}

// Add returns the position reached by applying the offset.
func (p Position) Add(o Offset) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the offset from other to p.
func (p Position) Sub(other Position) Offset {
	return Offset{X: p.X - other.X, Y: p.Y - other.Y}
}
