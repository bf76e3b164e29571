package world

// RotationSteps is the number of discrete orientations a hex piece can take.
const RotationSteps = 6

// Rotation is a discrete 60° orientation in [0, 6).
type Rotation int

// Normalize maps any integer rotation into [0, 6).
func (r Rotation) Normalize() Rotation {
	n := int(r) % RotationSteps
	if n < 0 {
		n += RotationSteps
	}
	return Rotation(n)
}

// Clockwise returns the rotation one step clockwise, wrapping at 6.
func (r Rotation) Clockwise() Rotation {
	return (r + 1).Normalize()
}

// Counterclockwise returns the rotation one step counterclockwise, wrapping at 0.
func (r Rotation) Counterclockwise() Rotation {
	return (r - 1).Normalize()
}
