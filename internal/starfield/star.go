package starfield

// Star is a point light drifting through the field. Brightness is recomputed
// every step from the twinkle phase.
type Star struct {
	Position   [3]float32
	Velocity   [3]float32
	Size       float32
	Phase      float32
	Rate       float32
	Brightness float32
}

// NewStar returns a star at position with the given drift. size is clamped to a
// small positive default.
func NewStar(position, velocity [3]float32, size float32) *Star {
	if size <= 0 {
		size = 0.05
	}
	return &Star{
		Position:   position,
		Velocity:   velocity,
		Size:       size,
		Brightness: 1,
	}
}
