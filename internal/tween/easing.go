package tween

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float32) float32

// EaseOutCubic decelerates to rest. It is the engine default.
func EaseOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutCubic accelerates then decelerates.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Linear is the identity easing.
func Linear(t float32) float32 {
	return t
}
