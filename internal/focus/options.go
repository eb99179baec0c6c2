package focus

import "time"

// Options tunes focus layout and animation.
type Options struct {
	RelatedMax    int           `yaml:"related_max"`
	FocusDistance float32       `yaml:"focus_distance"`
	RingRadius    float32       `yaml:"ring_radius"`
	DimOpacity    float32       `yaml:"dim_opacity"`
	FocusScale    float32       `yaml:"focus_scale"`
	RingScale     float32       `yaml:"ring_scale"`
	TweenDuration time.Duration `yaml:"tween_duration"`
	Debounce      time.Duration `yaml:"debounce"`

	// Ring angular speed in radians per second, and the slower speed while hovered.
	RingSpeed  float32 `yaml:"ring_speed"`
	HoverSpeed float32 `yaml:"hover_speed"`

	// Spring that eases the ring between its two speeds.
	SpeedFrequency float64 `yaml:"speed_frequency"`
	SpeedDamping   float64 `yaml:"speed_damping"`
}

// DefaultOptions returns the gallery's focus tuning.
func DefaultOptions() Options {
	return Options{
		RelatedMax:     8,
		FocusDistance:  7,
		RingRadius:     4.5,
		DimOpacity:     0.25,
		FocusScale:     1.5,
		RingScale:      1,
		TweenDuration:  600 * time.Millisecond,
		Debounce:       150 * time.Millisecond,
		RingSpeed:      0.25,
		HoverSpeed:     0.05,
		SpeedFrequency: 6,
		SpeedDamping:   1,
	}
}
