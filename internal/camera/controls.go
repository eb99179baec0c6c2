package camera

// ControlOptions tunes the orbit controls.
type ControlOptions struct {
	RotateSpeed float32 `yaml:"rotate_speed"` // radians per pixel of drag
	ZoomSpeed   float32 `yaml:"zoom_speed"`   // zoom factor per wheel notch
	Damping     float32 `yaml:"damping"`      // fraction of velocity removed per update, 0..1
	MinZoom     float32 `yaml:"min_zoom"`
	MaxZoom     float32 `yaml:"max_zoom"`
}

// DefaultControlOptions returns the controls tuning used by the gallery.
func DefaultControlOptions() ControlOptions {
	return ControlOptions{
		RotateSpeed: 0.005,
		ZoomSpeed:   0.1,
		Damping:     0.1,
		MinZoom:     0.5,
		MaxZoom:     3,
	}
}

// Controls orbits and zooms a Camera from pointer drags and wheel input.
// Disabled controls ignore input and drop any remaining momentum.
type Controls struct {
	cam      *Camera
	opts     ControlOptions
	enabled  bool
	yawVel   float32
	pitchVel float32
}

// NewControls returns enabled controls bound to cam.
func NewControls(cam *Camera, opts ControlOptions) *Controls {
	return &Controls{cam: cam, opts: opts, enabled: true}
}

// Enabled reports whether user input moves the camera.
func (c *Controls) Enabled() bool {
	return c.enabled
}

// SetEnabled toggles user input.
func (c *Controls) SetEnabled(enabled bool) {
	c.enabled = enabled
	if !enabled {
		c.yawVel, c.pitchVel = 0, 0
	}
}

// Drag feeds a pointer drag in pixels.
func (c *Controls) Drag(dx, dy float32) {
	if !c.enabled {
		return
	}
	c.yawVel -= dx * c.opts.RotateSpeed
	c.pitchVel -= dy * c.opts.RotateSpeed
}

// Scroll feeds wheel movement; positive zooms in.
func (c *Controls) Scroll(delta float32) {
	if !c.enabled || delta == 0 {
		return
	}
	z := c.cam.zoom() * (1 + delta*c.opts.ZoomSpeed)
	if z < c.opts.MinZoom {
		z = c.opts.MinZoom
	}
	if c.opts.MaxZoom > 0 && z > c.opts.MaxZoom {
		z = c.opts.MaxZoom
	}
	c.cam.Zoom = z
}

// Update applies the accumulated rotation with damping. Called once per frame.
func (c *Controls) Update() {
	if !c.enabled {
		return
	}
	if c.yawVel == 0 && c.pitchVel == 0 {
		return
	}
	c.cam.Orbit(c.yawVel, c.pitchVel)
	keep := 1 - c.opts.Damping
	if keep < 0 || keep >= 1 {
		keep = 0
	}
	c.yawVel *= keep
	c.pitchVel *= keep
	if abs32(c.yawVel) < 1e-5 {
		c.yawVel = 0
	}
	if abs32(c.pitchVel) < 1e-5 {
		c.pitchVel = 0
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
