package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"orbit-gallery/internal/camera"
	"orbit-gallery/internal/clock"
	"orbit-gallery/internal/gallery"
)

// Options tunes orbit motion.
type Options struct {
	// SpeedFactor converts orbit-clock milliseconds times item speed into path fraction.
	SpeedFactor  float32 `yaml:"speed_factor"`
	BobAmplitude float32 `yaml:"bob_amplitude"`

	// Circular fallback used while no orbit path exists.
	FallbackBob   float32 `yaml:"fallback_bob"`
	AngularSpeed  float32 `yaml:"angular_speed"` // radians per second
	AngularSpread float32 `yaml:"angular_spread"`
	Tilt          float32 `yaml:"tilt"`
}

// DefaultOptions returns the gallery's orbit tuning.
func DefaultOptions() Options {
	return Options{
		SpeedFactor:   0.00005,
		BobAmplitude:  0.3,
		FallbackBob:   0.5,
		AngularSpeed:  0.5,
		AngularSpread: 0.35,
		Tilt:          0.5,
	}
}

// Sampler provides arc-length sampling of the orbit paths.
type Sampler interface {
	PathCount() int
	SampleAt(u float32, index int, xOffset float32) (mgl32.Vec3, bool)
}

// Driver places every free item on its orbit from one pausable clock.
type Driver struct {
	opts  Options
	paths Sampler
	clock *clock.Pausable
	cam   *camera.Camera
}

// NewDriver returns a driver reading time from clk and facing items toward cam.
func NewDriver(opts Options, paths Sampler, clk *clock.Pausable, cam *camera.Camera) *Driver {
	return &Driver{opts: opts, paths: paths, clock: clk, cam: cam}
}

// Update positions and orients every visible item that focus does not own.
func (d *Driver) Update(items []*gallery.Item) {
	for _, it := range items {
		if it == nil || !it.Visible || it.Locked {
			continue
		}
		d.Place(it)
	}
}

// Place moves it to its current orbit placement and faces it to the camera.
func (d *Driver) Place(it *gallery.Item) {
	it.Transform.Position = d.Placement(it)
	it.FaceCamera(d.cam.Position, d.cam.TrueUp())
}

// Placement returns where it belongs on its orbit at the current clock time,
// without moving it.
func (d *Driver) Placement(it *gallery.Item) mgl32.Vec3 {
	ms := d.clock.Millis()
	t := d.clock.Seconds()

	if n := d.paths.PathCount(); n > 0 {
		band := ((it.Band % n) + n) % n
		u := ms*d.opts.SpeedFactor*it.Speed + it.Phase
		if p, ok := d.paths.SampleAt(u, band, it.OffsetX); ok {
			p[1] += it.YLift + math32.Sin(t+it.BobPhase)*d.opts.BobAmplitude
			p[2] += it.ZChange
			return p
		}
	}

	angle := it.Angle + t*d.opts.AngularSpeed + it.BobPhase*d.opts.AngularSpread
	sin, cos := math32.Sin(angle), math32.Cos(angle)
	return mgl32.Vec3{
		cos * it.OrbitRadius,
		sin*it.OrbitRadius*d.opts.Tilt + it.VerticalOffset + math32.Sin(t+it.BobPhase)*d.opts.FallbackBob,
		sin * it.OrbitRadius,
	}
}
