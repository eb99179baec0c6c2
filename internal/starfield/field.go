// Package starfield is the background layer of drifting, twinkling stars.
// It only consumes the frame step and never touches gallery items.
package starfield

import (
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"
)

// Options shapes the field.
type Options struct {
	Count   int        `yaml:"count"`
	Extent  [3]float32 `yaml:"extent"`
	Drift   float32    `yaml:"drift"`
	MinSize float32    `yaml:"min_size"`
	MaxSize float32    `yaml:"max_size"`
	Twinkle float32    `yaml:"twinkle"`
	MinRate float32    `yaml:"min_rate"`
	MaxRate float32    `yaml:"max_rate"`
	Seed    uint64     `yaml:"seed"`
}

// DefaultOptions fills a 120-unit box with 400 slow stars.
func DefaultOptions() Options {
	return Options{
		Count:   400,
		Extent:  [3]float32{120, 80, 120},
		Drift:   0.4,
		MinSize: 0.03,
		MaxSize: 0.12,
		Twinkle: 0.35,
		MinRate: 0.5,
		MaxRate: 2.5,
		Seed:    1,
	}
}

// Field holds the stars and the box they wrap around.
type Field struct {
	opts   Options
	Center [3]float32
	Stars  []*Star
	time   float32
}

// New seeds a field of opts.Count stars around the origin.
func New(opts Options) *Field {
	f := &Field{opts: opts}
	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	between := func(lo, hi float32) float32 { return lo + r.Float32()*(hi-lo) }
	for range opts.Count {
		var pos, vel [3]float32
		for k := range 3 {
			pos[k] = between(-opts.Extent[k]/2, opts.Extent[k]/2)
			vel[k] = between(-opts.Drift, opts.Drift)
		}
		s := NewStar(pos, vel, between(opts.MinSize, opts.MaxSize))
		s.Phase = between(0, 2*math32.Pi)
		s.Rate = between(opts.MinRate, opts.MaxRate)
		f.Stars = append(f.Stars, s)
	}
	f.twinkle()
	return f
}

// AddStar appends a star. Order is preserved for drawing.
func (f *Field) AddStar(s *Star) {
	f.Stars = append(f.Stars, s)
}

// Follow recenters the wrap box, usually on the camera target.
func (f *Field) Follow(center [3]float32) {
	f.Center = center
}

// Time returns the accumulated field time in seconds.
func (f *Field) Time() float32 {
	return f.time
}

// Step advances the field by dt seconds: integrate drift, wrap at the box
// edges, then update brightness.
func (f *Field) Step(dt float32) {
	if dt <= 0 {
		return
	}
	f.time += dt
	for _, s := range f.Stars {
		for k := range 3 {
			s.Position[k] += s.Velocity[k] * dt
			s.Position[k] = wrap(s.Position[k], f.Center[k], f.opts.Extent[k])
		}
	}
	f.twinkle()
}

// Hook adapts Step to the frame loop.
func (f *Field) Hook(dt time.Duration) {
	f.Step(float32(dt.Seconds()))
}

func (f *Field) twinkle() {
	for _, s := range f.Stars {
		b := 1 - f.opts.Twinkle*0.5*(1+math32.Sin(s.Phase+f.time*s.Rate))
		s.Brightness = min(max(b, 0), 1)
	}
}

// wrap folds v into [center-extent/2, center+extent/2).
func wrap(v, center, extent float32) float32 {
	if extent <= 0 {
		return v
	}
	lo := center - extent/2
	off := math32.Mod(v-lo, extent)
	if off < 0 {
		off += extent
	}
	return lo + off
}
