package frame

import (
	"time"

	"orbit-gallery/internal/clock"
	"orbit-gallery/internal/focus"
	"orbit-gallery/internal/gallery"
)

// Options tunes the frame loop.
type Options struct {
	// MaxDelta caps the time step after a stall.
	MaxDelta time.Duration `yaml:"max_delta"`
}

// DefaultOptions caps steps at 50ms.
func DefaultOptions() Options {
	return Options{MaxDelta: 50 * time.Millisecond}
}

// Tweens advances in-flight interpolations.
type Tweens interface {
	Update(now time.Time)
}

// Focus is the focus state machine as the loop sees it.
type Focus interface {
	Active() bool
	Update(dt time.Duration)
	Subscribe(fn func(focus.Event))
}

// Orbit places free items on their orbits.
type Orbit interface {
	Update(items []*gallery.Item)
}

// Items is the live item collection.
type Items interface {
	Items() []*gallery.Item
}

// Controls is an optional camera control updated once per frame.
type Controls interface {
	Update()
}

// Hook is an external per-frame callback such as the starfield.
type Hook func(dt time.Duration)

// Scheduler runs one unit of work per display refresh in a fixed order:
// tweens, then focus or orbit placement, then hooks, then controls, then render.
type Scheduler struct {
	opts   Options
	tp     clock.TimeProvider
	tweens Tweens
	focus  Focus
	orbit  Orbit
	clock  *clock.Pausable
	items  Items

	controls Controls
	render   func()
	hooks    []Hook

	last    time.Time
	started bool
	lastDt  time.Duration
	frames  uint64
}

// New wires the loop. The orbit clock pauses whenever focus is entered or switched
// and resumes when it is cleared.
func New(opts Options, tp clock.TimeProvider, tweens Tweens, f Focus, orbit Orbit, orbitClock *clock.Pausable, items Items) *Scheduler {
	s := &Scheduler{
		opts:   opts,
		tp:     tp,
		tweens: tweens,
		focus:  f,
		orbit:  orbit,
		clock:  orbitClock,
		items:  items,
	}
	f.Subscribe(func(ev focus.Event) {
		switch ev.Kind {
		case focus.Entered, focus.Switched:
			s.clock.Pause()
		case focus.Exited:
			s.clock.Resume()
		}
	})
	return s
}

// SetControls registers the camera control.
func (s *Scheduler) SetControls(c Controls) {
	s.controls = c
}

// SetRender registers the draw call submitted at the end of every frame.
func (s *Scheduler) SetRender(fn func()) {
	s.render = fn
}

// AddHook registers an external per-frame callback.
func (s *Scheduler) AddHook(h Hook) {
	s.hooks = append(s.hooks, h)
}

// Tick runs one frame at the provider's current time.
func (s *Scheduler) Tick() {
	s.TickAt(s.tp.Now())
}

// TickAt runs one frame at now.
func (s *Scheduler) TickAt(now time.Time) {
	var dt time.Duration
	if s.started {
		dt = now.Sub(s.last)
	}
	if s.opts.MaxDelta > 0 {
		dt = min(dt, s.opts.MaxDelta)
	}
	dt = max(dt, 0)
	s.last = now
	s.started = true
	s.lastDt = dt

	s.tweens.Update(now)

	if s.focus.Active() {
		s.focus.Update(dt)
	} else {
		s.clock.Advance(dt)
		s.orbit.Update(s.items.Items())
	}

	for _, h := range s.hooks {
		h(dt)
	}
	if s.controls != nil {
		s.controls.Update()
	}
	if s.render != nil {
		s.render()
	}
	s.frames++
}

// Frames returns the number of completed ticks.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// LastDelta returns the clamped step of the most recent tick.
func (s *Scheduler) LastDelta() time.Duration {
	return s.lastDt
}
