package tween

import (
	"slices"
	"time"

	"orbit-gallery/internal/clock"
)

// Tween is one in-flight interpolation over properties of a single target.
type Tween struct {
	target   any
	props    []Property
	start    time.Time
	duration time.Duration
	ease     Easing
	done     bool
	onDone   []func()
}

// Done reports whether the tween reached its end value.
func (t *Tween) Done() bool {
	return t.done
}

// OnDone registers fn to run once the tween completes. It runs immediately if the
// tween already finished. Canceled tweens never call it.
func (t *Tween) OnDone(fn func()) *Tween {
	if t.done {
		fn()
		return t
	}
	t.onDone = append(t.onDone, fn)
	return t
}

func (t *Tween) apply(now time.Time) {
	u := float32(1)
	if t.duration > 0 {
		u = float32(now.Sub(t.start)) / float32(t.duration)
		if u < 0 {
			u = 0
		}
		if u > 1 {
			u = 1
		}
	}
	e := t.ease(u)
	for i := range t.props {
		p := &t.props[i]
		to := p.end()
		if u >= 1 {
			*p.Value = to
			continue
		}
		*p.Value = p.from + (to-p.from)*e
	}
	if u >= 1 {
		t.done = true
	}
}

// Engine advances independent tweens. Targets are compared by identity, so pass pointers.
// It is driven from the frame loop and is not safe for concurrent use.
type Engine struct {
	tp     clock.TimeProvider
	tweens []*Tween
}

// NewEngine returns an engine reading start times from tp.
func NewEngine(tp clock.TimeProvider) *Engine {
	return &Engine{tp: tp}
}

// Start begins interpolating props on target over d. Any running tween writing one
// of the same property names on target loses that property first. A zero duration
// applies the end values immediately. A nil ease selects EaseOutCubic.
func (e *Engine) Start(target any, d time.Duration, ease Easing, props ...Property) *Tween {
	if ease == nil {
		ease = EaseOutCubic
	}
	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.Name)
	}
	e.Cancel(target, names...)

	t := &Tween{
		target:   target,
		props:    make([]Property, len(props)),
		start:    e.tp.Now(),
		duration: d,
		ease:     ease,
	}
	copy(t.props, props)
	for i := range t.props {
		t.props[i].from = *t.props[i].Value
	}

	if d <= 0 {
		t.apply(t.start)
		return t
	}
	e.tweens = append(e.tweens, t)
	return t
}

// Cancel stops the named properties of every tween on target, or all of them when
// no names are given. Values stay where they are. It returns the number of
// properties removed.
func (e *Engine) Cancel(target any, names ...string) int {
	removed := 0
	kept := e.tweens[:0]
	for _, t := range e.tweens {
		if t.target != target {
			kept = append(kept, t)
			continue
		}
		if len(names) == 0 {
			removed += len(t.props)
			continue
		}
		props := t.props[:0]
		for _, p := range t.props {
			if slices.Contains(names, p.Name) {
				removed++
				continue
			}
			props = append(props, p)
		}
		t.props = props
		if len(t.props) > 0 {
			kept = append(kept, t)
		}
	}
	clear(e.tweens[len(kept):])
	e.tweens = kept
	return removed
}

// Update advances every tween to now and retires the finished ones. Completion
// callbacks run after retirement and may start new tweens.
func (e *Engine) Update(now time.Time) {
	if len(e.tweens) == 0 {
		return
	}
	var finished []*Tween
	kept := e.tweens[:0]
	for _, t := range e.tweens {
		t.apply(now)
		if t.done {
			finished = append(finished, t)
			continue
		}
		kept = append(kept, t)
	}
	clear(e.tweens[len(kept):])
	e.tweens = kept

	for _, t := range finished {
		callbacks := t.onDone
		t.onDone = nil
		for _, fn := range callbacks {
			fn()
		}
	}
}

// Tick advances the engine to the provider's current time.
func (e *Engine) Tick() {
	e.Update(e.tp.Now())
}

// Len returns the number of running tweens.
func (e *Engine) Len() int {
	return len(e.tweens)
}

// Active reports whether any tween is running on target.
func (e *Engine) Active(target any) bool {
	for _, t := range e.tweens {
		if t.target == target {
			return true
		}
	}
	return false
}
