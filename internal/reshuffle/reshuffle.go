// Package reshuffle rotates which photos are on screen when there are more
// photos than the visible budget.
package reshuffle

import (
	"time"

	"orbit-gallery/internal/focus"
	"orbit-gallery/internal/gallery"
	"orbit-gallery/internal/logger"
)

// Options controls the rotation.
type Options struct {
	Interval   time.Duration `yaml:"interval"`
	VisibleMax int           `yaml:"visible_max"`
}

// DefaultOptions swaps one photo every eight seconds with up to 24 on screen.
func DefaultOptions() Options {
	return Options{Interval: 8 * time.Second, VisibleMax: 24}
}

// Source is the live item collection.
type Source interface {
	Items() []*gallery.Item
}

// Subscriber delivers focus transitions.
type Subscriber interface {
	Subscribe(fn func(focus.Event))
}

// Placer moves an item to its orbit position for the current frame.
type Placer interface {
	Place(it *gallery.Item)
}

// Shuffler hides one visible item and shows the next hidden one every interval.
type Shuffler struct {
	opts    Options
	items   Source
	placer  Placer
	log     *logger.Logger
	elapsed time.Duration
	frozen  bool
	outIdx  int
	inIdx   int
	swaps   int
}

// New creates a shuffler. When events is non-nil the shuffler freezes while an
// item is focused.
func New(opts Options, items Source, events Subscriber, log *logger.Logger) *Shuffler {
	s := &Shuffler{opts: opts, items: items, log: log}
	if events != nil {
		events.Subscribe(func(ev focus.Event) {
			switch ev.Kind {
			case focus.Entered, focus.Switched:
				s.frozen = true
			case focus.Exited:
				s.frozen = false
			}
		})
	}
	return s
}

// SetPlacer makes newly shown items appear at their orbit position on the frame
// they are swapped in rather than where they were last drawn.
func (s *Shuffler) SetPlacer(p Placer) {
	s.placer = p
}

// Limit hides every item past the visible budget. Call once after loading.
func (s *Shuffler) Limit() {
	if s.opts.VisibleMax <= 0 {
		return
	}
	shown := 0
	for _, it := range s.items.Items() {
		if !it.Visible {
			continue
		}
		if shown < s.opts.VisibleMax {
			shown++
			continue
		}
		if !it.Locked {
			it.Visible = false
		}
	}
}

// Frozen reports whether rotation is suspended by focus.
func (s *Shuffler) Frozen() bool {
	return s.frozen
}

// Swaps returns the number of completed swaps.
func (s *Shuffler) Swaps() int {
	return s.swaps
}

// Step advances the interval timer and performs at most one swap. It has the
// shape of a frame hook.
func (s *Shuffler) Step(dt time.Duration) {
	if s.frozen || s.opts.Interval <= 0 || dt <= 0 {
		return
	}
	s.elapsed += dt
	if s.elapsed < s.opts.Interval {
		return
	}
	s.elapsed -= s.opts.Interval
	s.swap()
}

func (s *Shuffler) swap() bool {
	items := s.items.Items()
	in, ok := s.next(items, &s.inIdx, func(it *gallery.Item) bool { return !it.Visible })
	if !ok {
		return false
	}
	out, ok := s.next(items, &s.outIdx, func(it *gallery.Item) bool { return it.Visible && !it.Locked })
	if !ok {
		return false
	}
	out.Visible = false
	in.Visible = true
	if s.placer != nil {
		s.placer.Place(in)
	}
	s.swaps++
	s.log.Logf("reshuffle: %s out, %s in", out.Record.ID, in.Record.ID)
	return true
}

// next scans forward from *cursor for the first item matching keep and leaves
// the cursor just past it.
func (s *Shuffler) next(items []*gallery.Item, cursor *int, keep func(*gallery.Item) bool) (*gallery.Item, bool) {
	n := len(items)
	for step := 0; step < n; step++ {
		i := (*cursor + step) % n
		if keep(items[i]) {
			*cursor = (i + 1) % n
			return items[i], true
		}
	}
	return nil, false
}
