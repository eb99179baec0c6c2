package reshuffle

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit-gallery/internal/focus"
	"orbit-gallery/internal/gallery"
)

type events struct {
	subs []func(focus.Event)
}

func (e *events) Subscribe(fn func(focus.Event)) { e.subs = append(e.subs, fn) }

func (e *events) emit(kind focus.EventKind) {
	for _, fn := range e.subs {
		fn(focus.Event{Kind: kind})
	}
}

func newGallery(n int) *gallery.Gallery {
	g := gallery.New()
	for i := 0; i < n; i++ {
		g.Add(gallery.NewItem(gallery.Record{ID: fmt.Sprintf("p%d", i)}, 1, 1))
	}
	return g
}

func visibleIDs(g *gallery.Gallery) []string {
	var ids []string
	for _, it := range g.Visible() {
		ids = append(ids, it.Record.ID)
	}
	return ids
}

func TestLimitHidesPastBudget(t *testing.T) {
	g := newGallery(5)
	s := New(Options{Interval: time.Second, VisibleMax: 3}, g, nil, nil)
	s.Limit()
	assert.Equal(t, []string{"p0", "p1", "p2"}, visibleIDs(g))
}

func TestSwapEveryInterval(t *testing.T) {
	g := newGallery(5)
	s := New(Options{Interval: time.Second, VisibleMax: 3}, g, nil, nil)
	s.Limit()

	s.Step(600 * time.Millisecond)
	assert.Zero(t, s.Swaps())
	s.Step(600 * time.Millisecond)
	assert.Equal(t, 1, s.Swaps())
	assert.Equal(t, []string{"p1", "p2", "p3"}, visibleIDs(g))

	s.Step(time.Second)
	assert.Equal(t, []string{"p2", "p3", "p4"}, visibleIDs(g))
	assert.Len(t, g.Visible(), 3)
}

func TestNothingToSwapWhenAllVisible(t *testing.T) {
	g := newGallery(3)
	s := New(Options{Interval: time.Second, VisibleMax: 5}, g, nil, nil)
	s.Limit()
	s.Step(2 * time.Second)
	assert.Zero(t, s.Swaps())
	assert.Len(t, g.Visible(), 3)
}

func TestLockedItemsStayVisible(t *testing.T) {
	g := newGallery(4)
	s := New(Options{Interval: time.Second, VisibleMax: 2}, g, nil, nil)
	s.Limit()
	g.Items()[0].Locked = true

	s.Step(time.Second)
	require.Equal(t, 1, s.Swaps())
	assert.True(t, g.Items()[0].Visible)
	assert.False(t, g.Items()[1].Visible)
	assert.True(t, g.Items()[2].Visible)
}

func TestFreezesWhileFocused(t *testing.T) {
	g := newGallery(4)
	ev := &events{}
	s := New(Options{Interval: time.Second, VisibleMax: 2}, g, ev, nil)
	s.Limit()

	ev.emit(focus.Entered)
	assert.True(t, s.Frozen())
	s.Step(5 * time.Second)
	assert.Zero(t, s.Swaps())

	ev.emit(focus.Switched)
	assert.True(t, s.Frozen())

	ev.emit(focus.Exited)
	assert.False(t, s.Frozen())
	s.Step(time.Second)
	assert.Equal(t, 1, s.Swaps())
}

type placer struct {
	placed []string
}

func (p *placer) Place(it *gallery.Item) {
	if it.Visible {
		p.placed = append(p.placed, it.Record.ID)
	}
}

func TestSwappedInItemIsPlacedImmediately(t *testing.T) {
	g := newGallery(4)
	s := New(Options{Interval: time.Second, VisibleMax: 2}, g, nil, nil)
	p := &placer{}
	s.SetPlacer(p)
	s.Limit()
	assert.Empty(t, p.placed)

	s.Step(time.Second)
	s.Step(time.Second)
	assert.Equal(t, []string{"p2", "p3"}, p.placed)
}
