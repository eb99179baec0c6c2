package frame

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit-gallery/internal/camera"
	"orbit-gallery/internal/clock"
	"orbit-gallery/internal/focus"
	"orbit-gallery/internal/gallery"
	"orbit-gallery/internal/orbit"
	"orbit-gallery/internal/orbitpath"
	"orbit-gallery/internal/refmodel"
	"orbit-gallery/internal/reshuffle"
	"orbit-gallery/internal/tween"
)

type recorder struct {
	calls []string
}

func (r *recorder) add(s string) { r.calls = append(r.calls, s) }

type fakeTweens struct{ r *recorder }

func (f fakeTweens) Update(time.Time) { f.r.add("tweens") }

type fakeFocus struct {
	r      *recorder
	active bool
	subs   []func(focus.Event)
}

func (f *fakeFocus) Active() bool                   { return f.active }
func (f *fakeFocus) Update(time.Duration)           { f.r.add("focus") }
func (f *fakeFocus) Subscribe(fn func(focus.Event)) { f.subs = append(f.subs, fn) }

func (f *fakeFocus) emit(kind focus.EventKind) {
	for _, fn := range f.subs {
		fn(focus.Event{Kind: kind})
	}
}

type fakeOrbit struct{ r *recorder }

func (f fakeOrbit) Update([]*gallery.Item) { f.r.add("orbit") }

type fakeControls struct{ r *recorder }

func (f fakeControls) Update() { f.r.add("controls") }

func newFakeScheduler() (*Scheduler, *recorder, *fakeFocus, *clock.Pausable, *clock.MockTimeProvider) {
	r := &recorder{}
	tp := clock.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	f := &fakeFocus{r: r}
	clk := clock.NewPausable()
	s := New(DefaultOptions(), tp, fakeTweens{r}, f, fakeOrbit{r}, clk, gallery.New())
	s.SetControls(fakeControls{r})
	s.SetRender(func() { r.add("render") })
	s.AddHook(func(time.Duration) { r.add("hook") })
	return s, r, f, clk, tp
}

func TestTickOrderUnfocused(t *testing.T) {
	s, r, _, _, _ := newFakeScheduler()
	s.Tick()
	assert.Equal(t, []string{"tweens", "orbit", "hook", "controls", "render"}, r.calls)
	assert.Equal(t, uint64(1), s.Frames())
}

func TestTickOrderFocused(t *testing.T) {
	s, r, f, _, _ := newFakeScheduler()
	f.active = true
	s.Tick()
	assert.Equal(t, []string{"tweens", "focus", "hook", "controls", "render"}, r.calls)
}

func TestDeltaIsClamped(t *testing.T) {
	s, _, _, clk, tp := newFakeScheduler()
	var seen []time.Duration
	s.AddHook(func(dt time.Duration) { seen = append(seen, dt) })

	s.Tick()
	tp.Advance(16 * time.Millisecond)
	s.Tick()
	tp.Advance(3 * time.Second)
	s.Tick()

	assert.Equal(t, []time.Duration{0, 16 * time.Millisecond, 50 * time.Millisecond}, seen)
	assert.Equal(t, 66*time.Millisecond, clk.Elapsed())
	assert.Equal(t, 50*time.Millisecond, s.LastDelta())
}

func TestBackwardsTimeIsIgnored(t *testing.T) {
	s, _, _, clk, tp := newFakeScheduler()
	s.Tick()
	tp.Advance(-time.Second)
	s.Tick()
	assert.Zero(t, s.LastDelta())
	assert.Zero(t, clk.Elapsed())
}

func TestFocusEventsPauseOrbitClock(t *testing.T) {
	s, _, f, clk, tp := newFakeScheduler()
	s.Tick()
	tp.Advance(20 * time.Millisecond)
	s.Tick()

	f.emit(focus.Entered)
	assert.True(t, clk.IsPaused())
	f.emit(focus.Switched)
	assert.True(t, clk.IsPaused())
	f.emit(focus.Exited)
	assert.False(t, clk.IsPaused())
	assert.Equal(t, 20*time.Millisecond, clk.Elapsed())
}

// gallery wired the way cmd/gallery wires it, without a window.
type rig struct {
	tp     *clock.MockTimeProvider
	g      *gallery.Gallery
	m      *focus.Machine
	clk    *clock.Pausable
	s      *Scheduler
	driver *orbit.Driver
}

func newRig(t *testing.T) *rig {
	t.Helper()
	tp := clock.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	cam := camera.NewOrthographic(mgl32.Vec3{-30, 0, 0}, mgl32.Vec3{}, 20, 16.0/9.0)
	ctl := camera.NewControls(cam, camera.DefaultControlOptions())

	paths := orbitpath.NewBuilder(orbitpath.DefaultOptions(), nil)
	paths.BuildPaths(refmodel.Fallback())
	require.Equal(t, 2, paths.PathCount())

	g := gallery.New()
	tags := [][]string{{"x"}, {"x", "y"}, {"z"}, {"x"}, {"w"}, {"z"}}
	for i, tg := range tags {
		it := gallery.NewItem(gallery.Record{ID: string(rune('a' + i)), People: tg}, 1.5, 1)
		it.Band = []int{0, 1, 1}[i%3]
		it.Phase = float32(i) / float32(len(tags))
		it.Speed = 0.5
		it.BobPhase = float32(i)
		g.Add(it)
	}

	clk := clock.NewPausable()
	tweens := tween.NewEngine(tp)
	driver := orbit.NewDriver(orbit.DefaultOptions(), paths, clk, cam)
	m := focus.NewMachine(focus.DefaultOptions(), g, cam, tweens, tp, nil)
	m.SetControls(ctl)
	m.SetPlacer(driver)

	s := New(DefaultOptions(), tp, tweens, m, driver, clk, g)
	s.SetControls(ctl)
	return &rig{tp: tp, g: g, m: m, clk: clk, s: s, driver: driver}
}

func (r *rig) run(frames int) {
	for i := 0; i < frames; i++ {
		r.tp.Advance(16 * time.Millisecond)
		r.s.Tick()
	}
}

func positions(items []*gallery.Item) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(items))
	for i, it := range items {
		out[i] = it.Transform.Position
	}
	return out
}

func TestOrbitFreezesWhileFocused(t *testing.T) {
	r := newRig(t)
	r.s.Tick()
	r.run(30)

	items := r.g.Items()
	before := positions(items)
	r.run(5)
	assert.NotEqual(t, before, positions(items), "items orbit while unfocused")

	require.True(t, r.m.Focus(items[0]))
	frozen := r.clk.Elapsed()
	var outsiders []*gallery.Item
	for _, it := range items {
		if it != items[0] && !contains(r.m.Ring(), it) {
			outsiders = append(outsiders, it)
		}
	}
	require.NotEmpty(t, outsiders)
	held := positions(outsiders)

	r.run(120)
	assert.Equal(t, frozen, r.clk.Elapsed())
	assert.Equal(t, held, positions(outsiders))

	r.m.ClearFocus()
	r.run(1)
	assert.Equal(t, frozen+16*time.Millisecond, r.clk.Elapsed(), "the clock resumes from its frozen value")
}

func TestRestoredItemsRejoinOrbitWithoutJump(t *testing.T) {
	r := newRig(t)
	r.s.Tick()
	r.run(10)

	a := r.g.Items()[0]
	r.m.Focus(a)
	r.run(60)
	r.m.ClearFocus()
	r.run(60)

	require.False(t, a.Locked)
	want := r.driver.Placement(a)
	assert.InDelta(t, 0, want.Sub(a.Transform.Position).Len(), 1e-4)

	prev := a.Transform.Position
	r.run(1)
	assert.Less(t, a.Transform.Position.Sub(prev).Len(), float32(0.1))
}

func TestHooksSeeEveryFrameInBothModes(t *testing.T) {
	r := newRig(t)
	var total time.Duration
	r.s.AddHook(func(dt time.Duration) { total += dt })

	r.s.Tick()
	r.run(10)
	r.m.Focus(r.g.Items()[2])
	r.run(10)

	assert.Equal(t, 320*time.Millisecond, total)
	assert.Equal(t, uint64(21), r.s.Frames())
}

func TestReshuffledItemAppearsOnItsOrbit(t *testing.T) {
	r := newRig(t)
	items := r.g.Items()
	shuffler := reshuffle.New(reshuffle.Options{Interval: 160 * time.Millisecond, VisibleMax: 4}, r.g, r.m, nil)
	shuffler.SetPlacer(r.driver)
	shuffler.Limit()
	r.s.AddHook(shuffler.Step)

	hidden := items[4]
	require.False(t, hidden.Visible)
	require.Equal(t, mgl32.Vec3{}, hidden.Transform.Position)

	r.s.Tick()
	for i := 0; i < 40 && !hidden.Visible; i++ {
		r.run(1)
	}
	require.True(t, hidden.Visible)
	assert.NotEqual(t, mgl32.Vec3{}, hidden.Transform.Position)
	assert.InDelta(t, 0, r.driver.Placement(hidden).Sub(hidden.Transform.Position).Len(), 1e-5)
}

func contains(items []*gallery.Item, it *gallery.Item) bool {
	for _, o := range items {
		if o == it {
			return true
		}
	}
	return false
}
