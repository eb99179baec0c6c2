package tween

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit-gallery/internal/clock"
)

type box struct {
	X     float32
	Pos   mgl32.Vec3
	Alpha float32
}

func newEngine() (*Engine, *clock.MockTimeProvider) {
	tp := clock.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewEngine(tp), tp
}

func TestEasingEndpoints(t *testing.T) {
	for name, ease := range map[string]Easing{
		"out-cubic":    EaseOutCubic,
		"in-out-cubic": EaseInOutCubic,
		"linear":       Linear,
	} {
		assert.InDelta(t, 0, ease(0), 1e-6, name)
		assert.InDelta(t, 1, ease(1), 1e-6, name)
	}
	assert.Greater(t, EaseOutCubic(0.5), float32(0.5), "ease-out front-loads progress")
}

func TestTweenInterpolatesAndRetires(t *testing.T) {
	e, tp := newEngine()
	b := &box{}
	e.Start(b, 100*time.Millisecond, Linear, Float("x", &b.X, 10))
	require.Equal(t, 1, e.Len())

	tp.Advance(50 * time.Millisecond)
	e.Update(tp.Now())
	assert.InDelta(t, 5, b.X, 1e-4)
	assert.Equal(t, 1, e.Len())

	tp.Advance(60 * time.Millisecond)
	e.Update(tp.Now())
	assert.Equal(t, float32(10), b.X)
	assert.Equal(t, 0, e.Len())
	assert.False(t, e.Active(b))
}

func TestDefaultEasingIsEaseOutCubic(t *testing.T) {
	e, tp := newEngine()
	b := &box{}
	e.Start(b, 100*time.Millisecond, nil, Float("x", &b.X, 1))

	tp.Advance(50 * time.Millisecond)
	e.Tick()
	assert.InDelta(t, EaseOutCubic(0.5), b.X, 1e-5)
}

func TestStartCancelsSamePropertyOnSameTarget(t *testing.T) {
	e, tp := newEngine()
	b := &box{}
	first := e.Start(b, 100*time.Millisecond, Linear, Float("x", &b.X, 10), Float("alpha", &b.Alpha, 1))

	tp.Advance(50 * time.Millisecond)
	e.Tick()
	require.InDelta(t, 5, b.X, 1e-4)

	e.Start(b, 100*time.Millisecond, Linear, Float("x", &b.X, 0))
	assert.Equal(t, 2, e.Len(), "first tween keeps alpha")

	tp.Advance(50 * time.Millisecond)
	e.Tick()
	// x now belongs to the second tween only: 5 -> 0, halfway
	assert.InDelta(t, 2.5, b.X, 1e-4)
	assert.Equal(t, float32(1), b.Alpha)
	assert.True(t, first.Done())
}

func TestCancelByTarget(t *testing.T) {
	e, tp := newEngine()
	a, b := &box{}, &box{}
	e.Start(a, time.Second, Linear, Vec3("pos", &a.Pos, mgl32.Vec3{1, 1, 1})...)
	e.Start(b, time.Second, Linear, Float("x", &b.X, 1))

	assert.Equal(t, 3, e.Cancel(a))
	assert.False(t, e.Active(a))
	assert.True(t, e.Active(b))

	tp.Advance(time.Second)
	e.Tick()
	assert.Equal(t, mgl32.Vec3{}, a.Pos, "canceled values stay where they were")
	assert.Equal(t, float32(1), b.X)
}

func TestCancelByName(t *testing.T) {
	e, _ := newEngine()
	b := &box{}
	e.Start(b, time.Second, Linear, append(Vec3("pos", &b.Pos, mgl32.Vec3{1, 1, 1}), Float("x", &b.X, 1))...)

	assert.Equal(t, 3, e.Cancel(b, Vec3Names("pos")...))
	assert.True(t, e.Active(b))
	assert.Equal(t, 1, e.Cancel(b, "x"))
	assert.Equal(t, 0, e.Len())
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	e, _ := newEngine()
	b := &box{}
	called := false
	tw := e.Start(b, 0, nil, Float("x", &b.X, 3))
	tw.OnDone(func() { called = true })

	assert.Equal(t, float32(3), b.X)
	assert.True(t, tw.Done())
	assert.True(t, called)
	assert.Equal(t, 0, e.Len())
}

func TestOnDoneRunsAfterRetirementAndMayStartTweens(t *testing.T) {
	e, tp := newEngine()
	b := &box{}
	e.Start(b, 10*time.Millisecond, Linear, Float("x", &b.X, 1)).OnDone(func() {
		e.Start(b, 10*time.Millisecond, Linear, Float("x", &b.X, 2))
	})

	tp.Advance(10 * time.Millisecond)
	e.Tick()
	assert.Equal(t, float32(1), b.X)
	assert.Equal(t, 1, e.Len())

	tp.Advance(10 * time.Millisecond)
	e.Tick()
	assert.Equal(t, float32(2), b.X)
	assert.Equal(t, 0, e.Len())
}

func TestCanceledTweenSkipsOnDone(t *testing.T) {
	e, tp := newEngine()
	b := &box{}
	called := false
	e.Start(b, 10*time.Millisecond, Linear, Float("x", &b.X, 1)).OnDone(func() { called = true })
	e.Cancel(b)

	tp.Advance(time.Second)
	e.Tick()
	assert.False(t, called)
}

func TestFollowTracksMovingTarget(t *testing.T) {
	e, tp := newEngine()
	b := &box{}
	goal := mgl32.Vec3{10, 0, 0}
	e.Start(b, 100*time.Millisecond, Linear, FollowVec3("pos", &b.Pos, func() mgl32.Vec3 { return goal })...)

	tp.Advance(50 * time.Millisecond)
	e.Tick()
	assert.InDelta(t, 5, b.Pos.X(), 1e-4)

	goal = mgl32.Vec3{20, 4, 0}
	tp.Advance(50 * time.Millisecond)
	e.Tick()
	assert.Equal(t, goal, b.Pos, "lands exactly on the goal as it is at completion")
}
