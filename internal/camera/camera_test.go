package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl32.Vec3, eps float32) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], float64(eps), "component %d: want %v got %v", i, want, got)
	}
}

func TestBasisIsOrthonormal(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{3, 2, 10}, mgl32.Vec3{0, 0, 0}, 60, 16.0/9.0)
	dir, right, up := cam.Basis()

	assert.InDelta(t, 1, dir.Len(), 1e-5)
	assert.InDelta(t, 1, right.Len(), 1e-5)
	assert.InDelta(t, 1, up.Len(), 1e-5)
	assert.InDelta(t, 0, dir.Dot(right), 1e-5)
	assert.InDelta(t, 0, dir.Dot(up), 1e-5)
	assert.InDelta(t, 0, right.Dot(up), 1e-5)
	assert.Greater(t, up.Y(), float32(0))
}

func TestOrthographicLookingDownPositiveX(t *testing.T) {
	cam := NewOrthographic(mgl32.Vec3{-30, 0, 0}, mgl32.Vec3{}, 20, 2)
	dir, right, up := cam.Basis()

	assertVec(t, mgl32.Vec3{1, 0, 0}, dir, 1e-6)
	assertVec(t, mgl32.Vec3{0, 0, 1}, right, 1e-6)
	assertVec(t, mgl32.Vec3{0, 1, 0}, up, 1e-6)

	w, h := cam.ViewExtents()
	assert.InDelta(t, 40, w, 1e-5)
	assert.InDelta(t, 20, h, 1e-5)

	cam.Zoom = 2
	_, h = cam.ViewExtents()
	assert.InDelta(t, 10, h, 1e-5)
}

func TestOrthographicRayIsParallel(t *testing.T) {
	cam := NewOrthographic(mgl32.Vec3{-30, 0, 0}, mgl32.Vec3{}, 20, 1)

	center := cam.Ray(0, 0)
	assertVec(t, cam.Position, center.Origin, 1e-5)
	assertVec(t, mgl32.Vec3{1, 0, 0}, center.Direction, 1e-6)

	corner := cam.Ray(1, 1)
	assertVec(t, mgl32.Vec3{-30, 10, 10}, corner.Origin, 1e-4)
	assertVec(t, center.Direction, corner.Direction, 1e-6)
}

func TestPerspectiveRayCenterFollowsViewDirection(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 90, 1)
	r := cam.Ray(0, 0)
	assertVec(t, cam.Position, r.Origin, 1e-6)
	assertVec(t, mgl32.Vec3{0, 0, -1}, r.Direction, 1e-6)

	// 90 degree fov: top edge ray leaves at 45 degrees
	top := cam.Ray(0, 1)
	assert.InDelta(t, top.Direction.Y(), -top.Direction.Z(), 1e-5)
	assertVec(t, mgl32.Vec3{0, 0, 5}, r.At(5), 1e-5)
}

func TestAhead(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 60, 1)
	assertVec(t, mgl32.Vec3{0, 0, 3}, cam.Ahead(7), 1e-5)
}

func TestOrbitKeepsDistanceAndTarget(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 60, 1)
	cam.Orbit(0.5, 0.2)

	assert.InDelta(t, 10, cam.Position.Len(), 1e-4)
	assert.NotEqual(t, mgl32.Vec3{0, 0, 10}, cam.Position)
	assertVec(t, mgl32.Vec3{}, cam.Target, 0)
}

func TestOrbitStopsBeforePole(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 60, 1)
	for i := 0; i < 100; i++ {
		cam.Orbit(0, 0.1)
	}
	assert.Less(t, math32.Abs(cam.Direction().Dot(mgl32.Vec3{0, 1, 0})), float32(0.99))
	assert.InDelta(t, 1, cam.Right().Len(), 1e-5)
}

func TestControlsDisabledIgnoresInput(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 60, 1)
	ctl := NewControls(cam, DefaultControlOptions())
	assert.True(t, ctl.Enabled())

	ctl.Drag(50, 0)
	ctl.SetEnabled(false)
	ctl.Drag(50, 0)
	ctl.Scroll(1)
	ctl.Update()

	assertVec(t, mgl32.Vec3{0, 0, 10}, cam.Position, 1e-6)
	assert.Equal(t, float32(1), cam.Zoom)

	// momentum was dropped while disabled
	ctl.SetEnabled(true)
	ctl.Update()
	assertVec(t, mgl32.Vec3{0, 0, 10}, cam.Position, 1e-6)
}

func TestControlsDragOrbitsWithDamping(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 60, 1)
	ctl := NewControls(cam, DefaultControlOptions())

	ctl.Drag(100, 0)
	ctl.Update()
	first := cam.Position
	assert.NotEqual(t, mgl32.Vec3{0, 0, 10}, first)

	ctl.Update()
	assert.NotEqual(t, first, cam.Position, "momentum carries into the next frame")
	assert.InDelta(t, 10, cam.Position.Len(), 1e-3)
}

func TestControlsScrollClampsZoom(t *testing.T) {
	cam := NewPerspective(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, 60, 1)
	ctl := NewControls(cam, DefaultControlOptions())

	for i := 0; i < 100; i++ {
		ctl.Scroll(1)
	}
	assert.Equal(t, float32(3), cam.Zoom)
	for i := 0; i < 100; i++ {
		ctl.Scroll(-1)
	}
	assert.Equal(t, float32(0.5), cam.Zoom)
}

func TestNDC(t *testing.T) {
	x, y := NDC(0, 0, 800, 600)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)
	x, y = NDC(400, 300, 800, 600)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
	x, y = NDC(800, 600, 800, 600)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)
	x, y = NDC(5, 5, 0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}
