package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection selects how Fovy is interpreted and how pointer rays are built.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera is the view the gallery is laid out against. It mirrors raylib's Camera3D
// (position, target, up, fovy, projection) plus an aspect ratio and zoom so pointer
// rays and ring placement can be computed without a window.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	// Fovy is the vertical field of view in degrees for Perspective, or the
	// visible height in world units for Orthographic.
	Fovy       float32
	Projection Projection
	Aspect     float32
	Zoom       float32
}

// Ray is a half-line from Origin along a unit Direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// NewOrthographic returns an orthographic camera showing height world units vertically.
func NewOrthographic(position, target mgl32.Vec3, height, aspect float32) *Camera {
	return &Camera{
		Position:   position,
		Target:     target,
		Up:         mgl32.Vec3{0, 1, 0},
		Fovy:       height,
		Projection: Orthographic,
		Aspect:     aspect,
		Zoom:       1,
	}
}

// NewPerspective returns a perspective camera with a vertical field of view in degrees.
func NewPerspective(position, target mgl32.Vec3, fovy, aspect float32) *Camera {
	return &Camera{
		Position:   position,
		Target:     target,
		Up:         mgl32.Vec3{0, 1, 0},
		Fovy:       fovy,
		Projection: Perspective,
		Aspect:     aspect,
		Zoom:       1,
	}
}

// Direction returns the unit view direction. A degenerate camera looks down -Z.
func (c *Camera) Direction() mgl32.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() < 1e-6 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// Right returns the unit vector pointing to the right of the screen.
func (c *Camera) Right() mgl32.Vec3 {
	dir := c.Direction()
	r := dir.Cross(c.up())
	if r.Len() < 1e-6 {
		// looking straight along Up
		r = dir.Cross(mgl32.Vec3{0, 0, 1})
		if r.Len() < 1e-6 {
			r = dir.Cross(mgl32.Vec3{1, 0, 0})
		}
	}
	return r.Normalize()
}

// TrueUp returns the unit screen-up vector, orthogonal to Direction and Right.
func (c *Camera) TrueUp() mgl32.Vec3 {
	return c.Right().Cross(c.Direction()).Normalize()
}

// Basis returns view direction, right and up in one call.
func (c *Camera) Basis() (dir, right, up mgl32.Vec3) {
	dir = c.Direction()
	right = c.Right()
	up = right.Cross(dir).Normalize()
	return dir, right, up
}

// Ahead returns the point distance units in front of the camera along its view direction.
func (c *Camera) Ahead(distance float32) mgl32.Vec3 {
	return c.Position.Add(c.Direction().Mul(distance))
}

// ViewExtents returns the visible width and height. For orthographic cameras these are world
// units; for perspective cameras they are measured at unit distance from the eye.
func (c *Camera) ViewExtents() (width, height float32) {
	zoom := c.zoom()
	switch c.Projection {
	case Orthographic:
		height = c.Fovy / zoom
	default:
		height = 2 * math32.Tan(mgl32.DegToRad(c.Fovy)/2) / zoom
	}
	return height * c.aspect(), height
}

// Ray returns the pointer ray through normalized device coordinates
// (x right, y up, both in [-1, 1]).
func (c *Camera) Ray(ndcX, ndcY float32) Ray {
	dir, right, up := c.Basis()
	w, h := c.ViewExtents()
	if c.Projection == Orthographic {
		origin := c.Position.
			Add(right.Mul(ndcX * w / 2)).
			Add(up.Mul(ndcY * h / 2))
		return Ray{Origin: origin, Direction: dir}
	}
	d := dir.
		Add(right.Mul(ndcX * w / 2)).
		Add(up.Mul(ndcY * h / 2))
	return Ray{Origin: c.Position, Direction: d.Normalize()}
}

// Orbit rotates the camera position around its target by yaw (about Up) and pitch
// (about Right), in radians. Pitch stops short of the poles.
func (c *Camera) Orbit(yaw, pitch float32) {
	offset := c.Position.Sub(c.Target)
	if offset.Len() < 1e-6 {
		return
	}
	up := c.up()
	offset = mgl32.QuatRotate(yaw, up).Rotate(offset)

	if pitch != 0 {
		right := offset.Mul(-1).Cross(up)
		if right.Len() > 1e-6 {
			rotated := mgl32.QuatRotate(pitch, right.Normalize()).Rotate(offset)
			// keep away from the poles so Right stays defined
			if math32.Abs(rotated.Normalize().Dot(up)) < 0.98 {
				offset = rotated
			}
		}
	}
	c.Position = c.Target.Add(offset)
}

func (c *Camera) up() mgl32.Vec3 {
	if c.Up.Len() < 1e-6 {
		return mgl32.Vec3{0, 1, 0}
	}
	return c.Up.Normalize()
}

func (c *Camera) zoom() float32 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

func (c *Camera) aspect() float32 {
	if c.Aspect <= 0 {
		return 1
	}
	return c.Aspect
}

// NDC maps a pixel position in a w x h viewport to normalized device
// coordinates, x right and y up in [-1, 1].
func NDC(px, py, w, h float32) (x, y float32) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return 2*px/w - 1, 1 - 2*py/h
}
