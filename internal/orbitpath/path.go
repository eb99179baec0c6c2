package orbitpath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Path is a closed centripetal Catmull-Rom curve through its control points,
// with a cumulative arc-length table for uniform-speed sampling.
type Path struct {
	points  []mgl32.Vec3
	lengths []float32
}

// NewPath fits a closed curve through points and tabulates its arc length
// at the given number of divisions.
func NewPath(points []mgl32.Vec3, divisions int) *Path {
	if divisions < 1 {
		divisions = 1
	}
	p := &Path{points: append([]mgl32.Vec3(nil), points...)}
	p.lengths = make([]float32, divisions+1)

	last := p.Point(0)
	var sum float32
	for i := 1; i <= divisions; i++ {
		cur := p.Point(float32(i) / float32(divisions))
		sum += cur.Sub(last).Len()
		p.lengths[i] = sum
		last = cur
	}
	return p
}

// Length returns the tabulated curve length.
func (p *Path) Length() float32 {
	return p.lengths[len(p.lengths)-1]
}

// Point evaluates the curve at raw parameter t in [0,1]. Point(0) == Point(1).
func (p *Path) Point(t float32) mgl32.Vec3 {
	l := len(p.points)
	if l == 0 {
		return mgl32.Vec3{}
	}
	x := float32(l) * t
	i := int(math32.Floor(x))
	w := x - float32(i)
	i = ((i % l) + l) % l

	p0 := p.points[(i-1+l)%l]
	p1 := p.points[i]
	p2 := p.points[(i+1)%l]
	p3 := p.points[(i+2)%l]

	dt0 := math32.Pow(distSq(p0, p1), 0.25)
	dt1 := math32.Pow(distSq(p1, p2), 0.25)
	dt2 := math32.Pow(distSq(p2, p3), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	var out mgl32.Vec3
	for k := 0; k < 3; k++ {
		out[k] = nonuniform(p0[k], p1[k], p2[k], p3[k], dt0, dt1, dt2).at(w)
	}
	return out
}

// PointAt evaluates the curve at normalized arc length u in [0,1].
func (p *Path) PointAt(u float32) mgl32.Vec3 {
	return p.Point(p.uToT(u))
}

// Sample returns n points evenly spaced by arc length, starting at u=0.
func (p *Path) Sample(n int) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, n)
	for i := range out {
		out[i] = p.PointAt(float32(i) / float32(n))
	}
	return out
}

// uToT maps normalized arc length to the curve parameter by binary search
// over the cumulative length table.
func (p *Path) uToT(u float32) float32 {
	n := len(p.lengths)
	target := u * p.lengths[n-1]

	lo, hi := 0, n-1
	for lo <= hi {
		i := lo + (hi-lo)/2
		d := p.lengths[i] - target
		if d < 0 {
			lo = i + 1
		} else if d > 0 {
			hi = i - 1
		} else {
			hi = i
			break
		}
	}
	i := max(hi, 0)
	if p.lengths[i] == target || i >= n-1 {
		return float32(i) / float32(n-1)
	}
	before, after := p.lengths[i], p.lengths[i+1]
	seg := after - before
	if seg <= 0 {
		return float32(i) / float32(n-1)
	}
	return (float32(i) + (target-before)/seg) / float32(n-1)
}

func distSq(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

// cubic holds c0 + c1*t + c2*t^2 + c3*t^3.
type cubic [4]float32

func (c cubic) at(t float32) float32 {
	t2 := t * t
	return c[0] + c[1]*t + c[2]*t2 + c[3]*t2*t
}

// hermite builds the cubic from endpoints x0, x1 and tangents t0, t1.
func hermite(x0, x1, t0, t1 float32) cubic {
	return cubic{
		x0,
		t0,
		-3*x0 + 3*x1 - 2*t0 - t1,
		2*x0 - 2*x1 + t0 + t1,
	}
}

// nonuniform returns the segment between x1 and x2 for knot spacings dt0, dt1, dt2.
func nonuniform(x0, x1, x2, x3, dt0, dt1, dt2 float32) cubic {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	return hermite(x1, x2, t1*dt1, t2*dt1)
}
