package refmodel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/unixpickle/model3d/model3d"
)

// Ribbon builds a closed vertical band of the given radius and height around the
// local Y axis, tilted about Z by tilt radians.
func Ribbon(radius, height, tilt float64, segments int) *model3d.Mesh {
	if segments < 3 {
		segments = 3
	}
	sin, cos := math.Sincos(tilt)
	at := func(i int, y float64) model3d.Coord3D {
		a := 2 * math.Pi * float64(i%segments) / float64(segments)
		x, z := radius*math.Cos(a), radius*math.Sin(a)
		return model3d.XYZ(x*cos-y*sin, x*sin+y*cos, z)
	}

	mesh := model3d.NewMesh()
	h := height / 2
	for i := 0; i < segments; i++ {
		b0, b1 := at(i, -h), at(i+1, -h)
		t0, t1 := at(i, h), at(i+1, h)
		mesh.Add(&model3d.Triangle{b0, b1, t1})
		mesh.Add(&model3d.Triangle{b0, t1, t0})
	}
	return mesh
}

// Fallback returns a procedural logo: seven stacked ribbons, widest at the middle,
// so orbit paths can be built without any model asset.
func Fallback() *Node {
	radii := []float64{3.5, 5, 6.5, 7.5, 6.5, 5, 3.5}
	root := &Node{Name: "fallback-logo", Scale: 1}
	for i, r := range radii {
		y := float32(3 - i)
		root.Children = append(root.Children, &Node{
			Name:        fmt.Sprintf("ring-%d", i+1),
			Translation: mgl32.Vec3{0, y * 1.5, 0},
			Scale:       1,
			Mesh:        Ribbon(r, 0.3, 0.35, 48),
		})
	}
	return root
}
