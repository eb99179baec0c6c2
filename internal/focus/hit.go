package focus

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"orbit-gallery/internal/camera"
	"orbit-gallery/internal/gallery"
)

// Pick returns the nearest candidate whose quad the ray passes through.
func Pick(ray camera.Ray, candidates []*gallery.Item) (*gallery.Item, bool) {
	var best *gallery.Item
	bestT := math32.Inf(1)
	for _, it := range candidates {
		if it == nil || !it.Visible {
			continue
		}
		t, ok := intersect(ray, it)
		if ok && t < bestT {
			best, bestT = it, t
		}
	}
	return best, best != nil
}

// intersect tests the ray against the item's oriented quad.
func intersect(ray camera.Ray, it *gallery.Item) (float32, bool) {
	rot := it.Transform.Rotation
	normal := rot.Rotate(mgl32.Vec3{0, 0, 1})
	denom := ray.Direction.Dot(normal)
	if math32.Abs(denom) < 1e-6 {
		return 0, false
	}
	center := it.Transform.Position
	t := center.Sub(ray.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	local := ray.At(t).Sub(center)
	w, h := it.Size()
	if math32.Abs(local.Dot(rot.Rotate(mgl32.Vec3{1, 0, 0}))) > w/2 {
		return 0, false
	}
	if math32.Abs(local.Dot(rot.Rotate(mgl32.Vec3{0, 1, 0}))) > h/2 {
		return 0, false
	}
	return t, true
}
