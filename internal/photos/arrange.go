package photos

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"orbit-gallery/internal/gallery"
)

// BandPattern assigns loaded photos to orbits, one on the outer band for every
// two on the inner.
var BandPattern = []int{0, 1, 1}

// Arrange sets the orbit parameters of items in load order: band from
// BandPattern, phases evenly spaced within each band, speed in [0.3, 0.7), and
// a bob phase equal to the load index. Circular fallback fields get their
// defaults.
func Arrange(items []*gallery.Item, r *rand.Rand) {
	counts := map[int]int{}
	for i, it := range items {
		it.Band = BandPattern[i%len(BandPattern)]
		counts[it.Band]++
	}
	seen := map[int]int{}
	for i, it := range items {
		n := counts[it.Band]
		it.Phase = float32(seen[it.Band]) / float32(n)
		seen[it.Band]++

		it.Speed = 0.3 + r.Float32()*0.4
		it.BobPhase = float32(i)
		it.Angle = 3 * math32.Pi
		it.OrbitRadius = 5
		it.VerticalOffset = 0
		it.OffsetX = -0.5
		it.YLift = 0
		it.ZChange = 0
	}
}
