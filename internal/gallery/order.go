package gallery

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawOrder returns the visible items in paint order: lower tiers first, and
// within a tier farthest from eye first.
func DrawOrder(items []*Item, eye mgl32.Vec3) []*Item {
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		if it != nil && it.Visible {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b *Item) int {
		if c := cmp.Compare(a.Tier, b.Tier); c != 0 {
			return c
		}
		da := a.Transform.Position.Sub(eye).LenSqr()
		db := b.Transform.Position.Sub(eye).LenSqr()
		return cmp.Compare(db, da)
	})
	return out
}
