package gallery

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Tier is the coarse draw-order bucket. Higher tiers draw later, on top.
type Tier int

const (
	TierBackground Tier = 5
	TierRing       Tier = 50
	TierFocused    Tier = 100
)

// Record is the source data behind a photo.
type Record struct {
	ID     string
	File   string
	People []string
}

// Related reports whether the two records share at least one people tag.
// The relation is symmetric; records without tags relate to nothing.
func (r Record) Related(other Record) bool {
	if len(r.People) == 0 || len(other.People) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(r.People))
	for _, p := range r.People {
		seen[p] = struct{}{}
	}
	for _, p := range other.People {
		if _, ok := seen[p]; ok {
			return true
		}
	}
	return false
}

// Transform is an item's placement in world space.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// Snapshot is the pre-focus visual state that focus exit restores.
type Snapshot struct {
	Transform  Transform
	Opacity    float32
	Tier       Tier
	DepthTest  bool
	DepthWrite bool
}

// Item is one orbiting photo quad.
type Item struct {
	Record    Record
	Transform Transform

	// HasOpacity declares whether the item's material carries an opacity channel.
	// Opacity writes on items without one are dropped.
	HasOpacity bool
	Opacity    float32
	Tier       Tier
	DepthTest  bool
	DepthWrite bool

	// Width and Height are the quad size in world units at scale 1.
	Width   float32
	Height  float32
	Visible bool

	// Orbit assignment.
	Band    int
	Phase   float32
	Speed   float32
	OffsetX float32
	YLift   float32
	ZChange float32

	// Circular fallback placement.
	Angle          float32
	OrbitRadius    float32
	VerticalOffset float32

	BobPhase float32

	// Locked items are owned by focus and skipped by orbit placement and reshuffle.
	Locked bool

	saved *Snapshot
}

// NewItem returns a visible item with unit scale, full opacity and default depth flags.
func NewItem(rec Record, width, height float32) *Item {
	return &Item{
		Record: rec,
		Transform: Transform{
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
		HasOpacity: true,
		Opacity:    1,
		Tier:       TierBackground,
		DepthTest:  true,
		DepthWrite: true,
		Width:      width,
		Height:     height,
		Visible:    true,
	}
}

// Snapshot captures the current visual state.
func (it *Item) Snapshot() Snapshot {
	return Snapshot{
		Transform:  it.Transform,
		Opacity:    it.Opacity,
		Tier:       it.Tier,
		DepthTest:  it.DepthTest,
		DepthWrite: it.DepthWrite,
	}
}

// Save stores a snapshot unless one is already outstanding, keeping the oldest
// pre-focus state. It reports whether a new snapshot was taken.
func (it *Item) Save() bool {
	if it.saved != nil {
		return false
	}
	s := it.Snapshot()
	it.saved = &s
	return true
}

// Saved returns the outstanding snapshot.
func (it *Item) Saved() (Snapshot, bool) {
	if it.saved == nil {
		return Snapshot{}, false
	}
	return *it.saved, true
}

// Discard drops the outstanding snapshot.
func (it *Item) Discard() {
	it.saved = nil
}

// SetOpacity writes opacity if the item supports it.
func (it *Item) SetOpacity(v float32) {
	if !it.HasOpacity {
		return
	}
	it.Opacity = v
}

// ApplyMaterial restores opacity, tier and depth flags from s.
func (it *Item) ApplyMaterial(s Snapshot) {
	it.SetOpacity(s.Opacity)
	it.Tier = s.Tier
	it.DepthTest = s.DepthTest
	it.DepthWrite = s.DepthWrite
}

// FaceCamera orients the quad so its +Z normal points at eye, keeping up as the screen up.
func (it *Item) FaceCamera(eye, up mgl32.Vec3) {
	z := eye.Sub(it.Transform.Position)
	if z.Len() < 1e-6 {
		return
	}
	z = z.Normalize()
	x := up.Cross(z)
	if x.Len() < 1e-6 {
		return
	}
	x = x.Normalize()
	y := z.Cross(x)
	it.Transform.Rotation = mgl32.Mat4ToQuat(mgl32.Mat3FromCols(x, y, z).Mat4()).Normalize()
}

// Size returns the scaled quad extents.
func (it *Item) Size() (w, h float32) {
	return it.Width * it.Transform.Scale.X(), it.Height * it.Transform.Scale.Y()
}
