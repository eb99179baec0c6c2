package orbitpath

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"orbit-gallery/internal/logger"
	"orbit-gallery/internal/refmodel"
)

// Options controls which model parts become orbit paths and how they are fitted.
type Options struct {
	// PickRanks are indices into the parts sorted top to bottom by bounding-box center.
	PickRanks    []int `yaml:"pick_ranks"`
	MinParts     int   `yaml:"min_parts"`
	MinVertices  int   `yaml:"min_vertices"`
	SmoothWindow int   `yaml:"smooth_window"`
	ArcDivisions int   `yaml:"arc_divisions"`
}

// DefaultOptions picks the 3rd and 5th parts from the top.
func DefaultOptions() Options {
	return Options{
		PickRanks:    []int{2, 4},
		MinParts:     5,
		MinVertices:  8,
		SmoothWindow: 12,
		ArcDivisions: 2000,
	}
}

// Model is a hierarchical model flattened to its mesh parts in world space.
type Model interface {
	Parts() []refmodel.Part
}

// Builder turns reference-model parts into closed orbit paths.
type Builder struct {
	opts  Options
	log   *logger.Logger
	paths []*Path
}

// NewBuilder returns a builder with no paths. log may be nil.
func NewBuilder(opts Options, log *logger.Logger) *Builder {
	return &Builder{opts: opts, log: log}
}

// BuildPaths replaces all paths with ones built from m. Too few parts leaves zero
// paths; parts with too few vertices are skipped.
func (b *Builder) BuildPaths(m Model) {
	var paths []*Path
	defer func() { b.paths = paths }()

	if m == nil {
		b.log.Log("paths: no model, using circular orbits")
		return
	}
	parts := m.Parts()
	if len(parts) < b.opts.MinParts {
		b.log.Logf("paths: %d mesh parts, need %d; using circular orbits", len(parts), b.opts.MinParts)
		return
	}
	b.log.Logf("paths: %d mesh parts", len(parts))

	centers := make([]float32, len(parts))
	for i, p := range parts {
		centers[i] = p.Center().Y()
	}
	order := make([]int, len(parts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return centers[order[i]] > centers[order[j]] })

	for _, rank := range b.opts.PickRanks {
		if rank < 0 || rank >= len(order) {
			b.log.Logf("paths: rank %d out of range", rank)
			continue
		}
		part := parts[order[rank]]
		// counts distinct positions; shared triangle corners do not pad a part
		loop := orderLoop(part.Vertices())
		if len(loop) < b.opts.MinVertices {
			b.log.Logf("paths: part %q has %d vertices, need %d; skipped", part.Name, len(loop), b.opts.MinVertices)
			continue
		}
		loop = Smooth(loop, b.opts.SmoothWindow)
		paths = append(paths, NewPath(loop, b.opts.ArcDivisions))
	}
	b.log.Logf("paths: built %d orbit paths", len(paths))
}

// PathCount returns the number of built paths.
func (b *Builder) PathCount() int {
	return len(b.paths)
}

// HasPath reports whether a path exists at index.
func (b *Builder) HasPath(index int) bool {
	return index >= 0 && index < len(b.paths)
}

// Path returns the path at index.
func (b *Builder) Path(index int) (*Path, bool) {
	if !b.HasPath(index) {
		return nil, false
	}
	return b.paths[index], true
}

// SampleAt returns the arc-length-uniform point at u (taken mod 1) on the path at
// index, shifted along world X by xOffset. It reports false when there is no such path.
func (b *Builder) SampleAt(u float32, index int, xOffset float32) (mgl32.Vec3, bool) {
	p, ok := b.Path(index)
	if !ok {
		return mgl32.Vec3{}, false
	}
	pt := p.PointAt(Wrap(u))
	pt[0] += xOffset
	return pt, true
}

// Wrap maps u into [0,1).
func Wrap(u float32) float32 {
	u = math32.Mod(u, 1)
	if u < 0 {
		u++
	}
	if u >= 1 {
		u = 0
	}
	return u
}

// Smooth applies a circular moving average over window+1 neighbours centered on each
// point. Loops shorter than window are returned unchanged.
func Smooth(points []mgl32.Vec3, window int) []mgl32.Vec3 {
	n := len(points)
	if window <= 0 || n < window {
		return points
	}
	half := window / 2
	out := make([]mgl32.Vec3, n)
	for i := range points {
		var acc mgl32.Vec3
		for k := -half; k <= half; k++ {
			acc = acc.Add(points[((i+k)%n+n)%n])
		}
		out[i] = acc.Mul(1 / float32(2*half+1))
	}
	return out
}

// orderLoop de-duplicates vertices and orders them by angle around their centroid,
// in the plane across the loop's thinnest bounding-box axis.
func orderLoop(verts []mgl32.Vec3) []mgl32.Vec3 {
	type key [3]int32
	seen := make(map[key]struct{}, len(verts))
	uniq := make([]mgl32.Vec3, 0, len(verts))
	for _, v := range verts {
		k := key{quantize(v[0]), quantize(v[1]), quantize(v[2])}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, v)
	}
	if len(uniq) == 0 {
		return uniq
	}

	lo, hi := uniq[0], uniq[0]
	var centroid mgl32.Vec3
	for _, v := range uniq {
		centroid = centroid.Add(v)
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	centroid = centroid.Mul(1 / float32(len(uniq)))

	ext := hi.Sub(lo)
	normal := 0
	for i := 1; i < 3; i++ {
		if ext[i] < ext[normal] {
			normal = i
		}
	}
	a, b := (normal+1)%3, (normal+2)%3

	angles := make([]float32, len(uniq))
	for i, v := range uniq {
		angles[i] = math32.Atan2(v[b]-centroid[b], v[a]-centroid[a])
	}
	idx := make([]int, len(uniq))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		ai, aj := angles[idx[i]], angles[idx[j]]
		if ai != aj {
			return ai < aj
		}
		return uniq[idx[i]][normal] < uniq[idx[j]][normal]
	})

	out := make([]mgl32.Vec3, len(uniq))
	for i, j := range idx {
		out[i] = uniq[j]
	}
	return out
}

func quantize(f float32) int32 {
	return int32(math32.Floor(f*1e4 + 0.5))
}
