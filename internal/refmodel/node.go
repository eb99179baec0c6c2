package refmodel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/unixpickle/model3d/model3d"
)

// Node is one element of the reference model hierarchy. Translation and Scale
// are relative to the parent; Mesh is optional.
type Node struct {
	Name        string
	Translation mgl32.Vec3
	Scale       float32
	Mesh        *model3d.Mesh
	Children    []*Node
}

// Part is a mesh-bearing node together with its world transform.
type Part struct {
	Name  string
	Mesh  *model3d.Mesh
	World mgl32.Mat4
}

// Local returns the node's transform relative to its parent. A zero scale means 1.
func (n *Node) Local() mgl32.Mat4 {
	s := n.Scale
	if s == 0 {
		s = 1
	}
	return mgl32.Translate3D(n.Translation.X(), n.Translation.Y(), n.Translation.Z()).
		Mul4(mgl32.Scale3D(s, s, s))
}

// Walk visits n and its descendants depth-first with their world transforms.
func (n *Node) Walk(fn func(node *Node, world mgl32.Mat4)) {
	n.walk(mgl32.Ident4(), fn)
}

func (n *Node) walk(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4)) {
	world := parent.Mul4(n.Local())
	fn(n, world)
	for _, c := range n.Children {
		c.walk(world, fn)
	}
}

// Parts returns every mesh-bearing node in depth-first order.
func (n *Node) Parts() []Part {
	var parts []Part
	n.Walk(func(node *Node, world mgl32.Mat4) {
		if node.Mesh == nil {
			return
		}
		parts = append(parts, Part{Name: node.Name, Mesh: node.Mesh, World: world})
	})
	return parts
}

// Vertices returns the part's unique vertices in world space. Order is unspecified.
func (p Part) Vertices() []mgl32.Vec3 {
	local := p.Mesh.VertexSlice()
	out := make([]mgl32.Vec3, len(local))
	for i, c := range local {
		v := p.World.Mul4x1(mgl32.Vec4{float32(c.X), float32(c.Y), float32(c.Z), 1})
		out[i] = v.Vec3()
	}
	return out
}

// Bounds returns the world-space bounding box of the part.
func (p Part) Bounds() (lo, hi mgl32.Vec3) {
	verts := p.Vertices()
	if len(verts) == 0 {
		return
	}
	lo, hi = verts[0], verts[0]
	for _, v := range verts[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	return lo, hi
}

// Center returns the midpoint of the part's world bounding box.
func (p Part) Center() mgl32.Vec3 {
	lo, hi := p.Bounds()
	return lo.Add(hi).Mul(0.5)
}

// Triangles returns the part's triangles in world space, for drawing.
func (p Part) Triangles() [][3]mgl32.Vec3 {
	tris := p.Mesh.TriangleSlice()
	out := make([][3]mgl32.Vec3, len(tris))
	for i, t := range tris {
		for j, c := range t {
			v := p.World.Mul4x1(mgl32.Vec4{float32(c.X), float32(c.Y), float32(c.Z), 1})
			out[i][j] = v.Vec3()
		}
	}
	return out
}
