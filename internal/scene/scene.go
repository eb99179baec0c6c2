package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-gallery/internal/camera"
	"orbit-gallery/internal/focus"
	"orbit-gallery/internal/gallery"
	"orbit-gallery/internal/orbitpath"
	"orbit-gallery/internal/photos"
	"orbit-gallery/internal/refmodel"
	"orbit-gallery/internal/starfield"
)

const (
	pathSamples   = 240
	starAlpha     = 230
	logoLineAlpha = 140
)

// Scene draws the gallery with raylib: stars, the reference model as line art,
// photo billboards and optional orbit path lines. Input is forwarded to the
// focus machine and camera controls.
type Scene struct {
	cam      *camera.Camera
	controls *camera.Controls
	focus    *focus.Machine
	gallery  *gallery.Gallery
	paths    *orbitpath.Builder
	field    *starfield.Field

	DebugPaths bool

	rlCam    rl.Camera3D
	logo     [][3]rl.Vector3
	pathPts  [][]rl.Vector3
	pending  []*photos.Photo // pixels waiting for a GL context
	textures map[*gallery.Item]rl.Texture2D
}

// New returns a scene over the given components. Textures are uploaded on the
// first Draw, after the window exists.
func New(cam *camera.Camera, controls *camera.Controls, f *focus.Machine, g *gallery.Gallery,
	paths *orbitpath.Builder, model *refmodel.Node, field *starfield.Field, pics []*photos.Photo) *Scene {
	s := &Scene{
		cam:      cam,
		controls: controls,
		focus:    f,
		gallery:  g,
		paths:    paths,
		field:    field,
		pending:  pics,
		textures: make(map[*gallery.Item]rl.Texture2D),
	}
	if model != nil {
		for _, p := range model.Parts() {
			for _, tri := range p.Triangles() {
				s.logo = append(s.logo, [3]rl.Vector3{vec(tri[0]), vec(tri[1]), vec(tri[2])})
			}
		}
	}
	for i := range paths.PathCount() {
		p, _ := paths.Path(i)
		var pts []rl.Vector3
		for _, v := range p.Sample(pathSamples) {
			pts = append(pts, vec(v))
		}
		s.pathPts = append(s.pathPts, pts)
	}
	s.syncCamera()
	return s
}

// Camera returns the raylib camera used for the last frame.
func (s *Scene) Camera() rl.Camera3D {
	return s.rlCam
}

// Unload releases GPU textures. Call before the window closes.
func (s *Scene) Unload() {
	for it, tex := range s.textures {
		rl.UnloadTexture(tex)
		delete(s.textures, it)
	}
}

// ensureTextures uploads pending photo pixels once a GL context exists.
func (s *Scene) ensureTextures() {
	if len(s.pending) == 0 {
		return
	}
	for _, p := range s.pending {
		if p.Pixel == nil {
			continue
		}
		img := rl.NewImageFromImage(p.Pixel)
		tex := rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(tex) {
			continue
		}
		rl.SetTextureFilter(tex, rl.FilterBilinear)
		s.textures[p.Item] = tex
	}
	s.pending = nil
}

// syncCamera mirrors the core camera into raylib's.
func (s *Scene) syncCamera() {
	zoom := s.cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	s.rlCam.Position = vec(s.cam.Position)
	s.rlCam.Target = vec(s.cam.Target)
	s.rlCam.Up = vec(s.cam.TrueUp())
	s.rlCam.Fovy = s.cam.Fovy / zoom
	s.rlCam.Projection = rl.CameraPerspective
	if s.cam.Projection == camera.Orthographic {
		s.rlCam.Projection = rl.CameraOrthographic
	}
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
