package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-gallery/internal/gallery"
)

// Draw renders the 3D scene. Call between BeginDrawing and EndDrawing, before
// any 2D overlay.
func (s *Scene) Draw() {
	s.ensureTextures()
	s.syncCamera()

	rl.BeginMode3D(s.rlCam)
	if s.field != nil {
		drawStars(s)
	}
	drawLogo(s)
	if s.DebugPaths {
		drawPaths(s)
	}
	drawItems(s)
	rl.EndMode3D()
}

func drawStars(s *Scene) {
	for _, st := range s.field.Stars {
		c := rl.NewColor(255, 255, 255, uint8(float32(starAlpha)*st.Brightness))
		p := rl.NewVector3(st.Position[0], st.Position[1], st.Position[2])
		rl.DrawCube(p, st.Size, st.Size, st.Size, c)
	}
}

// drawLogo draws the reference model's triangle edges as line art.
func drawLogo(s *Scene) {
	c := rl.NewColor(200, 210, 255, logoLineAlpha)
	for _, tri := range s.logo {
		rl.DrawLine3D(tri[0], tri[1], c)
		rl.DrawLine3D(tri[1], tri[2], c)
		rl.DrawLine3D(tri[2], tri[0], c)
	}
}

func drawPaths(s *Scene) {
	colors := []rl.Color{rl.Orange, rl.SkyBlue, rl.Lime, rl.Pink}
	for i, pts := range s.pathPts {
		c := colors[i%len(colors)]
		for j := range pts {
			rl.DrawLine3D(pts[j], pts[(j+1)%len(pts)], c)
		}
	}
}

// drawItems paints billboards by tier, then far to near, honoring each item's
// opacity and depth flags.
func drawItems(s *Scene) {
	rl.BeginBlendMode(rl.BlendAlpha)
	defer rl.EndBlendMode()

	for _, it := range gallery.DrawOrder(s.gallery.Items(), s.cam.Position) {
		tex, ok := s.textures[it]
		if !ok {
			continue
		}
		setDepth(it.DepthTest, it.DepthWrite)
		// Size is already scaled and matches the quad focus hit-tests.
		size := rl.NewVector2(it.Size())
		src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
		tint := rl.Fade(rl.White, it.Opacity)
		rl.DrawBillboardRec(s.rlCam, tex, src, vec(it.Transform.Position), size, tint)
	}
	setDepth(true, true)
}

func setDepth(test, write bool) {
	rl.DrawRenderBatchActive()
	if test {
		rl.EnableDepthTest()
	} else {
		rl.DisableDepthTest()
	}
	if write {
		rl.EnableDepthMask()
	} else {
		rl.DisableDepthMask()
	}
}
