package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-gallery/internal/camera"
)

// Update reads raylib input for this frame. Left click picks, pointer motion
// drives hover, right drag orbits the camera, the wheel zooms, Esc clears focus
// and Tab cycles focus.
func (s *Scene) Update() {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	if h > 0 {
		s.cam.Aspect = w / h
	}
	mouse := rl.GetMousePosition()
	x, y := camera.NDC(mouse.X, mouse.Y, w, h)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		s.focus.PointerDown(x, y)
	}
	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		s.focus.PointerMove(x, y)
	}
	if s.controls != nil {
		if rl.IsMouseButtonDown(rl.MouseRightButton) {
			s.controls.Drag(delta.X, delta.Y)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			s.controls.Scroll(wheel)
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		s.focus.Escape()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		s.focus.FocusNext()
	}
}
