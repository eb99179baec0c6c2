package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-gallery/internal/config"
)

// Background is the clear color behind the starfield.
var Background = rl.NewColor(6, 8, 18, 255)

// Run opens the window and drives the main loop. Each frame it calls update
// (input and simulation), then clears the screen and calls draw. Esc is left to
// the caller; close via the window button. done runs before the window closes.
func Run(win config.Window, update, draw, done func()) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if win.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	w, h := win.Width, win.Height
	if win.Fullscreen {
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(w, h, win.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(win.TargetFPS)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(Background)
		draw()
		rl.EndDrawing()
	}
	if done != nil {
		done()
	}
}
