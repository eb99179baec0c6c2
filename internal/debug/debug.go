package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// refresh text every N frames to limit allocations
	updateInterval = 30
)

// Status is the gallery state shown under the counters.
type Status struct {
	Mode      string
	Focused   string
	RingSize  int
	Paths     int
	Items     int
	Visible   int
	OrbitTime float32
}

// Debug draws runtime overlays in the top-right corner. All overlays are off
// by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStatus   bool
	status       func() Status

	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns an overlay reading gallery state from status. status may be nil.
func New(status func() Status) *Debug {
	return &Debug{status: status}
}

// Lines builds the overlay text.
func (d *Debug) Lines() []string {
	var lines []string
	if d.ShowFPS {
		lines = append(lines, fmt.Sprintf("FPS: %d", rl.GetFPS()))
	}
	if d.ShowMemAlloc {
		runtime.ReadMemStats(&d.memStats)
		lines = append(lines, fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024)))
	}
	if d.ShowStatus && d.status != nil {
		lines = append(lines, FormatStatus(d.status())...)
	}
	return lines
}

// FormatStatus renders s as overlay lines.
func FormatStatus(s Status) []string {
	lines := []string{
		fmt.Sprintf("Mode: %s", s.Mode),
		fmt.Sprintf("Photos: %d/%d", s.Visible, s.Items),
		fmt.Sprintf("Paths: %d", s.Paths),
		fmt.Sprintf("Orbit: %.1fs", s.OrbitTime),
	}
	if s.Focused != "" {
		lines = append(lines, fmt.Sprintf("Focus: %s (+%d)", s.Focused, s.RingSize))
	}
	return lines
}

// Draw renders the enabled overlays. Call after the scene in the draw loop.
func (d *Debug) Draw() {
	if !d.ShowFPS && !d.ShowMemAlloc && !d.ShowStatus {
		return
	}
	d.frameCount++
	if d.lines == nil || d.frameCount%updateInterval == 0 {
		d.lines = d.Lines()
	}
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range d.lines {
		x := screenW - rl.MeasureText(text, fontSize) - padding
		rl.DrawText(text, x, y, fontSize, rl.Green)
		y += lineHeight
	}
}
