// Command gallery shows photos orbiting a reference model. Clicking a photo
// focuses it and gathers related photos into a ring around it.
//
// Controls:
//
//	Left click  - focus a photo, click again or on empty space to release
//	Right drag  - orbit the camera
//	Wheel       - zoom
//	Tab         - focus the next photo
//	Esc         - release focus
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"orbit-gallery/internal/camera"
	"orbit-gallery/internal/clock"
	"orbit-gallery/internal/config"
	"orbit-gallery/internal/debug"
	"orbit-gallery/internal/download"
	"orbit-gallery/internal/env"
	"orbit-gallery/internal/focus"
	"orbit-gallery/internal/frame"
	"orbit-gallery/internal/gallery"
	"orbit-gallery/internal/graphics"
	"orbit-gallery/internal/logger"
	"orbit-gallery/internal/orbit"
	"orbit-gallery/internal/orbitpath"
	"orbit-gallery/internal/photos"
	"orbit-gallery/internal/refmodel"
	"orbit-gallery/internal/reshuffle"
	"orbit-gallery/internal/scene"
	"orbit-gallery/internal/starfield"
	"orbit-gallery/internal/tween"
)

// tokenVar names the bearer token sent with photo downloads, read from the
// environment or .env.
const tokenVar = "GALLERY_PHOTO_TOKEN"

type flags struct {
	config     string
	manifest   string
	model      string
	cache      string
	logPath    string
	fullscreen bool
	debugPaths bool
	showStats  bool
}

func main() {
	var f flags
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Interactive 3D photo gallery",
		Long: `gallery - photos orbiting a reference model

Left click focuses a photo and gathers photos of the same people around it.
Right drag orbits the camera, the wheel zooms, Tab cycles focus and Esc releases it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.config, "config", config.DefaultPath, "Path to the YAML configuration")
	cmd.Flags().StringVar(&f.manifest, "manifest", "photos.yaml", "Path to the photo manifest (.yaml, or a .zip bundle with photos.yaml at its root)")
	cmd.Flags().StringVar(&f.model, "model", "", "Path to a reference model manifest (STL parts); empty uses the built-in rings")
	cmd.Flags().StringVar(&f.cache, "cache", "cache/photos", "Directory for downloaded photos")
	cmd.Flags().StringVar(&f.logPath, "log", logger.DefaultPath, "Log file; empty keeps logs in memory")
	cmd.Flags().BoolVar(&f.fullscreen, "fullscreen", false, "Open fullscreen")
	cmd.Flags().BoolVar(&f.debugPaths, "debug-paths", false, "Draw the sampled orbit paths")
	cmd.Flags().BoolVar(&f.showStats, "stats", false, "Show FPS, memory and focus state")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	log := logger.New(f.logPath)
	cfg, err := config.Load(f.config)
	if err != nil {
		log.Logf("config: %v; using defaults", err)
	}
	if f.fullscreen {
		cfg.Window.Fullscreen = true
	}
	if f.debugPaths {
		cfg.Window.DebugPaths = true
	}
	if f.showStats {
		cfg.Window.ShowFPS, cfg.Window.ShowMem, cfg.Window.ShowStatus = true, true, true
	}

	model := loadModel(f.model, log)
	paths := orbitpath.NewBuilder(cfg.Paths, log)
	paths.BuildPaths(model)

	if err := env.Load(".env"); err != nil {
		log.Logf("env: %v", err)
	}
	manifest, err := loadManifest(f.manifest, f.cache)
	if err != nil {
		log.Logf("photos: %v; starting empty", err)
	}
	fetcher := download.New(f.cache).WithBearer(os.Getenv(tokenVar))
	loadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	pics := photos.NewLoader(fetcher, log).Load(loadCtx, manifest)
	cancel()
	g := gallery.New(photos.Items(pics)...)

	cam := newCamera(cfg)
	controls := camera.NewControls(cam, cfg.Camera.Controls)
	tp := clock.NewMonotonicTimeProvider()
	tweens := tween.NewEngine(tp)
	orbitClock := clock.NewPausable()
	driver := orbit.NewDriver(cfg.Orbit, paths, orbitClock, cam)

	machine := focus.NewMachine(cfg.Focus, g, cam, tweens, tp, log)
	machine.SetControls(controls)
	machine.SetPlacer(driver)
	machine.Subscribe(func(ev focus.Event) {
		log.Logf("focus: %s %s", ev.Kind, ev.Item.Record.ID)
	})

	shuffler := reshuffle.New(cfg.Reshuffle, g, machine, log)
	shuffler.SetPlacer(driver)
	shuffler.Limit()
	field := starfield.New(cfg.Starfield)
	field.Follow([3]float32(cam.Target))

	sched := frame.New(cfg.Frame, tp, tweens, machine, driver, orbitClock, g)
	sched.SetControls(controls)
	sched.AddHook(field.Hook)
	sched.AddHook(shuffler.Step)

	scn := scene.New(cam, controls, machine, g, paths, model, field, pics)
	scn.DebugPaths = cfg.Window.DebugPaths

	overlay := debug.New(func() debug.Status {
		st := debug.Status{
			Mode:      machine.Mode().String(),
			RingSize:  len(machine.Ring()),
			Paths:     paths.PathCount(),
			Items:     g.Len(),
			Visible:   len(g.Visible()),
			OrbitTime: orbitClock.Seconds(),
		}
		if it := machine.Focused(); it != nil {
			st.Focused = it.Record.ID
		}
		return st
	})
	overlay.ShowFPS = cfg.Window.ShowFPS
	overlay.ShowMemAlloc = cfg.Window.ShowMem
	overlay.ShowStatus = cfg.Window.ShowStatus

	log.Logf("gallery: %d photos, %d paths", g.Len(), paths.PathCount())
	update := func() {
		scn.Update()
		sched.Tick()
	}
	draw := func() {
		scn.Draw()
		overlay.Draw()
	}
	graphics.Run(cfg.Window, update, draw, scn.Unload)
	return nil
}

func loadManifest(path, cache string) (photos.Manifest, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return photos.LoadBundle(path, cache)
	}
	return photos.LoadManifest(path)
}

func loadModel(path string, log *logger.Logger) *refmodel.Node {
	if path == "" {
		return refmodel.Fallback()
	}
	m, err := refmodel.Load(path)
	if err != nil {
		log.Logf("model: %v; using built-in rings", err)
		return refmodel.Fallback()
	}
	return m
}

func newCamera(cfg config.Config) *camera.Camera {
	pos := mgl32.Vec3(cfg.Camera.Position)
	target := mgl32.Vec3(cfg.Camera.Target)
	aspect := float32(cfg.Window.Width) / float32(max(cfg.Window.Height, 1))
	if cfg.Camera.Orthographic() {
		return camera.NewOrthographic(pos, target, cfg.Camera.Fovy, aspect)
	}
	return camera.NewPerspective(pos, target, cfg.Camera.Fovy, aspect)
}
