// Package config holds the gallery's persisted settings: one YAML document with
// a section per subsystem.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"orbit-gallery/internal/camera"
	"orbit-gallery/internal/focus"
	"orbit-gallery/internal/frame"
	"orbit-gallery/internal/orbit"
	"orbit-gallery/internal/orbitpath"
	"orbit-gallery/internal/reshuffle"
	"orbit-gallery/internal/starfield"
)

// DefaultPath is relative to the process working directory.
const DefaultPath = "config/gallery.yaml"

// Window is the display surface.
type Window struct {
	Width      int32  `yaml:"width"`
	Height     int32  `yaml:"height"`
	Title      string `yaml:"title"`
	TargetFPS  int32  `yaml:"target_fps"`
	Fullscreen bool   `yaml:"fullscreen"`
	ShowFPS    bool   `yaml:"show_fps"`
	ShowMem    bool   `yaml:"show_memalloc"`
	ShowStatus bool   `yaml:"show_status"`
	DebugPaths bool   `yaml:"debug_paths"`
}

// Camera is the initial view.
type Camera struct {
	Projection string                `yaml:"projection"`
	Position   [3]float32            `yaml:"position"`
	Target     [3]float32            `yaml:"target"`
	Fovy       float32               `yaml:"fovy"`
	Controls   camera.ControlOptions `yaml:"controls"`
}

// Config is the whole document.
type Config struct {
	Window    Window            `yaml:"window"`
	Camera    Camera            `yaml:"camera"`
	Paths     orbitpath.Options `yaml:"paths"`
	Orbit     orbit.Options     `yaml:"orbit"`
	Focus     focus.Options     `yaml:"focus"`
	Frame     frame.Options     `yaml:"frame"`
	Reshuffle reshuffle.Options `yaml:"reshuffle"`
	Starfield starfield.Options `yaml:"starfield"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "Orbit Gallery",
			TargetFPS: 60,
		},
		Camera: Camera{
			Projection: "orthographic",
			Position:   [3]float32{-30, 0, 0},
			Fovy:       20,
			Controls:   camera.DefaultControlOptions(),
		},
		Paths:     orbitpath.DefaultOptions(),
		Orbit:     orbit.DefaultOptions(),
		Focus:     focus.DefaultOptions(),
		Frame:     frame.DefaultOptions(),
		Reshuffle: reshuffle.DefaultOptions(),
		Starfield: starfield.DefaultOptions(),
	}
}

// Load reads path over Default(). A missing file yields Default() and no error;
// a malformed one yields Default() and the parse error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Orthographic reports whether the camera section asks for an orthographic view.
func (c Camera) Orthographic() bool {
	return c.Projection != "perspective"
}
