// Package photos turns a manifest of photo records into gallery items with
// decoded, size-bounded pixels.
package photos

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"orbit-gallery/internal/archive"
	"orbit-gallery/internal/gallery"
)

// Entry is one manifest row. Exactly one of File or URL is expected; People
// holds the tags used to relate photos.
type Entry struct {
	ID     string   `yaml:"id"`
	File   string   `yaml:"file,omitempty"`
	URL    string   `yaml:"url,omitempty"`
	People []string `yaml:"people,omitempty"`
}

// Source returns the local path or remote URL the entry loads from.
func (e Entry) Source() string {
	if e.File != "" {
		return e.File
	}
	return e.URL
}

// Remote reports whether the entry must be downloaded.
func (e Entry) Remote() bool {
	return e.File == "" && e.URL != ""
}

// Manifest is the photo list document.
type Manifest struct {
	Photos []Entry `yaml:"photos"`
}

// LoadManifest reads a YAML manifest. Entries without an ID get their index and
// relative file paths are resolved against the manifest's directory.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("photos: read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("photos: parse manifest %s: %w", path, err)
	}
	for i := range m.Photos {
		if m.Photos[i].ID == "" {
			m.Photos[i].ID = fmt.Sprintf("photo-%d", i)
		}
		if f := m.Photos[i].File; f != "" && !filepath.IsAbs(f) {
			m.Photos[i].File = filepath.Join(filepath.Dir(path), f)
		}
	}
	return m, nil
}

// BundleManifest is the manifest name expected at the root of a zip bundle.
const BundleManifest = "photos.yaml"

// LoadBundle extracts a zip of photos plus a photos.yaml into a directory
// under cacheDir and loads its manifest.
func LoadBundle(zipPath, cacheDir string) (Manifest, error) {
	name := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	dir := filepath.Join(cacheDir, "bundles", name)
	if _, err := archive.Unzip(zipPath, dir); err != nil {
		return Manifest{}, fmt.Errorf("photos: bundle: %w", err)
	}
	return LoadManifest(filepath.Join(dir, BundleManifest))
}

// Record maps an entry onto the gallery's record type.
func (e Entry) Record() (gallery.Record, error) {
	var rec gallery.Record
	if err := copier.CopyWithOption(&rec, &e, copier.Option{DeepCopy: true}); err != nil {
		return gallery.Record{}, fmt.Errorf("photos: copy %s: %w", e.ID, err)
	}
	rec.File = e.Source()
	return rec, nil
}

var errNoFetcher = errors.New("photos: remote entry without a fetcher")
