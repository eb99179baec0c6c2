// Package archive unpacks zip photo bundles.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Unzip extracts zipPath into destDir, preserving directory structure, and
// returns the extracted file paths. Entries that would escape destDir are
// skipped. Files already present with the same size are left alone so a bundle
// can be reopened cheaply.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	for _, f := range r.File {
		dest, ok := within(root, f.Name)
		if !ok {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return nil, fmt.Errorf("unzip: %w", err)
			}
			continue
		}
		if st, err := os.Stat(dest); err == nil && uint64(st.Size()) == f.UncompressedSize64 {
			extracted = append(extracted, dest)
			continue
		}
		if err := extract(f, dest); err != nil {
			return nil, fmt.Errorf("unzip %s: %w", f.Name, err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

// within joins name onto root and reports whether the result stays inside it.
func within(root, name string) (string, bool) {
	dest := filepath.Join(root, filepath.FromSlash(name))
	if dest == root || !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
		return "", false
	}
	return dest, true
}

func extract(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		_ = os.Remove(dest)
		return err
	}
	return out.Close()
}
