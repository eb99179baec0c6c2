// Package download fetches remote photos into a local cache directory.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultUserAgent = "orbit-gallery/1.0"

// Fetcher downloads files into Dir. Files already present are reused. Header
// is added to every request.
type Fetcher struct {
	Dir    string
	Client *http.Client
	Header http.Header
}

// New returns a fetcher with a 60 second client timeout.
func New(dir string) *Fetcher {
	return &Fetcher{Dir: dir, Client: &http.Client{Timeout: 60 * time.Second}}
}

// WithBearer returns f sending token as a bearer credential. An empty token
// leaves f unchanged.
func (f *Fetcher) WithBearer(token string) *Fetcher {
	if token == "" {
		return f
	}
	if f.Header == nil {
		f.Header = http.Header{}
	}
	f.Header.Set("Authorization", "Bearer "+token)
	return f
}

// Fetch saves url under the cache as key plus an image extension and returns
// the saved path. An existing cached file for key short-circuits the request.
func (f *Fetcher) Fetch(ctx context.Context, key, url string) (savedPath string, err error) {
	name := sanitizeFilename(key)
	if name == "" {
		name = sanitizeFilename(filenameFromURL(url))
	}
	if name == "" {
		name = "download"
	}
	if cached, ok := f.cached(name); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	for k, vs := range f.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: %s: HTTP %d", url, resp.StatusCode)
	}

	ext := extensionFromContentType(resp.Header.Get("Content-Type"))
	if ext == "" {
		ext = extensionFromURL(url)
	}
	if ext == "" {
		return "", fmt.Errorf("download: %s: not an image (%q)", url, resp.Header.Get("Content-Type"))
	}
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	savedPath = filepath.Join(f.Dir, name+ext)
	tmp := savedPath + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := os.Rename(tmp, savedPath); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	return savedPath, nil
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func (f *Fetcher) cached(name string) (string, bool) {
	for _, ext := range imageExts {
		p := filepath.Join(f.Dir, name+ext)
		if st, err := os.Stat(p); err == nil && st.Size() > 0 {
			return p, true
		}
	}
	return "", false
}

var imageExts = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".gif"}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "bmp"):
		return ".bmp"
	}
	return ""
}

func extensionFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range imageExts {
		if ext == e {
			return ext
		}
	}
	return ""
}

func filenameFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = strings.Trim(safeNameRe.ReplaceAllString(name, "_"), "._")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
