package photos

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxEdge bounds texture size on the long edge.
const DefaultMaxEdge = 512

// Decode reads an image in any registered format and returns it as RGBA,
// downscaled so neither edge exceeds maxEdge. maxEdge <= 0 disables scaling.
func Decode(r io.Reader, maxEdge int) (*image.RGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("photos: decode: %w", err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("photos: decode %s: empty image", format)
	}
	if maxEdge > 0 && max(w, h) > maxEdge {
		nw, nh := fit(w, h, maxEdge)
		return transform.Resize(img, nw, nh, transform.Linear), nil
	}
	return clone.AsRGBA(img), nil
}

// DecodeFile opens path and decodes it.
func DecodeFile(path string, maxEdge int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("photos: %w", err)
	}
	defer f.Close()
	img, err := Decode(f, maxEdge)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return img, nil
}

// fit scales w x h so the long edge equals edge, keeping at least one pixel.
func fit(w, h, edge int) (int, int) {
	if w >= h {
		return edge, max(1, h*edge/w)
	}
	return max(1, w*edge/h), edge
}

// QuadSize returns the world size of a photo quad with the given pixel
// dimensions. The long edge is one unit.
func QuadSize(w, h int) (float32, float32) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	aspect := float32(w) / float32(h)
	if aspect > 1 {
		return 1, 1 / aspect
	}
	return aspect, 1
}
