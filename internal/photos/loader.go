package photos

import (
	"context"
	"image"
	"math/rand/v2"

	"orbit-gallery/internal/gallery"
	"orbit-gallery/internal/logger"
)

// Fetcher downloads a remote photo and returns its local path.
type Fetcher interface {
	Fetch(ctx context.Context, key, url string) (string, error)
}

// Photo is a loaded item together with its pixels.
type Photo struct {
	Item  *gallery.Item
	Pixel *image.RGBA
}

// Loader resolves, decodes and arranges manifest entries.
type Loader struct {
	MaxEdge int
	Fetcher Fetcher
	Rand    *rand.Rand
	log     *logger.Logger
}

// NewLoader returns a loader. fetcher may be nil when every entry is local.
func NewLoader(fetcher Fetcher, log *logger.Logger) *Loader {
	return &Loader{
		MaxEdge: DefaultMaxEdge,
		Fetcher: fetcher,
		Rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:     log,
	}
}

// Load builds photos for every entry that can be read. Failures are logged and
// skipped so the band pattern only counts successful loads.
func (l *Loader) Load(ctx context.Context, m Manifest) []*Photo {
	var out []*Photo
	for _, e := range m.Photos {
		if ctx.Err() != nil {
			l.log.Logf("photos: canceled after %d", len(out))
			break
		}
		p, err := l.load(ctx, e)
		if err != nil {
			l.log.Logf("photos: skip %s: %v", e.ID, err)
			continue
		}
		out = append(out, p)
	}

	Arrange(Items(out), l.Rand)
	l.log.Logf("photos: loaded %d of %d", len(out), len(m.Photos))
	return out
}

func (l *Loader) load(ctx context.Context, e Entry) (*Photo, error) {
	rec, err := e.Record()
	if err != nil {
		return nil, err
	}
	path := e.Source()
	if e.Remote() {
		if l.Fetcher == nil {
			return nil, errNoFetcher
		}
		if path, err = l.Fetcher.Fetch(ctx, e.ID, e.URL); err != nil {
			return nil, err
		}
	}
	img, err := DecodeFile(path, l.MaxEdge)
	if err != nil {
		return nil, err
	}
	w, h := QuadSize(img.Bounds().Dx(), img.Bounds().Dy())
	return &Photo{Item: gallery.NewItem(rec, w, h), Pixel: img}, nil
}

// Items returns the gallery items of photos in order.
func Items(photos []*Photo) []*gallery.Item {
	out := make([]*gallery.Item, len(photos))
	for i, p := range photos {
		out[i] = p.Item
	}
	return out
}
