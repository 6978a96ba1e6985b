// Package texture loads and prepares texture images for the winning pack
// entries: cancellable fetch with a per-session decoded cache, a placeholder
// for failed resolution, and the multiply-tint and nearest-neighbor scaling
// steps applied before upload.
package texture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/SilverlightStudios/voxelpack/internal/assets"
	"github.com/SilverlightStudios/voxelpack/internal/geometry"
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

// Loader fetches and decodes textures from the catalog under an enabled-pack
// order. Winning bytes and decoded images are cached per id; both caches are
// dropped whenever the order changes since a different pack may win the id
// afterwards.
type Loader struct {
	mu      sync.Mutex
	catalog *assets.Catalog
	order   []assets.PackID
	bytes   *assets.Cache
	decoded map[assetid.ID]*image.NRGBA
}

// NewLoader creates a loader over the catalog with the given enabled order.
func NewLoader(catalog *assets.Catalog, order []assets.PackID) *Loader {
	return &Loader{
		catalog: catalog,
		order:   append([]assets.PackID(nil), order...),
		bytes:   assets.NewCache(),
		decoded: make(map[assetid.ID]*image.NRGBA),
	}
}

// SetOrder replaces the enabled-pack order and invalidates every cached
// image.
func (l *Loader) SetOrder(order []assets.PackID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.order = append([]assets.PackID(nil), order...)
	l.bytes.Clear()
	l.decoded = make(map[assetid.ID]*image.NRGBA)
}

// Invalidate drops one cached texture, e.g. after a single-asset reload.
func (l *Loader) Invalidate(id assetid.ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bytes.Invalidate(id)
	delete(l.decoded, id)
}

// Stats returns byte-cache hit/miss counters.
func (l *Loader) Stats() (hits, misses int) {
	return l.bytes.Stats()
}

// Fetch returns the decoded texture for id from the winning pack. A fetch
// whose context is canceled returns ctx.Err() and leaves no trace: the
// partial result is neither cached nor surfaced to a later caller.
func (l *Loader) Fetch(ctx context.Context, id assetid.ID) (*image.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	if img, ok := l.decoded[id]; ok {
		l.mu.Unlock()
		return img, nil
	}
	order := l.order
	l.mu.Unlock()

	data, ok := l.bytes.Get(id)
	if !ok {
		entry, err := assets.Lookup(l.catalog, id, assets.KindTexture, order)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", id, err)
		}
		data = entry.Data
		l.bytes.Set(id, data)
	}

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture %s: decode: %w", id, err)
	}
	img := toNRGBA(src)

	// Decode may have outlived the caller; a late cancel stays silent.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.decoded[id] = img
	l.mu.Unlock()
	return img, nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if img, ok := src.(*image.NRGBA); ok {
		return img
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Placeholder builds the magenta/black quadrant checkerboard shown for
// assets that failed to resolve.
func Placeholder(w, h int) *image.NRGBA {
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cw, ch := w/2, h/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			if (x/cw+y/ch)%2 == 0 {
				img.Pix[i+0] = 0xff // magenta
				img.Pix[i+2] = 0xff
			}
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// Tint returns a copy of img with every pixel channel-multiplied by the
// tint color. Alpha is preserved.
func Tint(img *image.NRGBA, tint geometry.RGB) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = uint8(uint32(out.Pix[i+0]) * uint32(tint.R) / 255)
		out.Pix[i+1] = uint8(uint32(out.Pix[i+1]) * uint32(tint.G) / 255)
		out.Pix[i+2] = uint8(uint32(out.Pix[i+2]) * uint32(tint.B) / 255)
	}
	return out
}

// Scale resizes img to w x h with nearest-neighbor sampling, keeping pixel
// art crisp.
func Scale(img *image.NRGBA, w, h int) *image.NRGBA {
	if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
		return img
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}
