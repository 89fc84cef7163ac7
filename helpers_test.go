package milsym

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

var (
	white       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black       = color.NRGBA{A: 255}
	red         = color.NRGBA{R: 255, A: 255}
	transparent = color.NRGBA{}
)

// solid returns a w x h image filled with c.
func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// withSquare draws a c colored square of side n in the top-left corner of img.
func withSquare(img *image.NRGBA, n int, c color.NRGBA) *image.NRGBA {
	draw.Draw(img, image.Rect(0, 0, n, n), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// newAssets builds an in memory symbol repository rooted at DefaultBasePath.
func newAssets(t *testing.T, files map[string]image.Image) fstest.MapFS {
	t.Helper()

	fsys := fstest.MapFS{}
	for name, img := range files {
		fsys["symbols/"+name] = &fstest.MapFile{Data: encodePNG(t, img)}
	}
	return fsys
}

func newTestRenderer(t *testing.T, set SymbolSet, files map[string]image.Image) *Renderer {
	t.Helper()
	return NewRenderer(NewLoader(NewFSStore(newAssets(t, files)), DefaultBasePath), set)
}

// trackingStore counts the opened and closed readers of the wrapped store.
type trackingStore struct {
	Store
	opened, closed atomic.Int32
}

func (s *trackingStore) Open(name string) (io.ReadCloser, error) {
	rc, err := s.Store.Open(name)
	if err != nil {
		return nil, err
	}
	s.opened.Add(1)
	return &trackedReader{ReadCloser: rc, store: s}, nil
}

type trackedReader struct {
	io.ReadCloser
	store *trackingStore
}

func (r *trackedReader) Close() error {
	r.store.closed.Add(1)
	return r.ReadCloser.Close()
}
