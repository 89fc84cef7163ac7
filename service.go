package milsym

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-hclog"
)

// Service renders symbols with the display options accumulated through its
// builder methods, and encodes the result. The builder methods are not safe
// for concurrent use; once configured, a Service may render concurrently.
type Service struct {
	renderer *Renderer
	opts     *Options
	cache    *lruCache[string, *image.NRGBA]
	logger   hclog.Logger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithCache keeps the last capacity rendered symbols in memory.
func WithCache(capacity int) ServiceOption {
	return func(s *Service) {
		if capacity > 0 {
			s.cache = newLRUCache[string, *image.NRGBA](capacity)
		}
	}
}

// WithServiceLogger sets the logger of the service.
func WithServiceLogger(logger hclog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service rendering the symbols with renderer.
func NewService(renderer *Renderer, opts ...ServiceOption) *Service {
	s := &Service{
		renderer: renderer,
		opts:     NewOptions(),
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithShowIcon toggles the icon layer.
func (s *Service) WithShowIcon(show bool) *Service {
	s.opts.Set(ShowIcon, show)
	return s
}

// WithShowFrame toggles the frame layer.
func (s *Service) WithShowFrame(show bool) *Service {
	s.opts.Set(ShowFrame, show)
	return s
}

// WithShowFill toggles the fill layer.
func (s *Service) WithShowFill(show bool) *Service {
	s.opts.Set(ShowFill, show)
	return s
}

// WithFillColor sets the color of the fill layer. A nil color restores the default.
func (s *Service) WithFillColor(c color.Color) *Service {
	return s.setColor(FillColor, c)
}

// WithIconColor multiplies the icon layer by c. A nil color restores the default.
func (s *Service) WithIconColor(c color.Color) *Service {
	return s.setColor(IconColor, c)
}

// WithFrameColor multiplies the frame layer by c. A nil color restores the default.
func (s *Service) WithFrameColor(c color.Color) *Service {
	return s.setColor(FrameColor, c)
}

// WithSize scales the rendered symbols so that their longest side measures size pixels.
// Zero keeps the native size of the assets.
func (s *Service) WithSize(size int) *Service {
	if size <= 0 {
		s.opts.Remove(Size)
		return s
	}
	s.opts.Set(Size, size)
	return s
}

// WithOptions merges opts into the options of the service.
func (s *Service) WithOptions(opts *Options) *Service {
	s.opts.Merge(opts)
	return s
}

func (s *Service) setColor(key string, c color.Color) *Service {
	if c == nil {
		s.opts.Remove(key)
		return s
	}
	s.opts.Set(key, c)
	return s
}

// Options returns a copy of the accumulated options.
func (s *Service) Options() *Options {
	return s.opts.Copy()
}

// Image renders the symbol identified by symbolID. The returned image is
// owned by the caller.
func (s *Service) Image(symbolID string) (*image.NRGBA, error) {
	opts := s.opts
	key := s.renderer.SymbolSet().Name() + "|" + symbolID + "|" + opts.Fingerprint()

	if s.cache != nil {
		if img, ok := s.cache.Get(key); ok {
			return imaging.Clone(img), nil
		}
	}

	img, err := s.renderer.CreateIcon(symbolID, opts)
	if err != nil {
		return nil, err
	}
	img = resizeImg(img, opts.Int(Size, 0))

	if s.cache != nil {
		s.cache.Set(key, imaging.Clone(img))
		hits, misses := s.cache.Stats()
		s.logger.Trace("symbol cached", "symbol", symbolID, "hits", hits, "misses", misses)
	}
	return img, nil
}

// Encode renders the symbol identified by symbolID and writes it to w in
// the requested format. Encoding failures wrap ErrEncoding.
func (s *Service) Encode(w io.Writer, symbolID string, format imaging.Format) error {
	img, err := s.Image(symbolID)
	if err != nil {
		return err
	}
	return encodeImg(w, img, format)
}

// PNG renders the symbol identified by symbolID as PNG encoded bytes.
func (s *Service) PNG(symbolID string) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf, symbolID, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders the symbol identified by symbolID into the file found
// at path. The image format is deduced from the file extension.
func (s *Service) WriteFile(symbolID, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	img, err := s.Image(symbolID)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: unable to create the destination file: %v", ErrEncoding, err)
	}

	if err := encodeImg(f, img, format); err != nil {
		f.Close()
		// remove the partially written file in case of an error
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return nil
}
