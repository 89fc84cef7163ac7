package milsym

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/esimov/milsym/imop"
	"github.com/hashicorp/go-hclog"
)

// Renderer builds the image of a symbol by compositing its layers.
// A Renderer holds no mutable state: CreateIcon may be called concurrently.
type Renderer struct {
	loader *Loader
	set    SymbolSet
	logger hclog.Logger
}

// RendererOption customizes a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger used for reporting the skipped layers.
func WithLogger(logger hclog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer creates a Renderer resolving the identifiers with set and
// reading the layer images with loader.
func NewRenderer(loader *Loader, set SymbolSet, opts ...RendererOption) *Renderer {
	r := &Renderer{
		loader: loader,
		set:    set,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SymbolSet returns the symbol set used by the renderer.
func (r *Renderer) SymbolSet() SymbolSet {
	return r.set
}

// CreateIcon creates the image of the symbol identified by symbolID.
//
// The layers of the symbol are drawn in order, each one skipped when its
// display option (showFill, showFrame, showIcon) is false. A missing optional
// layer is skipped too, while a missing required layer fails with
// ErrAssetNotFound. The first drawn layer establishes the dimension of the
// result. When no layer is drawn ErrEmptyResult is returned.
// The options are only read, never modified.
func (r *Renderer) CreateIcon(symbolID string, opts *Options) (*image.NRGBA, error) {
	if strings.TrimSpace(symbolID) == "" {
		return nil, fmt.Errorf("%w: empty symbol identifier", ErrInvalidArgument)
	}

	layers, err := r.set.Layers(symbolID, opts)
	if err != nil {
		return nil, err
	}

	var dst *image.NRGBA
	for _, layer := range layers {
		if !opts.Bool(layer.Role.optionKey(), true) {
			continue
		}

		img, err := r.loader.Load(layer.Path)
		if err != nil {
			if layer.Required || !errors.Is(err, ErrAssetNotFound) {
				return nil, fmt.Errorf("symbol %s: %s layer: %w", symbolID, layer.Role, err)
			}
			r.logger.Debug("skipping optional layer", "symbol", symbolID, "role", layer.Role, "error", err)
			continue
		}

		if err := r.applyBlend(img, layer); err != nil {
			return nil, fmt.Errorf("symbol %s: %s layer: %w", symbolID, layer.Role, err)
		}

		if dst == nil {
			dst = img
			continue
		}
		if dst, err = r.drawLayer(img, dst, layer); err != nil {
			return nil, fmt.Errorf("symbol %s: %s layer: %w", symbolID, layer.Role, err)
		}
	}

	if dst == nil {
		return nil, fmt.Errorf("symbol %s: %w", symbolID, ErrEmptyResult)
	}
	return dst, nil
}

// applyBlend recolors the layer image with the blend mode of the layer.
func (r *Renderer) applyBlend(img *image.NRGBA, layer Layer) error {
	if layer.Blend == "" {
		return nil
	}
	blend := imop.NewBlend()
	if err := blend.Set(layer.Blend); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return blend.Apply(img, layer.Color)
}

// drawLayer composites the layer image onto dst.
func (r *Renderer) drawLayer(img, dst *image.NRGBA, layer Layer) (*image.NRGBA, error) {
	op := imop.InitOp()
	if layer.Op != "" {
		if err := op.Set(layer.Op); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}
	return op.Draw(img, dst)
}
