package milsym

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/esimov/milsym/imop"
)

// Role names the visual component of a composite symbol a layer stands for.
type Role string

// The layer roles. Each role is gated by its own display option.
const (
	RoleFill  Role = "fill"
	RoleFrame Role = "frame"
	RoleIcon  Role = "icon"
)

// optionKey returns the display option toggling the layer role.
func (r Role) optionKey() string {
	switch r {
	case RoleFill:
		return ShowFill
	case RoleFrame:
		return ShowFrame
	}
	return ShowIcon
}

// Layer describes one image of a composite symbol.
type Layer struct {
	Role Role
	// Path is the logical path of the asset, relative to the loader base path.
	Path string
	// Required marks the layers whose absence fails the whole symbol.
	Required bool
	// Blend is the imop blend mode applied with Color before compositing.
	// An empty Blend leaves the layer unmodified.
	Blend string
	Color color.NRGBA
	// Op is the imop composition operation. Defaults to imop.SrcOver.
	Op string
}

// SymbolSet maps the identifiers of a symbology standard to their layers.
// The layers are returned in drawing order, the first one establishing the
// dimension of the rendered symbol.
type SymbolSet interface {
	Name() string
	Layers(id string, opts *Options) ([]Layer, error)
}

// NewSymbolSet returns the symbol set registered under name.
func NewSymbolSet(name string) (SymbolSet, error) {
	switch strings.ToLower(name) {
	case "icon", "icons":
		return IconSet{}, nil
	case "2525", "2525c", "milstd2525":
		return MilStd2525{}, nil
	}
	return nil, fmt.Errorf("%w: unknown symbol set %q", ErrInvalidArgument, name)
}

// IconSet is a symbol set where every identifier names its own images:
// fills/ID.png, frames/ID.png and icons/ID.png. Only the icon is mandatory.
type IconSet struct{}

// Name implements SymbolSet.
func (IconSet) Name() string { return "icon" }

// Layers implements SymbolSet.
func (IconSet) Layers(id string, opts *Options) ([]Layer, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return nil, fmt.Errorf("%w: invalid icon identifier %q", ErrInvalidArgument, id)
	}

	fill := Layer{Role: RoleFill, Path: "fills/" + id + ".png"}
	if c, ok := opts.Color(FillColor); ok {
		fill.Blend, fill.Color = imop.Replace, c
	}
	frame := Layer{Role: RoleFrame, Path: "frames/" + id + ".png"}
	if c, ok := opts.Color(FrameColor); ok {
		frame.Blend, frame.Color = imop.Multiply, c
	}
	icon := Layer{Role: RoleIcon, Path: "icons/" + id + ".png", Required: true}
	if c, ok := opts.Color(IconColor); ok {
		icon.Blend, icon.Color = imop.Multiply, c
	}

	return []Layer{fill, frame, icon}, nil
}
