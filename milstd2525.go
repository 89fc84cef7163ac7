package milsym

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/esimov/milsym/imop"
)

// sidcLength is the length of a MIL-STD-2525C symbol identification code.
const sidcLength = 15

// Default fill colors of the standard identities.
var (
	FriendFill  = color.NRGBA{R: 128, G: 224, B: 255, A: 255}
	HostileFill = color.NRGBA{R: 255, G: 128, B: 128, A: 255}
	NeutralFill = color.NRGBA{R: 170, G: 255, B: 170, A: 255}
	UnknownFill = color.NRGBA{R: 255, G: 255, B: 128, A: 255}
)

// Coding schemes having a frame.
var sidcSchemes = map[byte]string{
	'S': "war",
	'I': "sigint",
	'O': "stbops",
	'E': "ems",
}

// exerciseIdentity maps the exercise and the unspecified standard identities
// to the real world identity whose frame they share.
var exerciseIdentity = map[byte]byte{
	'G': 'P',
	'W': 'U',
	'M': 'A',
	'D': 'F',
	'L': 'N',
	'J': 'H',
	'K': 'H',
	'O': 'U',
}

const (
	standardIdentities = "PUAFNSHGWMDLJKO"
	battleDimensions   = "PAGSUFXZ"
	statuses           = "APCDXF-"
)

// MilStd2525 is the symbol set of the MIL-STD-2525C warfighting, signals
// intelligence, stability operations and emergency management schemes.
//
// A symbol is made of a fill, a frame and an icon:
//
//	fills/tacsym/<scheme><identity><dimension>p-----------.png
//	frames/tacsym/<scheme><identity><dimension><status>-----------.png
//	icons/<scheme>/<scheme>-<dimension>-<function id>-----.png
//
// The frame is mandatory, the fill and the icon are optional. Unless a fill
// color is configured, the fill is painted with the default color of the
// standard identity.
type MilStd2525 struct{}

// Name implements SymbolSet.
func (MilStd2525) Name() string { return "2525" }

// Layers implements SymbolSet.
func (MilStd2525) Layers(id string, opts *Options) ([]Layer, error) {
	sidc, err := parseSIDC(id)
	if err != nil {
		return nil, err
	}

	status := "p"
	if sidc.status == 'A' {
		status = "a"
	}
	frameName := strings.ToLower(string([]byte{sidc.scheme, sidc.identity, sidc.dimension}))

	fill := Layer{
		Role:  RoleFill,
		Path:  "fills/tacsym/" + frameName + "p-----------.png",
		Blend: imop.Replace,
		Color: sidc.fillColor(),
	}
	if c, ok := opts.Color(FillColor); ok {
		fill.Color = c
	}

	frame := Layer{
		Role:     RoleFrame,
		Path:     "frames/tacsym/" + frameName + status + "-----------.png",
		Required: true,
	}
	if c, ok := opts.Color(FrameColor); ok {
		frame.Blend, frame.Color = imop.Multiply, c
	}

	layers := []Layer{fill, frame}
	if sidc.function != "------" {
		icon := Layer{
			Role: RoleIcon,
			Path: "icons/" + sidcSchemes[sidc.scheme] + "/" +
				strings.ToLower(string([]byte{sidc.scheme, '-', sidc.dimension, '-'})+sidc.function) + "-----.png",
		}
		if c, ok := opts.Color(IconColor); ok {
			icon.Blend, icon.Color = imop.Multiply, c
		}
		layers = append(layers, icon)
	}
	return layers, nil
}

// sidc holds the positions of a symbol identification code used for resolving its images.
type sidc struct {
	scheme    byte
	identity  byte // normalized to its real world counterpart
	dimension byte
	status    byte
	function  string
}

// parseSIDC validates the code positions needed for resolving the symbol layers.
func parseSIDC(code string) (*sidc, error) {
	if len(code) != sidcLength {
		return nil, fmt.Errorf("%w: symbol code %q must be %d characters long",
			ErrInvalidArgument, code, sidcLength)
	}
	code = strings.ToUpper(code)

	if _, ok := sidcSchemes[code[0]]; !ok {
		return nil, fmt.Errorf("%w: unsupported coding scheme %q in %q", ErrInvalidArgument, code[0], code)
	}
	if !strings.ContainsRune(standardIdentities, rune(code[1])) {
		return nil, fmt.Errorf("%w: invalid standard identity %q in %q", ErrInvalidArgument, code[1], code)
	}
	if !strings.ContainsRune(battleDimensions, rune(code[2])) {
		return nil, fmt.Errorf("%w: invalid battle dimension %q in %q", ErrInvalidArgument, code[2], code)
	}
	if !strings.ContainsRune(statuses, rune(code[3])) {
		return nil, fmt.Errorf("%w: invalid status %q in %q", ErrInvalidArgument, code[3], code)
	}

	identity := code[1]
	if id, ok := exerciseIdentity[identity]; ok {
		identity = id
	}

	return &sidc{
		scheme:    code[0],
		identity:  identity,
		dimension: code[2],
		status:    code[3],
		function:  code[4:10],
	}, nil
}

// fillColor returns the default fill color of the standard identity.
func (s *sidc) fillColor() color.NRGBA {
	switch s.identity {
	case 'F', 'A':
		return FriendFill
	case 'H', 'S':
		return HostileFill
	case 'N':
		return NeutralFill
	}
	return UnknownFill
}
