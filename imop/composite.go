package imop

import (
	"fmt"
	"image"
	"image/color"

	"github.com/esimov/milsym/utils"
	"golang.org/x/image/draw"
)

// Porter-Duff composition operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp returns a Composite with the source-over operation activated.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set activates one of the supported composition operations.
func (op *Composite) Set(cop string) error {
	for _, o := range op.ops {
		if o == cop {
			op.current = cop
			return nil
		}
	}
	return fmt.Errorf("unsupported composite operation: %q", cop)
}

// Get returns the currently active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// DrawImage draws src over dst at location (0, 0) and returns dst.
func DrawImage(src, dst *image.NRGBA) (*image.NRGBA, error) {
	return InitOp().Draw(src, dst)
}

// Draw composites src onto dst at location (0, 0) with the active operation.
// The dst image is modified in place and returned. Nothing is resized: when src
// exceeds the dst bounds only the overlapping region is drawn.
func (op *Composite) Draw(src, dst *image.NRGBA) (*image.NRGBA, error) {
	if src == nil || dst == nil {
		return nil, ErrNilImage
	}

	sb, db := src.Bounds(), dst.Bounds()
	dx := utils.Min(sb.Dx(), db.Dx())
	dy := utils.Min(sb.Dy(), db.Dy())
	if dx <= 0 || dy <= 0 {
		return dst, nil
	}
	rect := image.Rect(0, 0, dx, dy).Add(db.Min)

	switch op.current {
	case SrcOver:
		draw.Draw(dst, rect, src, sb.Min, draw.Over)
		return dst, nil
	case Copy:
		draw.Draw(dst, rect, src, sb.Min, draw.Src)
		return dst, nil
	}

	for y := 0; y < dy; y++ {
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := dst.PixOffset(db.Min.X, db.Min.Y+y)
		for x := 0; x < dx; x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]
			c := op.compose(
				color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]},
				color.NRGBA{R: d[0], G: d[1], B: d[2], A: d[3]},
			)
			d[0], d[1], d[2], d[3] = c.R, c.G, c.B, c.A

			si += 4
			di += 4
		}
	}
	return dst, nil
}

// factors returns the Porter-Duff source and backdrop weights for the
// active operation, given the normalized source and backdrop alpha.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	// Clear
	return 0, 0
}

// compose applies the composition formula to a single source and backdrop pixel.
func (op *Composite) compose(s, b color.NRGBA) color.NRGBA {
	as := float64(s.A) / 255
	ab := float64(b.A) / 255
	fa, fb := op.factors(as, ab)

	// weights of the premultiplied source and backdrop colors
	ws, wb := as*fa, ab*fb
	an := ws + wb
	if an <= 0 {
		return color.NRGBA{}
	}

	channel := func(cs, cb uint8) uint8 {
		return toChannel((ws*float64(cs)/255 + wb*float64(cb)/255) / an)
	}

	return color.NRGBA{
		R: channel(s.R, b.R),
		G: channel(s.G, b.G),
		B: channel(s.B, b.B),
		A: toChannel(an),
	}
}
