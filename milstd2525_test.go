package milsym

import (
	"image"
	"strings"
	"testing"

	"github.com/esimov/milsym/imop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSymbolSet(t *testing.T) {
	for name, want := range map[string]string{
		"icon":       "icon",
		"ICONS":      "icon",
		"2525":       "2525",
		"2525c":      "2525",
		"MilStd2525": "2525",
	} {
		set, err := NewSymbolSet(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, set.Name())
	}

	_, err := NewSymbolSet("app6")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMilStd2525_Layers(t *testing.T) {
	dashes := strings.Repeat("-", 11)

	var tests = []struct {
		sidc  string
		fill  string
		frame string
		icon  string
		color any
	}{
		{
			sidc:  "SFGPUCI--------",
			fill:  "fills/tacsym/sfgp" + dashes + ".png",
			frame: "frames/tacsym/sfgp" + dashes + ".png",
			icon:  "icons/war/s-g-uci---" + "-----.png",
			color: FriendFill,
		},
		{
			sidc:  "shapmf---------",
			fill:  "fills/tacsym/shap" + dashes + ".png",
			frame: "frames/tacsym/shap" + dashes + ".png",
			icon:  "icons/war/s-a-mf----" + "-----.png",
			color: HostileFill,
		},
		{
			sidc:  "SNGAUCI--------",
			fill:  "fills/tacsym/sngp" + dashes + ".png",
			frame: "frames/tacsym/snga" + dashes + ".png",
			icon:  "icons/war/s-g-uci---" + "-----.png",
			color: NeutralFill,
		},
		{
			sidc:  "IUPPSCD--------",
			fill:  "fills/tacsym/iupp" + dashes + ".png",
			frame: "frames/tacsym/iupp" + dashes + ".png",
			icon:  "icons/sigint/i-p-scd---" + "-----.png",
			color: UnknownFill,
		},
		{
			// exercise friend shares the friend frame
			sidc:  "SDGPUCI--------",
			fill:  "fills/tacsym/sfgp" + dashes + ".png",
			frame: "frames/tacsym/sfgp" + dashes + ".png",
			icon:  "icons/war/s-g-uci---" + "-----.png",
			color: FriendFill,
		},
		{
			sidc:  "OJGP-----------",
			fill:  "fills/tacsym/ohgp" + dashes + ".png",
			frame: "frames/tacsym/ohgp" + dashes + ".png",
			color: HostileFill,
		},
	}

	for _, tt := range tests {
		t.Run(tt.sidc, func(t *testing.T) {
			layers, err := MilStd2525{}.Layers(tt.sidc, nil)
			require.NoError(t, err)

			want := 3
			if tt.icon == "" {
				want = 2
			}
			require.Len(t, layers, want)

			assert.Equal(t, RoleFill, layers[0].Role)
			assert.Equal(t, tt.fill, layers[0].Path)
			assert.False(t, layers[0].Required)
			assert.Equal(t, imop.Replace, layers[0].Blend)
			assert.Equal(t, tt.color, layers[0].Color)

			assert.Equal(t, RoleFrame, layers[1].Role)
			assert.Equal(t, tt.frame, layers[1].Path)
			assert.True(t, layers[1].Required)
			assert.Empty(t, layers[1].Blend)

			if tt.icon != "" {
				assert.Equal(t, RoleIcon, layers[2].Role)
				assert.Equal(t, tt.icon, layers[2].Path)
				assert.False(t, layers[2].Required)
				assert.Empty(t, layers[2].Blend)
			}
		})
	}
}

func TestMilStd2525_Colors(t *testing.T) {
	opts := NewOptions().
		Set(FillColor, "#ff0000").
		Set(FrameColor, black).
		Set(IconColor, "#00f")

	layers, err := MilStd2525{}.Layers("SFGPUCI--------", opts)
	require.NoError(t, err)
	require.Len(t, layers, 3)

	assert.Equal(t, red, layers[0].Color)
	assert.Equal(t, imop.Multiply, layers[1].Blend)
	assert.Equal(t, black, layers[1].Color)
	assert.Equal(t, imop.Multiply, layers[2].Blend)
	assert.Equal(t, uint8(255), layers[2].Color.B)
	assert.Equal(t, uint8(0), layers[2].Color.R)
}

func TestMilStd2525_Invalid(t *testing.T) {
	for _, code := range []string{
		"",
		"SFGPUCI",
		"SFGPUCI---------",
		"XFGPUCI--------", // scheme
		"SQGPUCI--------", // standard identity
		"SFQPUCI--------", // battle dimension
		"SFGQUCI--------", // status
	} {
		_, err := MilStd2525{}.Layers(code, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument, "code %q", code)
	}
}

func TestMilStd2525_Render(t *testing.T) {
	dashes := strings.Repeat("-", 11)
	frame := withSquare(solid(4, 4, transparent), 1, black)
	r := newTestRenderer(t, MilStd2525{}, map[string]image.Image{
		"fills/tacsym/sfgp" + dashes + ".png":  solid(4, 4, white),
		"frames/tacsym/sfgp" + dashes + ".png": frame,
	})

	// The icon is missing but optional.
	img, err := r.CreateIcon("SFGPUCI--------", nil)
	require.NoError(t, err)
	assert.Equal(t, black, img.NRGBAAt(0, 0))
	assert.Equal(t, FriendFill, img.NRGBAAt(3, 3))

	img, err = r.CreateIcon("SFGPUCI--------", NewOptions().Set(ShowFill, false))
	require.NoError(t, err)
	assert.Equal(t, frame.Pix, img.Pix)

	// The frame is required.
	_, err = r.CreateIcon("SHGPUCI--------", nil)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}
