package colorize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RGB
	}{
		{name: "hex lower", input: "#e02424", want: RGB{R: 224, G: 36, B: 36}},
		{name: "hex upper", input: "#E02424", want: RGB{R: 224, G: 36, B: 36}},
		{name: "hex without hash", input: "0033cc", want: RGB{R: 0, G: 51, B: 204}},
		{name: "short hex", input: "#f00", want: RGB{R: 255, G: 0, B: 0}},
		{name: "rgb func", input: "rgb(31, 119, 180)", want: RGB{R: 31, G: 119, B: 180}},
		{name: "rgb func upper", input: " RGB(0,0,0) ", want: RGB{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, input := range []string{"", "#12345", "#gggggg", "rgb(1,2)", "rgb(1,2,300)", "rgb(a,b,c)", "red"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseColor(input)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRGB_Format(t *testing.T) {
	c := RGB{R: 224, G: 36, B: 36}

	assert.Equal(t, "#e02424", c.Format(Hex))
	assert.Equal(t, "rgb(224,36,36)", c.Format(RGBFunc))
	assert.Equal(t, "#e02424", c.String())
}

func TestLerp_Endpoints(t *testing.T) {
	a := RGB{R: 0, G: 51, B: 204}
	b := RGB{R: 204, G: 229, B: 255}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, a, Lerp(a, b, -3))
	assert.Equal(t, b, Lerp(a, b, 7))
	assert.Equal(t, a, Lerp(a, b, math.NaN()))
}

func TestLerp_RoundsToNearest(t *testing.T) {
	// 31 + 169*0.5 = 115.5 -> 116
	got := Lerp(RGB{R: 31}, RGB{R: 200}, 0.5)
	assert.Equal(t, uint8(116), got.R)

	// 0 + 10*0.24 = 2.4 -> 2
	got = Lerp(RGB{}, RGB{R: 10}, 0.24)
	assert.Equal(t, uint8(2), got.R)
}

func TestLerp_ChannelsWithinRange(t *testing.T) {
	endpoints := []RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 255, G: 0, B: 128},
		{R: 3, G: 254, B: 77},
	}

	for _, a := range endpoints {
		for _, b := range endpoints {
			for i := 0; i <= 100; i++ {
				tv := float64(i) / 100
				got := Lerp(a, b, tv)

				want := float64(a.G) + (float64(b.G)-float64(a.G))*tv
				assert.InDelta(t, want, float64(got.G), 0.5+1e-9)
				assert.InDelta(t, float64(a.R)+(float64(b.R)-float64(a.R))*tv, float64(got.R), 0.5+1e-9)
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{
		"rank": ByRank, "BY_RANK": ByRank, "by-rank": ByRank,
		"value": ByValue, "By_Value": ByValue,
	} {
		got, err := ParseMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseMode("median")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseEncoding(t *testing.T) {
	got, err := ParseEncoding("")
	require.NoError(t, err)
	assert.Equal(t, Hex, got)

	got, err = ParseEncoding("RGB")
	require.NoError(t, err)
	assert.Equal(t, RGBFunc, got)

	_, err = ParseEncoding("hsl")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPreset(t *testing.T) {
	spec, ok := Preset("Blue")
	require.True(t, ok)
	assert.Equal(t, "#e02424", spec.Accent.Hex())
	assert.Equal(t, "#1f77b4", spec.Start.Hex())
	assert.Equal(t, ByRank, spec.Mode)

	_, ok = Preset("nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"blue", "subway", "vaccine"}, PresetNames())
	assert.Equal(t, spec, DefaultSpec())
}
