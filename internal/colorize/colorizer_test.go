package colorize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAccent = RGB{R: 224, G: 36, B: 36}
	testStart  = RGB{R: 31, G: 119, B: 180}
	testEnd    = RGB{R: 200, G: 220, B: 245}
	testMid    = RGB{R: 116, G: 170, B: 213}
)

func testSpec(mode Mode) Spec {
	return Spec{Accent: testAccent, Start: testStart, End: testEnd, Mode: mode}
}

func TestColorize_SingleEntry_GetsAccent(t *testing.T) {
	for _, mode := range []Mode{ByRank, ByValue} {
		t.Run(mode.String(), func(t *testing.T) {
			got, err := Colorize([]Entry{{Label: "only", Value: 3}}, testSpec(mode))
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "only", got[0].Label)
			assert.Equal(t, testAccent, got[0].Color)
		})
	}
}

func TestColorize_MaxGetsAccentOnlyOnce(t *testing.T) {
	entries := []Entry{
		{Label: "INFJ", Value: 0.04},
		{Label: "ENFP", Value: 0.12},
		{Label: "ISTJ", Value: 0.09},
		{Label: "ESTP", Value: 0.01},
		{Label: "INTP", Value: 0.12},
	}

	for _, mode := range []Mode{ByRank, ByValue} {
		t.Run(mode.String(), func(t *testing.T) {
			got, err := Colorize(entries, testSpec(mode))
			require.NoError(t, err)

			accents := 0
			for _, lc := range got {
				if lc.Color == testAccent {
					accents++
					assert.Equal(t, "ENFP", lc.Label)
				}
			}
			assert.Equal(t, 1, accents)
		})
	}
}

func TestColorize_TieBreak_FirstOccurrenceWins(t *testing.T) {
	entries := []Entry{
		{Label: "A", Value: 10},
		{Label: "B", Value: 10},
		{Label: "C", Value: 5},
	}

	got, err := Colorize(entries, testSpec(ByRank))
	require.NoError(t, err)

	a, _ := got.Get("A")
	b, _ := got.Get("B")
	c, _ := got.Get("C")
	assert.Equal(t, testAccent, a)
	assert.Equal(t, testStart, b)
	assert.Equal(t, testEnd, c)
}

func TestColorize_ByValue_AllTied_Midpoint(t *testing.T) {
	entries := []Entry{
		{Label: "A", Value: 5},
		{Label: "B", Value: 5},
		{Label: "C", Value: 5},
	}

	got, err := Colorize(entries, testSpec(ByValue))
	require.NoError(t, err)

	assert.Equal(t, testAccent, got[0].Color)
	assert.Equal(t, testMid, got[1].Color)
	assert.Equal(t, testMid, got[2].Color)
}

func TestColorize_ByRank_Monotonic(t *testing.T) {
	entries := []Entry{
		{Label: "A", Value: 100},
		{Label: "B", Value: 80},
		{Label: "C", Value: 50},
		{Label: "D", Value: 10},
	}

	got, err := Colorize(entries, testSpec(ByRank))
	require.NoError(t, err)

	assert.Equal(t, testAccent, got[0].Color)
	assert.Equal(t, testStart, got[1].Color)
	assert.Equal(t, testMid, got[2].Color)
	assert.Equal(t, testEnd, got[3].Color)

	for i := 2; i < len(got); i++ {
		prev, cur := got[i-1].Color, got[i].Color
		assert.LessOrEqual(t, prev.R, cur.R)
		assert.LessOrEqual(t, prev.G, cur.G)
		assert.LessOrEqual(t, prev.B, cur.B)
	}
}

func TestColorize_ByRank_TwoEntries_NoDivisionByZero(t *testing.T) {
	got, err := Colorize([]Entry{{Label: "A", Value: 1}, {Label: "B", Value: 2}}, testSpec(ByRank))
	require.NoError(t, err)

	assert.Equal(t, testStart, got[0].Color)
	assert.Equal(t, testAccent, got[1].Color)
}

func TestColorize_ByRank_StableAmongEqualValues(t *testing.T) {
	entries := []Entry{
		{Label: "top", Value: 9},
		{Label: "x", Value: 3},
		{Label: "y", Value: 3},
		{Label: "z", Value: 3},
	}

	got, err := Colorize(entries, testSpec(ByRank))
	require.NoError(t, err)

	assert.Equal(t, testStart, got[1].Color)
	assert.Equal(t, testMid, got[2].Color)
	assert.Equal(t, testEnd, got[3].Color)
}

func TestColorize_ByValue_Normalized(t *testing.T) {
	entries := []Entry{
		{Label: "A", Value: 100},
		{Label: "B", Value: 80},
		{Label: "C", Value: 50},
		{Label: "D", Value: 10},
	}

	got, err := Colorize(entries, testSpec(ByValue))
	require.NoError(t, err)

	assert.Equal(t, testAccent, got[0].Color)
	assert.Equal(t, testEnd, got[1].Color)
	assert.Equal(t, RGB{R: 128, G: 177, B: 217}, got[2].Color)
	assert.Equal(t, testStart, got[3].Color)
}

func TestColorize_NegativeValues(t *testing.T) {
	entries := []Entry{
		{Label: "a", Value: -5},
		{Label: "b", Value: -1},
		{Label: "c", Value: -10},
	}

	got, err := Colorize(entries, testSpec(ByRank))
	require.NoError(t, err)

	b, _ := got.Get("b")
	assert.Equal(t, testAccent, b)
}

func TestColorize_PreservesInputOrder(t *testing.T) {
	entries := []Entry{
		{Label: "C", Value: 50},
		{Label: "A", Value: 100},
		{Label: "D", Value: 10},
		{Label: "B", Value: 80},
	}

	got, err := Colorize(entries, testSpec(ByRank))
	require.NoError(t, err)

	labels := make([]string, 0, len(got))
	for _, lc := range got {
		labels = append(labels, lc.Label)
	}
	assert.Equal(t, []string{"C", "A", "D", "B"}, labels)
	assert.Equal(t, []string{"#74aad5", "#e02424", "#c8dcf5", "#1f77b4"}, got.Encode(Hex))
}

func TestColorize_EmptyInput_ReturnsInvalidInput(t *testing.T) {
	got, err := Colorize(nil, testSpec(ByRank))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, got)

	got, err = Colorize([]Entry{}, testSpec(ByValue))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, got)
}

func TestColorize_NonFiniteValue_ReturnsInvalidInput(t *testing.T) {
	cases := map[string]float64{
		"nan":  math.NaN(),
		"+inf": math.Inf(1),
		"-inf": math.Inf(-1),
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Colorize([]Entry{{Label: "ok", Value: 1}, {Label: "bad", Value: v}}, testSpec(ByRank))
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, got)
		})
	}
}

func TestColorize_DuplicateLabel_ReturnsInvalidInput(t *testing.T) {
	_, err := Colorize([]Entry{{Label: "A", Value: 1}, {Label: "A", Value: 2}}, testSpec(ByRank))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), `"A"`)
}

func TestColorize_UnknownMode_ReturnsInvalidInput(t *testing.T) {
	spec := testSpec(Mode(42))
	_, err := Colorize([]Entry{{Label: "A", Value: 1}, {Label: "B", Value: 2}}, spec)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssignment_MapAndGet(t *testing.T) {
	a := Assignment{
		{Label: "x", Color: RGB{R: 1, G: 2, B: 3}},
		{Label: "y", Color: RGB{R: 255, G: 0, B: 16}},
	}

	assert.Equal(t, map[string]string{"x": "rgb(1,2,3)", "y": "rgb(255,0,16)"}, a.Map(RGBFunc))
	assert.Equal(t, []string{"#010203", "#ff0010"}, a.Encode(Hex))

	_, ok := a.Get("missing")
	assert.False(t, ok)
}
