package cmd

import (
	"testing"

	"rankviz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_NoArgs_ShowsDefaults(t *testing.T) {
	withTempHome(t)

	out, _, err := executeCommand(t, newSetCmd(), "")
	require.NoError(t, err)
	assert.Equal(t, `palette: blue
accent: (palette)
gradient_start: (palette)
gradient_end: (palette)
mode: rank
color_encoding: hex
top: 10
encodings: utf-8, cp949, euc-kr, latin1
dashboards: (none)
`, out)
}

func TestSet_UpdatesAndNormalizes(t *testing.T) {
	withTempHome(t)

	steps := [][]string{
		{"palette", "Subway"},
		{"accent", "#F80"},
		{"gradient_end", "rgb(1, 2, 3)"},
		{"mode", "by_value"},
		{"color_encoding", "RGB"},
		{"top", "5"},
		{"encodings", "cp949, utf-8,"},
		{"dashboards", "~/pages.toml"},
	}
	for _, args := range steps {
		out, _, err := executeCommand(t, newSetCmd(), "", args...)
		require.NoError(t, err, args)
		assert.Equal(t, args[0]+" updated\n", out)
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Palette:       "subway",
		Accent:        "#ff8800",
		GradientStart: "",
		GradientEnd:   "#010203",
		Mode:          "value",
		ColorEncoding: "rgb",
		Top:           5,
		Encodings:     []string{"cp949", "utf-8"},
		Dashboards:    "~/pages.toml",
	}, *cfg)

	// 空值清除颜色覆盖
	_, _, err = executeCommand(t, newSetCmd(), "", "accent", "")
	require.NoError(t, err)
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Accent)
}

func TestSet_InvalidValues(t *testing.T) {
	withTempHome(t)

	cases := map[string][]string{
		"unknown palette":     {"palette", "rainbow"},
		"invalid accent":      {"accent", "red"},
		"unsupported mode":    {"mode", "median"},
		"unsupported color":   {"color_encoding", "hsl"},
		"top must be >= 0":    {"top", "-1"},
		"invalid top":         {"top", "ten"},
		"unknown encoding":    {"encodings", "klingon"},
		"encodings cannot be": {"encodings", " , "},
		"unsupported key":     {"months", "3"},
	}
	for want, args := range cases {
		_, _, err := executeCommand(t, newSetCmd(), "", args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), want, args)
	}

	_, _, err := executeCommand(t, newSetCmd(), "", "palette")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: rankviz set")
}
