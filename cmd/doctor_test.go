package cmd

import (
	"path/filepath"
	"testing"

	"rankviz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctor_Defaults_AllOK(t *testing.T) {
	withTempHome(t)

	out, _, err := executeCommand(t, newDoctorCmd(), "")
	require.NoError(t, err)

	assert.Contains(t, out, "Running diagnostics...")
	assert.Contains(t, out, "✅ Config: OK")
	assert.Contains(t, out, "✅ Palette: Top")
	assert.Contains(t, out, "#e02424")
	assert.Contains(t, out, "⚠️  Pages: skipped (no pages file configured)")
}

func TestDoctor_InvalidConfig_ReturnsError(t *testing.T) {
	withTempHome(t)
	setTestConfig(t, config.Config{
		Palette:       "blue",
		Mode:          "median",
		ColorEncoding: "hex",
		Top:           10,
		Encodings:     []string{"utf-8"},
	})

	out, _, err := executeCommand(t, newDoctorCmd(), "")
	require.Error(t, err)
	assert.Contains(t, out, "❌ Config: 1 issue(s)")
	assert.Contains(t, out, "   - mode:")
	assert.Contains(t, out, "❌ Palette:")
}

func TestDoctor_AccentEqualsGradient_WarnOnly(t *testing.T) {
	withTempHome(t)
	setTestConfig(t, config.Config{
		Palette:       "blue",
		Accent:        "#1f77b4",
		Mode:          "rank",
		ColorEncoding: "hex",
		Top:           10,
		Encodings:     []string{"utf-8"},
	})

	out, _, err := executeCommand(t, newDoctorCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "⚠️  Palette: accent color equals a gradient end")
}

func TestDoctor_PagesFile(t *testing.T) {
	withTempHome(t)
	dir := writePagesDir(t)

	out, _, err := executeCommand(t, newDoctorCmd(), "", "--pages", filepath.Join(dir, "pages.toml"))
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Pages: 3 page(s) in "+filepath.Join(dir, "pages.toml"))
	assert.Contains(t, out, "⚠️  Data files: 1 page(s) without data")
	assert.Contains(t, out, "   - missing: data file not found")
}

func TestDoctor_InvalidPagesFile_ReturnsError(t *testing.T) {
	withTempHome(t)
	dir := t.TempDir()
	bad := filepath.Join(dir, "pages.yaml")
	writeFile(t, bad, []byte("pages:\n  - name: a\n  - name: a\n"))

	out, _, err := executeCommand(t, newDoctorCmd(), "", "--pages", bad)
	require.Error(t, err)
	assert.Contains(t, out, "❌ Pages: "+bad)
	assert.Contains(t, out, `page "a": duplicate name`)

	_, _, err = executeCommand(t, newDoctorCmd(), "", "--pages", filepath.Join(dir, "none.toml"))
	require.Error(t, err)
}
