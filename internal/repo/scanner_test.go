package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkRepoDir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(path, ".git"), 0o755))
}

func TestScanRepos_Basic(t *testing.T) {
	tmpDir := t.TempDir()

	repo1 := filepath.Join(tmpDir, "repo1")
	repo2 := filepath.Join(tmpDir, "subdir", "repo2")
	mkRepoDir(t, repo1)
	mkRepoDir(t, repo2)
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "not-a-repo"), 0o755))

	repos, err := ScanRepos(tmpDir, -1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{repo1, repo2}, repos)
}

func TestScanRepos_DoesNotDescendIntoRepo(t *testing.T) {
	tmpDir := t.TempDir()

	outer := filepath.Join(tmpDir, "outer")
	mkRepoDir(t, outer)
	mkRepoDir(t, filepath.Join(outer, "nested"))

	repos, err := ScanRepos(tmpDir, -1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{outer}, repos)
}

func TestScanRepos_DepthLimit(t *testing.T) {
	tmpDir := t.TempDir()
	mkRepoDir(t, filepath.Join(tmpDir, "a", "b", "c", "repo"))

	repos, err := ScanRepos(tmpDir, 2, nil)
	require.NoError(t, err)
	assert.Empty(t, repos)

	repos, err = ScanRepos(tmpDir, 4, nil)
	require.NoError(t, err)
	assert.Len(t, repos, 1)
}

func TestScanRepos_Excludes(t *testing.T) {
	tmpDir := t.TempDir()

	mkRepoDir(t, filepath.Join(tmpDir, "excluded", "repo"))
	included := filepath.Join(tmpDir, "included", "repo")
	mkRepoDir(t, included)
	mkRepoDir(t, filepath.Join(tmpDir, "project", "build", "repo"))

	repos, err := ScanRepos(tmpDir, -1, []string{"excluded", " ", "project/build"})
	require.NoError(t, err)
	assert.Equal(t, []string{included}, repos)
}

func TestScanRepos_DefaultExcludes(t *testing.T) {
	tmpDir := t.TempDir()

	mkRepoDir(t, filepath.Join(tmpDir, "project", "node_modules", "some-pkg"))
	normal := filepath.Join(tmpDir, "project", "src")
	mkRepoDir(t, normal)

	repos, err := ScanRepos(tmpDir, -1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{normal}, repos)
}

func TestScanRepos_NotADirectory(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("test"), 0o644))

	_, err := ScanRepos(filePath, -1, nil)
	require.Error(t, err)
}

func TestScanRepos_NonExistent(t *testing.T) {
	_, err := ScanRepos("/non/existent/path", -1, nil)
	require.Error(t, err)
}

func TestDisplayPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, "~", DisplayPath(home))
	assert.Equal(t, filepath.Join("~", "code", "x"), DisplayPath(filepath.Join(home, "code", "x")))
	assert.Equal(t, "/elsewhere/x", DisplayPath("/elsewhere/x"))
}
