package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rankviz/internal/colorize"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createRepoWithCommits 在 path 创建仓库并提交 commits 次，每次间隔一分钟。
func createRepoWithCommits(t *testing.T, path string, commits int, email string, when time.Time) {
	t.Helper()

	require.NoError(t, os.MkdirAll(path, 0o755))
	r, err := git.PlainInit(path, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	for i := 0; i < commits; i++ {
		content := []byte(fmt.Sprintf("commit %d\n", i))
		require.NoError(t, os.WriteFile(filepath.Join(path, "file.txt"), content, 0o644))

		_, err := wt.Add("file.txt")
		require.NoError(t, err)

		sig := &object.Signature{Name: "Test", Email: email, When: when.Add(time.Duration(i) * time.Minute)}
		_, err = wt.Commit("test commit", &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
	}
}

func TestCommitCounts_CountsPerRepo(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)

	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	createRepoWithCommits(t, a, 3, "dev@example.com", base)
	createRepoWithCommits(t, b, 5, "dev@example.com", base)

	counts, err := CommitCounts([]string{a, b}, nil, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{a: 3, b: 5}, counts)
}

func TestCommitCounts_EmailFilterAndSince(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)

	mine := filepath.Join(dir, "mine")
	theirs := filepath.Join(dir, "theirs")
	createRepoWithCommits(t, mine, 4, "Me@Example.com", base)
	createRepoWithCommits(t, theirs, 2, "other@example.com", base)

	counts, err := CommitCounts([]string{mine, theirs}, []string{" me@example.com "}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{mine: 4, theirs: 0}, counts)

	// 只统计 base+2min 之后的提交
	counts, err = CommitCounts([]string{mine}, nil, base.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, counts[mine])
}

func TestCommitCounts_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good")
	createRepoWithCommits(t, good, 1, "dev@example.com", time.Now())
	missing := filepath.Join(dir, "missing")

	counts, err := CommitCounts([]string{good, missing}, nil, time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
	assert.Equal(t, map[string]int{good: 1}, counts)
}

func TestSeries_SortedByCountThenPath(t *testing.T) {
	counts := map[string]int{"/repo/z": 5, "/repo/a": 5, "/repo/m": 9, "/repo/q": 0}

	got := Series(counts, nil)
	assert.Equal(t, []colorize.Entry{
		{Label: "/repo/m", Value: 9},
		{Label: "/repo/a", Value: 5},
		{Label: "/repo/z", Value: 5},
		{Label: "/repo/q", Value: 0},
	}, got)

	got = Series(map[string]int{"/repo/a": 1}, filepath.Base)
	assert.Equal(t, "a", got[0].Label)
}
