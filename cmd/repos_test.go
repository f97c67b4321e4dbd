package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepos_RankedAndColored(t *testing.T) {
	home := withTempHome(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	createRepoWithCommits(t, filepath.Join(home, "code", "repo-a"), 3, "me@example.com", base)
	createRepoWithCommits(t, filepath.Join(home, "code", "repo-b"), 1, "me@example.com", base)
	createRepoWithCommits(t, filepath.Join(home, "code", "repo-c"), 2, "other@example.com", base)

	out, _, err := executeCommand(t, newReposCmd(), "", filepath.Join(home, "code"), "-f", "json", "--since", "2025-01-01")
	require.NoError(t, err)

	var rows []colorRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows), "output=%s", out)
	assert.Equal(t, []colorRow{
		{Label: "~/code/repo-a", Value: 3, Color: "#e02424"},
		{Label: "~/code/repo-c", Value: 2, Color: "#1f77b4"},
		{Label: "~/code/repo-b", Value: 1, Color: "#c8dcf5"},
	}, rows)
}

func TestRepos_EmailFilterAndTop(t *testing.T) {
	home := withTempHome(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	createRepoWithCommits(t, filepath.Join(home, "code", "repo-a"), 3, "me@example.com", base)
	createRepoWithCommits(t, filepath.Join(home, "code", "repo-b"), 1, "me@example.com", base)
	createRepoWithCommits(t, filepath.Join(home, "code", "repo-c"), 2, "other@example.com", base)

	out, _, err := executeCommand(t, newReposCmd(), "", filepath.Join(home, "code"), "-e", "ME@example.com", "-n", "1", "-f", "csv")
	require.NoError(t, err)
	assert.Equal(t, "label,value,color\n~/code/repo-a,3,#e02424\n", out)
}

func TestRepos_NothingFound(t *testing.T) {
	home := withTempHome(t)

	out, _, err := executeCommand(t, newReposCmd(), "", home)
	require.NoError(t, err)
	assert.Equal(t, "no repositories found\n", out)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	createRepoWithCommits(t, filepath.Join(home, "code", "repo-a"), 1, "me@example.com", base)

	out, _, err = executeCommand(t, newReposCmd(), "", home, "-e", "nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, "no commits found\n", out)

	_, _, err = executeCommand(t, newReposCmd(), "", home, "--since", "yesterday")
	require.Error(t, err)
}
