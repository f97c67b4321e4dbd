package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rankviz/internal/config"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// withTempHome 把 HOME 指向临时目录，并关闭状态行颜色。
func withTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })
	return home
}

func setTestConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	require.NoError(t, config.Save(cfg))
}

// executeCommand 执行命令，返回 stdout 和 stderr。
func executeCommand(t *testing.T, c *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errBuf bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&errBuf)
	c.SetIn(strings.NewReader(stdin))
	c.SetArgs(args)

	err := c.Execute()
	return out.String(), errBuf.String(), err
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

const subwayCSV = `사용일자,노선명,역명,승차총승객수,하차총승객수
20251001,2호선,강남,100,120
20251002,2호선,강남,10,10
20251002,2호선,잠실,30,20
20251002,1호선,서울역,5,5
`

const mbtiCSV = `Country,INFJ,ENFP,ISTJ
Korea,1,3,4
Japan,2,1,1
`

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

		sig := &object.Signature{
			Name:  "Test",
			Email: email,
			When:  when.Add(time.Duration(i) * time.Minute),
		}
		_, err = wt.Commit("test commit", &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
	}
}
