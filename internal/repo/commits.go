package repo

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"rankviz/internal/colorize"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// maxConcurrency 是并发处理仓库的最大数量，默认为 CPU 核心数。
var maxConcurrency = runtime.NumCPU()

// CommitCounts 并发统计每个仓库从 HEAD 可达的提交数。
//   - emails: 作者邮箱过滤（大小写不敏感），为空时统计所有提交
//   - since: 只统计作者时间不早于 since 的提交，零值表示不限
//
// 部分仓库失败时，返回成功仓库的结果以及聚合后的错误。
func CommitCounts(repos []string, emails []string, since time.Time) (map[string]int, error) {
	emailSet := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			emailSet[email] = struct{}{}
		}
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex // 保护 out 和 errs
		errs []error
	)
	out := make(map[string]int, len(repos))

	bar := newRepoProgressBar(len(repos))
	if bar != nil {
		defer func() { _ = bar.Finish() }()
	}

	sem := make(chan struct{}, maxConcurrency)
	for _, repoPath := range repos {
		wg.Add(1)
		go func(repoPath string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			n, err := countRepo(repoPath, since, emailSet)

			mu.Lock()
			defer mu.Unlock()
			if bar != nil {
				_ = bar.Add(1)
			}
			if err != nil {
				errs = append(errs, err)
				return
			}
			out[repoPath] = n
		}(repoPath)
	}
	wg.Wait()

	return out, errors.Join(errs...)
}

// newRepoProgressBar 仅在仓库数 > 1 且 stderr 是终端时创建进度条。
func newRepoProgressBar(total int) *progressbar.ProgressBar {
	if total <= 1 || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}

	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("counting commits"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
}

func countRepo(repoPath string, since time.Time, emailSet map[string]struct{}) (int, error) {
	r, err := git.PlainOpen(repoPath)
	if err != nil {
		return 0, fmt.Errorf("open repo %s: %w", repoPath, err)
	}

	ref, err := r.Head()
	if err != nil {
		return 0, fmt.Errorf("head repo %s: %w", repoPath, err)
	}

	iter, err := r.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return 0, fmt.Errorf("log repo %s: %w", repoPath, err)
	}
	defer iter.Close()

	n := 0
	err = iter.ForEach(func(c *object.Commit) error {
		// 提交按时间倒序遍历，早于 since 即可停止
		if !since.IsZero() && c.Author.When.Before(since) {
			return storer.ErrStop
		}
		if len(emailSet) > 0 {
			if _, ok := emailSet[strings.ToLower(c.Author.Email)]; !ok {
				return nil
			}
		}
		n++
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return 0, fmt.Errorf("iterate repo %s: %w", repoPath, err)
	}
	return n, nil
}

// Series 把提交数转换为排名序列：按提交数倒序，相同时按路径升序。
// label 用于把仓库路径转换为展示名称，为 nil 时直接使用路径。
func Series(counts map[string]int, label func(string) string) []colorize.Entry {
	paths := make([]string, 0, len(counts))
	for p := range counts {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if counts[paths[i]] != counts[paths[j]] {
			return counts[paths[i]] > counts[paths[j]]
		}
		return paths[i] < paths[j]
	})

	out := make([]colorize.Entry, 0, len(paths))
	for _, p := range paths {
		name := p
		if label != nil {
			name = label(p)
		}
		out = append(out, colorize.Entry{Label: name, Value: float64(counts[p])})
	}
	return out
}
