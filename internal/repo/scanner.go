package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanRepos 在 root 下递归查找包含 .git 的目录。
//   - depth: 最大递归深度，-1 表示不限
//   - excludes: 按目录名或路径（相对 root 或绝对路径）排除，node_modules 总是被排除
//
// 找到仓库后不再深入其子目录；符号链接目录会被跳过。返回结果按路径排序。
func ScanRepos(root string, depth int, excludes []string) ([]string, error) {
	rootPath, err := normalizePath(root)
	if err != nil {
		return nil, err
	}

	st, err := os.Stat(rootPath)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", rootPath)
	}

	s := &scanner{
		root:     rootPath,
		limit:    depth,
		excludes: cleanExcludes(append(excludes, defaultExcludes...)),
		seen:     make(map[string]struct{}),
	}
	if err := s.walk(rootPath, 0); err != nil {
		return nil, err
	}

	sort.Strings(s.found)
	return s.found, nil
}

var defaultExcludes = []string{"node_modules"}

type scanner struct {
	root     string
	limit    int
	excludes []string
	seen     map[string]struct{}
	found    []string
}

func (s *scanner) walk(dir string, depth int) error {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		if _, ok := s.seen[dir]; !ok {
			s.seen[dir] = struct{}{}
			s.found = append(s.found, dir)
		}
		return nil
	}

	if s.limit >= 0 && depth >= s.limit {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// 没有权限的目录直接跳过
		if errors.Is(err, os.ErrPermission) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() || entry.Type()&os.ModeSymlink != 0 || entry.Name() == ".git" {
			continue
		}
		child := filepath.Join(dir, entry.Name())
		if s.excluded(child, entry.Name()) {
			continue
		}
		if err := s.walk(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *scanner) excluded(path, name string) bool {
	path = filepath.Clean(path)
	sep := string(os.PathSeparator)

	for _, ex := range s.excludes {
		if ex == name {
			return true
		}
		if expanded, err := normalizePath(ex); err == nil && (ex == "~" || strings.HasPrefix(ex, "~/")) {
			ex = expanded
		}

		exPath := ex
		if !filepath.IsAbs(exPath) {
			exPath = filepath.Join(s.root, filepath.Clean(ex))
		}
		if path == exPath || strings.HasPrefix(path, exPath+sep) {
			return true
		}
	}
	return false
}

func cleanExcludes(excludes []string) []string {
	out := make([]string, 0, len(excludes))
	for _, ex := range excludes {
		if ex = strings.TrimSpace(ex); ex != "" {
			out = append(out, ex)
		}
	}
	return out
}

// normalizePath 去空白、展开 ~，并转换为清理后的绝对路径。
func normalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("empty path")
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// DisplayPath 把家目录下的路径缩写为 ~ 开头的形式。
func DisplayPath(p string) string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return p
	}

	home = filepath.Clean(home)
	p = filepath.Clean(p)
	if p == home {
		return "~"
	}
	if strings.HasPrefix(p, home+string(os.PathSeparator)) {
		return "~" + p[len(home):]
	}
	return p
}
