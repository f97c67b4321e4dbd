// Package logging 基于 log/slog 配置 rankviz 的结构化日志。
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup 根据 --verbose/--quiet 配置默认 logger，输出到 stderr。
//
//   - quiet:   仅 ERROR
//   - 默认:    WARN 及以上
//   - verbose: DEBUG 及以上
//
// quiet 优先于 verbose。
func Setup(verbose, quiet bool) {
	SetupWriter(os.Stderr, verbose, quiet)
}

// SetupWriter 与 Setup 相同，但写入 w。
func SetupWriter(w io.Writer, verbose, quiet bool) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(verbose, quiet),
	})
	slog.SetDefault(slog.New(handler))
}

// Level 返回标志组合对应的日志级别。
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}
