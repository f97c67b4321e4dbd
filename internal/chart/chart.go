// Package chart 把排名序列和配色结果渲染成终端条形图、图片或图例。
package chart

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"rankviz/internal/colorize"
)

// ErrMismatch 表示配色结果与条目不是一一对应（数量、标签或顺序不同）。
var ErrMismatch = errors.New("entries and colors do not match")

func checkMatch(entries []colorize.Entry, colors colorize.Assignment) error {
	if len(entries) != len(colors) {
		return fmt.Errorf("%w: %d entries, %d colors", ErrMismatch, len(entries), len(colors))
	}
	for i, e := range entries {
		if colors[i].Label != e.Label {
			return fmt.Errorf("%w: entry %d is %q, color is for %q", ErrMismatch, i, e.Label, colors[i].Label)
		}
	}
	return nil
}

// FormatValue 以紧凑形式输出数值：整数不带小数，其余使用最短表示。
func FormatValue(v float64) string {
	if math.Abs(v) < 1<<53 && v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
