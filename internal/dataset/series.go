package dataset

import (
	"sort"

	"rankviz/internal/colorize"
)

// Total 返回序列数值之和。
func Total(entries []colorize.Entry) float64 {
	sum := 0.0
	for _, e := range entries {
		sum += e.Value
	}
	return sum
}

// Normalize 返回按总和归一化（合计为 1）的新序列。
// 总和不大于 0 时原样拷贝返回。
func Normalize(entries []colorize.Entry) []colorize.Entry {
	out := make([]colorize.Entry, len(entries))
	copy(out, entries)

	sum := Total(entries)
	if sum <= 0 {
		return out
	}
	for i := range out {
		out[i].Value /= sum
	}
	return out
}

// SortDesc 返回按数值降序稳定排序的新序列。
func SortDesc(entries []colorize.Entry) []colorize.Entry {
	out := make([]colorize.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// Top 返回前 n 个条目；n <= 0 时返回全部。
func Top(entries []colorize.Entry, n int) []colorize.Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}
