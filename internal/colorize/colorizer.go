package colorize

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidInput 表示输入不满足前置条件：空序列、非有限数值或重复标签。
var ErrInvalidInput = errors.New("invalid input")

// Entry 是排名序列中的一项。
type Entry struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Spec 描述一次配色所需的全部参数。
type Spec struct {
	Accent RGB
	Start  RGB
	End    RGB
	Mode   Mode
}

// LabelColor 是单个标签的配色结果。
type LabelColor struct {
	Label string
	Color RGB
}

// Assignment 是配色结果，顺序与输入条目一致。
type Assignment []LabelColor

// Get 返回指定标签的颜色。
func (a Assignment) Get(label string) (RGB, bool) {
	for _, lc := range a {
		if lc.Label == label {
			return lc.Color, true
		}
	}
	return RGB{}, false
}

// Encode 按输入顺序返回编码后的颜色字符串列表。
func (a Assignment) Encode(enc Encoding) []string {
	out := make([]string, 0, len(a))
	for _, lc := range a {
		out = append(out, lc.Color.Format(enc))
	}
	return out
}

// Map 返回 label -> 编码后颜色 的映射。
func (a Assignment) Map(enc Encoding) map[string]string {
	out := make(map[string]string, len(a))
	for _, lc := range a {
		out[lc.Label] = lc.Color.Format(enc)
	}
	return out
}

// Colorize 为每个条目分配颜色。
//
// 第一个取得最大值的条目（按输入顺序）获得 spec.Accent；
// 其余条目根据 spec.Mode 计算 t ∈ [0,1]，再在 spec.Start 与 spec.End 之间插值：
//   - ByRank: 剩余条目按值稳定降序排列，第 i 个的 t = i / max(1, n-1)
//   - ByValue: t = (v - min) / (max - min)，剩余值全部相等时 t = 0.5
//
// 返回结果保持输入顺序。输入为空、包含 NaN/Inf 或标签重复时返回 ErrInvalidInput。
func Colorize(entries []Entry, spec Spec) (Assignment, error) {
	if err := validate(entries); err != nil {
		return nil, err
	}

	out := make(Assignment, len(entries))
	for i, e := range entries {
		out[i].Label = e.Label
	}

	top := topIndex(entries)
	out[top].Color = spec.Accent
	if len(entries) == 1 {
		return out, nil
	}

	rest := make([]int, 0, len(entries)-1)
	for i := range entries {
		if i != top {
			rest = append(rest, i)
		}
	}

	var ts map[int]float64
	switch spec.Mode {
	case ByRank:
		ts = rankParams(entries, rest)
	case ByValue:
		ts = valueParams(entries, rest)
	default:
		return nil, fmt.Errorf("%w: unsupported mode %v", ErrInvalidInput, spec.Mode)
	}

	for _, idx := range rest {
		out[idx].Color = Lerp(spec.Start, spec.End, ts[idx])
	}
	return out, nil
}

func validate(entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return fmt.Errorf("%w: non-finite value %v for %q", ErrInvalidInput, e.Value, e.Label)
		}
		if _, ok := seen[e.Label]; ok {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidInput, e.Label)
		}
		seen[e.Label] = struct{}{}
	}
	return nil
}

// topIndex 返回第一个取得最大值的下标。
func topIndex(entries []Entry) int {
	top := 0
	for i := 1; i < len(entries); i++ {
		if entries[i].Value > entries[top].Value {
			top = i
		}
	}
	return top
}

func rankParams(entries []Entry, rest []int) map[int]float64 {
	order := make([]int, len(rest))
	copy(order, rest)
	sort.SliceStable(order, func(i, j int) bool {
		return entries[order[i]].Value > entries[order[j]].Value
	})

	denom := float64(max(1, len(order)-1))
	ts := make(map[int]float64, len(order))
	for i, idx := range order {
		ts[idx] = float64(i) / denom
	}
	return ts
}

func valueParams(entries []Entry, rest []int) map[int]float64 {
	lo := entries[rest[0]].Value
	hi := lo
	for _, idx := range rest[1:] {
		v := entries[idx].Value
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	ts := make(map[int]float64, len(rest))
	for _, idx := range rest {
		if hi == lo {
			ts[idx] = 0.5
			continue
		}
		ts[idx] = (entries[idx].Value - lo) / (hi - lo)
	}
	return ts
}
