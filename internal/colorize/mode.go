package colorize

import (
	"fmt"
	"strings"
)

// Mode 决定非第一名条目的插值参数 t 的计算方式。
type Mode int

const (
	// ByRank 按名次计算 t：第二名为 0，最后一名为 1。
	ByRank Mode = iota
	// ByValue 按剩余条目的归一化数值计算 t：最小值为 0，最大值为 1。
	ByValue
)

func (m Mode) String() string {
	switch m {
	case ByRank:
		return "rank"
	case ByValue:
		return "value"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode 解析模式名称，支持 rank/by_rank 与 value/by_value（大小写不敏感）。
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rank", "by_rank", "by-rank":
		return ByRank, nil
	case "value", "by_value", "by-value":
		return ByValue, nil
	default:
		return 0, fmt.Errorf("%w: unsupported mode %q (supported: rank, value)", ErrInvalidInput, s)
	}
}

// Encoding 决定颜色输出给渲染端时的字符串形式。
type Encoding int

const (
	// Hex 输出 #rrggbb。
	Hex Encoding = iota
	// RGBFunc 输出 rgb(r,g,b)。
	RGBFunc
)

func (e Encoding) String() string {
	switch e {
	case Hex:
		return "hex"
	case RGBFunc:
		return "rgb"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding 解析颜色编码名称：hex 或 rgb。
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hex":
		return Hex, nil
	case "rgb":
		return RGBFunc, nil
	default:
		return 0, fmt.Errorf("%w: unsupported color encoding %q (supported: hex, rgb)", ErrInvalidInput, s)
	}
}
