package colorize

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB 表示一个显示颜色，三个通道都是 [0,255] 内的整数。
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Hex 返回小写的 #rrggbb 形式。
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBString 返回 rgb(r,g,b) 形式。
func (c RGB) RGBString() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Format 按指定编码输出颜色字符串。
func (c RGB) Format(enc Encoding) string {
	if enc == RGBFunc {
		return c.RGBString()
	}
	return c.Hex()
}

// String 实现 fmt.Stringer，默认使用 hex 编码。
func (c RGB) String() string {
	return c.Hex()
}

// ParseColor 解析颜色字符串，支持：
//   - "#rgb" / "#rrggbb"（大小写均可，# 可省略）
//   - "rgb(r, g, b)"，每个通道为 0-255 的整数
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, fmt.Errorf("%w: empty color", ErrInvalidInput)
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		return parseRGBFunc(lower)
	}

	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return RGB{}, fmt.Errorf("%w: invalid color %q", ErrInvalidInput, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: invalid color %q", ErrInvalidInput, s)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MustParseColor 与 ParseColor 相同，解析失败时 panic。
// 仅用于包级常量形式的调色板定义。
func MustParseColor(s string) RGB {
	c, err := ParseColor(s)
	if err != nil {
		panic("MustParseColor: " + err.Error())
	}
	return c
}

func parseRGBFunc(s string) (RGB, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("%w: invalid color %q", ErrInvalidInput, s)
	}

	var ch [3]uint8
	for i, p := range parts {
		var v int
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &v); err != nil {
			return RGB{}, fmt.Errorf("%w: invalid channel %q in %q", ErrInvalidInput, p, s)
		}
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("%w: channel %d out of range in %q", ErrInvalidInput, v, s)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// Lerp 在 a 与 b 之间按 t 做逐通道线性插值。
// t 先被限制到 [0,1]；每个通道四舍五入后再截断到 [0,255]。
func Lerp(a, b RGB, t float64) RGB {
	switch {
	case math.IsNaN(t) || t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return RGB{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	return clampChannel(math.Round(v))
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
