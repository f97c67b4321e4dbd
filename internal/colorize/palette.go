package colorize

import (
	"sort"
	"strings"
)

// DefaultPreset 是未指定调色板时使用的预设名称。
const DefaultPreset = "blue"

// presets 是内置调色板：强调色 + 渐变起止色。
var presets = map[string]Spec{
	// 鲜红第一名，深蓝到浅蓝
	"blue": {
		Accent: MustParseColor("#e02424"),
		Start:  RGB{R: 31, G: 119, B: 180},
		End:    RGB{R: 200, G: 220, B: 245},
	},
	"subway": {
		Accent: MustParseColor("#ff0000"),
		Start:  MustParseColor("#0033cc"),
		End:    MustParseColor("#cce5ff"),
	},
	"vaccine": {
		Accent: MustParseColor("#ff0000"),
		Start:  MustParseColor("#2c7bb6"),
		End:    MustParseColor("#f0f9e8"),
	},
}

// Preset 返回指定名称的调色板（大小写不敏感），Mode 为 ByRank。
func Preset(name string) (Spec, bool) {
	spec, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return spec, ok
}

// DefaultSpec 返回默认调色板。
func DefaultSpec() Spec {
	spec, _ := Preset(DefaultPreset)
	return spec
}

// PresetNames 返回所有预设名称，按字典序排列。
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
