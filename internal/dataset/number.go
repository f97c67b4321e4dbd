package dataset

import (
	"math"
	"strconv"
	"strings"
)

var numberCleaner = strings.NewReplacer(",", "", " ", "", "\u00a0", "")

// ParseNumber 把单元格转成数值。
// 去掉千分位逗号、空白和结尾的 %；空值、非数值以及 NaN/Inf 一律返回 0。
func ParseNumber(s string) float64 {
	s = numberCleaner.Replace(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
