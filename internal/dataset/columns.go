package dataset

import (
	"strings"
)

// Matcher 判断一个列名是否匹配。
type Matcher func(column string) bool

// Exact 匹配完全相同的列名。
func Exact(name string) Matcher {
	return func(column string) bool { return column == name }
}

// Contains 匹配包含子串的列名。
func Contains(sub string) Matcher {
	return func(column string) bool { return strings.Contains(column, sub) }
}

// HasPrefix 匹配以 prefix 开头的列名。
func HasPrefix(prefix string) Matcher {
	return func(column string) bool { return strings.HasPrefix(column, prefix) }
}

// AnyOf 在任意一个子 Matcher 匹配时返回 true。
func AnyOf(ms ...Matcher) Matcher {
	return func(column string) bool {
		for _, m := range ms {
			if m(column) {
				return true
			}
		}
		return false
	}
}

// Rule 把满足 Match 的列归入 Role。
type Rule struct {
	Role  string
	Match Matcher
}

// RuleSet 是有序的列识别规则；对每一列，第一条匹配的规则生效。
type RuleSet []Rule

// Classify 按规则对表头分类，返回 role -> 列名列表（保持表头顺序）。
// 没有匹配任何规则的列不会出现在结果中。
func (rs RuleSet) Classify(header []string) map[string][]string {
	out := make(map[string][]string)
	for _, column := range header {
		for _, r := range rs {
			if r.Match(column) {
				out[r.Role] = append(out[r.Role], column)
				break
			}
		}
	}
	return out
}

// VaccinationRules 识别疫苗接种统计表中的比率、累计和人数列。
var VaccinationRules = RuleSet{
	{Role: "rate", Match: Contains("접종률")},
	{Role: "cumulative", Match: Contains("누계")},
	{Role: "count", Match: AnyOf(Contains("접종자 수"), Contains("접종대상자"))},
}

// MBTITypes 是 16 种 MBTI 类型的规范顺序。
var MBTITypes = []string{
	"INFJ", "ISFJ", "INTP", "ISFP", "ENTP", "INFP", "ENTJ", "ISTP",
	"INTJ", "ESFP", "ESTJ", "ENFP", "ESTP", "ISTJ", "ENFJ", "ESFJ",
}

// OrderColumns 先按 canonical 顺序列出表头中存在的列，
// 再按表头顺序追加其余列；exclude 中的列始终跳过。
func OrderColumns(header, canonical, exclude []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	skip := make(map[string]struct{}, len(exclude)+len(canonical))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}

	out := make([]string, 0, len(header))
	for _, c := range canonical {
		if _, ok := skip[c]; ok {
			continue
		}
		if _, ok := present[c]; ok {
			out = append(out, c)
			skip[c] = struct{}{}
		}
	}
	for _, h := range header {
		if _, ok := skip[h]; ok {
			continue
		}
		out = append(out, h)
		skip[h] = struct{}{}
	}
	return out
}
