package dataset

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01-02", "2006.01.02", "2006/01/02", "20060102"}

// ParseDate 解析表格中的日期单元格，支持：
//   - "2025-10-01"、"2025.10.01"、"2025/10/01"
//   - "20251001" 以及以 8 位数字开头的值（如 "20251001.0"）
//   - 周区间 "(2021.03.01~2021.03.07)"，取第一个日期
func ParseDate(s string) (time.Time, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "()")
	if before, _, ok := strings.Cut(s, "~"); ok {
		s = strings.TrimSpace(before)
	}
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	if len(s) > 8 && isDigits(s[:8]) {
		if t, err := time.ParseInLocation("20060102", s[:8], time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// SameDay 返回一个谓词：单元格能解析且与 day 为同一天。
func SameDay(day time.Time) func(cell string) bool {
	y, m, d := day.Date()
	return func(cell string) bool {
		t, err := ParseDate(cell)
		if err != nil {
			return false
		}
		ty, tm, td := t.Date()
		return ty == y && tm == m && td == d
	}
}

// LatestDate 返回 column 列中能解析的最晚日期。
func LatestDate(t *Table, column string) (time.Time, error) {
	col := t.Column(column)
	if col < 0 {
		return time.Time{}, missingColumn(column)
	}

	var latest time.Time
	for _, row := range t.Rows {
		d, err := ParseDate(row[col])
		if err != nil {
			continue
		}
		if d.After(latest) {
			latest = d
		}
	}
	if latest.IsZero() {
		return time.Time{}, fmt.Errorf("column %q has no parsable dates", column)
	}
	return latest, nil
}
