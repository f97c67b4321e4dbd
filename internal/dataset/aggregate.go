package dataset

import (
	"fmt"
	"strings"

	"rankviz/internal/colorize"
)

func missingColumn(name string) error {
	return fmt.Errorf("column %q not found", name)
}

func (t *Table) columnIndexes(names []string) ([]int, error) {
	idx := make([]int, 0, len(names))
	for _, name := range names {
		i := t.Column(name)
		if i < 0 {
			return nil, missingColumn(name)
		}
		idx = append(idx, i)
	}
	return idx, nil
}

// SumBy 按 key 列分组，对每组累加 values 各列的数值之和。
// 结果按分组首次出现的顺序排列；空白 key 的行被跳过。
func SumBy(t *Table, key string, values []string) ([]colorize.Entry, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no value columns given")
	}
	keyIdx := t.Column(key)
	if keyIdx < 0 {
		return nil, missingColumn(key)
	}
	valueIdx, err := t.columnIndexes(values)
	if err != nil {
		return nil, err
	}

	positions := make(map[string]int)
	out := make([]colorize.Entry, 0)
	for _, row := range t.Rows {
		label := strings.TrimSpace(row[keyIdx])
		if label == "" {
			continue
		}

		sum := 0.0
		for _, vi := range valueIdx {
			sum += ParseNumber(row[vi])
		}

		pos, ok := positions[label]
		if !ok {
			positions[label] = len(out)
			out = append(out, colorize.Entry{Label: label, Value: sum})
			continue
		}
		out[pos].Value += sum
	}
	return out, nil
}

// RowSeries 选出 keyCol 等于 key 的第一行，把 columns 中每一列转成一个条目。
func RowSeries(t *Table, keyCol, key string, columns []string) ([]colorize.Entry, error) {
	keyIdx := t.Column(keyCol)
	if keyIdx < 0 {
		return nil, missingColumn(keyCol)
	}
	colIdx, err := t.columnIndexes(columns)
	if err != nil {
		return nil, err
	}

	key = strings.TrimSpace(key)
	for _, row := range t.Rows {
		if strings.TrimSpace(row[keyIdx]) == key {
			return rowEntries(row, columns, colIdx), nil
		}
	}
	return nil, fmt.Errorf("no row with %s = %q", keyCol, key)
}

// SingleRowSeries 把表中唯一一行的 columns 各列转成条目。
// 表中行数不是 1 时返回错误，通常在按日期过滤之后使用。
func SingleRowSeries(t *Table, columns []string) ([]colorize.Entry, error) {
	colIdx, err := t.columnIndexes(columns)
	if err != nil {
		return nil, err
	}
	switch len(t.Rows) {
	case 1:
		return rowEntries(t.Rows[0], columns, colIdx), nil
	case 0:
		return nil, fmt.Errorf("no rows left to build a series from")
	default:
		return nil, fmt.Errorf("expected a single row, got %d", len(t.Rows))
	}
}

func rowEntries(row, columns []string, colIdx []int) []colorize.Entry {
	out := make([]colorize.Entry, 0, len(columns))
	for i, ci := range colIdx {
		out = append(out, colorize.Entry{Label: columns[i], Value: ParseNumber(row[ci])})
	}
	return out
}

// DistinctValues 返回某列去重后的非空值，保持首次出现顺序。
func DistinctValues(t *Table, column string) ([]string, error) {
	idx := t.Column(column)
	if idx < 0 {
		return nil, missingColumn(column)
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, row := range t.Rows {
		v := strings.TrimSpace(row[idx])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}
