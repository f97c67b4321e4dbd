package dataset

import (
	"strings"
)

// Table 是一个二维字符串表格，第一行作为表头单独保存。
type Table struct {
	Header []string
	Rows   [][]string
}

// newTable 清理表头（去空白、去 BOM），并把短行补齐到表头长度。
func newTable(records [][]string) *Table {
	if len(records) == 0 {
		return &Table{}
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlankRecord(rec) {
			continue
		}
		row := make([]string, len(header))
		copy(row, rec)
		rows = append(rows, row)
	}
	return &Table{Header: header, Rows: rows}
}

func isBlankRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Column 返回列名对应的下标，不存在时返回 -1。
func (t *Table) Column(name string) int {
	name = strings.TrimSpace(name)
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell 返回指定行列的单元格，越界时返回空串。
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// FilterRows 返回满足 pred 的行组成的新表，表头共享。
func (t *Table) FilterRows(column string, pred func(cell string) bool) (*Table, error) {
	col := t.Column(column)
	if col < 0 {
		return nil, missingColumn(column)
	}

	out := &Table{Header: t.Header}
	for _, row := range t.Rows {
		if pred(row[col]) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
