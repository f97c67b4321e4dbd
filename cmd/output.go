package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"rankviz/internal/chart"
	"rankviz/internal/colorize"

	"gopkg.in/yaml.v3"
)

// colorRow 是一行输出：条目、数值和编码后的颜色。
type colorRow struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
}

func colorRows(entries []colorize.Entry, colors colorize.Assignment, enc colorize.Encoding) []colorRow {
	encoded := colors.Encode(enc)
	rows := make([]colorRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, colorRow{Label: e.Label, Value: e.Value, Color: encoded[i]})
	}
	return rows
}

// writeColors 按 format 输出配色结果；title 只用于 table 格式。
func writeColors(out io.Writer, format, title string, entries []colorize.Entry, colors colorize.Assignment, enc colorize.Encoding) error {
	rows := colorRows(entries, colors, enc)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return writeColorsTable(out, title, rows, colors)
	case "json":
		e := json.NewEncoder(out)
		e.SetIndent("", "  ")
		return e.Encode(rows)
	case "csv":
		return writeColorsCSV(out, rows)
	case "yaml":
		e := yaml.NewEncoder(out)
		defer e.Close()
		e.SetIndent(2)
		return e.Encode(rows)
	default:
		return fmt.Errorf("unsupported format %q (supported: table, json, csv, yaml)", format)
	}
}

func writeColorsTable(out io.Writer, title string, rows []colorRow, colors colorize.Assignment) error {
	labelWidth := len("Label")
	valueWidth := len("Value")
	colorWidth := len("Color")
	values := make([]string, 0, len(rows))
	for _, r := range rows {
		labelWidth = max(labelWidth, utf8.RuneCountInString(r.Label))
		v := chart.FormatValue(r.Value)
		values = append(values, v)
		valueWidth = max(valueWidth, len(v))
		colorWidth = max(colorWidth, len(r.Color))
	}
	rankWidth := max(len(fmt.Sprintf("%d", len(rows))), 2)

	lineLen := rankWidth + 3 + labelWidth + 1 + valueWidth + 2 + colorWidth + 3
	rule := strings.Repeat("─", lineLen)

	if title != "" {
		fmt.Fprintln(out, title)
	}
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%*s   %s %*s  %-*s\n", rankWidth, "#", padRight("Label", labelWidth), valueWidth, "Value", colorWidth, "Color")
	fmt.Fprintln(out, rule)
	for i, r := range rows {
		fmt.Fprintf(out, "%*d   %s %*s  %-*s %s\n", rankWidth, i+1, padRight(r.Label, labelWidth), valueWidth, values[i], colorWidth, r.Color, chart.Swatch(colors[i].Color))
	}
	fmt.Fprintln(out, rule)
	return nil
}

// padRight 按字符数（而非字节数）补齐到 width。
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func writeColorsCSV(out io.Writer, rows []colorRow) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"label", "value", "color"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Label, chart.FormatValue(r.Value), r.Color}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
