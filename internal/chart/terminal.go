package chart

import (
	"fmt"
	"os"
	"time"

	"rankviz/internal/colorize"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// defaultWidth 是无法获取终端宽度时使用的图表宽度。
const defaultWidth = 80

// Terminal 渲染水平条形图，每根条使用各自的配色。
// width <= 0 时使用当前终端宽度。
func Terminal(entries []colorize.Entry, colors colorize.Assignment, width int) (string, error) {
	if err := checkMatch(entries, colors); err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", nil
	}
	if width <= 0 {
		width = terminalWidth()
	}

	barData := make([]barchart.BarData, 0, len(entries))
	for i, e := range entries {
		barData = append(barData, barchart.BarData{
			Label: fmt.Sprintf("%s (%s)", e.Label, FormatValue(e.Value)),
			Values: []barchart.BarValue{
				{Name: e.Label, Value: e.Value, Style: colorStyle(colors[i].Color)},
			},
		})
	}

	bc := barchart.New(width, len(barData)*2, barchart.WithDataSet(barData), barchart.WithHorizontalBars())
	bc.Draw()
	return bc.View(), nil
}

// TerminalLine 在终端绘制时间序列折线，dates[i] 是 entries[i] 的横坐标。
// 折线使用 line 颜色，图下方用对应配色标出最大值所在的日期。
func TerminalLine(dates []time.Time, entries []colorize.Entry, colors colorize.Assignment, line colorize.RGB, width int) (string, error) {
	if err := checkMatch(entries, colors); err != nil {
		return "", err
	}
	if len(dates) != len(entries) {
		return "", fmt.Errorf("%w: %d dates, %d entries", ErrMismatch, len(dates), len(entries))
	}
	if len(entries) == 0 {
		return "", nil
	}
	if width <= 0 {
		width = terminalWidth()
	}

	// 标签格式化按 UTC 输出，这里把日期固定到 UTC 零点
	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	first, last := days[0], days[len(days)-1]
	if !last.After(first) {
		last = first.AddDate(0, 0, 1)
	}

	peak := 0
	lo, hi := entries[0].Value, entries[0].Value
	for i, e := range entries {
		if e.Value > entries[peak].Value {
			peak = i
		}
		lo, hi = min(lo, e.Value), max(hi, e.Value)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	lc := timeserieslinechart.New(width, max(10, width/6),
		timeserieslinechart.WithTimeRange(first, last),
		timeserieslinechart.WithYRange(lo, hi),
		timeserieslinechart.WithStyle(colorStyle(line)),
		timeserieslinechart.WithLineStyle(runes.ThinLineStyle),
	)
	for i, e := range entries {
		lc.Push(timeserieslinechart.TimePoint{Time: days[i], Value: e.Value})
	}
	lc.DrawBraille()

	mark := colorStyle(colors[peak].Color).Render(fmt.Sprintf("peak %s (%s)", entries[peak].Label, FormatValue(entries[peak].Value)))
	return lc.View() + "\n" + mark, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func colorStyle(c colorize.RGB) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}

// Swatch 返回一个用指定颜色绘制的色块。
func Swatch(c colorize.RGB) string {
	return colorStyle(c).Render("██")
}
