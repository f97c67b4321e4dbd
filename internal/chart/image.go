package chart

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"rankviz/internal/colorize"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// imageFormats 是 SaveImage 支持的文件扩展名。
var imageFormats = map[string]struct{}{
	".png": {}, ".svg": {}, ".pdf": {}, ".jpg": {}, ".jpeg": {},
}

// ImageOptions 控制图片输出的标题、尺寸和折线颜色。
type ImageOptions struct {
	Title  string
	YLabel string
	// Width/Height 为 0 时按条目数自动计算。
	Width  vg.Length
	Height vg.Length
	// LineColor 是 SaveLine 折线的颜色。
	LineColor colorize.RGB
}

// SaveImage 把条形图写入图片文件，格式由扩展名决定。
// 每个条目一根柱子，按条目顺序排列，颜色取自 colors。
func SaveImage(path string, entries []colorize.Entry, colors colorize.Assignment, opts ImageOptions) error {
	if err := checkMatch(entries, colors); err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: nothing to draw", ErrMismatch)
	}
	if err := checkFormat(path); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	labels := make([]string, 0, len(entries))
	for i, e := range entries {
		bars, err := plotter.NewBarChart(plotter.Values{e.Value}, vg.Points(24))
		if err != nil {
			return fmt.Errorf("bar %q: %w", e.Label, err)
		}
		bars.Color = rgba(colors[i].Color)
		bars.LineStyle.Width = vg.Length(0)
		bars.XMin = float64(i)
		p.Add(bars)
		labels = append(labels, e.Label)
	}
	p.NominalX(labels...)

	return save(p, path, len(entries), opts)
}

// SaveLine 把时间序列画成折线图：dates[i] 是 entries[i] 的横坐标，
// 折线使用 opts.LineColor，每个数据点再按 colors 着色，突出最大值。
func SaveLine(path string, dates []time.Time, entries []colorize.Entry, colors colorize.Assignment, opts ImageOptions) error {
	if err := checkMatch(entries, colors); err != nil {
		return err
	}
	if len(dates) != len(entries) {
		return fmt.Errorf("%w: %d dates, %d entries", ErrMismatch, len(dates), len(entries))
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: nothing to draw", ErrMismatch)
	}
	if err := checkFormat(path); err != nil {
		return err
	}

	xys := make(plotter.XYs, len(entries))
	for i, e := range entries {
		xys[i].X = float64(dates[i].Unix())
		xys[i].Y = e.Value
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.Y.Label.Text = opts.YLabel
	p.X.Tick.Marker = plot.TimeTicks{
		Format: "2006-01-02",
		Time:   func(t float64) time.Time { return time.Unix(int64(t), 0) },
	}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("line: %w", err)
	}
	line.Color = rgba(opts.LineColor)
	line.Width = vg.Points(1.5)

	points, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("points: %w", err)
	}
	points.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: rgba(colors[i].Color), Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
	}
	p.Add(line, points)

	return save(p, path, 0, opts)
}

func checkFormat(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := imageFormats[ext]; !ok {
		return fmt.Errorf("unsupported image format %q (supported: png, svg, pdf, jpg)", ext)
	}
	return nil
}

func rgba(c colorize.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// save 写出图片；bars 是柱子数量，用于估算默认宽度。
func save(p *plot.Plot, path string, bars int, opts ImageOptions) error {
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = max(6*vg.Inch, vg.Length(bars)*0.6*vg.Inch)
	}
	if height == 0 {
		height = 4 * vg.Inch
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
