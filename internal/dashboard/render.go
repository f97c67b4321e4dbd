package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"rankviz/internal/chart"
	"rankviz/internal/colorize"
	"rankviz/internal/dataset"

	"golang.org/x/sync/errgroup"
)

// Loader 加载页面的数据表；默认使用 dataset.Load。
type Loader func(opts dataset.LoadOptions) (*dataset.Table, dataset.Source, error)

// Options 是渲染时的公共参数。
type Options struct {
	// BaseDir 用于解析页面中的相对数据路径，通常是定义文件所在目录。
	BaseDir string
	// OutputDir 用于解析页面中的相对输出路径，为空时相对于当前目录。
	OutputDir string
	// Encodings 是页面未指定编码时使用的候选编码。
	Encodings []string
	// Top 是页面 top 为 0 时的默认值，0 表示保留全部。
	Top    int
	Loader Loader
}

// Result 是单个页面的渲染结果。
type Result struct {
	Page    string              `json:"page" yaml:"page"`
	Title   string              `json:"title" yaml:"title"`
	Kind    string              `json:"kind" yaml:"kind"`
	Date    string              `json:"date,omitempty" yaml:"date,omitempty"`
	Entries []colorize.Entry    `json:"entries" yaml:"entries"`
	Colors  colorize.Assignment `json:"-" yaml:"-"`
	Spec    colorize.Spec       `json:"-" yaml:"-"`
	// Dates 仅折线图页面使用，与 Entries 一一对应。
	Dates  []time.Time    `json:"-" yaml:"-"`
	Source dataset.Source `json:"source" yaml:"source"`
	Output string         `json:"output,omitempty" yaml:"output,omitempty"`
}

// Outcome 是 RenderAll 中单个页面的结果；Err 非空时 Result 为 nil。
type Outcome struct {
	Page   string
	Result *Result
	Err    error
}

// Render 渲染单个页面：
// 校验 → 加载数据 → 日期过滤 → 行选择 → 聚合 → 归一化 → 排序/截取 → 配色 → 写图片（设置了 Output 时）。
// 折线图页面在加载后改为构造时间序列。
func Render(ctx context.Context, page Page, defaults colorize.Spec, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("page %q: %w", page.Name, err)
	}

	spec, err := page.GradientSpec(defaults)
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", page.Name, err)
	}

	loader := opts.Loader
	if loader == nil {
		loader = dataset.Load
	}
	encodings := page.Encodings
	if len(encodings) == 0 {
		encodings = opts.Encodings
	}

	tbl, src, err := loader(dataset.LoadOptions{
		Candidates: page.Paths(opts.BaseDir),
		Encodings:  encodings,
		Sheet:      page.Sheet,
	})
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", page.Name, err)
	}
	slog.Debug("page data loaded", "page", page.Name, "path", src.Path, "encoding", src.Encoding, "rows", len(tbl.Rows))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Page: page.Name, Title: page.DisplayTitle(), Kind: KindBar, Source: src, Spec: spec}
	var yLabel string
	if page.IsLine() {
		res.Kind = KindLine
		yLabel, err = lineSeries(tbl, page, res)
	} else {
		err = barSeries(tbl, page, opts.Top, res)
	}
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", page.Name, err)
	}

	colors, err := colorize.Colorize(res.Entries, spec)
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", page.Name, err)
	}
	res.Colors = colors

	if page.Output != "" {
		out := page.Output
		if opts.OutputDir != "" && !filepath.IsAbs(out) {
			out = filepath.Join(opts.OutputDir, out)
		}
		imgOpts := chart.ImageOptions{Title: res.Title, YLabel: yLabel, LineColor: spec.Start}
		if page.IsLine() {
			err = chart.SaveLine(out, res.Dates, res.Entries, colors, imgOpts)
		} else {
			err = chart.SaveImage(out, res.Entries, colors, imgOpts)
		}
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", page.Name, err)
		}
		res.Output = out
	}

	slog.Debug("page rendered", "page", page.Name, "kind", res.Kind, "entries", len(res.Entries))
	return res, nil
}

// barSeries 填充条形图页面的 Entries 和 Date。
func barSeries(tbl *dataset.Table, page Page, defaultTop int, res *Result) error {
	if page.DateColumn != "" {
		day, err := resolveDate(tbl, page)
		if err != nil {
			return err
		}
		if tbl, err = tbl.FilterRows(page.DateColumn, dataset.SameDay(day)); err != nil {
			return err
		}
		res.Date = day.Format("2006-01-02")
	}

	entries, err := aggregate(tbl, page)
	if err != nil {
		return err
	}

	if page.Normalize {
		entries = dataset.Normalize(entries)
	}
	if page.Sort {
		entries = dataset.SortDesc(entries)
	}
	top := page.Top
	if top == 0 {
		top = defaultTop
	}
	res.Entries = dataset.Top(entries, top)
	return nil
}

// lineSeries 填充折线图页面的 Entries、Dates 和 Date（最后一个点的日期），返回值列名。
func lineSeries(tbl *dataset.Table, page Page, res *Result) (string, error) {
	tbl, err := selectRows(tbl, page.Select)
	if err != nil {
		return "", err
	}
	values, err := page.valueColumns(tbl.Header)
	if err != nil {
		return "", err
	}
	if len(values) != 1 {
		return "", fmt.Errorf("line pages take a single value column, %d matched: %s", len(values), strings.Join(values, ", "))
	}

	points, err := dataset.TimeSeries(tbl, page.DateColumn, values[0])
	if err != nil {
		return "", err
	}
	res.Entries = dataset.PointEntries(points)
	res.Dates = make([]time.Time, 0, len(points))
	for _, pt := range points {
		res.Dates = append(res.Dates, pt.Date)
	}
	res.Date = res.Entries[len(res.Entries)-1].Label
	return values[0], nil
}

func resolveDate(tbl *dataset.Table, page Page) (time.Time, error) {
	if strings.TrimSpace(page.Date) == "" {
		return dataset.LatestDate(tbl, page.DateColumn)
	}
	return dataset.ParseDate(page.Date)
}

// aggregate 把（已按日期过滤的）表转换成条目：
//   - Label 非空：先按 Select 过滤，再按 Label 分组累加
//   - Label 为空且设置了 Select：选中行的每个值列一个条目
//   - 两者都为空：表中必须只剩一行（通常是最新日期那一行）
func aggregate(tbl *dataset.Table, page Page) ([]colorize.Entry, error) {
	values, err := page.valueColumns(tbl.Header)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(page.Label) != "" {
		if tbl, err = selectRows(tbl, page.Select); err != nil {
			return nil, err
		}
		return dataset.SumBy(tbl, page.Label, values)
	}

	switch {
	case page.Select != nil:
		return dataset.RowSeries(tbl, page.Select.Column, page.Select.Equals, values)
	case page.DateColumn != "":
		return dataset.SingleRowSeries(tbl, values)
	default:
		return nil, errors.New("label, select or date_column is required")
	}
}

func selectRows(tbl *dataset.Table, sel *Select) (*dataset.Table, error) {
	if sel == nil {
		return tbl, nil
	}
	want := strings.TrimSpace(sel.Equals)
	return tbl.FilterRows(sel.Column, func(cell string) bool {
		return strings.TrimSpace(cell) == want
	})
}

// RenderAll 并发渲染多个页面，最多同时渲染 limit 个（<= 0 表示不限制）。
// 单个页面失败只记录在对应的 Outcome 中，不影响其他页面；结果按页面顺序返回。
func RenderAll(ctx context.Context, pages []Page, defaults colorize.Spec, opts Options, limit int) []Outcome {
	outcomes := make([]Outcome, len(pages))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, page := range pages {
		g.Go(func() error {
			res, err := Render(ctx, page, defaults, opts)
			if err != nil {
				slog.Info("page failed", "page", page.Name, "err", err)
			}
			outcomes[i] = Outcome{Page: page.Name, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
