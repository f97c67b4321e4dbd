package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"rankviz/internal/cache"
	"rankviz/internal/colorize"
	"rankviz/internal/config"
	"rankviz/internal/dashboard"
	"rankviz/internal/dataset"

	"github.com/spf13/pflag"
)

// stdinPath 表示从标准输入读取 label,value 数据。
const stdinPath = "-"

// dataOptions 是 colorize 与 chart 共用的数据和配色参数。
type dataOptions struct {
	label      string
	values     []string
	valueRule  string
	selectExpr string
	dateColumn string
	date       string
	normalize  bool
	sort       bool
	top        int

	palette string
	accent  string
	start   string
	end     string
	mode    string

	inputEncodings []string
	sheet          string

	// kind 不对应命令行参数，由 chart --line 设置。
	kind string
}

func (o *dataOptions) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.label, "label", "l", "", "Column whose values become labels (rows are grouped by it)")
	fs.StringArrayVar(&o.values, "value", nil, "Numeric column to sum (repeatable)")
	fs.StringVar(&o.valueRule, "value-rule", "", "Pick value columns automatically: all, mbti, rate, cumulative, count")
	fs.StringVar(&o.selectExpr, "select", "", "Keep rows where column=value; without --label one entry per value column")
	fs.StringVar(&o.dateColumn, "date-column", "", "Column holding dates; keeps a single day")
	fs.StringVar(&o.date, "date", "", "Day to keep (default: latest day in --date-column)")
	fs.BoolVar(&o.normalize, "normalize", false, "Divide values by their sum")
	fs.BoolVar(&o.sort, "sort", true, "Sort entries by value, descending")
	fs.IntVarP(&o.top, "top", "n", 0, "Keep the first N entries (0: config value, -1: all)")

	fs.StringVar(&o.palette, "palette", "", "Palette preset (default: config value)")
	fs.StringVar(&o.accent, "accent", "", "Accent color for the top entry (#rrggbb or rgb(r,g,b))")
	fs.StringVar(&o.start, "start", "", "Gradient start color")
	fs.StringVar(&o.end, "end", "", "Gradient end color")
	fs.StringVar(&o.mode, "mode", "", "Gradient mode: rank or value (default: config value)")

	fs.StringArrayVar(&o.inputEncodings, "input-encoding", nil, "CSV encoding to try (repeatable, default: config value)")
	fs.StringVar(&o.sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
}

// page 把命令行参数转换成一个临时页面定义。
func (o *dataOptions) page(file string) (dashboard.Page, error) {
	p := dashboard.Page{
		Name:       file,
		File:       file,
		Encodings:  o.inputEncodings,
		Sheet:      o.sheet,
		Kind:       o.kind,
		Label:      o.label,
		Values:     o.values,
		ValueRule:  o.valueRule,
		DateColumn: o.dateColumn,
		Date:       o.date,
		Normalize:  o.normalize,
		Sort:       o.sort,
		Top:        o.top,
		Palette:    o.palette,
		Accent:     o.accent,
		Start:      o.start,
		End:        o.end,
		Mode:       o.mode,
	}

	if file == stdinPath {
		p.Name = "stdin"
		if p.Label == "" {
			p.Label = "label"
		}
		if len(p.Values) == 0 && p.ValueRule == "" {
			p.Values = []string{"value"}
		}
	}

	if strings.TrimSpace(o.selectExpr) != "" {
		column, value, ok := strings.Cut(o.selectExpr, "=")
		if !ok || strings.TrimSpace(column) == "" {
			return dashboard.Page{}, fmt.Errorf("invalid --select %q (want column=value)", o.selectExpr)
		}
		p.Select = &dashboard.Select{Column: strings.TrimSpace(column), Equals: strings.TrimSpace(value)}
	}

	if err := p.Validate(); err != nil {
		return dashboard.Page{}, err
	}
	return p, nil
}

// renderOptions 根据用户配置构造渲染参数。
func renderOptions(cfg *config.Config, stdin io.Reader) dashboard.Options {
	encodings := cfg.Encodings
	if len(encodings) == 0 {
		encodings = dataset.DefaultEncodings
	}

	return dashboard.Options{
		Encodings: encodings,
		Top:       cfg.Top,
		Loader: func(opts dataset.LoadOptions) (*dataset.Table, dataset.Source, error) {
			if len(opts.Candidates) == 1 && opts.Candidates[0] == stdinPath {
				return readPairs(stdin, opts.Encodings)
			}
			return cachedLoad(opts)
		},
	}
}

// cachedLoad 在加载 CSV 前优先尝试上次检测到的编码，成功后更新缓存。
func cachedLoad(opts dataset.LoadOptions) (*dataset.Table, dataset.Source, error) {
	path, err := dataset.ResolvePath(opts.Candidates)
	if err != nil {
		return nil, dataset.Source{}, err
	}
	opts.Candidates = []string{path}
	if len(opts.Encodings) == 0 {
		opts.Encodings = dataset.DefaultEncodings
	}

	key, keyErr := cache.KeyFor(path)
	if keyErr == nil {
		if entry, err := cache.Load(key); err == nil {
			slog.Debug("cached encoding", "path", path, "encoding", entry.Encoding)
			opts.Encodings = cache.PreferEncoding(opts.Encodings, entry.Encoding)
		}
	}

	tbl, src, err := dataset.Load(opts)
	if err != nil {
		return nil, dataset.Source{}, err
	}

	if keyErr == nil && src.Encoding != "" {
		if err := cache.Save(key, src.Encoding); err != nil {
			slog.Debug("save encoding cache", "path", path, "err", err)
		}
	}
	return tbl, src, nil
}

// readPairs 读取 label,value 两列数据；第一行的值不是数字时视为表头并跳过。
func readPairs(r io.Reader, encodings []string) (*dataset.Table, dataset.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, dataset.Source{}, err
	}
	text, used, err := dataset.Decode(data, encodings)
	if err != nil {
		return nil, dataset.Source{}, err
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, dataset.Source{}, fmt.Errorf("parse stdin: %w", err)
	}

	tbl := &dataset.Table{Header: []string{"label", "value"}}
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, dataset.Source{}, fmt.Errorf("stdin line %d: want label,value", i+1)
		}
		if i == 0 && !isNumber(rec[1]) {
			continue
		}
		tbl.Rows = append(tbl.Rows, []string{strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])})
	}
	return tbl, dataset.Source{Path: stdinPath, Encoding: used, Format: "csv"}, nil
}

func isNumber(s string) bool {
	s = strings.NewReplacer(",", "", " ", "", "%", "").Replace(s)
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// defaultSpec 返回配置中的配色参数。
func defaultSpec(cfg *config.Config) (colorize.Spec, error) {
	spec, err := cfg.GradientSpec()
	if err != nil {
		return colorize.Spec{}, fmt.Errorf("config: %w", err)
	}
	return spec, nil
}

// colorEncoding 返回输出使用的颜色编码：flag 优先，其次配置。
func colorEncoding(flagValue string, cfg *config.Config) (colorize.Encoding, error) {
	if strings.TrimSpace(flagValue) != "" {
		return colorize.ParseEncoding(flagValue)
	}
	return colorize.ParseEncoding(cfg.ColorEncoding)
}
