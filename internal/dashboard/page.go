package dashboard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"rankviz/internal/colorize"
	"rankviz/internal/config"
	"rankviz/internal/dataset"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// 值列的自动识别规则。
const (
	RuleAll        = "all"
	RuleMBTI       = "mbti"
	RuleRate       = "rate"
	RuleCumulative = "cumulative"
	RuleCount      = "count"
)

var valueRules = []string{RuleAll, RuleMBTI, RuleRate, RuleCumulative, RuleCount}

// 页面图表类型。
const (
	KindBar  = "bar"
	KindLine = "line"
)

// Select 选出 Column 等于 Equals 的行。
type Select struct {
	Column string `toml:"column" yaml:"column"`
	Equals string `toml:"equals" yaml:"equals"`
}

// Page 是一个图表页面的定义。
//
// 条形图页面（默认）：Label 非空时按 Label 分组累加 Values；Label 为空时，
// 由 Select 选中的一行、或按日期过滤后剩下的唯一一行，每个值列成为一个条目。
//
// 折线图页面（kind = "line"）：以 DateColumn 为横轴画唯一一个值列，
// 忽略 Date、Normalize、Sort 和 Top。
type Page struct {
	Name       string   `toml:"name" yaml:"name"`
	Title      string   `toml:"title" yaml:"title"`
	File       string   `toml:"file" yaml:"file"`
	Candidates []string `toml:"candidates" yaml:"candidates"`
	Encodings  []string `toml:"encodings" yaml:"encodings"`
	Sheet      string   `toml:"sheet" yaml:"sheet"`
	Kind       string   `toml:"kind" yaml:"kind"`

	Label     string   `toml:"label" yaml:"label"`
	Values    []string `toml:"values" yaml:"values"`
	ValueRule string   `toml:"value_rule" yaml:"value_rule"`
	Select    *Select  `toml:"select" yaml:"select"`

	DateColumn string `toml:"date_column" yaml:"date_column"`
	// Date 为空时使用 DateColumn 中最晚的日期。
	Date string `toml:"date" yaml:"date"`

	Normalize bool `toml:"normalize" yaml:"normalize"`
	Sort      bool `toml:"sort" yaml:"sort"`
	// Top > 0 保留前 N 项，< 0 保留全部，0 使用默认值。
	Top int `toml:"top" yaml:"top"`

	Palette string `toml:"palette" yaml:"palette"`
	Accent  string `toml:"accent" yaml:"accent"`
	Start   string `toml:"start" yaml:"start"`
	End     string `toml:"end" yaml:"end"`
	Mode    string `toml:"mode" yaml:"mode"`

	Output string `toml:"output" yaml:"output"`
}

// File 是页面定义文件。
type File struct {
	Pages []Page `toml:"pages" yaml:"pages"`

	// Dir 是定义文件所在目录，用于解析相对路径。
	Dir string `toml:"-" yaml:"-"`
}

// LoadFile 读取 .toml / .yaml / .yml 页面定义文件。
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported pages file %s (use .toml, .yaml or .yml)", path)
	}

	f.Dir = filepath.Dir(path)
	return &f, nil
}

// Validate 检查所有页面，返回合并后的错误。
func (f *File) Validate() error {
	if len(f.Pages) == 0 {
		return errors.New("no pages defined")
	}

	var errs []error
	seen := make(map[string]struct{}, len(f.Pages))
	for i, p := range f.Pages {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("page #%d: name is required", i+1))
			continue
		}
		if _, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf("page %q: duplicate name", name))
			continue
		}
		seen[name] = struct{}{}

		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("page %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Find 按名称查找页面。
func (f *File) Find(name string) (Page, bool) {
	for _, p := range f.Pages {
		if p.Name == name {
			return p, true
		}
	}
	return Page{}, false
}

// Validate 检查单个页面的定义是否完整。
func (p Page) Validate() error {
	var errs []error
	if strings.TrimSpace(p.File) == "" && len(p.Candidates) == 0 {
		errs = append(errs, errors.New("file or candidates is required"))
	}
	switch p.Kind {
	case "", KindBar:
		if strings.TrimSpace(p.Label) == "" && p.Select == nil && p.DateColumn == "" {
			errs = append(errs, errors.New("label, select or date_column is required"))
		}
	case KindLine:
		if p.DateColumn == "" {
			errs = append(errs, errors.New("line pages require date_column"))
		}
		if len(p.Values) > 1 {
			errs = append(errs, fmt.Errorf("line pages take a single value column, got %d", len(p.Values)))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q (supported: %s, %s)", p.Kind, KindBar, KindLine))
	}
	if p.Select != nil && strings.TrimSpace(p.Select.Column) == "" {
		errs = append(errs, errors.New("select.column is required"))
	}
	if len(p.Values) == 0 && p.ValueRule == "" {
		errs = append(errs, errors.New("values or value_rule is required"))
	}
	if p.ValueRule != "" && !slices.Contains(valueRules, p.ValueRule) {
		errs = append(errs, fmt.Errorf("unknown value_rule %q (supported: %s)", p.ValueRule, strings.Join(valueRules, ", ")))
	}
	if p.Date != "" {
		if p.DateColumn == "" {
			errs = append(errs, errors.New("date requires date_column"))
		}
		if _, err := dataset.ParseDate(p.Date); err != nil {
			errs = append(errs, err)
		}
	}
	if len(p.Encodings) > 0 {
		if err := dataset.ValidateEncodings(p.Encodings); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := p.GradientSpec(colorize.DefaultSpec()); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// GradientSpec 在 defaults 基础上应用页面的调色板、颜色覆盖和模式。
func (p Page) GradientSpec(defaults colorize.Spec) (colorize.Spec, error) {
	return config.BuildSpec(p.Palette, p.Accent, p.Start, p.End, p.Mode, defaults)
}

// IsLine 报告页面是否为折线图。
func (p Page) IsLine() bool {
	return p.Kind == KindLine
}

// DisplayTitle 返回页面标题，未设置时使用名称。
func (p Page) DisplayTitle() string {
	if strings.TrimSpace(p.Title) != "" {
		return p.Title
	}
	return p.Name
}

// Paths 返回数据文件候选路径（File 在前），相对路径基于 dir 解析。
func (p Page) Paths(dir string) []string {
	paths := make([]string, 0, len(p.Candidates)+1)
	if strings.TrimSpace(p.File) != "" {
		paths = append(paths, p.File)
	}
	paths = append(paths, p.Candidates...)

	for i, c := range paths {
		c = strings.TrimSpace(c)
		if dir != "" && c != "" && !filepath.IsAbs(c) && !strings.HasPrefix(c, "~") {
			c = filepath.Join(dir, c)
		}
		paths[i] = c
	}
	return paths
}

// valueColumns 返回要聚合的值列：显式 Values 优先，否则按 ValueRule 从表头识别。
func (p Page) valueColumns(header []string) ([]string, error) {
	if len(p.Values) > 0 {
		return p.Values, nil
	}

	exclude := []string{p.Label, p.DateColumn}
	if p.Select != nil {
		exclude = append(exclude, p.Select.Column)
	}

	var cols []string
	switch p.ValueRule {
	case RuleAll:
		cols = dataset.OrderColumns(header, nil, exclude)
	case RuleMBTI:
		types := make(map[string]struct{}, len(dataset.MBTITypes))
		for _, t := range dataset.MBTITypes {
			types[t] = struct{}{}
		}
		for _, c := range dataset.OrderColumns(header, dataset.MBTITypes, exclude) {
			if _, ok := types[c]; ok {
				cols = append(cols, c)
			}
		}
	case RuleRate, RuleCumulative, RuleCount:
		for _, c := range dataset.VaccinationRules.Classify(header)[p.ValueRule] {
			if !slices.Contains(exclude, c) {
				cols = append(cols, c)
			}
		}
	default:
		return nil, fmt.Errorf("unknown value_rule %q", p.ValueRule)
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("value_rule %q matched no columns", p.ValueRule)
	}
	return cols, nil
}
