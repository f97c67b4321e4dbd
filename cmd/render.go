package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"rankviz/internal/chart"
	"rankviz/internal/colorize"
	"rankviz/internal/config"
	"rankviz/internal/dashboard"

	"github.com/spf13/cobra"
)

type renderFlags struct {
	pages  []string
	jobs   int
	outDir string
	charts bool
	width  int
}

// newRenderCmd 构建 render 命令：并发渲染页面定义文件中的页面。
// 单个页面失败不会中断其他页面；有失败时命令返回错误。
func newRenderCmd() *cobra.Command {
	opts := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [pages-file]",
		Short: "Render every page of a pages file",
		Long: `Render the pages defined in a TOML or YAML pages file. Without an
argument the "dashboards" config value is used.

Pages render concurrently; a failing page is reported and the others
still render. The command exits non-zero when any page failed.`,
		Example: `  rankviz render pages.toml
  rankviz render pages.yaml --page subway --page mbti --charts
  rankviz render --jobs 2 --out-dir ./charts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.pages, "page", "p", nil, "Only render the named page (repeatable)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "Pages rendered at the same time")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Directory for relative image outputs (default: current directory)")
	cmd.Flags().BoolVar(&opts.charts, "charts", false, "Draw a terminal chart for every rendered page")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Terminal chart width (default: terminal width)")
	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *renderFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	defaults, err := defaultSpec(cfg)
	if err != nil {
		return err
	}

	pagesFile := cfg.Dashboards
	if len(args) == 1 {
		pagesFile = args[0]
	}
	if strings.TrimSpace(pagesFile) == "" {
		return errors.New("no pages file given (pass one or run: rankviz set dashboards <file>)")
	}
	pagesFile, err = expandPath(pagesFile)
	if err != nil {
		return err
	}

	file, err := dashboard.LoadFile(pagesFile)
	if err != nil {
		return err
	}
	if err := file.Validate(); err != nil {
		return err
	}

	pages, err := selectPages(file, opts.pages)
	if err != nil {
		return err
	}

	ropts := renderOptions(cfg, cmd.InOrStdin())
	ropts.BaseDir = file.Dir
	ropts.OutputDir = opts.outDir

	outcomes := dashboard.RenderAll(cmdContext(cmd), pages, defaults, ropts, opts.jobs)

	out := cmd.OutOrStdout()
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			printFail(out, o.Page, o.Err.Error())
			errs = append(errs, o.Err)
			continue
		}

		printOK(out, o.Page, renderSummary(o.Result))
		if opts.charts {
			view, err := terminalView(o.Result, opts.width)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, view)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d page(s) failed: %w", len(errs), len(outcomes), errors.Join(errs...))
	}
	return nil
}

func renderSummary(res *dashboard.Result) string {
	s := fmt.Sprintf("%d entries from %s", len(res.Entries), sourceTitle(res))
	if len(res.Entries) > 0 {
		top := topEntry(res)
		s += fmt.Sprintf(", top %s = %s", top.Label, chart.FormatValue(top.Value))
	}
	if res.Output != "" {
		s += " → " + res.Output
	}
	return s
}

// terminalView 按页面类型绘制终端图表。
func terminalView(res *dashboard.Result, width int) (string, error) {
	if res.Kind == dashboard.KindLine {
		return chart.TerminalLine(res.Dates, res.Entries, res.Colors, res.Spec.Start, width)
	}
	return chart.Terminal(res.Entries, res.Colors, width)
}

// topEntry 返回第一个取得最大值的条目，也就是使用强调色的条目。
func topEntry(res *dashboard.Result) colorize.Entry {
	top := res.Entries[0]
	for _, e := range res.Entries[1:] {
		if e.Value > top.Value {
			top = e
		}
	}
	return top
}

func selectPages(file *dashboard.File, names []string) ([]dashboard.Page, error) {
	if len(names) == 0 {
		return file.Pages, nil
	}
	pages := make([]dashboard.Page, 0, len(names))
	for _, name := range names {
		p, ok := file.Find(name)
		if !ok {
			return nil, fmt.Errorf("page %q not found", name)
		}
		pages = append(pages, p)
	}
	return pages, nil
}

// expandPath 展开 ~ 并转换为绝对路径。
func expandPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Abs(p)
}

func init() {
	rootCmd.AddCommand(newRenderCmd())
}
