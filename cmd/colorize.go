package cmd

import (
	"context"
	"fmt"
	"strings"

	"rankviz/internal/chart"
	"rankviz/internal/config"
	"rankviz/internal/dashboard"

	"github.com/spf13/cobra"
)

type colorizeOptions struct {
	data     dataOptions
	encoding string
	format   string
	legend   bool
}

// newColorizeCmd 构建 colorize 命令：加载数据，输出每个条目的颜色。
// 用法: rankviz colorize <file|-> [--label col --value col...] [-f format]
func newColorizeCmd() *cobra.Command {
	opts := &colorizeOptions{}
	cmd := &cobra.Command{
		Use:   "colorize <file|->",
		Short: "Assign highlight and gradient colors to a ranked series",
		Long: `Load a CSV/XLSX file (or label,value pairs from stdin with "-"),
aggregate it into a ranked series and print the color of every entry.

The first entry holding the maximum value gets the accent color; the others
get a gradient color by rank or by value.`,
		Example: `  rankviz colorize subway.csv --label 역명 --value 승차총승객수 --value 하차총승객수 --date-column 사용일자
  rankviz colorize mbti.csv --select Country=Korea --value-rule mbti --normalize -f json
  printf 'a,1\nb,3\nc,2\n' | rankviz colorize - --encoding rgb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColorize(cmd, args, opts)
		},
	}

	opts.data.register(cmd.Flags())
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "Color encoding: hex or rgb (default: config value)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table/json/csv/yaml")
	cmd.Flags().BoolVar(&opts.legend, "legend", true, "Print the palette legend after the table")
	return cmd
}

func runColorize(cmd *cobra.Command, args []string, opts *colorizeOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	enc, err := colorEncoding(opts.encoding, cfg)
	if err != nil {
		return err
	}
	defaults, err := defaultSpec(cfg)
	if err != nil {
		return err
	}

	page, err := opts.data.page(args[0])
	if err != nil {
		return err
	}

	res, err := dashboard.Render(cmdContext(cmd), page, defaults, renderOptions(cfg, cmd.InOrStdin()))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := writeColors(out, opts.format, sourceTitle(res), res.Entries, res.Colors, enc); err != nil {
		return err
	}
	if opts.legend && isTableFormat(opts.format) {
		fmt.Fprint(out, chart.Legend(res.Spec))
	}
	return nil
}

// sourceTitle 描述结果的数据来源，例如 "subway.csv (cp949, 2025-10-01)"。
func sourceTitle(res *dashboard.Result) string {
	details := make([]string, 0, 2)
	if res.Source.Encoding != "" {
		details = append(details, res.Source.Encoding)
	}
	if res.Date != "" {
		details = append(details, res.Date)
	}
	if len(details) == 0 {
		return res.Source.Path
	}
	return fmt.Sprintf("%s (%s)", res.Source.Path, strings.Join(details, ", "))
}

func isTableFormat(format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	return format == "" || format == "table"
}

// cmdContext 返回命令的 context，直接调用 RunE 时可能为 nil。
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.AddCommand(newColorizeCmd())
}
