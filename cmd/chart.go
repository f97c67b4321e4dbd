package cmd

import (
	"fmt"

	"rankviz/internal/chart"
	"rankviz/internal/config"
	"rankviz/internal/dashboard"

	"github.com/spf13/cobra"
)

type chartOptions struct {
	data  dataOptions
	out   string
	title string
	width int
	line  bool
}

// newChartCmd 构建 chart 命令：在终端绘制条形图，或用 --out 写入图片。
func newChartCmd() *cobra.Command {
	opts := &chartOptions{}
	cmd := &cobra.Command{
		Use:   "chart <file|->",
		Short: "Draw a ranked series as a colored bar or line chart",
		Long: `Draw a ranked series as a horizontal bar chart in the terminal, or with
--out as an image (png, svg, pdf, jpg). Data flags are the same as colorize.

With --line, one value column is drawn over --date-column as a time series;
the highest point gets the accent color.`,
		Example: `  rankviz chart subway.csv --label 역명 --value 승차총승객수 --date-column 사용일자
  rankviz chart subway.csv --label 역명 --value 승차총승객수 --out top10.png --title "Top 10"
  rankviz chart covid.csv --line --date-column 접종일 --value "1차 접종률" --out rate.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, args, opts)
		},
	}

	opts.data.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write an image instead of drawing in the terminal")
	cmd.Flags().StringVar(&opts.title, "title", "", "Chart title (image output)")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Terminal chart width (default: terminal width)")
	cmd.Flags().BoolVar(&opts.line, "line", false, "Draw one value column over --date-column as a line chart")
	return cmd
}

func runChart(cmd *cobra.Command, args []string, opts *chartOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	defaults, err := defaultSpec(cfg)
	if err != nil {
		return err
	}

	if opts.line {
		opts.data.kind = dashboard.KindLine
	}
	page, err := opts.data.page(args[0])
	if err != nil {
		return err
	}
	page.Title = opts.title
	page.Output = opts.out

	res, err := dashboard.Render(cmdContext(cmd), page, defaults, renderOptions(cfg, cmd.InOrStdin()))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Output != "" {
		fmt.Fprintf(out, "wrote %s (%d entries)\n", res.Output, len(res.Entries))
		return nil
	}

	view, err := terminalView(res, opts.width)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, sourceTitle(res))
	fmt.Fprintln(out, view)
	fmt.Fprint(out, chart.Legend(res.Spec))
	return nil
}

func init() {
	rootCmd.AddCommand(newChartCmd())
}
