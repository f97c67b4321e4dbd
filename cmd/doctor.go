package cmd

import (
	"fmt"
	"io"
	"strings"

	"rankviz/internal/chart"
	"rankviz/internal/config"
	"rankviz/internal/dashboard"
	"rankviz/internal/dataset"

	"github.com/spf13/cobra"
)

// newDoctorCmd 构建 doctor 命令，一站式诊断配置问题。
// 依次检查：配置合法性、调色板、页面定义文件、页面数据文件。
// 有错误时返回非零退出码，仅警告时返回 0。
func newDoctorCmd() *cobra.Command {
	var pagesFile string
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and pages file issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, pagesFile)
		},
	}
	cmd.Flags().StringVar(&pagesFile, "pages", "", "Pages file to check (default: config value)")
	return cmd
}

// runDoctor 按顺序执行诊断检查，输出使用 ✅/⚠️/❌ 分类显示。
func runDoctor(cmd *cobra.Command, pagesFile string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Running diagnostics...")

	hasError := false

	// 1. 配置合法性
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		printFail(out, "Config", cfgErr.Error())
		return fmt.Errorf("doctor found issues")
	}
	issues := config.ValidateConfig(cfg)
	if len(issues) == 0 {
		printOK(out, "Config", "OK")
	} else {
		hasError = true
		printFail(out, "Config", fmt.Sprintf("%d issue(s)", len(issues)))
		printLines(out, issues)
	}

	// 2. 调色板
	spec, err := cfg.GradientSpec()
	if err != nil {
		hasError = true
		printFail(out, "Palette", err.Error())
	} else {
		printOK(out, "Palette", strings.TrimSuffix(chart.Legend(spec), "\n"))
		if spec.Accent == spec.Start || spec.Accent == spec.End {
			printWarn(out, "Palette", "accent color equals a gradient end; the top entry will not stand out")
		}
	}

	// 3. 页面定义文件
	if strings.TrimSpace(pagesFile) == "" {
		pagesFile = cfg.Dashboards
	}
	if strings.TrimSpace(pagesFile) == "" {
		printWarn(out, "Pages", "skipped (no pages file configured)")
	} else if !checkPages(out, pagesFile) {
		hasError = true
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

// checkPages 检查页面定义文件及其数据文件，返回是否没有错误。
// 数据文件缺失只作为警告。
func checkPages(out io.Writer, pagesFile string) bool {
	path, err := expandPath(pagesFile)
	if err != nil {
		printFail(out, "Pages", err.Error())
		return false
	}

	file, err := dashboard.LoadFile(path)
	if err != nil {
		printFail(out, "Pages", err.Error())
		return false
	}
	if err := file.Validate(); err != nil {
		printFail(out, "Pages", path)
		printLines(out, strings.Split(err.Error(), "\n"))
		return false
	}
	printOK(out, "Pages", fmt.Sprintf("%d page(s) in %s", len(file.Pages), path))

	missing := make([]string, 0)
	for _, p := range file.Pages {
		if _, err := dataset.ResolvePath(p.Paths(file.Dir)); err != nil {
			missing = append(missing, fmt.Sprintf("%s: %v", p.Name, err))
		}
	}
	if len(missing) == 0 {
		printOK(out, "Data files", "OK")
	} else {
		printWarn(out, "Data files", fmt.Sprintf("%d page(s) without data", len(missing)))
		printLines(out, missing)
	}
	return true
}

func init() {
	rootCmd.AddCommand(newDoctorCmd())
}
