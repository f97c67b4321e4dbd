package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"rankviz/internal/colorize"
	"rankviz/internal/config"
	"rankviz/internal/dataset"

	"github.com/spf13/cobra"
)

// setKeys 是 set 支持的配置项，按显示顺序排列。
var setKeys = []string{"palette", "accent", "gradient_start", "gradient_end", "mode", "color_encoding", "top", "encodings", "dashboards"}

// newSetCmd 构建 set 命令，用于查看或修改默认配置。
// 支持两种模式：
// 1. rankviz set - 显示当前配置
// 2. rankviz set <key> <value> - 设置配置项
func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set or show default configuration",
		Long: `View or modify default configuration.

Without arguments, displays the current configuration.
With key/value, sets the specified option. An empty value ("") clears a
color override so the palette color is used again.

Keys: ` + strings.Join(setKeys, ", "),
		Example: `  rankviz set
  rankviz set palette subway
  rankviz set accent "#ff8800"
  rankviz set mode value
  rankviz set encodings cp949,utf-8
  rankviz set dashboards ~/pages.toml`,
		Args: validateSetArgs,
		RunE: runSet,
	}
}

// validateSetArgs 校验 set 参数格式。
func validateSetArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || len(args) == 2 {
		return nil
	}
	return fmt.Errorf("usage: rankviz set [%s] <value>", strings.Join(setKeys, "|"))
}

// runSet 显示配置，或校验并写入单个配置项。
func runSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	}

	key := strings.TrimSpace(args[0])
	val := strings.TrimSpace(args[1])

	switch key {
	case "palette":
		if _, ok := colorize.Preset(val); !ok {
			return fmt.Errorf("unknown palette %q (available: %s)", val, strings.Join(colorize.PresetNames(), ", "))
		}
		cfg.Palette = strings.ToLower(val)
	case "accent", "gradient_start", "gradient_end":
		if val != "" {
			c, err := colorize.ParseColor(val)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			val = c.Hex()
		}
		switch key {
		case "accent":
			cfg.Accent = val
		case "gradient_start":
			cfg.GradientStart = val
		default:
			cfg.GradientEnd = val
		}
	case "mode":
		m, err := colorize.ParseMode(val)
		if err != nil {
			return err
		}
		cfg.Mode = m.String()
	case "color_encoding":
		e, err := colorize.ParseEncoding(val)
		if err != nil {
			return err
		}
		cfg.ColorEncoding = e.String()
	case "top":
		top, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid top %q: %w", val, err)
		}
		if top < 0 {
			return fmt.Errorf("top must be >= 0, got %d", top)
		}
		cfg.Top = top
	case "encodings":
		encodings := splitList(val)
		if len(encodings) == 0 {
			return fmt.Errorf("encodings cannot be empty")
		}
		if err := dataset.ValidateEncodings(encodings); err != nil {
			return err
		}
		cfg.Encodings = encodings
	case "dashboards":
		cfg.Dashboards = val
	default:
		return fmt.Errorf("unsupported key %q (supported: %s)", key, strings.Join(setKeys, ", "))
	}

	if err := config.Save(*cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", key)
	return nil
}

// printConfig 按 key: value 格式输出配置，未设置的颜色显示 (palette)。
func printConfig(out io.Writer, cfg *config.Config) {
	orPalette := func(s string) string {
		if s == "" {
			return "(palette)"
		}
		return s
	}
	orNone := func(s string) string {
		if s == "" {
			return "(none)"
		}
		return s
	}

	fmt.Fprintf(out, "palette: %s\n", cfg.Palette)
	fmt.Fprintf(out, "accent: %s\n", orPalette(cfg.Accent))
	fmt.Fprintf(out, "gradient_start: %s\n", orPalette(cfg.GradientStart))
	fmt.Fprintf(out, "gradient_end: %s\n", orPalette(cfg.GradientEnd))
	fmt.Fprintf(out, "mode: %s\n", cfg.Mode)
	fmt.Fprintf(out, "color_encoding: %s\n", cfg.ColorEncoding)
	fmt.Fprintf(out, "top: %d\n", cfg.Top)
	fmt.Fprintf(out, "encodings: %s\n", strings.Join(cfg.Encodings, ", "))
	fmt.Fprintf(out, "dashboards: %s\n", orNone(cfg.Dashboards))
}

// splitList 按逗号拆分并去掉空白项。
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// init 注册 set 命令。
func init() {
	rootCmd.AddCommand(newSetCmd())
}
