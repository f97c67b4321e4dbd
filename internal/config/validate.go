package config

import (
	"fmt"
	"strings"

	"rankviz/internal/colorize"
	"rankviz/internal/dataset"
)

// ValidateConfig 检查配置合法性，返回问题描述列表；没有问题时返回空切片。
func ValidateConfig(cfg *Config) []string {
	issues := make([]string, 0)
	if cfg == nil {
		return append(issues, "config is nil")
	}

	if strings.TrimSpace(cfg.Palette) != "" {
		if _, ok := colorize.Preset(cfg.Palette); !ok {
			issues = append(issues, fmt.Sprintf("palette: unknown preset %q", cfg.Palette))
		}
	}

	for _, c := range []struct{ key, value string }{
		{"accent", cfg.Accent},
		{"gradient_start", cfg.GradientStart},
		{"gradient_end", cfg.GradientEnd},
	} {
		if strings.TrimSpace(c.value) == "" {
			continue
		}
		if _, err := colorize.ParseColor(c.value); err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", c.key, err))
		}
	}

	if _, err := colorize.ParseMode(cfg.Mode); err != nil {
		issues = append(issues, fmt.Sprintf("mode: %v", err))
	}
	if _, err := colorize.ParseEncoding(cfg.ColorEncoding); err != nil {
		issues = append(issues, fmt.Sprintf("color_encoding: %v", err))
	}
	if cfg.Top < 0 {
		issues = append(issues, fmt.Sprintf("top must be >= 0, got %d", cfg.Top))
	}
	if len(cfg.Encodings) == 0 {
		issues = append(issues, "encodings: list is empty")
	} else if err := dataset.ValidateEncodings(cfg.Encodings); err != nil {
		issues = append(issues, fmt.Sprintf("encodings: %v", err))
	}

	return issues
}
