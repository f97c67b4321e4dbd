package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rankviz/internal/colorize"
	"rankviz/internal/dataset"

	"github.com/spf13/viper"
)

const (
	// DefaultTop 是默认显示的条目数。
	DefaultTop = 10
	// DefaultMode 是默认的配色模式。
	DefaultMode = "rank"
	// DefaultColorEncoding 是默认的颜色输出编码。
	DefaultColorEncoding = "hex"
)

// Config 是用户级默认配置。颜色字段为空时使用调色板预设中的值。
type Config struct {
	Palette       string
	Accent        string
	GradientStart string
	GradientEnd   string
	Mode          string
	ColorEncoding string
	Top           int
	Encodings     []string
	Dashboards    string
}

// Dir 返回配置目录。
func Dir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "rankviz"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rankviz"), nil
}

// File 返回配置文件路径。
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// EnsureDir 确保配置目录存在。
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// Load 读取配置文件；文件不存在时返回默认配置。
func Load() (*Config, error) {
	configFile, err := File()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetDefault("palette", colorize.DefaultPreset)
	v.SetDefault("accent", "")
	v.SetDefault("gradient_start", "")
	v.SetDefault("gradient_end", "")
	v.SetDefault("mode", DefaultMode)
	v.SetDefault("color_encoding", DefaultColorEncoding)
	v.SetDefault("top", DefaultTop)
	v.SetDefault("encodings", dataset.DefaultEncodings)
	v.SetDefault("dashboards", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// SetConfigFile 模式下文件缺失返回的是 *fs.PathError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	return &Config{
		Palette:       v.GetString("palette"),
		Accent:        v.GetString("accent"),
		GradientStart: v.GetString("gradient_start"),
		GradientEnd:   v.GetString("gradient_end"),
		Mode:          v.GetString("mode"),
		ColorEncoding: v.GetString("color_encoding"),
		Top:           v.GetInt("top"),
		Encodings:     v.GetStringSlice("encodings"),
		Dashboards:    v.GetString("dashboards"),
	}, nil
}

// Save 把配置写入配置文件。
func Save(cfg Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile, err := File()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("palette", cfg.Palette)
	v.Set("accent", cfg.Accent)
	v.Set("gradient_start", cfg.GradientStart)
	v.Set("gradient_end", cfg.GradientEnd)
	v.Set("mode", cfg.Mode)
	v.Set("color_encoding", cfg.ColorEncoding)
	v.Set("top", cfg.Top)
	v.Set("encodings", cfg.Encodings)
	v.Set("dashboards", cfg.Dashboards)

	return v.WriteConfigAs(configFile)
}

// GradientSpec 根据配置构造配色参数：先取调色板预设，再应用单独的颜色覆盖和模式。
func (c *Config) GradientSpec() (colorize.Spec, error) {
	return BuildSpec(c.Palette, c.Accent, c.GradientStart, c.GradientEnd, c.Mode, colorize.DefaultSpec())
}

// BuildSpec 以 base 为起点，依次应用调色板、颜色覆盖和模式；空字符串表示不覆盖。
func BuildSpec(palette, accent, start, end, mode string, base colorize.Spec) (colorize.Spec, error) {
	spec := base
	if strings.TrimSpace(palette) != "" {
		preset, ok := colorize.Preset(palette)
		if !ok {
			return colorize.Spec{}, fmt.Errorf("unknown palette %q (available: %s)", palette, strings.Join(colorize.PresetNames(), ", "))
		}
		preset.Mode = spec.Mode
		spec = preset
	}

	overrides := []struct {
		name  string
		value string
		dst   *colorize.RGB
	}{
		{"accent", accent, &spec.Accent},
		{"gradient_start", start, &spec.Start},
		{"gradient_end", end, &spec.End},
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		c, err := colorize.ParseColor(o.value)
		if err != nil {
			return colorize.Spec{}, fmt.Errorf("%s: %w", o.name, err)
		}
		*o.dst = c
	}

	if strings.TrimSpace(mode) != "" {
		m, err := colorize.ParseMode(mode)
		if err != nil {
			return colorize.Spec{}, err
		}
		spec.Mode = m
	}
	return spec, nil
}
