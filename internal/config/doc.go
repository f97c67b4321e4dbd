// Package config 提供 rankviz 的配置管理功能。
//
// 配置文件存储在 ~/.config/rankviz/config.yaml（设置了 XDG_CONFIG_HOME 时为
// $XDG_CONFIG_HOME/rankviz/config.yaml），使用 YAML 格式。
// 支持的配置项包括调色板、强调色与渐变端点、配色模式、颜色编码、
// 默认 Top N、CSV 候选编码以及默认的页面定义文件。
package config
