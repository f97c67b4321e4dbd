package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// 状态行的颜色。
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
)

// printOK 输出 "✅ label: msg"。
func printOK(out io.Writer, label, msg string) {
	fmt.Fprintf(out, "✅ %s: %s\n", colorBold.Sprint(label), colorGreen.Sprint(msg))
}

// printWarn 输出 "⚠️  label: msg"。
func printWarn(out io.Writer, label, msg string) {
	fmt.Fprintf(out, "⚠️  %s: %s\n", colorBold.Sprint(label), colorYellow.Sprint(msg))
}

// printFail 输出 "❌ label: msg"。
func printFail(out io.Writer, label, msg string) {
	fmt.Fprintf(out, "❌ %s: %s\n", colorBold.Sprint(label), colorRed.Sprint(msg))
}

// printLines 将字符串列表以缩进列表形式输出，每行前加 "   - " 前缀。
func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(out, "   - %s\n", line)
	}
}
