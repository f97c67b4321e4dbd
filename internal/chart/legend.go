package chart

import (
	"strings"

	"rankviz/internal/colorize"
)

// Legend 渲染配色图例：第一名的强调色，以及渐变的起止色。
func Legend(spec colorize.Spec) string {
	var b strings.Builder

	b.WriteString("Top ")
	b.WriteString(Swatch(spec.Accent))
	b.WriteByte(' ')
	b.WriteString(spec.Accent.Hex())
	b.WriteString("   Rest ")
	b.WriteString(Swatch(spec.Start))
	b.WriteByte(' ')
	b.WriteString(spec.Start.Hex())
	b.WriteString(" → ")
	b.WriteString(Swatch(spec.End))
	b.WriteByte(' ')
	b.WriteString(spec.End.Hex())
	b.WriteString(" (by ")
	b.WriteString(spec.Mode.String())
	b.WriteString(")\n")
	return b.String()
}
