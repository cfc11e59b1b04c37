// Package export renders observable series to SVG for use outside the
// terminal.
package export

import (
	"fmt"
	"strings"
)

var seriesColors = []string{
	"#00ff88", "#ff4444", "#00ccff", "#ffcc00", "#ff00ff", "#88ff88",
}

// SeriesToSVG renders one polyline per series over a shared time axis.
// Series are scaled to the joint value range.
func SeriesToSVG(times []float64, series [][]float64, width, height int) string {
	if len(times) < 2 || len(series) == 0 {
		return ""
	}

	minV, maxV := series[0][0], series[0][0]
	for _, s := range series {
		for _, v := range s {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	vRange := maxV - minV
	if vRange == 0 {
		vRange = 1
	}

	t0 := times[0]
	tRange := times[len(times)-1] - t0
	if tRange == 0 {
		tRange = 1
	}

	const margin = 10.0
	w := float64(width) - 2*margin
	h := float64(height) - 2*margin

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for idx, s := range series {
		color := seriesColors[idx%len(seriesColors)]
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, color))
		for i, v := range s {
			if i >= len(times) {
				break
			}
			x := margin + w*(times[i]-t0)/tRange
			y := margin + h*(1-(v-minV)/vRange)
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
