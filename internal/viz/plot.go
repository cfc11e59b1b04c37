package viz

import "github.com/guptarohit/asciigraph"

const (
	plotWidth  = 80
	plotHeight = 12
)

// Plot renders a single observable series as an ascii chart.
func Plot(values []float64, caption string) string {
	return asciigraph.Plot(values,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotMany renders several series in one chart, one color per series.
func PlotMany(series [][]float64, caption string) string {
	colors := []asciigraph.AnsiColor{
		asciigraph.Green,
		asciigraph.Red,
		asciigraph.Blue,
		asciigraph.Yellow,
		asciigraph.Magenta,
		asciigraph.Cyan,
	}
	if len(series) < len(colors) {
		colors = colors[:len(series)]
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// Populations extracts per-level population series from recorded states.
// States may be vectors or column-stacked density matrices of dimension n.
func Populations(states [][]complex128, n int) [][]float64 {
	series := make([][]float64, n)
	for level := range series {
		series[level] = make([]float64, len(states))
	}
	for i, y := range states {
		for level := 0; level < n; level++ {
			switch len(y) {
			case n:
				v := y[level]
				series[level][i] = real(v)*real(v) + imag(v)*imag(v)
			case n * n:
				series[level][i] = real(y[level*n+level])
			}
		}
	}
	return series
}
