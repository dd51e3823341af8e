package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"efficientFrontier/internal/frontier"
)

var undefinedSharpeColor = drawing.Color{R: 160, G: 160, B: 160, A: 255}

// RenderScatter draws every sample as volatility vs. return coloured by
// Sharpe ratio, marks the max-Sharpe (blue) and min-volatility (red)
// portfolios and overlays the upper envelope. Returns PNG bytes.
func RenderScatter(run Run) ([]byte, error) {
	c := run.Collection
	if c.Len() == 0 {
		return nil, fmt.Errorf("no samples to plot")
	}

	xs := make([]float64, c.Len())
	ys := make([]float64, c.Len())
	sharpe := make([]float64, c.Len())
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < c.Len(); i++ {
		m := c.Metrics(i)
		xs[i], ys[i], sharpe[i] = m.Volatility, m.Return, m.Sharpe
		if m.HasSharpe() {
			lo = math.Min(lo, m.Sharpe)
			hi = math.Max(hi, m.Sharpe)
		}
	}

	colorBySharpe := func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
		s := sharpe[index]
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return undefinedSharpeColor
		}
		if hi <= lo {
			return chart.Viridis(0.5, 0, 1)
		}
		return chart.Viridis(s, lo, hi)
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name: "Portfolios",
			Style: chart.Style{
				StrokeWidth:      chart.Disabled,
				DotWidth:         2,
				DotColorProvider: colorBySharpe,
			},
			XValues: xs,
			YValues: ys,
		},
	}

	if len(run.Envelope) >= 2 {
		ex := make([]float64, len(run.Envelope))
		ey := make([]float64, len(run.Envelope))
		for i, p := range run.Envelope {
			ex[i], ey[i] = p.Volatility, p.Return
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "Frontier",
			Style:   chart.Style{StrokeColor: drawing.ColorBlack, StrokeWidth: 1.5},
			XValues: ex,
			YValues: ey,
		})
	}

	series = append(series,
		marker("Max Sharpe", run.Selection.MaxSharpe, drawing.ColorBlue),
		marker("Min Volatility", run.Selection.MinVolatility, drawing.ColorRed),
	)

	graph := chart.Chart{
		Title:  "Efficient Frontier",
		Width:  800,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:           "Volatility",
			ValueFormatter: percentFormatter,
			Range:          paddedRange(xs),
		},
		YAxis: chart.YAxis{
			Name:           "Expected Returns",
			ValueFormatter: percentFormatter,
			Range:          paddedRange(ys),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render scatter: %w", err)
	}
	return buf.Bytes(), nil
}

func marker(name string, p frontier.Pick, color drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name: name,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    9,
			DotColor:    color,
			StrokeColor: color,
		},
		XValues: []float64{p.Volatility},
		YValues: []float64{p.Return},
	}
}

// paddedRange fixes the axis range with 5% padding so that a flat cloud
// (a single asset, for instance) still has a drawable range.
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.05, 0.01)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.1f%%", f*100)
	}
	return ""
}
