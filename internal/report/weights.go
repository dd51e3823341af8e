package report

import (
	"fmt"

	"github.com/vicanso/go-charts/v2"
)

// RenderWeights draws the asset weights of both selected portfolios as a
// grouped bar chart, in percent. Returns PNG bytes.
func RenderWeights(run Run) ([]byte, error) {
	if len(run.Assets) == 0 {
		return nil, fmt.Errorf("no assets provided")
	}
	maxSharpe := make([]float64, len(run.Assets))
	minVol := make([]float64, len(run.Assets))
	for i := range run.Assets {
		if i < len(run.Selection.MaxSharpe.Weights) {
			maxSharpe[i] = run.Selection.MaxSharpe.Weights[i] * 100
		}
		if i < len(run.Selection.MinVolatility.Weights) {
			minVol[i] = run.Selection.MinVolatility.Weights[i] * 100
		}
	}

	p, err := charts.BarRender(
		[][]float64{maxSharpe, minVol},
		charts.TitleTextOptionFunc("Portfolio Weights (%)"),
		charts.XAxisDataOptionFunc(run.Assets),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: []string{"Max Sharpe", "Min Volatility"},
			Left: charts.PositionRight,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(800),
		charts.HeightOptionFunc(500),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render weights: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}
