package report

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efficientFrontier/internal/frontier"
)

var pngMagic = []byte("\x89PNG")

func testRun(t *testing.T) Run {
	t.Helper()
	assets := []string{"SPY", "AGG"}
	est, err := frontier.NewEstimateFromMoments(assets,
		[]float64{0.10, 0.04},
		[][]float64{{0.04, 0.002}, {0.002, 0.0025}})
	require.NoError(t, err)

	weights, err := frontier.NewSeededSampler(7, frontier.MethodUniform).Sample(2, 500)
	require.NoError(t, err)
	c, err := frontier.ScoreAll(context.Background(), est, weights, 0.02, 2)
	require.NoError(t, err)
	require.Equal(t, 500, c.Len())
	sel, err := frontier.Select(c)
	require.NoError(t, err)

	return Run{
		Assets:       assets,
		Samples:      c.Len(),
		Observations: 2500,
		RiskFree:     0.02,
		Estimate:     est,
		Collection:   c,
		Selection:    sel,
		Envelope:     frontier.Envelope(c, 20),
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, testRun(t))
	out := buf.String()

	assert.Contains(t, out, "500 portfolios over 2 assets")
	assert.Contains(t, out, "Max Sharpe Ratio Portfolio")
	assert.Contains(t, out, "Min Volatility Portfolio")
	assert.Contains(t, out, "SPY Weight")
	assert.Contains(t, out, "AGG Weight")
	assert.Contains(t, out, "Sharpe Ratio")
	assert.Contains(t, out, "Assets (annualized)")
}

func TestWriteHeaderUsesThousandsSeparator(t *testing.T) {
	var buf bytes.Buffer
	WriteHeader(&buf, Run{Assets: []string{"A"}, Samples: 20000, RiskFree: 0.042})
	assert.Contains(t, buf.String(), "20,000 portfolios")
	assert.Contains(t, buf.String(), "4.20%")
}

func TestSummary(t *testing.T) {
	run := testRun(t)
	s := Summary(run)
	assert.Contains(t, s, "500 random portfolios")
	assert.Contains(t, s, "Max Sharpe: return")
	assert.Contains(t, s, "Min Volatility: return")
	assert.Contains(t, s, "SPY ")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "12.35%", percent(0.123456))
	assert.Equal(t, "n/a", percent(math.NaN()))
	assert.Equal(t, "0.4243", ratio(0.42426))
	assert.Equal(t, "n/a", ratio(math.NaN()))
	assert.Equal(t, "n/a", ratio(math.Inf(1)))
}

func TestRenderScatter(t *testing.T) {
	img, err := RenderScatter(testRun(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestRenderScatterFlatCloud(t *testing.T) {
	est, err := frontier.NewEstimateFromMoments([]string{"ONLY"}, []float64{0.05}, [][]float64{{0.01}})
	require.NoError(t, err)
	weights, err := frontier.NewSeededSampler(1, frontier.MethodUniform).Sample(1, 10)
	require.NoError(t, err)
	c, err := frontier.ScoreAll(context.Background(), est, weights, 0.01, 1)
	require.NoError(t, err)
	require.Equal(t, 10, c.Len())
	sel, err := frontier.Select(c)
	require.NoError(t, err)

	img, err := RenderScatter(Run{Assets: []string{"ONLY"}, Samples: 10, Collection: c, Selection: sel})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestRenderScatterEmpty(t *testing.T) {
	_, err := RenderScatter(Run{})
	assert.Error(t, err)
}

func TestRenderWeights(t *testing.T) {
	img, err := RenderWeights(testRun(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	_, err = RenderWeights(Run{})
	assert.Error(t, err)
}

func TestPaddedRange(t *testing.T) {
	r := paddedRange([]float64{0.1, 0.3, math.NaN()})
	assert.InDelta(t, 0.09, r.Min, 1e-12)
	assert.InDelta(t, 0.31, r.Max, 1e-12)

	flat := paddedRange([]float64{0.2, 0.2})
	assert.Less(t, flat.Min, 0.2)
	assert.Greater(t, flat.Max, 0.2)

	none := paddedRange(nil)
	assert.Equal(t, 0.0, none.Min)
	assert.Equal(t, 1.0, none.Max)
}

func TestRender(t *testing.T) {
	a, err := Render(testRun(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(a.Frontier, pngMagic))
	assert.True(t, bytes.HasPrefix(a.Weights, pngMagic))
	assert.NotEmpty(t, a.Summary)
	assert.Empty(t, a.Commentary)
}
