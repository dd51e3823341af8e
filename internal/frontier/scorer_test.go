package frontier

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoAssetEstimate(t *testing.T) *Estimate {
	t.Helper()
	est, err := NewEstimateFromMoments(
		[]string{"A", "B"},
		[]float64{0.08, 0.04},
		[][]float64{{0.02, 0.0}, {0.0, 0.01}},
	)
	require.NoError(t, err)
	return est
}

func TestScore_TwoAssetExample(t *testing.T) {
	est := twoAssetEstimate(t)

	cases := []struct {
		weights []float64
		ret     float64
		vol     float64
		sharpe  float64
	}{
		{[]float64{1, 0}, 0.08, math.Sqrt(0.02), 0.06 / math.Sqrt(0.02)},
		{[]float64{0, 1}, 0.04, 0.1, 0.2},
		{[]float64{0.5, 0.5}, 0.06, math.Sqrt(0.0075), 0.04 / math.Sqrt(0.0075)},
	}
	for _, c := range cases {
		m := Score(c.weights, est, 0.02)
		assert.InDelta(t, c.ret, m.Return, 1e-12)
		assert.InDelta(t, c.vol, m.Volatility, 1e-12)
		assert.InDelta(t, c.sharpe, m.Sharpe, 1e-9)
		assert.True(t, m.HasSharpe())
	}

	// spot-check the rounded figures
	assert.InDelta(t, 0.4243, Score([]float64{1, 0}, est, 0.02).Sharpe, 1e-4)
	assert.InDelta(t, 0.4619, Score([]float64{0.5, 0.5}, est, 0.02).Sharpe, 1e-4)
}

func TestScore_ZeroVolatilityHasNoSharpe(t *testing.T) {
	est, err := NewEstimateFromMoments([]string{"CASH", "B"}, []float64{0.03, 0.05}, [][]float64{{0, 0}, {0, 0.04}})
	require.NoError(t, err)

	m := Score([]float64{1, 0}, est, 0.02)
	assert.Equal(t, 0.0, m.Volatility)
	assert.True(t, m.Degenerate())
	assert.False(t, m.HasSharpe())
	assert.True(t, math.IsNaN(m.Sharpe))
}

func TestScore_SingleAssetMatchesAsset(t *testing.T) {
	est, err := NewEstimateFromMoments([]string{"ONLY"}, []float64{0.07}, [][]float64{{0.09}})
	require.NoError(t, err)

	weights, err := NewSeededSampler(5, MethodUniform).Sample(1, 50)
	require.NoError(t, err)
	c, err := ScoreAll(context.Background(), est, weights, 0.01, 4)
	require.NoError(t, err)

	for i := 0; i < c.Len(); i++ {
		s := c.At(i)
		assert.Equal(t, []float64{1.0}, s.Weights)
		assert.InDelta(t, 0.07, s.Return, 1e-15)
		assert.InDelta(t, 0.3, s.Volatility, 1e-15)
	}
}

func TestScoreAll_ParallelMatchesSequential(t *testing.T) {
	h := &PriceHistory{
		Dates:  days(8),
		Assets: []string{"A", "B", "C"},
		Closes: [][]float64{
			{10, 11, 10.5, 12, 11.8, 12.4, 12.9, 12.1},
			{20, 19, 19.5, 21, 22, 21.5, 21.9, 23},
			{5, 5.1, 5.3, 5.2, 5.6, 5.5, 5.4, 5.8},
		},
	}
	est, err := NewEstimate(h, 0)
	require.NoError(t, err)

	weights, err := NewSeededSampler(11, MethodUniform).Sample(3, 5000)
	require.NoError(t, err)

	seq, err := ScoreAll(context.Background(), est, weights, 0.04, 1)
	require.NoError(t, err)
	par, err := ScoreAll(context.Background(), est, weights, 0.04, 8)
	require.NoError(t, err)

	require.Equal(t, seq.Len(), par.Len())
	assert.Equal(t, seq.Records(), par.Records())
	for i := 0; i < par.Len(); i++ {
		assert.GreaterOrEqual(t, par.Metrics(i).Volatility, 0.0)
	}
}

func TestScoreAll_Errors(t *testing.T) {
	est := twoAssetEstimate(t)

	_, err := ScoreAll(context.Background(), est, [][]float64{{1, 0, 0}}, 0, 1)
	assert.Error(t, err)

	weights, err := NewSeededSampler(1, MethodUniform).Sample(2, 10)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ScoreAll(ctx, est, weights, 0, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScoreAll_Empty(t *testing.T) {
	c, err := ScoreAll(context.Background(), twoAssetEstimate(t), nil, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCollection_CountsDegenerate(t *testing.T) {
	est, err := NewEstimateFromMoments([]string{"CASH", "B"}, []float64{0.03, 0.05}, [][]float64{{0, 0}, {0, 0.04}})
	require.NoError(t, err)
	c, err := ScoreAll(context.Background(), est, [][]float64{{1, 0}, {0.5, 0.5}, {1, 0}}, 0.02, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Degenerate())
}
