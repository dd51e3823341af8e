package frontier

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Metrics are the annualized statistics of one weight vector.
type Metrics struct {
	Return     float64
	Volatility float64
	Sharpe     float64 // NaN when Volatility is zero
}

// HasSharpe reports whether the Sharpe ratio is defined.
func (m Metrics) HasSharpe() bool {
	return !math.IsNaN(m.Sharpe) && !math.IsInf(m.Sharpe, 0)
}

// Degenerate reports a riskless combination.
func (m Metrics) Degenerate() bool { return m.Volatility == 0 }

// Score computes expected return, volatility and Sharpe ratio of weights.
// The weight vector length must match the estimate.
func Score(weights []float64, est *Estimate, riskFree float64) Metrics {
	ret := floats.Dot(weights, est.Returns)

	w := mat.NewVecDense(len(weights), weights)
	variance := mat.Inner(w, est.Covariance, w)
	// rounding can push a PSD quadratic form slightly below zero
	if variance < 0 {
		variance = 0
	}
	vol := math.Sqrt(variance)

	sharpe := math.NaN()
	if vol > 0 {
		sharpe = (ret - riskFree) / vol
	}
	return Metrics{Return: ret, Volatility: vol, Sharpe: sharpe}
}

// scoreChunk is how often a scoring worker checks for cancellation.
const scoreChunk = 1024

// ScoreAll scores every weight vector and returns the collection in
// generation order. workers > 1 scores disjoint index ranges concurrently.
func ScoreAll(ctx context.Context, est *Estimate, weights [][]float64, riskFree float64, workers int) (*Collection, error) {
	n := est.Size()
	for i, w := range weights {
		if len(w) != n {
			return nil, fmt.Errorf("weight vector %d has %d entries, expected %d", i, len(w), n)
		}
	}

	samples := make([]Sample, len(weights))
	if workers < 1 {
		workers = 1
	}
	if workers > len(weights) {
		workers = len(weights)
	}

	if workers <= 1 {
		for i, w := range weights {
			if i%scoreChunk == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			samples[i] = Sample{Weights: w, Metrics: Score(w, est, riskFree)}
		}
		return newCollection(est.Assets, samples), nil
	}

	size := (len(weights) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(weights); start += size {
		start, end := start, min(start+size, len(weights))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%scoreChunk == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				samples[i] = Sample{Weights: weights[i], Metrics: Score(weights[i], est, riskFree)}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return newCollection(est.Assets, samples), nil
}
