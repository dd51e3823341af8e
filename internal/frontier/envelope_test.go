package frontier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelope_KeepsRisingUpperEdge(t *testing.T) {
	c := NewCollection([]string{"A"}, []Sample{
		{Weights: []float64{1}, Metrics: Metrics{Volatility: 0.10, Return: 0.04}},
		{Weights: []float64{1}, Metrics: Metrics{Volatility: 0.12, Return: 0.03}},
		{Weights: []float64{1}, Metrics: Metrics{Volatility: 0.22, Return: 0.02}},
		{Weights: []float64{1}, Metrics: Metrics{Volatility: 0.24, Return: 0.035}},
		{Weights: []float64{1}, Metrics: Metrics{Volatility: 0.32, Return: 0.06}},
		{Weights: []float64{1}, Metrics: Metrics{Volatility: 0.40, Return: 0.10}},
		{Weights: []float64{1}, Metrics: Metrics{Volatility: math.NaN(), Return: 1}},
	})

	// the middle bucket peaks below the first one and is dropped
	points := Envelope(c, 3)
	assert.Equal(t, []Point{
		{Volatility: 0.10, Return: 0.04},
		{Volatility: 0.40, Return: 0.10},
	}, points)
}

func TestEnvelope_Degenerate(t *testing.T) {
	assert.Nil(t, Envelope(NewCollection(nil, nil), 10))

	same := NewCollection([]string{"A"}, []Sample{
		{Weights: []float64{1}, Metrics: Metrics{Volatility: 0.2, Return: 0.05}},
		{Weights: []float64{1}, Metrics: Metrics{Volatility: 0.2, Return: 0.05}},
	})
	assert.Equal(t, []Point{{Volatility: 0.2, Return: 0.05}}, Envelope(same, 10))
	assert.Nil(t, Envelope(same, 0))
}
