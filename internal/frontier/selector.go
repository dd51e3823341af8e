package frontier

import "math"

// Pick is a selected sample together with its position in the collection.
type Pick struct {
	Index int
	Record
}

// Selection holds the two distinguished portfolios of a run.
type Selection struct {
	MaxSharpe     Pick
	MinVolatility Pick
}

// Select finds the max-Sharpe and min-volatility samples. Samples without a
// defined Sharpe ratio never win max-Sharpe but still compete on volatility.
// Ties go to the sample generated first.
func Select(c *Collection) (Selection, error) {
	if c.Len() == 0 {
		return Selection{}, ErrEmptySampleSet
	}

	best, low := -1, -1
	for i, s := range c.samples {
		if s.HasSharpe() && (best < 0 || s.Sharpe > c.samples[best].Sharpe) {
			best = i
		}
		if math.IsNaN(s.Volatility) {
			continue
		}
		if low < 0 || s.Volatility < c.samples[low].Volatility {
			low = i
		}
	}
	if best < 0 || low < 0 {
		return Selection{}, ErrEmptySampleSet
	}

	return Selection{
		MaxSharpe:     Pick{Index: best, Record: c.record(best)},
		MinVolatility: Pick{Index: low, Record: c.record(low)},
	}, nil
}
