package frontier

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization convention for daily statistics.
const TradingDaysPerYear = 252

// Estimate holds the annualized moments of the asset universe.
type Estimate struct {
	Assets       []string
	Returns      []float64     // annualized mean daily simple return
	Covariance   *mat.SymDense // annualized sample covariance of daily returns
	Observations int           // number of daily returns used
}

// NewEstimate derives annualized expected returns and covariances from a
// daily price table. Gaps are forward-filled first (see PriceHistory.Filled).
// tradingDays <= 0 selects TradingDaysPerYear.
func NewEstimate(h *PriceHistory, tradingDays int) (*Estimate, error) {
	if tradingDays <= 0 {
		tradingDays = TradingDaysPerYear
	}
	filled, err := h.Filled()
	if err != nil {
		return nil, err
	}

	// a sample covariance needs at least two returns, i.e. three closes
	rows := filled.Rows()
	if rows < 3 {
		return nil, fmt.Errorf("%w: need at least 3 closes, got %d", ErrInsufficientHistory, rows)
	}

	n := len(filled.Assets)
	obs := rows - 1
	daily := mat.NewDense(obs, n, nil)
	for j, col := range filled.Closes {
		for t := 1; t < rows; t++ {
			daily.Set(t-1, j, col[t]/col[t-1]-1)
		}
	}

	annual := float64(tradingDays)
	returns := make([]float64, n)
	for j := 0; j < n; j++ {
		returns[j] = stat.Mean(mat.Col(nil, j, daily), nil) * annual
	}

	cov := mat.NewSymDense(n, nil)
	stat.CovarianceMatrix(cov, daily, nil)
	cov.ScaleSym(annual, cov)

	return &Estimate{
		Assets:       filled.Assets,
		Returns:      returns,
		Covariance:   cov,
		Observations: obs,
	}, nil
}

// NewEstimateFromMoments builds an Estimate from already annualized moments.
// The covariance matrix must be square, symmetric and match the return vector.
func NewEstimateFromMoments(assets []string, returns []float64, cov [][]float64) (*Estimate, error) {
	if err := ValidateUniverse(assets); err != nil {
		return nil, err
	}
	n := len(assets)
	if len(returns) != n {
		return nil, fmt.Errorf("return vector has %d entries, expected %d", len(returns), n)
	}
	if len(cov) != n {
		return nil, fmt.Errorf("covariance has %d rows, expected %d", len(cov), n)
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		if len(cov[i]) != n {
			return nil, fmt.Errorf("covariance row %d has %d entries, expected %d", i, len(cov[i]), n)
		}
		for j := i; j < n; j++ {
			if cov[i][j] != cov[j][i] {
				return nil, fmt.Errorf("covariance is not symmetric at (%d,%d)", i, j)
			}
			sym.SetSym(i, j, cov[i][j])
		}
	}
	return &Estimate{
		Assets:     append([]string(nil), assets...),
		Returns:    append([]float64(nil), returns...),
		Covariance: sym,
	}, nil
}

// Size is the number of assets.
func (e *Estimate) Size() int { return len(e.Assets) }

// Volatilities returns the annualized standalone volatility of every asset.
func (e *Estimate) Volatilities() []float64 {
	out := make([]float64, e.Size())
	for i := range out {
		out[i] = math.Sqrt(math.Max(e.Covariance.At(i, i), 0))
	}
	return out
}
