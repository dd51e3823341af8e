package frontier

import (
	"fmt"
	"math"
	"time"
)

// PriceHistory is a table of daily closing prices indexed by date with one
// column per asset. Missing observations are stored as NaN.
type PriceHistory struct {
	Dates  []time.Time
	Assets []string
	Closes [][]float64 // [asset][row], aligned with Dates
}

// Validate checks the table shape.
func (h *PriceHistory) Validate() error {
	if h == nil {
		return fmt.Errorf("price history is nil")
	}
	if err := ValidateUniverse(h.Assets); err != nil {
		return err
	}
	if len(h.Closes) != len(h.Assets) {
		return fmt.Errorf("price columns (%d) don't match assets (%d)", len(h.Closes), len(h.Assets))
	}
	for i, col := range h.Closes {
		if len(col) != len(h.Dates) {
			return fmt.Errorf("asset %s has %d rows, expected %d", h.Assets[i], len(col), len(h.Dates))
		}
	}
	for i := 1; i < len(h.Dates); i++ {
		if !h.Dates[i].After(h.Dates[i-1]) {
			return fmt.Errorf("dates are not strictly increasing at row %d", i)
		}
	}
	return nil
}

// Rows returns the number of dates in the table.
func (h *PriceHistory) Rows() int { return len(h.Dates) }

// Filled returns a gap-free copy of the table. Gaps are forward-filled with
// the last known close; rows before every asset has its first close are
// dropped. Non-positive and non-finite values count as missing.
func (h *PriceHistory) Filled() (*PriceHistory, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	start := 0
	for i, col := range h.Closes {
		first := -1
		for row, v := range col {
			if validPrice(v) {
				first = row
				break
			}
		}
		if first < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingAsset, h.Assets[i])
		}
		if first > start {
			start = first
		}
	}

	rows := len(h.Dates) - start
	out := &PriceHistory{
		Dates:  make([]time.Time, rows),
		Assets: append([]string(nil), h.Assets...),
		Closes: make([][]float64, len(h.Assets)),
	}
	copy(out.Dates, h.Dates[start:])

	for i, col := range h.Closes {
		filled := make([]float64, rows)
		// seed from the last valid close at or before start
		last := math.NaN()
		for row := start; row >= 0; row-- {
			if validPrice(col[row]) {
				last = col[row]
				break
			}
		}
		for row := start; row < len(col); row++ {
			if v := col[row]; validPrice(v) {
				last = v
			}
			filled[row-start] = last
		}
		out.Closes[i] = filled
	}
	return out, nil
}

func validPrice(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
