package finance

import (
	"math"
	"sort"
	"time"

	"efficientFrontier/internal/frontier"
)

// align merges per-symbol series onto the union of their trading days.
// Days a symbol did not trade stay NaN; gap filling is left to the estimator
// so that the policy lives in one place.
func align(all []*series) *frontier.PriceHistory {
	seen := make(map[time.Time]struct{})
	for _, s := range all {
		for _, d := range s.days {
			seen[d] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	row := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		row[d] = i
	}

	h := &frontier.PriceHistory{
		Dates:  dates,
		Assets: make([]string, len(all)),
		Closes: make([][]float64, len(all)),
	}
	for i, s := range all {
		col := make([]float64, len(dates))
		for j := range col {
			col[j] = math.NaN()
		}
		for j, d := range s.days {
			col[row[d]] = s.closes[j]
		}
		h.Assets[i] = s.symbol
		h.Closes[i] = col
	}
	return h
}
