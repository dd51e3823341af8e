package finance

import (
	"math"
	"time"
)

// filterPositive removes points where close is missing, non-positive or not
// finite, keeping timestamp and value arrays aligned.
func filterPositive(ts []int64, cl []float64) ([]int64, []float64) {
	if len(ts) != len(cl) {
		n := len(ts)
		if len(cl) < n {
			n = len(cl)
		}
		ts = ts[:n]
		cl = cl[:n]
	}
	outTs := make([]int64, 0, len(ts))
	outCl := make([]float64, 0, len(cl))
	for i := 0; i < len(ts); i++ {
		if cl[i] <= 0 || math.IsNaN(cl[i]) || math.IsInf(cl[i], 0) {
			continue
		}
		outTs = append(outTs, ts[i])
		outCl = append(outCl, cl[i])
	}
	return outTs, outCl
}

// collapseDays converts bar timestamps to trading days and keeps the last
// close of each day. Yahoo sometimes appends the live bar next to the
// completed one for the same session.
func collapseDays(ts []int64, cl []float64, gmtOffset int) ([]time.Time, []float64) {
	days := make([]time.Time, 0, len(ts))
	closes := make([]float64, 0, len(cl))
	for i, t := range ts {
		d := tradingDay(t, gmtOffset)
		if n := len(days); n > 0 && !d.After(days[n-1]) {
			if d.Equal(days[n-1]) {
				closes[n-1] = cl[i]
			}
			continue
		}
		days = append(days, d)
		closes = append(closes, cl[i])
	}
	return days, closes
}
