package frontier

import "math"

// Point is a (volatility, return) coordinate.
type Point struct {
	Volatility float64
	Return     float64
}

// Envelope approximates the efficient frontier of the sampled cloud. The
// volatility range is split into equal buckets, the best return of each
// bucket is kept, and only points that improve on every less risky point
// survive. It describes the samples; it does not optimize anything.
func Envelope(c *Collection, buckets int) []Point {
	if c.Len() == 0 || buckets < 1 {
		return nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.samples {
		if !finite(s.Volatility) || !finite(s.Return) {
			continue
		}
		lo = math.Min(lo, s.Volatility)
		hi = math.Max(hi, s.Volatility)
	}
	if math.IsInf(lo, 1) {
		return nil
	}

	width := (hi - lo) / float64(buckets)
	best := make([]*Point, buckets)
	for _, s := range c.samples {
		if !finite(s.Volatility) || !finite(s.Return) {
			continue
		}
		b := 0
		if width > 0 {
			b = int((s.Volatility - lo) / width)
		}
		if b >= buckets {
			b = buckets - 1
		}
		if best[b] == nil || s.Return > best[b].Return {
			best[b] = &Point{Volatility: s.Volatility, Return: s.Return}
		}
	}

	var out []Point
	top := math.Inf(-1)
	for _, p := range best {
		if p == nil || p.Return <= top {
			continue
		}
		top = p.Return
		out = append(out, *p)
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
