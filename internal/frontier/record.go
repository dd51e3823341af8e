package frontier

// Record is the tabular form of a sample: metrics first, then one weight per
// asset in universe order.
type Record struct {
	Return     float64
	Volatility float64
	Sharpe     float64
	Weights    []float64
}

// RecordHeader returns the column names matching Record.Values.
func RecordHeader(assets []string) []string {
	out := make([]string, 0, 3+len(assets))
	out = append(out, "Returns", "Volatility", "Sharpe Ratio")
	for _, a := range assets {
		out = append(out, a+" Weight")
	}
	return out
}

// Values flattens the record in RecordHeader order.
func (r Record) Values() []float64 {
	out := make([]float64, 0, 3+len(r.Weights))
	out = append(out, r.Return, r.Volatility, r.Sharpe)
	return append(out, r.Weights...)
}
