package frontier

// Sample is one scored portfolio.
type Sample struct {
	Weights []float64
	Metrics
}

// Collection is the immutable, ordered set of scored portfolios of one run.
type Collection struct {
	assets     []string
	samples    []Sample
	degenerate int
}

// NewCollection copies samples into a new collection. Samples keep their order.
func NewCollection(assets []string, samples []Sample) *Collection {
	cp := make([]Sample, len(samples))
	for i, s := range samples {
		cp[i] = Sample{Weights: append([]float64(nil), s.Weights...), Metrics: s.Metrics}
	}
	return newCollection(append([]string(nil), assets...), cp)
}

func newCollection(assets []string, samples []Sample) *Collection {
	c := &Collection{assets: assets, samples: samples}
	for _, s := range samples {
		if s.Degenerate() {
			c.degenerate++
		}
	}
	return c
}

// Len is the number of samples.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.samples)
}

// Assets returns the asset universe the weights refer to.
func (c *Collection) Assets() []string { return append([]string(nil), c.assets...) }

// At returns sample i with a private copy of its weights.
func (c *Collection) At(i int) Sample {
	s := c.samples[i]
	s.Weights = append([]float64(nil), s.Weights...)
	return s
}

// Metrics returns the metrics of sample i without copying weights.
func (c *Collection) Metrics(i int) Metrics { return c.samples[i].Metrics }

// Degenerate is the number of zero-volatility samples.
func (c *Collection) Degenerate() int { return c.degenerate }

// Records returns every sample as a fixed-schema row.
func (c *Collection) Records() []Record {
	out := make([]Record, len(c.samples))
	for i := range c.samples {
		out[i] = c.record(i)
	}
	return out
}

func (c *Collection) record(i int) Record {
	s := c.samples[i]
	return Record{
		Return:     s.Return,
		Volatility: s.Volatility,
		Sharpe:     s.Sharpe,
		Weights:    append([]float64(nil), s.Weights...),
	}
}
