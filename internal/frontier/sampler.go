package frontier

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Method selects how raw draws are generated before normalization.
type Method int

const (
	// MethodUniform draws uniform(0,1) components and divides by their sum.
	// The result is biased toward the centre of the simplex, which is fine
	// for mapping the cloud but is not a uniform distribution over it.
	MethodUniform Method = iota
	// MethodDirichlet draws exponential components, which makes the
	// normalized vector uniform over the simplex.
	MethodDirichlet
)

func (m Method) String() string {
	switch m {
	case MethodUniform:
		return "uniform"
	case MethodDirichlet:
		return "dirichlet"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a configuration name to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uniform":
		return MethodUniform, nil
	case "dirichlet", "flat":
		return MethodDirichlet, nil
	}
	return 0, fmt.Errorf("unknown sampling method: %q (use uniform or dirichlet)", s)
}

// Sampler generates long-only, fully invested weight vectors.
// A Sampler is not safe for concurrent use.
type Sampler struct {
	rng    *rand.Rand
	method Method
}

// NewSampler returns a sampler drawing from src. A nil src seeds from the clock.
func NewSampler(src rand.Source, method Method) *Sampler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Sampler{rng: rand.New(src), method: method}
}

// NewSeededSampler is NewSampler with a fixed seed; seed 0 means unseeded.
func NewSeededSampler(seed int64, method Method) *Sampler {
	if seed == 0 {
		return NewSampler(nil, method)
	}
	return NewSampler(rand.NewSource(seed), method)
}

// Sample returns samples weight vectors, each with one entry per asset. All
// vectors share one backing array allocated upfront.
func (s *Sampler) Sample(assets, samples int) ([][]float64, error) {
	if assets < 1 {
		return nil, fmt.Errorf("asset count must be positive, got %d", assets)
	}
	if samples < 1 {
		return nil, fmt.Errorf("sample count must be positive, got %d", samples)
	}
	buf := make([]float64, assets*samples)
	out := make([][]float64, samples)
	for i := range out {
		w := buf[i*assets : (i+1)*assets : (i+1)*assets]
		s.draw(w)
		out[i] = w
	}
	return out, nil
}

func (s *Sampler) draw(w []float64) {
	for {
		sum := 0.0
		for i := range w {
			if s.method == MethodDirichlet {
				w[i] = s.rng.ExpFloat64()
			} else {
				w[i] = s.rng.Float64()
			}
			sum += w[i]
		}
		if sum == 0 {
			continue
		}
		for i := range w {
			w[i] /= sum
		}
		return
	}
}
