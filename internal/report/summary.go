package report

import (
	"fmt"
	"io"
	"strings"

	"efficientFrontier/internal/frontier"
)

// Run is everything a report needs about one completed simulation.
type Run struct {
	Assets       []string
	Samples      int
	Observations int
	RiskFree     float64
	Estimate     *frontier.Estimate
	Collection   *frontier.Collection
	Selection    frontier.Selection
	Envelope     []frontier.Point
}

// Write prints the header, the asset table and both selected portfolios.
func Write(w io.Writer, run Run) {
	WriteHeader(w, run)
	if run.Estimate != nil {
		WriteAssets(w, run.Estimate, run.RiskFree)
	}
	WritePortfolio(w, "Max Sharpe Ratio Portfolio", run.Assets, run.Selection.MaxSharpe)
	WritePortfolio(w, "Min Volatility Portfolio", run.Assets, run.Selection.MinVolatility)
}

// Summary renders a compact plain-text description of both portfolios,
// suitable for chat messages and prompts.
func Summary(run Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d random portfolios, %d assets, risk-free %s\n", run.Samples, len(run.Assets), percent(run.RiskFree))
	writePick(&b, "Max Sharpe", run.Assets, run.Selection.MaxSharpe)
	writePick(&b, "Min Volatility", run.Assets, run.Selection.MinVolatility)
	return strings.TrimRight(b.String(), "\n")
}

func writePick(b *strings.Builder, title string, assets []string, p frontier.Pick) {
	fmt.Fprintf(b, "\n%s: return %s, volatility %s, Sharpe %s\n",
		title, percent(p.Return), percent(p.Volatility), ratio(p.Sharpe))
	parts := make([]string, 0, len(assets))
	for i, a := range assets {
		if i < len(p.Weights) {
			parts = append(parts, fmt.Sprintf("%s %.1f%%", a, p.Weights[i]*100))
		}
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("\n")
}

// Artifacts are the rendered outputs of one run, shared by every display
// and delivery channel.
type Artifacts struct {
	Frontier   []byte
	Weights    []byte
	Summary    string
	Commentary string
}

// Render produces both charts and the text summary of run.
func Render(run Run) (Artifacts, error) {
	scatter, err := RenderScatter(run)
	if err != nil {
		return Artifacts{}, err
	}
	weights, err := RenderWeights(run)
	if err != nil {
		return Artifacts{}, err
	}
	return Artifacts{Frontier: scatter, Weights: weights, Summary: Summary(run)}, nil
}
