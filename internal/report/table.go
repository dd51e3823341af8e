package report

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"efficientFrontier/internal/frontier"
)

// NewTableStyle is the rounded style used for every printed table.
func NewTableStyle() table.Style {
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	style.Options.SeparateRows = false
	return style
}

// WriteHeader prints a one-line description of the run.
func WriteHeader(w io.Writer, run Run) {
	fmt.Fprintf(w, "Efficient frontier: %s portfolios over %d assets, %d daily returns, risk-free rate %s\n\n",
		humanize.Comma(int64(run.Samples)), len(run.Assets), run.Observations, percent(run.RiskFree))
}

// WritePortfolio prints one selected portfolio as a field/value table in
// record order: metrics first, then one weight per asset.
func WritePortfolio(w io.Writer, title string, assets []string, p frontier.Pick) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(NewTableStyle())
	t.SetTitle(fmt.Sprintf("%s (sample #%d)", title, p.Index))
	t.AppendHeader(table.Row{"Field", "Value"})

	header := frontier.RecordHeader(assets)
	values := p.Values()
	for i, name := range header {
		var v string
		switch i {
		case 2:
			v = ratio(values[i])
		default:
			v = percent(values[i])
		}
		t.AppendRow(table.Row{name, v})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
	fmt.Fprintln(w)
}

// WriteAssets prints the standalone annualized statistics of every asset.
func WriteAssets(w io.Writer, est *frontier.Estimate, riskFree float64) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(NewTableStyle())
	t.SetTitle("Assets (annualized)")
	t.AppendHeader(table.Row{"Asset", "Return", "Volatility", "Sharpe Ratio"})
	vols := est.Volatilities()
	for i, a := range est.Assets {
		sharpe := math.NaN()
		if vols[i] > 0 {
			sharpe = (est.Returns[i] - riskFree) / vols[i]
		}
		t.AppendRow(table.Row{a, percent(est.Returns[i]), percent(vols[i]), ratio(sharpe)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
	fmt.Fprintln(w)
}

func percent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

func ratio(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}
