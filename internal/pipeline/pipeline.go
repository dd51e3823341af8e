package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"efficientFrontier/internal/frontier"
	"efficientFrontier/internal/report"
)

var log = logrus.WithField("component", "pipeline")

// PriceSource supplies aligned daily closes and the current risk-free rate.
type PriceSource interface {
	History(ctx context.Context, symbols []string, start, end time.Time) (*frontier.PriceHistory, error)
	RiskFreeRate(ctx context.Context) (float64, error)
}

// Commentator turns a run summary into prose.
type Commentator interface {
	Comment(ctx context.Context, summary string) (string, error)
}

// Deliverer pushes rendered artifacts somewhere outside the process.
type Deliverer interface {
	Deliver(a report.Artifacts) error
}

type Options struct {
	Tickers         []string
	Samples         int
	LookbackYears   int
	TradingDays     int
	Seed            int64
	Method          frontier.Method
	Workers         int
	EnvelopeBuckets int

	// Now is the end of the lookback window; nil means time.Now.
	Now func() time.Time
}

// Result is the outcome of one completed run.
type Result struct {
	Run       report.Run
	Artifacts report.Artifacts
}

// Pipeline wires a price source to the frontier computation and the
// optional reporting channels.
type Pipeline struct {
	Source      PriceSource
	Commentator Commentator
	Deliverers  []Deliverer
	Out         io.Writer
}

// Run fetches prices, estimates moments, samples and scores portfolios,
// selects the two distinguished ones, prints the report and renders charts.
// Commentary and delivery failures are logged and never fail the run.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := frontier.ValidateUniverse(opts.Tickers); err != nil {
		return nil, err
	}
	if opts.Samples < 1 {
		return nil, fmt.Errorf("sample count must be at least 1, got %d", opts.Samples)
	}
	if opts.LookbackYears < 1 {
		return nil, fmt.Errorf("lookback must be at least 1 year, got %d", opts.LookbackYears)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	end := now()
	start := end.AddDate(-opts.LookbackYears, 0, 0)

	log.Infof("fetch: %d assets from %s to %s", len(opts.Tickers), start.Format(time.DateOnly), end.Format(time.DateOnly))
	history, err := p.Source.History(ctx, opts.Tickers, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	riskFree, err := p.Source.RiskFreeRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch risk-free rate: %w", err)
	}
	log.Infof("fetch: %d rows, risk-free rate %.4f", history.Rows(), riskFree)

	est, err := frontier.NewEstimate(history, opts.TradingDays)
	if err != nil {
		return nil, fmt.Errorf("estimate: %w", err)
	}

	sampler := frontier.NewSeededSampler(opts.Seed, opts.Method)
	weights, err := sampler.Sample(est.Size(), opts.Samples)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}

	started := time.Now()
	collection, err := frontier.ScoreAll(ctx, est, weights, riskFree, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	log.Infof("score: %s portfolios (%s sampler) in %s", humanize.Comma(int64(collection.Len())), opts.Method, time.Since(started).Round(time.Millisecond))
	if n := collection.Degenerate(); n > 0 {
		log.Warnf("score: %d portfolios have zero volatility and no Sharpe ratio", n)
	}

	sel, err := frontier.Select(collection)
	if err != nil {
		return nil, err
	}

	run := report.Run{
		Assets:       est.Assets,
		Samples:      collection.Len(),
		Observations: est.Observations,
		RiskFree:     riskFree,
		Estimate:     est,
		Collection:   collection,
		Selection:    sel,
		Envelope:     frontier.Envelope(collection, opts.EnvelopeBuckets),
	}
	if p.Out != nil {
		report.Write(p.Out, run)
	}

	artifacts, err := report.Render(run)
	if err != nil {
		return nil, err
	}

	if p.Commentator != nil {
		text, err := p.Commentator.Comment(ctx, artifacts.Summary)
		if err != nil {
			log.WithError(err).Warn("commentary: skipped")
		} else {
			artifacts.Commentary = text
			if p.Out != nil {
				fmt.Fprintf(p.Out, "%s\n\n", text)
			}
		}
	}

	for _, d := range p.Deliverers {
		if err := d.Deliver(artifacts); err != nil {
			log.WithError(err).Warn("delivery failed")
		}
	}

	return &Result{Run: run, Artifacts: artifacts}, nil
}
