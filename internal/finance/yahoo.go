package finance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"efficientFrontier/internal/frontier"
	"efficientFrontier/internal/storage"
)

var log = logrus.WithField("component", "finance")

// ErrDataUnavailable is returned when the source cannot supply every
// requested symbol over the requested range.
var ErrDataUnavailable = errors.New("price data unavailable")

// DefaultRiskFreeSymbol is the CBOE 10-year Treasury yield index, quoted in percent.
const DefaultRiskFreeSymbol = "^TNX"

// Yahoo is a price source backed by the Yahoo Finance chart API.
type Yahoo struct {
	client         *http.Client
	hosts          []string
	store          *storage.Store
	pause          time.Duration
	retries        uint64
	retryInterval  time.Duration
	riskFreeSymbol string
}

type Option func(*Yahoo)

func WithHTTPClient(c *http.Client) Option { return func(y *Yahoo) { y.client = c } }

// WithHosts replaces the base URLs tried in order for every request.
func WithHosts(hosts ...string) Option { return func(y *Yahoo) { y.hosts = hosts } }

// WithStore enables the sqlite close cache.
func WithStore(s *storage.Store) Option { return func(y *Yahoo) { y.store = s } }

// WithPause sets the delay between consecutive symbols.
func WithPause(d time.Duration) Option { return func(y *Yahoo) { y.pause = d } }

func WithRetries(n uint64, interval time.Duration) Option {
	return func(y *Yahoo) {
		y.retries = n
		y.retryInterval = interval
	}
}

func WithRiskFreeSymbol(symbol string) Option {
	return func(y *Yahoo) {
		if symbol != "" {
			y.riskFreeSymbol = symbol
		}
	}
}

func NewYahoo(opts ...Option) *Yahoo {
	y := &Yahoo{
		client:         &http.Client{Timeout: 30 * time.Second},
		hosts:          []string{"https://query1.finance.yahoo.com", "https://query2.finance.yahoo.com"},
		pause:          120 * time.Millisecond,
		retries:        3,
		retryInterval:  200 * time.Millisecond,
		riskFreeSymbol: DefaultRiskFreeSymbol,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// History returns daily closes of every symbol between start and end, merged
// on the union of trading days. Any symbol that cannot be fetched fails the
// whole call; all failures are reported together.
func (y *Yahoo) History(ctx context.Context, symbols []string, start, end time.Time) (*frontier.PriceHistory, error) {
	if err := frontier.ValidateUniverse(symbols); err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, fmt.Errorf("invalid range: %s is not after %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	var errs error
	all := make([]*series, 0, len(symbols))
	for i, sym := range symbols {
		if i > 0 && y.pause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(y.pause):
			}
		}

		s, err := y.loadDaily(ctx, sym, start, end)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", sym, err))
			continue
		}
		if len(s.closes) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s: no valid closes in range", sym))
			continue
		}
		log.Infof("yahoo: %s %d closes (%s .. %s)", sym, len(s.closes),
			s.days[0].Format(time.DateOnly), s.days[len(s.days)-1].Format(time.DateOnly))
		all = append(all, s)
	}
	if errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, errs)
	}
	return align(all), nil
}

// loadDaily serves a symbol from the cache when a previous download covered
// the same days, and fetches it otherwise.
func (y *Yahoo) loadDaily(ctx context.Context, symbol string, start, end time.Time) (*series, error) {
	from, to := dayStart(start), dayStart(end)
	if y.store != nil {
		days, closes, ok, err := y.store.LoadCloses(symbol, from.Unix(), to.Unix())
		switch {
		case err != nil:
			log.WithError(err).Warnf("cache: read %s failed", symbol)
		case ok:
			log.Debugf("cache: hit %s", symbol)
			s := &series{symbol: symbol, closes: closes, days: make([]time.Time, len(days))}
			for i, d := range days {
				s.days[i] = time.Unix(d, 0).UTC()
			}
			return s, nil
		}
	}

	s, err := y.fetchDaily(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if y.store != nil {
		days := make([]int64, len(s.days))
		for i, d := range s.days {
			days[i] = d.Unix()
		}
		if err := y.store.SaveCloses(symbol, from.Unix(), to.Unix(), days, s.closes); err != nil {
			log.WithError(err).Warnf("cache: write %s failed", symbol)
		}
	}
	return s, nil
}

// RiskFreeRate returns the previous regular-market close of the risk-free
// symbol as an annualized fraction (4.5 -> 0.045).
func (y *Yahoo) RiskFreeRate(ctx context.Context) (float64, error) {
	end := time.Now()
	s, err := y.fetchDaily(ctx, y.riskFreeSymbol, end.AddDate(0, 0, -14), end)
	if err != nil {
		return 0, fmt.Errorf("%w: risk-free rate %s: %w", ErrDataUnavailable, y.riskFreeSymbol, err)
	}

	var prev float64
	switch {
	case len(s.closes) >= 2:
		prev = s.closes[len(s.closes)-2]
	case s.meta.ChartPreviousClose > 0:
		prev = s.meta.ChartPreviousClose
	case len(s.closes) == 1:
		prev = s.closes[0]
	}
	if prev <= 0 {
		return 0, fmt.Errorf("%w: no close for %s", ErrDataUnavailable, y.riskFreeSymbol)
	}
	return prev / 100, nil
}
