package finance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"

// errUnknownSymbol marks a symbol Yahoo does not know; it is never retried.
var errUnknownSymbol = errors.New("unknown symbol")

// fetchDaily fetches daily closes for a single symbol between start and end,
// trying every host before backing off and retrying.
func (y *Yahoo) fetchDaily(ctx context.Context, symbol string, start, end time.Time) (*series, error) {
	var yc *yahooChartResp
	op := func() error {
		var lastErr error
		for _, host := range y.hosts {
			resp, err := y.requestChart(ctx, host, symbol, start, end)
			if err == nil {
				yc = resp
				return nil
			}
			var perm *backoff.PermanentError
			if errors.As(err, &perm) {
				return err
			}
			log.WithError(err).Debugf("yahoo: %s via %s failed", symbol, host)
			lastErr = err
		}
		return lastErr
	}
	if err := backoff.Retry(op, y.newBackOff(ctx)); err != nil {
		return nil, err
	}

	res := yc.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quotes for %s", symbol)
	}
	ts, cl := filterPositive(res.Timestamp, res.Indicators.Quote[0].Close)
	days, closes := collapseDays(ts, cl, res.Meta.GmtOffset)
	return &series{symbol: symbol, days: days, closes: closes, meta: res.Meta}, nil
}

func (y *Yahoo) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = y.retryInterval
	b.MaxInterval = 8 * y.retryInterval
	return backoff.WithContext(backoff.WithMaxRetries(b, y.retries), ctx)
}

// requestChart performs one chart request against one host.
func (y *Yahoo) requestChart(ctx context.Context, host, symbol string, start, end time.Time) (*yahooChartResp, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div,splits",
		strings.TrimRight(host, "/"), url.PathEscape(symbol), start.Unix(), end.Unix())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", fmt.Sprintf("https://finance.yahoo.com/quote/%s/history", strings.ToUpper(symbol)))

	resp, err := y.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, err
	}
	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("failed to read yahoo response: %w", readErr)
	}

	if resp.StatusCode == http.StatusTooManyRequests || strings.HasPrefix(string(body), "Edge: Too Many Requests") {
		return nil, fmt.Errorf("yahoo %s returned 429: Edge: Too Many Requests", host)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, backoff.Permanent(fmt.Errorf("%w: %s (%s)", errUnknownSymbol, symbol, preview(body)))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo %s returned %d: %s", host, resp.StatusCode, preview(body))
	}
	if strings.HasPrefix(string(body), "<") || strings.HasPrefix(string(body), "Edge:") {
		return nil, fmt.Errorf("yahoo returned non-json body: %s", preview(body))
	}

	var yc yahooChartResp
	if err := json.Unmarshal(body, &yc); err != nil {
		return nil, fmt.Errorf("failed to parse yahoo json: %v; body: %s", err, preview(body))
	}
	if yc.Chart.Error != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: %s (%s: %s)", errUnknownSymbol, symbol, yc.Chart.Error.Code, yc.Chart.Error.Description))
	}
	if len(yc.Chart.Result) == 0 {
		return nil, backoff.Permanent(fmt.Errorf("no data for %s", symbol))
	}
	return &yc, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
