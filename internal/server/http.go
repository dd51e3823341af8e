package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"efficientFrontier/internal/report"
)

var log = logrus.WithField("component", "server")

func NewHTTPMux(a report.Artifacts) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/frontier.png", png(a.Frontier))
	mux.HandleFunc("/weights.png", png(a.Weights))
	mux.HandleFunc("/summary.txt", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		text := a.Summary
		if a.Commentary != "" {
			text += "\n\n" + a.Commentary
		}
		w.Write([]byte(text + "\n"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(index))
	})
	return mux
}

const index = `<!doctype html>
<html><head><title>Efficient Frontier</title></head>
<body>
<img src="/frontier.png" alt="efficient frontier">
<img src="/weights.png" alt="portfolio weights">
<p><a href="/summary.txt">summary</a></p>
</body></html>
`

func png(img []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if len(img) == 0 {
			http.Error(w, "chart not rendered", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	}
}

// ListenAndServe serves mux until ctx is cancelled, then shuts down.
func ListenAndServe(ctx context.Context, addr string, mux *http.ServeMux) error {
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("http: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
