package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"efficientFrontier/internal/config"
	"efficientFrontier/internal/finance"
	"efficientFrontier/internal/frontier"
	"efficientFrontier/internal/logging"
	"efficientFrontier/internal/openai"
	"efficientFrontier/internal/pipeline"
	"efficientFrontier/internal/server"
	"efficientFrontier/internal/storage"
	"efficientFrontier/internal/telegram"
)

var log = logrus.WithField("component", "main")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.WithError(err).Error("frontier: run failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel); err != nil {
		return err
	}
	method, err := frontier.ParseMethod(cfg.Sampler)
	if err != nil {
		return err
	}

	yahooOpts := []finance.Option{finance.WithRiskFreeSymbol(cfg.RiskFreeSymbol)}
	if cfg.PriceCache != "" {
		// Ensure parent directory for the cache exists
		_ = os.MkdirAll(filepath.Dir(cfg.PriceCache), 0o755)
		db, err := storage.OpenSQLite("file:" + cfg.PriceCache)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := storage.InitSchema(db); err != nil {
			return err
		}
		log.Infof("db: price cache at %s", cfg.PriceCache)
		yahooOpts = append(yahooOpts, finance.WithStore(storage.NewStore(db)))
	}

	p := &pipeline.Pipeline{
		Source: finance.NewYahoo(yahooOpts...),
		Out:    os.Stdout,
	}
	if cfg.OpenAIEnabled() {
		p.Commentator = openai.NewCommentator(cfg.OpenAIKey, cfg.OpenAIModel)
	}
	if cfg.TelegramEnabled() {
		tg, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.WithError(err).Warn("telegram: delivery disabled")
		} else {
			p.Deliverers = append(p.Deliverers, tg)
		}
	}

	res, err := p.Run(ctx, pipeline.Options{
		Tickers:         cfg.Tickers,
		Samples:         cfg.Samples,
		LookbackYears:   cfg.LookbackYears,
		TradingDays:     cfg.TradingDays,
		Seed:            cfg.Seed,
		Method:          method,
		Workers:         cfg.Workers,
		EnvelopeBuckets: cfg.EnvelopeBuckets,
	})
	if err != nil {
		return err
	}

	if cfg.ServeAddr == "" {
		return nil
	}
	log.Infof("http: charts at http://%s/ (Ctrl-C to exit)", displayHost(cfg.ServeAddr))
	return server.ListenAndServe(ctx, cfg.ServeAddr, server.NewHTTPMux(res.Artifacts))
}

func displayHost(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
