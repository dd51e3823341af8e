package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"efficientFrontier/internal/finance"
	"efficientFrontier/internal/frontier"
)

var log = logrus.WithField("component", "config")

// DefaultTickers is the basket the frontier is computed for when nothing
// else is configured.
var DefaultTickers = []string{"ITOT", "IXUS", "AGG", "IAGG", "REET", "GSG", "BTC-USD"}

// DotenvFile is loaded, when present, before the environment is read.
const DotenvFile = ".env.local"

type Config struct {
	Tickers         []string
	Samples         int
	LookbackYears   int
	TradingDays     int
	RiskFreeSymbol  string
	Seed            int64
	Sampler         string
	Workers         int
	EnvelopeBuckets int
	PriceCache      string
	ServeAddr       string
	LogLevel        string

	TelegramToken  string
	TelegramChatID int64

	OpenAIKey   string
	OpenAIModel string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tickers", strings.Join(DefaultTickers, ","))
	v.SetDefault("samples", 20000)
	v.SetDefault("lookback_years", 10)
	v.SetDefault("trading_days", frontier.TradingDaysPerYear)
	v.SetDefault("risk_free_symbol", finance.DefaultRiskFreeSymbol)
	v.SetDefault("seed", 0)
	v.SetDefault("sampler", frontier.MethodUniform.String())
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("envelope_buckets", 40)
	v.SetDefault("price_cache", "")
	v.SetDefault("serve_addr", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("openai_model", "gpt-4")
}

// Load reads the optional dotenv file and then the environment. Frontier
// keys use the FRONTIER_ prefix; the Telegram and OpenAI credentials keep
// their conventional names.
func Load() (Config, error) {
	if _, err := os.Stat(DotenvFile); err == nil {
		if err := godotenv.Load(DotenvFile); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", DotenvFile, err)
		}
		log.Infof("config: loaded %s", DotenvFile)
	}

	v := viper.New()
	v.SetEnvPrefix("frontier")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Tickers:         splitTickers(v.GetString("tickers")),
		Samples:         v.GetInt("samples"),
		LookbackYears:   v.GetInt("lookback_years"),
		TradingDays:     v.GetInt("trading_days"),
		RiskFreeSymbol:  v.GetString("risk_free_symbol"),
		Seed:            v.GetInt64("seed"),
		Sampler:         v.GetString("sampler"),
		Workers:         v.GetInt("workers"),
		EnvelopeBuckets: v.GetInt("envelope_buckets"),
		PriceCache:      v.GetString("price_cache"),
		ServeAddr:       v.GetString("serve_addr"),
		LogLevel:        v.GetString("log_level"),
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     v.GetString("openai_model"),
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", raw, err)
		}
		cfg.TelegramChatID = id
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the run cannot start with.
func (c Config) Validate() error {
	if err := frontier.ValidateUniverse(c.Tickers); err != nil {
		return fmt.Errorf("invalid tickers: %w", err)
	}
	if c.Samples < 1 {
		return fmt.Errorf("samples must be at least 1, got %d", c.Samples)
	}
	if c.LookbackYears < 1 {
		return fmt.Errorf("lookback must be at least 1 year, got %d", c.LookbackYears)
	}
	if c.TradingDays < 1 {
		return fmt.Errorf("trading days must be positive, got %d", c.TradingDays)
	}
	if _, err := frontier.ParseMethod(c.Sampler); err != nil {
		return err
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

// TelegramEnabled reports whether results should be delivered to a chat.
func (c Config) TelegramEnabled() bool { return c.TelegramToken != "" && c.TelegramChatID != 0 }

// OpenAIEnabled reports whether commentary should be requested.
func (c Config) OpenAIEnabled() bool { return c.OpenAIKey != "" }

func splitTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		out = append(out, strings.ToUpper(strings.TrimSpace(t)))
	}
	return out
}
