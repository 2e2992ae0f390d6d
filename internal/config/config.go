package config

import (
	"fmt"
	"os"
	"strconv"

	"SilverSentinel/internal/strategy"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL  string `yaml:"base_url"` // empty selects Yahoo Finance
		APIKey   string `yaml:"api_key"`
		Symbol   string `yaml:"symbol"`
		Interval string `yaml:"interval"`
		Range    string `yaml:"range"`
	} `yaml:"data_source"`
	News struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Query   string `yaml:"query"`
		Limit   int    `yaml:"limit"`
	} `yaml:"news"`
	Engine   strategy.Params `yaml:"engine"`
	Schedule struct {
		ReportCron     string `yaml:"report_cron"`
		NewsCron       string `yaml:"news_cron"`
		NotifyEveryRun bool   `yaml:"notify_every_run"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	State struct {
		File string `yaml:"file"`
	} `yaml:"state"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	MetricsAddr string `yaml:"metrics_addr"`
	Proxy       string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{Engine: strategy.DefaultParams()}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setStr(&cfg.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setStr(&cfg.DataSource.BaseURL, "DATA_SOURCE_BASE_URL")
	setStr(&cfg.DataSource.APIKey, "DATA_SOURCE_API_KEY")
	setStr(&cfg.DataSource.Symbol, "SYMBOL")
	setStr(&cfg.News.APIKey, "NEWS_API_KEY")
	setStr(&cfg.Proxy, "HTTPS_PROXY")
	setStr(&cfg.Schedule.ReportCron, "CRON_REPORT")
	setStr(&cfg.Database.SQLitePath, "SQLITE_PATH")
	setStr(&cfg.Log.Level, "LOG_LEVEL")
	setStr(&cfg.MetricsAddr, "METRICS_ADDR")
	if v := os.Getenv("NEWS_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.News.Limit = n
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "SI=F"
	}
	if cfg.DataSource.Interval == "" {
		cfg.DataSource.Interval = "15m"
	}
	if cfg.DataSource.Range == "" {
		cfg.DataSource.Range = "1d"
	}
	if cfg.News.BaseURL == "" {
		cfg.News.BaseURL = "https://newsapi.org"
	}
	if cfg.News.Query == "" {
		cfg.News.Query = "silver price"
	}
	if cfg.News.Limit == 0 {
		cfg.News.Limit = 5
	}
	if cfg.Schedule.ReportCron == "" {
		cfg.Schedule.ReportCron = "0 */15 * * * *"
	}
	if cfg.Schedule.NewsCron == "" {
		cfg.Schedule.NewsCron = "0 0 * * * *"
	}
	if cfg.State.File == "" {
		cfg.State.File = "data/signal_state.json"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func setStr(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.News.Limit < 0 {
		return fmt.Errorf("news.limit must not be negative")
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}
