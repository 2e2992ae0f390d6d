package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SilverSentinel/internal/collector"
	"SilverSentinel/internal/config"
	"SilverSentinel/internal/metrics"
	"SilverSentinel/internal/model"
	"SilverSentinel/internal/notifier"
	"SilverSentinel/internal/recorder"
	"SilverSentinel/internal/scheduler"
	"SilverSentinel/internal/state"
	"SilverSentinel/internal/strategy"
	"SilverSentinel/internal/util"
)

func main() {
	once := flag.Bool("once", false, "run a single analysis, print the report to stdout and exit")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Log.Level)
	if *once {
		logger = util.NewLoggerTo(os.Stderr, cfg.Log.Level)
	}
	log := logger.With().Str("component", "main").Logger()
	log.Info().Str("config", cfgPath).Msg("SilverSentinel starting")

	// Init fetchers
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	var news collector.HeadlineSource
	if cfg.News.APIKey != "" {
		news = collector.NewNewsFetcher(cfg.News.BaseURL, cfg.News.APIKey, cfg.Proxy)
	} else {
		log.Warn().Msg("news.api_key not set, headlines disabled")
	}
	log.Info().Str("source", fetcher.Name()).Str("symbol", cfg.DataSource.Symbol).Msg("data source selected")

	// Init collector
	engine := strategy.NewEngine(cfg.Engine)
	col := collector.NewCollector(fetcher, news, engine,
		cfg.DataSource.Symbol, cfg.DataSource.Interval, cfg.DataSource.Range, logger)
	col.Query = cfg.News.Query
	col.Limit = cfg.News.Limit

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := cfg.Engine.Validate(); err != nil {
			log.Fatal().Err(err).Msg("engine config validation")
		}
		if err := runOnce(ctx, col); err != nil {
			log.Fatal().Err(err).Msg("analysis failed")
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Init signal state
	tracker, err := state.NewTracker(cfg.State.File, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("init signal state")
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	if cfg.MetricsAddr != "" {
		srv := metrics.Serve(cfg.MetricsAddr, logger)
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, tracker, tn, rec, logger)
	sched.NotifyEveryRun = cfg.Schedule.NotifyEveryRun
	newsCron := cfg.Schedule.NewsCron
	if news == nil {
		newsCron = ""
	}
	if err := sched.RegisterAll(cfg.Schedule.ReportCron, newsCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing report now")
		go sched.RunReportNow(model.TriggerStartup)
	}

	log.Info().Msg("SilverSentinel is running, press Ctrl+C to stop")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping")
}

func runOnce(ctx context.Context, col *collector.Collector) error {
	a, err := col.Collect(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	fmt.Println(notifier.FormatReport(a, now))
	if col.News != nil {
		hs, err := col.Headlines(ctx)
		if err != nil {
			return err
		}
		fmt.Println(notifier.FormatNews(hs, now))
	}
	return nil
}
