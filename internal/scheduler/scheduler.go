package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SilverSentinel/internal/collector"
	"SilverSentinel/internal/metrics"
	"SilverSentinel/internal/model"
	"SilverSentinel/internal/notifier"
	"SilverSentinel/internal/recorder"
	"SilverSentinel/internal/state"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const historyLimit = 10

// Sender delivers a formatted message to the operator chat.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks and answers chat commands.
type Scheduler struct {
	Cron           *cron.Cron
	Collector      *collector.Collector
	Tracker        *state.Tracker
	Notifier       Sender
	Recorder       recorder.Recorder
	NotifyEveryRun bool
	Ctx            context.Context

	log zerolog.Logger
	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, tr *state.Tracker, sender Sender, rec recorder.Recorder, log zerolog.Logger) *Scheduler {
	log = log.With().Str("component", "scheduler").Logger()
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger{log}),
			cron.WithChain(cron.Recover(cronLogger{log})),
		),
		Collector: col,
		Tracker:   tr,
		Notifier:  sender,
		Recorder:  rec,
		Ctx:       ctx,
		log:       log,
		now:       time.Now,
	}
}

// RegisterAll registers the report and news tasks. An empty news schedule disables the digest.
func (s *Scheduler) RegisterAll(reportCron, newsCron string) error {
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	if newsCron == "" {
		return nil
	}
	if _, err := s.Cron.AddFunc(newsCron, s.newsTask); err != nil {
		return fmt.Errorf("register news task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunReportNow executes the report task immediately and always delivers it.
func (s *Scheduler) RunReportNow(trigger model.TriggerType) {
	defer s.recoverTask("report")
	msg, _, err := s.report(s.Ctx, trigger)
	if err != nil {
		s.trySend(fmt.Sprintf("❌ Analysis failed: %v", err))
		return
	}
	s.trySend(msg)
}

func (s *Scheduler) reportTask() {
	msg, notify, err := s.report(s.Ctx, model.TriggerScheduled)
	if err != nil {
		s.trySend(fmt.Sprintf("❌ Scheduled analysis failed: %v", err))
		return
	}
	if notify {
		s.trySend(msg)
	}
}

func (s *Scheduler) newsTask() {
	s.trySend(s.newsDigest(s.Ctx))
}

// report runs one analysis and returns the message to deliver. notify is
// false for scheduled runs whose signals did not change.
func (s *Scheduler) report(ctx context.Context, trigger model.TriggerType) (msg string, notify bool, err error) {
	log := s.log.With().Str("trigger", string(trigger)).Logger()
	log.Info().Msg("running analysis")

	a, err := s.Collector.Collect(ctx)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("collect failed")
		return "", false, err
	}

	now := s.now()
	msg = notifier.FormatReport(a, now)
	last, ok := a.Result.Last()
	if !ok {
		metrics.RunsTotal.WithLabelValues("empty").Inc()
		return msg, trigger != model.TriggerScheduled, nil
	}
	metrics.RunsTotal.WithLabelValues("ok").Inc()

	runID, err := s.Recorder.RecordRun(&recorder.RunSnapshot{
		Symbol:  a.Symbol,
		Source:  a.Source,
		Trigger: trigger,
		Bars:    len(a.Bars),
		Point:   last,
		Signals: a.Result.Signals,
	})
	if err != nil {
		log.Error().Err(err).Msg("record run")
	}

	diffs, initial := s.Tracker.Observe(a.Symbol, a.Result.Signals, last.Close, now)
	for _, d := range diffs {
		metrics.SignalChanges.WithLabelValues(d.Name).Inc()
		if err := s.Recorder.RecordSignalChange(&recorder.SignalChange{
			RunID: runID, Symbol: a.Symbol, Diff: d, Close: last.Close,
		}); err != nil {
			log.Error().Err(err).Msg("record signal change")
		}
	}
	if len(diffs) > 0 {
		log.Info().Int("changes", len(diffs)).Msg("signals changed")
		msg = notifier.FormatSignalChange(a.Symbol, diffs, last.Close) + "\n" + msg
	}

	notify = trigger != model.TriggerScheduled || initial || len(diffs) > 0 || s.NotifyEveryRun
	return msg, notify, nil
}

func (s *Scheduler) newsDigest(ctx context.Context) string {
	hs, err := s.Collector.Headlines(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("fetch headlines")
		return fmt.Sprintf("❌ News unavailable: %v", err)
	}
	return notifier.FormatNews(hs, s.now())
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch commandName(command) {
	case "/signal", "/report":
		msg, _, err := s.report(ctx, model.TriggerManual)
		if err != nil {
			return fmt.Sprintf("❌ Analysis failed: %v", err)
		}
		return msg
	case "/news":
		return s.newsDigest(ctx)
	case "/status":
		return notifier.FormatStatus(s.Tracker.GetState(), s.now())
	case "/history":
		runs, err := s.Recorder.RecentRuns(historyLimit)
		if err != nil {
			s.log.Error().Err(err).Msg("read history")
			return fmt.Sprintf("❌ History unavailable: %v", err)
		}
		return notifier.FormatHistory(runs, s.now())
	default:
		return "Available commands:\n• /signal - run the analysis now\n• /news - latest headlines\n• /status - last known signals\n• /history - recent runs"
	}
}

// commandName strips arguments and a @botname suffix.
func commandName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	name, _, _ := strings.Cut(fields[0], "@")
	return strings.ToLower(name)
}

func (s *Scheduler) recoverTask(name string) {
	if r := recover(); r != nil {
		s.log.Error().Str("task", name).Interface("panic", r).Msg("task panicked")
	}
}

// cronLogger routes cron's own logging, including recovered job panics, to zerolog.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
