package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"VolSentinel/internal/collector"
	"VolSentinel/internal/notifier"
	"VolSentinel/internal/plot"
	"VolSentinel/internal/screener"
	"VolSentinel/internal/store"
	"VolSentinel/internal/universe"
)

const helpText = `Available commands:
/screen - ranked IV screener for the watchlist
/plot SYMBOL - HV vs IV summary per timeframe
/watch - show the watchlist
/watch add SYMBOL - add a ticker
/watch remove SYMBOL - remove a ticker
/refresh - re-fetch all series now`

// Scheduler manages the cron-driven refresh task and user commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Universe  *universe.Manager
	Store     store.Store
	Notifier  *notifier.TelegramNotifier
	Cache     *screener.Cache
	TopN      int
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, um *universe.Manager, st store.Store, tn *notifier.TelegramNotifier, topN int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Universe:  um,
		Store:     st,
		Notifier:  tn,
		Cache:     &screener.Cache{},
		TopN:      topN,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily refresh task.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Info().Msg("running refresh task")
	symbols := s.Universe.Symbols()
	if len(symbols) == 0 {
		log.Warn().Msg("watchlist empty, nothing to refresh")
		return
	}

	if err := s.Collector.Refresh(s.Ctx, symbols); err != nil {
		log.Error().Err(err).Msg("refresh aborted")
		s.trySend(fmt.Sprintf("❌ Refresh failed: %v", err))
		return
	}

	report, err := s.screenReport()
	if err != nil {
		log.Error().Err(err).Msg("screen after refresh")
		return
	}
	s.trySend(report)
}

// screenReport builds the ranked screener message, reusing the memoized run
// when the store snapshot has not changed since the last scan.
func (s *Scheduler) screenReport() (string, error) {
	snapshot, err := s.Store.Snapshot(s.Ctx)
	if err != nil {
		log.Warn().Err(err).Msg("snapshot unavailable, scanning without memoization")
		snapshot = ""
	}

	rows, ok := s.Cache.Get(snapshot)
	if !ok {
		results, err := screener.Scan(s.Ctx, s.Universe.Symbols(), s.Store)
		if err != nil {
			return "", fmt.Errorf("scan watchlist: %w", err)
		}
		rows = screener.Rows(results)
		if snapshot != "" {
			s.Cache.Put(snapshot, rows)
		}
	}
	return notifier.FormatScreenerReport(rows, s.TopN), nil
}

// HandleCommand processes a user command and returns a reply. An empty reply
// means the command sends its own messages.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}

	switch fields[0] {
	case "/screen":
		report, err := s.screenReport()
		if err != nil {
			log.Error().Err(err).Msg("screen command")
			return fmt.Sprintf("❌ Screener failed: %v", err)
		}
		return report

	case "/plot":
		if len(fields) < 2 {
			return "Usage: /plot SYMBOL"
		}
		return s.plotReply(strings.ToUpper(fields[1]))

	case "/watch":
		return s.watchReply(fields[1:])

	case "/refresh":
		s.refreshTask()
		return ""

	default:
		return helpText
	}
}

func (s *Scheduler) plotReply(symbol string) string {
	series, err := s.Store.Get(s.Ctx, symbol)
	if err != nil {
		log.Debug().Str("symbol", symbol).Err(err).Msg("plot series unavailable")
		return fmt.Sprintf("No cached data for %s. Add it with /watch add %s and run /refresh.", symbol, symbol)
	}
	return notifier.FormatPlotReport(symbol, plot.Build(series))
}

func (s *Scheduler) watchReply(args []string) string {
	if len(args) == 0 || args[0] == "list" {
		return notifier.FormatWatchlist(s.Universe.Symbols())
	}
	if len(args) < 2 {
		return "Usage: /watch add SYMBOL | /watch remove SYMBOL"
	}

	symbol := strings.ToUpper(args[1])
	switch args[0] {
	case "add":
		if s.Universe.Add(symbol) {
			return fmt.Sprintf("Added %s. Run /refresh to fetch its history.", symbol)
		}
		return fmt.Sprintf("%s is already on the watchlist.", symbol)
	case "remove":
		if s.Universe.Remove(symbol) {
			return fmt.Sprintf("Removed %s.", symbol)
		}
		return fmt.Sprintf("%s is not on the watchlist.", symbol)
	default:
		return "Usage: /watch add SYMBOL | /watch remove SYMBOL"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
