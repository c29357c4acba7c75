package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/mfinley/rostercoach/internal/config"
	"github.com/mfinley/rostercoach/internal/service"
)

// Scheduler drives the recurring engine runs. Each job computes a report and
// pushes it to the league chat; the underlying service run already records
// the inbox notification.
type Scheduler struct {
	s              gocron.Scheduler
	advisorService *service.AdvisorService
	sendMessage    func(string) error
	schedule       config.Schedule
	tradeTargets   []string
}

// NewScheduler validates the configured cron expressions and builds the
// scheduler in the league's timezone. clock is injectable for tests.
func NewScheduler(advisorService *service.AdvisorService, sendMessage func(string) error, schedule config.Schedule, tradeTargets []string, clock clockwork.Clock) (*Scheduler, error) {
	for _, spec := range []string{schedule.LineupCron, schedule.WaiverCron, schedule.TradeCron} {
		if _, err := cron.ParseStandard(spec); err != nil {
			return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
		}
	}

	location, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", schedule.Timezone, err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
		gocron.WithClock(clock),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:              s,
		advisorService: advisorService,
		sendMessage:    sendMessage,
		schedule:       schedule,
		tradeTargets:   tradeTargets,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	_, err = s.s.NewJob(
		gocron.CronJob(s.schedule.LineupCron, false),
		gocron.NewTask(s.runLineupCheck),
	)
	if err != nil {
		return fmt.Errorf("failed to create lineup job: %w", err)
	}

	_, err = s.s.NewJob(
		gocron.CronJob(s.schedule.WaiverCron, false),
		gocron.NewTask(s.runWaiverScan),
	)
	if err != nil {
		return fmt.Errorf("failed to create waiver job: %w", err)
	}

	_, err = s.s.NewJob(
		gocron.CronJob(s.schedule.TradeCron, false),
		gocron.NewTask(s.runTradeScan),
	)
	if err != nil {
		return fmt.Errorf("failed to create trade job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) runLineupCheck() {
	report, err := s.advisorService.LineupReport(context.Background())
	if err != nil {
		slog.Error("Failed to run lineup check", "error", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) runWaiverScan() {
	report, err := s.advisorService.WaiverReport(context.Background())
	if err != nil {
		slog.Error("Failed to run waiver scan", "error", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) runTradeScan() {
	for _, teamKey := range s.tradeTargets {
		report, err := s.advisorService.TradeReport(context.Background(), teamKey)
		if err != nil {
			slog.Error("Failed to run trade scan", "team", teamKey, "error", err)
			continue
		}
		s.sendMessage(report)
	}
}
