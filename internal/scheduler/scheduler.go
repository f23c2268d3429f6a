package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/rob-foulkrod/ff/internal/config"
	"github.com/rob-foulkrod/ff/internal/service"
)

type Scheduler struct {
	s             gocron.Scheduler
	reportService *service.ReportService
	sendMessage   func(string) error
	schedule      string
}

func NewScheduler(reportService *service.ReportService, sendMessage func(string) error, cfg config.Report) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:             s,
		reportService: reportService,
		sendMessage:   sendMessage,
		schedule:      cfg.Schedule,
	}, nil
}

func (s *Scheduler) Start() error {
	// Weekly report on the league's configured cron expression. The
	// expression is validated at config load.
	_, err := s.s.NewJob(
		gocron.CronJob(s.schedule, false),
		gocron.NewTask(s.sendWeeklyReport),
	)
	if err != nil {
		return fmt.Errorf("failed to create weekly report job: %w", err)
	}

	// Standings refresher - Wednesday 07:30
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Wednesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendStandings),
	)
	if err != nil {
		return fmt.Errorf("failed to create standings job: %w", err)
	}

	// Upcoming matchups - Thursday 18:30, ahead of the first kickoff
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Thursday), gocron.NewAtTimes(gocron.NewAtTime(18, 30, 0))),
		gocron.NewTask(s.sendPreview),
	)
	if err != nil {
		return fmt.Errorf("failed to create preview job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendWeeklyReport() {
	report, err := s.reportService.GetWeeklyReport(0)
	if err != nil {
		slog.Error("Failed to build weekly report", "error", err)
		return
	}
	if err := s.sendMessage(report); err != nil {
		slog.Error("Failed to send weekly report", "error", err)
	}
}

func (s *Scheduler) sendStandings() {
	standings, err := s.reportService.GetStandings()
	if err != nil {
		slog.Error("Failed to get standings", "error", err)
		return
	}
	if err := s.sendMessage(standings); err != nil {
		slog.Error("Failed to send standings", "error", err)
	}
}

func (s *Scheduler) sendPreview() {
	preview, err := s.reportService.GetPreview()
	if err != nil {
		slog.Error("Failed to build preview", "error", err)
		return
	}
	if err := s.sendMessage(preview); err != nil {
		slog.Error("Failed to send preview", "error", err)
	}
}
