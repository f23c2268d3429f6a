package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rob-foulkrod/ff/internal/api/sleeper"
	"github.com/rob-foulkrod/ff/internal/bot"
	"github.com/rob-foulkrod/ff/internal/config"
	"github.com/rob-foulkrod/ff/internal/repository/memory"
	"github.com/rob-foulkrod/ff/internal/scheduler"
	"github.com/rob-foulkrod/ff/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	overrides, err := config.LoadOverrides(cfg.Report.LeagueFile)
	if err != nil {
		return err
	}

	client := sleeper.NewClient()
	api := sleeper.NewAPI(client)

	repo := memory.NewRepository()
	reportService := service.NewReportService(api, repo, cfg.Sleeper, overrides)

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, reportService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(reportService, telegramBot.SendMessage, cfg.Report)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	http.HandleFunc("/", healthCheckHandler)

	go func() {
		if err := http.ListenAndServe(":8080", nil); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
