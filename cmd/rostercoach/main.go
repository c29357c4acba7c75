package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/mfinley/rostercoach/internal/api/fantasy"
	"github.com/mfinley/rostercoach/internal/api/yahoo"
	"github.com/mfinley/rostercoach/internal/bot"
	"github.com/mfinley/rostercoach/internal/config"
	"github.com/mfinley/rostercoach/internal/repository/memory"
	"github.com/mfinley/rostercoach/internal/repository/postgres"
	"github.com/mfinley/rostercoach/internal/scheduler"
	"github.com/mfinley/rostercoach/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	yahooClient := yahoo.NewClient(cfg.YahooAPI)
	yahooAPI := yahoo.NewAPI(yahooClient)
	fantasyAPI := fantasy.NewAPI(yahooAPI)

	inbox, err := postgres.Open(cfg.Database.URL, 5*time.Second)
	if err != nil {
		return err
	}

	repo := memory.NewRepository()
	advisorService := service.NewAdvisorService(fantasyAPI, repo, inbox, cfg.EngineConfig(), service.Options{
		TeamKey:    cfg.YahooAPI.TeamKey,
		WaiverType: cfg.Advisor.WaiverType,
		FAABBudget: cfg.Advisor.FAABRemaining,
		TopWaivers: cfg.Advisor.TopWaivers,
		TopTrades:  cfg.Advisor.TopTrades,
	})

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, advisorService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(advisorService, telegramBot.SendMessage, cfg.Schedule, cfg.YahooAPI.TradeTargets, clockwork.NewRealClock())
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	http.HandleFunc("/", healthCheckHandler)

	go func() {
		if err := http.ListenAndServe(":80", nil); err != nil {
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
