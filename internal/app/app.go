package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/config"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/domain"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/httpapi"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/leetcode"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/scheduler"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/store"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/telegram"
)

// App wires the bot together: store, LeetCode client, Telegram router,
// scheduler and the HTTP API.
type App struct {
	cfg config.Config
	log *zap.Logger
	bot *tgbotapi.BotAPI
}

// New authorizes the bot. A bad or missing token fails here.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("authorize bot: %w", err)
	}
	bot.Debug = false
	return &App{cfg: cfg, log: log, bot: bot}, nil
}

// Run starts all components and blocks until a shutdown signal.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting streak checker bot",
		zap.String("mode", a.cfg.RunMode),
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("check_times", a.cfg.CheckTimes),
		zap.String("check_tz", a.cfg.CheckTZ),
	)

	loc, err := domain.ValidateTZ(a.cfg.CheckTZ)
	if err != nil {
		return fmt.Errorf("check timezone: %w", err)
	}
	times, err := domain.ParseCheckTimes(a.cfg.CheckTimes)
	if err != nil {
		return fmt.Errorf("check times: %w", err)
	}

	repo, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	checker := leetcode.NewClient(a.cfg.LeetCodeURL, loc, a.log)
	messenger := telegram.NewMessenger(a.bot, a.log)
	sched := scheduler.New(repo, checker, messenger, times, loc, a.log)
	router := telegram.NewRouter(messenger, checker, repo, sched.Schedule(), a.log)
	api := httpapi.New(router, messenger, sched, repo, a.log)

	srv := &http.Server{
		Addr:    a.cfg.HTTPAddr,
		Handler: api.Router(a.cfg.Debug),
		// Generous write timeout: manual_check blocks on upstream calls.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sched.Run(ctx)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	if a.cfg.RunMode == "polling" {
		a.runPolling(ctx, router, messenger)
	} else {
		a.log.Info("webhook mode: updates arrive via POST /webhook")
		<-ctx.Done()
	}

	a.log.Info("shutdown signal received")
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	return nil
}

// runPolling consumes updates via long polling until ctx is canceled.
// Telegram refuses getUpdates while a webhook is registered, so any
// leftover webhook is removed first.
func (a *App) runPolling(ctx context.Context, router *telegram.Router, messenger *telegram.Messenger) {
	if err := messenger.DeleteWebhook(); err != nil {
		a.log.Warn("delete webhook failed", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	a.log.Info("bot started, long polling for updates")
	for {
		select {
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			return
		case upd := <-updCh:
			router.HandleUpdate(ctx, upd)
		}
	}
}

func (a *App) openStore(ctx context.Context) (store.Repo, error) {
	switch a.cfg.StoreBackend {
	case "sqlite":
		repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.log.Info("sqlite store ready", zap.String("path", a.cfg.DBPath))
		return repo, nil
	case "file", "":
		repo, err := store.OpenFile(a.cfg.UsersFile)
		if err != nil {
			return nil, fmt.Errorf("open users file: %w", err)
		}
		n, _ := repo.Count(ctx)
		a.log.Info("file store ready", zap.String("path", a.cfg.UsersFile), zap.Int("users", n))
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", a.cfg.StoreBackend)
	}
}
