package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/scheduler"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/store"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/telegram"
)

// Dispatcher handles one inbound Telegram update.
type Dispatcher interface {
	HandleUpdate(ctx context.Context, upd tgbotapi.Update)
}

// Server exposes the bot's HTTP surface: health, stats, the Telegram
// webhook and manual triggers.
type Server struct {
	dispatcher Dispatcher
	sender     telegram.Sender
	sched      *scheduler.Scheduler
	repo       store.Repo
	log        *zap.Logger
	started    time.Time
}

// New wires the HTTP handlers.
func New(dispatcher Dispatcher, sender telegram.Sender, sched *scheduler.Scheduler, repo store.Repo, log *zap.Logger) *Server {
	return &Server{
		dispatcher: dispatcher,
		sender:     sender,
		sched:      sched,
		repo:       repo,
		log:        log,
		started:    time.Now().UTC(),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), securityHeaders())

	r.GET("/", s.home)
	r.GET("/health", s.health)
	r.GET("/stats", s.stats)
	r.GET("/scheduler_status", s.schedulerStatus)
	r.POST("/webhook", s.webhook)
	r.POST("/set_webhook", s.setWebhook)
	r.POST("/manual_check", s.manualCheck)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Endpoint not found"})
	})
	return r
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Next()
	}
}

func (s *Server) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "LeetCode Streak Checker Bot API",
		"version": "1.0.0",
		"features": gin.H{
			"automatic_daily_checks": s.sched.Schedule(),
			"manual_commands":        "Available via Telegram",
			"webhook_support":        "Real-time responses",
		},
		"endpoints": gin.H{
			"/":                 "GET - API information and health check",
			"/webhook":          "POST - Handle Telegram webhook",
			"/set_webhook":      "POST - Set webhook URL",
			"/health":           "GET - Health check endpoint",
			"/stats":            "GET - Bot statistics",
			"/manual_check":     "POST - Manually trigger check for all users",
			"/scheduler_status": "GET - Scheduler details",
		},
		"status":    "running",
		"scheduler": "active",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) health(c *gin.Context) {
	count, err := s.repo.Count(c.Request.Context())
	if err != nil {
		s.log.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "unhealthy",
			"error":     "store unavailable",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             "healthy",
		"registered_users":   count,
		"scheduler_active":   s.sched.JobCount() > 0,
		"scheduled_jobs":     s.sched.JobCount(),
		"next_scheduled_run": s.sched.NextRun().Format(time.RFC3339),
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) stats(c *gin.Context) {
	users, err := s.repo.All(c.Request.Context())
	if err != nil {
		s.log.Error("stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "store unavailable"})
		return
	}
	chatIDs := make([]int64, 0, len(users))
	for id := range users {
		chatIDs = append(chatIDs, id)
	}
	c.JSON(http.StatusOK, gin.H{
		"total_users":          len(users),
		"registered_chats":     chatIDs,
		"scheduler_status":     "active",
		"scheduled_jobs":       s.sched.JobCount(),
		"next_scheduled_check": s.sched.NextRun().Format(time.RFC3339),
		"daily_check_time":     s.sched.Schedule(),
		"bot_started":          s.started.Format(time.RFC3339),
		"status":               "active",
	})
}

func (s *Server) schedulerStatus(c *gin.Context) {
	var jobs []gin.H
	for _, t := range s.sched.Times() {
		jobs = append(jobs, gin.H{"job": "check_all_users", "at": t, "unit": "day"})
	}
	last := ""
	if !s.sched.LastRun().IsZero() {
		last = s.sched.LastRun().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{
		"scheduler_active": s.sched.JobCount() > 0,
		"total_jobs":       s.sched.JobCount(),
		"jobs":             jobs,
		"next_run":         s.sched.NextRun().Format(time.RFC3339),
		"last_run":         last,
		"current_time":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) webhook(c *gin.Context) {
	var upd tgbotapi.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		s.log.Warn("bad webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No data received"})
		return
	}
	s.log.Info("processing webhook update", zap.Int("update_id", upd.UpdateID))
	s.dispatcher.HandleUpdate(c.Request.Context(), upd)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type setWebhookRequest struct {
	WebhookURL string `json:"webhook_url"`
}

func (s *Server) setWebhook(c *gin.Context) {
	var req setWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WebhookURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "webhook_url is required"})
		return
	}
	if err := s.sender.SetWebhook(req.WebhookURL); err != nil {
		if errors.Is(err, telegram.ErrInvalidWebhookURL) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid webhook URL format"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to set webhook"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Webhook set successfully"})
}

func (s *Server) manualCheck(c *gin.Context) {
	s.log.Info("manual check triggered via API")
	n := s.sched.CheckAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"users_checked": n,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
