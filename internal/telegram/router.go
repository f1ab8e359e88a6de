package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/domain"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/store"
)

// maxTrackedMessages bounds the duplicate-suppression set.
const maxTrackedMessages = 1000

// Checker answers questions about a LeetCode account.
type Checker interface {
	HasSubmittedToday(ctx context.Context, username string) bool
	ValidateUsername(ctx context.Context, username string) bool
}

// Router dispatches inbound Telegram updates to command handlers.
// Duplicate deliveries of the same (chat, message) pair are dropped.
type Router struct {
	sender    Sender
	checker   Checker
	repo      store.Repo
	log       *zap.Logger
	dedup     *dedupSet
	checkedAt string // human-readable daily check schedule, e.g. "20:00 IST"
}

// NewRouter creates the command dispatcher. checkedAt is quoted back to the
// user in the registration confirmation.
func NewRouter(sender Sender, checker Checker, repo store.Repo, checkedAt string, log *zap.Logger) *Router {
	return &Router{
		sender:    sender,
		checker:   checker,
		repo:      repo,
		log:       log,
		dedup:     newDedupSet(maxTrackedMessages),
		checkedAt: checkedAt,
	}
}

// HandleUpdate processes a single update. Updates without a message are a
// silent no-op.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	if chatID == 0 || text == "" {
		r.log.Warn("message without chat id or text", zap.Int("update_id", upd.UpdateID))
		return
	}

	key := strconv.FormatInt(chatID, 10) + ":" + strconv.Itoa(msg.MessageID)
	if r.dedup.Seen(key) {
		r.log.Info("skipping duplicate message", zap.String("key", key))
		return
	}

	from := "unknown"
	if msg.From != nil && msg.From.UserName != "" {
		from = msg.From.UserName
	}
	r.log.Info("message received",
		zap.Int64("chat_id", chatID), zap.String("from", from), zap.String("text", text))

	switch {
	case strings.HasPrefix(text, "/start"):
		r.reply(chatID, startText)
	case strings.HasPrefix(text, "/help"):
		r.reply(chatID, helpText)
	case strings.HasPrefix(text, "/register"):
		r.handleRegister(ctx, chatID, text)
	case strings.HasPrefix(text, "/check"):
		r.handleCheck(ctx, chatID)
	default:
		r.reply(chatID, unknownCommandText)
	}
}

func (r *Router) handleRegister(ctx context.Context, chatID int64, text string) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		r.log.Warn("invalid register command", zap.Int64("chat_id", chatID), zap.String("text", text))
		r.reply(chatID, registerUsageText)
		return
	}
	username := parts[1]

	if current, err := r.repo.Get(ctx, chatID); err == nil {
		r.log.Info("chat already registered",
			zap.Int64("chat_id", chatID), zap.String("username", current))
		r.reply(chatID, fmt.Sprintf(alreadyRegisteredFmt, current))
		return
	} else if !errors.Is(err, store.ErrNotRegistered) {
		r.log.Error("store lookup failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	if !r.checker.ValidateUsername(ctx, username) {
		r.log.Warn("username validation failed", zap.String("username", username))
		r.reply(chatID, fmt.Sprintf(usernameNotFoundFmt, username))
		return
	}

	switch err := r.repo.Put(ctx, chatID, username); {
	case err == nil:
	case errors.Is(err, store.ErrAlreadyRegistered):
		current, _ := r.repo.Get(ctx, chatID)
		r.reply(chatID, fmt.Sprintf(alreadyRegisteredFmt, current))
		return
	case errors.Is(err, store.ErrPersist):
		// Registration took effect in memory; the durable copy will catch
		// up on the next successful write.
		r.log.Warn("persist users failed", zap.Int64("chat_id", chatID), zap.Error(err))
	default:
		r.log.Error("register failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.reply(chatID, fmt.Sprintf(usernameNotFoundFmt, username))
		return
	}

	r.log.Info("registered user", zap.Int64("chat_id", chatID), zap.String("username", username))
	r.reply(chatID, fmt.Sprintf(registeredFmt, username, r.checkedAt))
}

func (r *Router) handleCheck(ctx context.Context, chatID int64) {
	username, err := r.repo.Get(ctx, chatID)
	if err != nil {
		r.reply(chatID, notRegisteredText)
		return
	}

	r.reply(chatID, checkingText)

	if r.checker.HasSubmittedToday(ctx, username) {
		r.reply(chatID, domain.RandomMessage(domain.SuccessMessages))
	} else {
		r.reply(chatID, domain.RandomMessage(domain.WarningMessages))
	}
}

// reply sends fire-and-forget; Send already logs failures.
func (r *Router) reply(chatID int64, text string) {
	_ = r.sender.Send(chatID, text)
}
