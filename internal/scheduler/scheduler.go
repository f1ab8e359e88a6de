package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/domain"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/store"
)

// pollInterval is the scheduler's evaluation tick.
const pollInterval = 60 * time.Second

// Sender is the minimal outbound interface the scheduler needs.
type Sender interface {
	Send(chatID int64, text string) error
}

// Checker answers whether a user submitted today.
type Checker interface {
	HasSubmittedToday(ctx context.Context, username string) bool
}

// Scheduler fires a check of all registered users at the configured
// times of day. Configured times are given in a source timezone and
// converted to UTC once at construction; the cached offset means a DST
// transition in the source zone shifts fire times until restart.
type Scheduler struct {
	repo    store.Repo
	checker Checker
	sender  Sender
	log     *zap.Logger

	times  []domain.CheckTime // UTC wall-clock
	labels []string           // configured HH:MM in the source timezone
	tzName string

	mu       sync.Mutex
	lastFire time.Time
}

// New converts the configured check times from loc to UTC and returns a
// scheduler ready to Run.
func New(repo store.Repo, checker Checker, sender Sender, times []domain.CheckTime, loc *time.Location, log *zap.Logger) *Scheduler {
	now := time.Now().UTC()
	s := &Scheduler{
		repo:    repo,
		checker: checker,
		sender:  sender,
		log:     log,
		tzName:  loc.String(),
	}
	for _, ct := range times {
		s.times = append(s.times, ct.ToUTC(loc, now))
		s.labels = append(s.labels, ct.String())
	}
	return s
}

// Run evaluates the schedule every minute until ctx is canceled. Times
// already in the past at startup do not fire until their next occurrence.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("scheduler started",
		zap.Strings("check_times", s.labels), zap.String("tz", s.tzName))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	prev := time.Now().UTC()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			now := time.Now().UTC()
			for _, ct := range s.due(prev, now) {
				s.log.Info("running scheduled check", zap.String("at", ct.String()+" UTC"))
				n := s.CheckAll(ctx)
				s.log.Info("scheduled check completed", zap.Int("users", n))
				s.mu.Lock()
				s.lastFire = now
				s.mu.Unlock()
			}
			prev = now
		}
	}
}

// due returns the configured times whose occurrence falls in (prev, now].
// Each tick's window is disjoint from the previous one, so every time
// fires at most once per day.
func (s *Scheduler) due(prev, now time.Time) []domain.CheckTime {
	var out []domain.CheckTime
	for _, ct := range s.times {
		// Evaluate the occurrence on both dates so windows spanning
		// midnight are not missed.
		for _, ref := range []time.Time{prev, now} {
			occ := ct.OccurrenceOn(ref)
			if occ.After(prev) && !occ.After(now) {
				out = append(out, ct)
				break
			}
		}
	}
	return out
}

// CheckAll evaluates every registered user and sends the matching
// template. Per-user failures are logged and skipped. Returns the number
// of users checked.
func (s *Scheduler) CheckAll(ctx context.Context) int {
	users, err := s.repo.All(ctx)
	if err != nil {
		s.log.Error("list users failed", zap.Error(err))
		return 0
	}
	if len(users) == 0 {
		s.log.Info("no users registered yet")
		return 0
	}

	s.log.Info("checking submissions", zap.Int("users", len(users)))
	for chatID, username := range users {
		text := domain.RandomMessage(domain.WarningMessages)
		if s.checker.HasSubmittedToday(ctx, username) {
			text = domain.RandomMessage(domain.SuccessMessages)
		}
		if err := s.sender.Send(chatID, text); err != nil {
			s.log.Error("send failed",
				zap.Int64("chat_id", chatID), zap.String("username", username), zap.Error(err))
			continue
		}
	}
	return len(users)
}

// Times returns the configured check times as HH:MM strings in the
// source timezone.
func (s *Scheduler) Times() []string {
	return append([]string(nil), s.labels...)
}

// Schedule is a human-readable one-line description of the check schedule.
func (s *Scheduler) Schedule() string {
	return strings.Join(s.labels, ", ") + " (" + s.tzName + ")"
}

// JobCount returns the number of configured daily check times.
func (s *Scheduler) JobCount() int {
	return len(s.times)
}

// NextRun returns the earliest upcoming fire time in UTC.
func (s *Scheduler) NextRun() time.Time {
	now := time.Now().UTC()
	var next time.Time
	for _, ct := range s.times {
		occ := ct.OccurrenceOn(now)
		if !occ.After(now) {
			occ = occ.Add(24 * time.Hour)
		}
		if next.IsZero() || occ.Before(next) {
			next = occ
		}
	}
	return next
}

// LastRun returns when the last scheduled check fired (zero if never).
func (s *Scheduler) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFire
}
