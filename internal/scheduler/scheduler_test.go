package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/domain"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/store"
)

type fakeSender struct{ sent []int64 }

func (f *fakeSender) Send(chatID int64, _ string) error {
	f.sent = append(f.sent, chatID)
	return nil
}

type fakeChecker struct{ submitted bool }

func (f *fakeChecker) HasSubmittedToday(context.Context, string) bool { return f.submitted }

func newTestScheduler(t *testing.T, times []domain.CheckTime) (*Scheduler, *fakeSender, store.Repo) {
	t.Helper()
	repo, err := store.OpenFile(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	sender := &fakeSender{}
	s := New(repo, &fakeChecker{}, sender, times, time.UTC, zap.NewNop())
	return s, sender, repo
}

func at(t *testing.T, hh, mm int) time.Time {
	t.Helper()
	return time.Date(2025, time.June, 1, hh, mm, 0, 0, time.UTC)
}

func TestDue_FiresOnceWhenReached(t *testing.T) {
	s, _, _ := newTestScheduler(t, []domain.CheckTime{{Hour: 20, Minute: 0}})

	if got := s.due(at(t, 19, 58), at(t, 19, 59)); len(got) != 0 {
		t.Fatalf("before fire time: want none, got %v", got)
	}
	if got := s.due(at(t, 19, 59), at(t, 20, 0)); len(got) != 1 {
		t.Fatalf("at fire time: want one, got %v", got)
	}
	if got := s.due(at(t, 20, 0), at(t, 20, 1)); len(got) != 0 {
		t.Fatalf("after firing: want none, got %v", got)
	}
}

func TestDue_PastTimesDoNotFireAtStartup(t *testing.T) {
	s, _, _ := newTestScheduler(t, []domain.CheckTime{{Hour: 8, Minute: 0}})
	// Process started at 20:00; 08:00 already passed today.
	if got := s.due(at(t, 20, 0), at(t, 20, 1)); len(got) != 0 {
		t.Fatalf("want none, got %v", got)
	}
}

func TestDue_AcrossMidnight(t *testing.T) {
	s, _, _ := newTestScheduler(t, []domain.CheckTime{{Hour: 0, Minute: 0}})
	prev := time.Date(2025, time.June, 1, 23, 59, 30, 0, time.UTC)
	now := time.Date(2025, time.June, 2, 0, 0, 30, 0, time.UTC)
	if got := s.due(prev, now); len(got) != 1 {
		t.Fatalf("midnight fire time: want one, got %v", got)
	}
}

func TestDue_MultipleTimes(t *testing.T) {
	s, _, _ := newTestScheduler(t, []domain.CheckTime{
		{Hour: 9, Minute: 0}, {Hour: 20, Minute: 0},
	})
	if got := s.due(at(t, 8, 59), at(t, 9, 0)); len(got) != 1 || got[0].Hour != 9 {
		t.Fatalf("want 09:00 only, got %v", got)
	}
}

func TestCheckAll_NoUsersIsNoOp(t *testing.T) {
	s, sender, _ := newTestScheduler(t, []domain.CheckTime{{Hour: 20, Minute: 0}})
	if n := s.CheckAll(context.Background()); n != 0 {
		t.Fatalf("want 0 users checked, got %d", n)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("no users: want no sends, got %v", sender.sent)
	}
}

func TestCheckAll_SendsToEveryUser(t *testing.T) {
	ctx := context.Background()
	s, sender, repo := newTestScheduler(t, []domain.CheckTime{{Hour: 20, Minute: 0}})
	for id, name := range map[int64]string{1: "alice", 2: "bob"} {
		if err := repo.Put(ctx, id, name); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	if n := s.CheckAll(ctx); n != 2 {
		t.Fatalf("want 2 users checked, got %d", n)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("want 2 sends, got %v", sender.sent)
	}
}

func TestNew_ConvertsToUTC(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	repo, err := store.OpenFile(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s := New(repo, &fakeChecker{}, &fakeSender{}, []domain.CheckTime{{Hour: 20, Minute: 0}}, loc, zap.NewNop())

	// 20:00 IST == 14:30 UTC; labels stay in the source timezone.
	if s.times[0].String() != "14:30" {
		t.Fatalf("want 14:30 UTC, got %s", s.times[0])
	}
	if s.Times()[0] != "20:00" {
		t.Fatalf("want label 20:00, got %s", s.Times()[0])
	}
}
