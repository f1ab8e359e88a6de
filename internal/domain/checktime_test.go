package domain

import (
	"testing"
	"time"
)

func TestParseCheckTimes_List(t *testing.T) {
	got, err := ParseCheckTimes("20:00, 09:30,20:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 times, got %d", len(got))
	}
	if got[0].String() != "20:00" || got[1].String() != "09:30" {
		t.Fatalf("unexpected times: %v", got)
	}
}

func TestParseCheckTimes_Invalid(t *testing.T) {
	for _, s := range []string{"", "25:00", "20", "20:60", "8pm"} {
		if _, err := ParseCheckTimes(s); err == nil {
			t.Fatalf("want error for %q", s)
		}
	}
}

func TestCheckTime_ToUTC(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	// 20:00 IST is 14:30 UTC (fixed +05:30 offset).
	got := (CheckTime{Hour: 20, Minute: 0}).ToUTC(loc, now)
	if got.String() != "14:30" {
		t.Fatalf("want 14:30, got %s", got)
	}
}

func TestCheckTime_OccurrenceOn(t *testing.T) {
	ref := time.Date(2025, time.June, 1, 23, 59, 0, 0, time.UTC)
	occ := (CheckTime{Hour: 14, Minute: 30}).OccurrenceOn(ref)
	want := time.Date(2025, time.June, 1, 14, 30, 0, 0, time.UTC)
	if !occ.Equal(want) {
		t.Fatalf("want %v, got %v", want, occ)
	}
}

func TestRandomMessage_FromList(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[RandomMessage(WarningMessages)] = true
	}
	for msg := range seen {
		found := false
		for _, w := range WarningMessages {
			if w == msg {
				found = true
			}
		}
		if !found {
			t.Fatalf("message not from list: %q", msg)
		}
	}
}
