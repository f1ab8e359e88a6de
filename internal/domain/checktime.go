package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrEmptyCheckTimes = errors.New("empty check times")

// CheckTime is a wall-clock time of day (no date, no zone).
type CheckTime struct {
	Hour   int
	Minute int
}

// String returns the time as HH:MM.
func (ct CheckTime) String() string {
	return fmt.Sprintf("%02d:%02d", ct.Hour, ct.Minute)
}

// Minutes returns minutes since midnight.
func (ct CheckTime) Minutes() int {
	return ct.Hour*60 + ct.Minute
}

// OccurrenceOn combines the check time with the date of ref, in ref's location.
func (ct CheckTime) OccurrenceOn(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), ct.Hour, ct.Minute, 0, 0, ref.Location())
}

// ParseCheckTimes parses a comma-separated list of HH:MM values.
// Order is preserved, duplicates are dropped.
func ParseCheckTimes(s string) ([]CheckTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyCheckTimes
	}

	seen := make(map[int]bool)
	var out []CheckTime
	for _, part := range strings.Split(s, ",") {
		ct, err := parseHHMM(part)
		if err != nil {
			return nil, fmt.Errorf("check time %q: %w", strings.TrimSpace(part), err)
		}
		if seen[ct.Minutes()] {
			continue
		}
		seen[ct.Minutes()] = true
		out = append(out, ct)
	}
	return out, nil
}

func parseHHMM(s string) (CheckTime, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return CheckTime{}, errors.New("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return CheckTime{}, errors.New("invalid hour")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return CheckTime{}, errors.New("invalid minute")
	}
	return CheckTime{Hour: h, Minute: m}, nil
}

// ToUTC converts a wall-clock time in loc to the equivalent UTC wall-clock
// time, using now's date for the offset. The offset is computed once here;
// if loc observes DST the converted value drifts after a transition until
// the process restarts.
func (ct CheckTime) ToUTC(loc *time.Location, now time.Time) CheckTime {
	local := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), ct.Hour, ct.Minute, 0, 0, loc)
	utc := local.UTC()
	return CheckTime{Hour: utc.Hour(), Minute: utc.Minute()}
}

// ValidateTZ checks that tz is a valid IANA location and returns it.
func ValidateTZ(tz string) (*time.Location, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return loc, nil
}
