// Package attendance derives PRESENT/LATE/ABSENT status from punch-in
// timestamps against an organization's configured morning deadline.
package attendance

import (
	"fmt"
	"time"

	"github.com/openngo/fieldpunch/internal/domain/models"
)

// GracePeriod is the fixed window after the morning deadline during which a
// punch-in is LATE rather than ABSENT.
const GracePeriod = 15 * time.Minute

// DayOf normalizes an instant to midnight of its calendar day in loc. The
// result is the ledger's natural date key for that instant.
func DayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DeadlineFor combines a day boundary (midnight in its own location) with an
// "HH:MM" deadline string, yielding the deadline instant for that day with
// seconds and nanos zeroed.
func DeadlineFor(day time.Time, hhmm string) (time.Time, error) {
	h, m, err := parseHHMM(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
}

// Classify maps a punch-in instant to a status relative to the day's deadline:
// at or before the deadline PRESENT, within the grace window LATE, after it
// ABSENT.
func Classify(t, deadline time.Time) string {
	switch {
	case !t.After(deadline):
		return models.StatusPresent
	case !t.After(deadline.Add(GracePeriod)):
		return models.StatusLate
	default:
		return models.StatusAbsent
	}
}

// ValidHHMM reports whether s is a well-formed "HH:MM" clock time.
func ValidHHMM(s string) bool {
	_, _, err := parseHHMM(s)
	return err == nil
}

func parseHHMM(s string) (hour, min int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("malformed deadline %q: want HH:MM", s)
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hour, &min); err != nil {
		return 0, 0, fmt.Errorf("malformed deadline %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, 0, fmt.Errorf("deadline %q out of range", s)
	}
	return hour, min, nil
}
