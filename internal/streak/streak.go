// Package streak derives the consecutive-day participation counter
// from a user's last active calendar day. The rules are pure; the
// Service applies them through the Alder API at most once per UTC day.
package streak

import (
	"time"

	"github.com/narlock/alder/internal/model"
)

// Advance applies the day-difference rules to rec for the given UTC
// day and returns the updated record:
//
//   - last active day == today: nothing changes (already counted).
//   - last active day == yesterday: the current streak grows by one
//     and the highest streak follows it as a high-water mark.
//   - anything else, including a last active day in the future from a
//     clock anomaly: the current streak resets to zero. The highest
//     streak is untouched.
//
// Applying Advance twice on the same day is a no-op by the first rule.
func Advance(rec model.Streak, today time.Time) model.Streak {
	day := civilDate(today)
	last, err := rec.LastActiveDate()
	if err != nil {
		// Unreadable date: treat as a gap.
		rec.CurrentStreak = 0
		rec.LastActive = day.Format(model.DateLayout)
		return rec
	}

	switch {
	case last.Equal(day):
		return rec
	case last.Equal(day.AddDate(0, 0, -1)):
		rec.CurrentStreak++
		if rec.CurrentStreak > rec.HighestStreak {
			rec.HighestStreak = rec.CurrentStreak
		}
	default:
		rec.CurrentStreak = 0
	}
	rec.LastActive = day.Format(model.DateLayout)
	return rec
}

// NewRecord returns the streak record created on a user's first
// qualifying participation.
func NewRecord(userID string, today time.Time) model.Streak {
	return model.Streak{
		UserID:     userID,
		LastActive: civilDate(today).Format(model.DateLayout),
	}
}

// civilDate truncates t to its UTC calendar day.
func civilDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
