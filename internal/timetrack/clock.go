package timetrack

import (
	"math"
	"time"
)

// SecondsPerToken is how many focus seconds earn one reward token.
const SecondsPerToken = 300

// ElapsedSeconds returns the whole seconds between start and now,
// rounded to nearest. A start in the future (clock skew, out-of-order
// events) yields 0, never a negative accrual.
func ElapsedSeconds(start, now time.Time) int64 {
	secs := int64(math.Round(now.Sub(start).Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}

// TokensFor returns the reward tokens earned by elapsed focus seconds.
// The sub-token remainder is discarded; it does not carry over to the
// next flush.
func TokensFor(elapsed int64) int64 {
	if elapsed < 0 {
		return 0
	}
	return elapsed / SecondsPerToken
}
