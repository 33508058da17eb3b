package model

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// User is a member's durable profile row. Stime is lifetime focus
// seconds, Tokens the reward-token balance. Both only grow through
// time tracking; tokens can be spent through the shop elsewhere.
type User struct {
	ID     string `json:"id"`
	Stime  int64  `json:"stime"`
	Tokens int64  `json:"tokens"`
}

// DailyTime is a user's focus seconds for one UTC calendar day.
type DailyTime struct {
	UserID string `json:"user_id"`
	Day    string `json:"day"`
	Stime  int64  `json:"stime"`
}

// MonthTime is a user's focus seconds for one UTC calendar month.
type MonthTime struct {
	UserID string `json:"user_id"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	Stime  int64  `json:"stime"`
}

// Streak is a user's consecutive-day participation record.
// HighestStreak is a high-water mark of CurrentStreak and never
// decreases. LastActive is the last qualifying UTC calendar day,
// formatted with DateLayout.
type Streak struct {
	UserID        string `json:"user_id"`
	CurrentStreak int    `json:"current_streak"`
	HighestStreak int    `json:"highest_streak_achieved"`
	LastActive    string `json:"previous_connection_date"`
}

// LastActiveDate parses LastActive as a UTC calendar date.
func (s *Streak) LastActiveDate() (time.Time, error) {
	return time.ParseInLocation(DateLayout, s.LastActive, time.UTC)
}
