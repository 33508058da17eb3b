package alder

import (
	"context"
	"errors"
	"net/http"

	"github.com/narlock/alder/internal/model"
)

// TimeDelta is the additive update applied to a day or month bucket.
type TimeDelta struct {
	AddStime int64 `json:"add_stime"`
}

// MonthTotal is the month-to-date focus time for a user.
type MonthTotal struct {
	UserID string `json:"user_id"`
	Stime  int64  `json:"stime"`
}

// AddDailyTime adds seconds to the user's current UTC day bucket. The
// service creates a fresh bucket when the day has rolled over.
func (c *Client) AddDailyTime(ctx context.Context, userID string, seconds int64) error {
	return c.do(ctx, http.MethodPatch, "/dailytime/"+userID, TimeDelta{AddStime: seconds}, nil)
}

// AddMonthlyTime adds seconds to the user's current UTC month bucket.
func (c *Client) AddMonthlyTime(ctx context.Context, userID string, seconds int64) error {
	return c.do(ctx, http.MethodPatch, "/monthtime/"+userID, TimeDelta{AddStime: seconds}, nil)
}

// GetDailyTime returns the user's focus time for the current UTC day.
func (c *Client) GetDailyTime(ctx context.Context, userID string) (model.DailyTime, error) {
	var d model.DailyTime
	err := c.do(ctx, http.MethodGet, "/dailytime/"+userID, nil, &d)
	if errors.Is(err, ErrNotFound) {
		return model.DailyTime{UserID: userID}, nil
	}
	return d, err
}

// MonthToDateSeconds returns the user's focus seconds for the current
// UTC month. A user with no bucket yet has zero.
func (c *Client) MonthToDateSeconds(ctx context.Context, userID string) (int64, error) {
	var total MonthTotal
	err := c.do(ctx, http.MethodGet, "/monthtime/"+userID+"/total", nil, &total)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	return total.Stime, err
}
