package alder

import (
	"context"
	"net/http"
	"time"

	"github.com/narlock/alder/internal/model"
)

// GetOrCreate returns the user's streak record, creating one dated by
// the service's UTC clock when none exists. The day-difference rules
// themselves are applied by the caller.
func (c *Client) GetOrCreate(ctx context.Context, userID string, _ time.Time) (model.Streak, error) {
	var rec model.Streak
	err := c.do(ctx, http.MethodPost, "/streak/"+userID, nil, &rec)
	return rec, err
}

// Save persists a streak record.
func (c *Client) Save(ctx context.Context, rec model.Streak) error {
	return c.do(ctx, http.MethodPut, "/streak/"+rec.UserID, rec, nil)
}

// TopStreaks returns the top limit streak records ordered by field
// descending. field must be "current_streak" or "highest_streak".
func (c *Client) TopStreaks(ctx context.Context, field string, limit int) ([]model.Streak, error) {
	var recs []model.Streak
	req := SearchRequest{SortField: field, Limit: limit}
	err := c.do(ctx, http.MethodPost, "/streak/search", req, &recs)
	return recs, err
}
