package alder

import (
	"context"
	"fmt"
	"net/http"

	"github.com/narlock/alder/internal/model"
)

// UserDeltas is the additive update applied to a user row. Both
// counters land in a single request so they cannot drift apart.
type UserDeltas struct {
	AddStime  int64 `json:"add_stime"`
	AddTokens int64 `json:"add_tokens"`
}

// SearchRequest selects the top users by a sortable column.
type SearchRequest struct {
	SortField string `json:"sort_field"`
	Limit     int    `json:"limit"`
}

// EnsureUser creates the user's durable records when they do not
// exist yet. Idempotent; an existing user is left untouched.
func (c *Client) EnsureUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/user", model.User{ID: userID}, nil)
}

// GetUser returns the user's lifetime totals.
func (c *Client) GetUser(ctx context.Context, userID string) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodGet, "/user/"+userID, nil, &u)
	return u, err
}

// AddTimeAndTokens adds an elapsed interval and its earned tokens to
// the user's lifetime counters.
func (c *Client) AddTimeAndTokens(ctx context.Context, userID string, seconds, tokens int64) error {
	deltas := UserDeltas{AddStime: seconds, AddTokens: tokens}
	return c.do(ctx, http.MethodPatch, "/user/"+userID, deltas, nil)
}

// TopUsers returns the top limit users ordered by field descending.
// field must be one of "stime" or "tokens".
func (c *Client) TopUsers(ctx context.Context, field string, limit int) ([]model.User, error) {
	var users []model.User
	req := SearchRequest{SortField: field, Limit: limit}
	if err := c.do(ctx, http.MethodPost, "/user/search", req, &users); err != nil {
		return nil, fmt.Errorf("search users by %s: %w", field, err)
	}
	return users, nil
}
