// Package alder is the HTTP client for the Alder persistence API. It
// wraps the user, dailytime, monthtime and streak resources behind the
// interfaces the tracking core consumes.
package alder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrNotFound reports a 404 from the API for a requested resource.
var ErrNotFound = errors.New("alder: resource not found")

// Client talks to the Alder API. Requests carry a bounded timeout and
// transient failures are retried a small number of times before the
// error is reported to the caller.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// New creates a Client for the API at baseURL. timeout bounds each
// attempt; zero selects five seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil

	return &Client{
		baseURL: baseURL,
		http:    rc,
	}
}

// do performs one JSON request. A non-nil out is decoded from the
// response body. 404 maps to ErrNotFound; other non-2xx statuses
// surface as errors carrying the status code.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}
