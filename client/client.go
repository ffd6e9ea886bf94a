// Package client fetches raw emotion-log rows from the upstream habit
// API. Transport concerns (retries, auth, response unwrapping) end here;
// the rows it returns are handed untouched to the normalizer.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/gamijournal/emocal/normalize"
)

// wrapperFields are the object keys the upstream is known to wrap the
// row array under, probed in order.
var wrapperFields = []string{"data", "rows", "logs", "emotions"}

const (
	fetchAttempts  = 3
	backoffBase    = 200 * time.Millisecond
	requestTimeout = 10 * time.Second
)

// Client talks to the upstream habit API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// New creates an upstream client. The logger must not be nil.
func New(baseURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// FetchEmotionLogs retrieves the raw emotion-log rows for a user. It
// retries transient failures (network errors and 5xx responses) with
// exponential backoff; client errors fail immediately.
func (c *Client) FetchEmotionLogs(ctx context.Context, userID string) ([]normalize.RawRecord, error) {
	endpoint := fmt.Sprintf("%s/api/v0/users/%s/emotion-logs", c.baseURL, url.PathEscape(userID))

	var records []normalize.RawRecord
	backoff := retry.WithMaxRetries(fetchAttempts-1, retry.NewExponential(backoffBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		rows, err := c.fetchOnce(ctx, endpoint)
		if err != nil {
			return err
		}
		records = rows
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch emotion logs for %s: %w", userID, err)
	}
	return records, nil
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) ([]normalize.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed", zap.String("url", endpoint), zap.Error(err))
		return nil, retry.RetryableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.RetryableError(err)
	}

	switch {
	case resp.StatusCode >= 500:
		c.logger.Warn("upstream server error", zap.String("url", endpoint), zap.Int("status", resp.StatusCode))
		return nil, retry.RetryableError(fmt.Errorf("upstream status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	return decodeRows(body)
}

// decodeRows accepts either a bare JSON array of rows or an object
// wrapping the array under a known field name.
func decodeRows(body []byte) ([]normalize.RawRecord, error) {
	var rows []normalize.RawRecord
	if err := json.Unmarshal(body, &rows); err == nil {
		return rows, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("unexpected upstream payload: %w", err)
	}
	for _, field := range wrapperFields {
		raw, ok := wrapper[field]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("unexpected upstream payload under %q: %w", field, err)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("upstream payload has no recognized row array")
}
