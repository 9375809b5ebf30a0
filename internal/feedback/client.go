// Package feedback forwards user feedback to an external form endpoint.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/gradecalc/internal/platform/logger"
)

type Options struct {
	URL        string
	Timeout    time.Duration
	MaxRetries int
	// Backoff is the delay before the first retry; it doubles each time.
	Backoff time.Duration

	HTTPClient *http.Client
	Log        *logger.Logger
}

type Client struct {
	url        string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
	log        *logger.Logger
}

type payload struct {
	Message string `json:"message"`
}

func New(opts Options) (*Client, error) {
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return nil, errors.New("feedback url required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		url:        url,
		timeout:    timeout,
		maxRetries: maxRetries,
		backoff:    backoff,
		httpClient: hc,
		log:        log.With("client", "FeedbackClient"),
	}, nil
}

// Send posts message as {"message": ...}. Blank messages are rejected before
// any request is made.
func (c *Client) Send(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyFeedback
	}
	raw, err := json.Marshal(payload{Message: message})
	if err != nil {
		return err
	}

	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var lastErr error
	backoff := c.backoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx2.Err() != nil {
			return ctx2.Err()
		}

		req, err := http.NewRequestWithContext(ctx2, http.MethodPost, c.url, bytes.NewReader(raw))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
			_ = resp.Body.Close()
			if readErr != nil {
				return readErr
			}
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				c.log.Info("feedback delivered", "attempt", attempt+1, "status", resp.StatusCode)
				return nil
			}
			herr := parseHTTPError(resp.StatusCode, body)
			if !herr.Temporary() {
				return herr
			}
			lastErr = herr
		}

		if attempt < c.maxRetries {
			c.log.Warn("feedback attempt failed; retrying", "attempt", attempt+1, "error", lastErr)
			select {
			case <-ctx2.Done():
				return ctx2.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	if lastErr == nil {
		lastErr = errors.New("feedback request failed")
	}
	return lastErr
}
