// Package agent is a client for the conversational agent behind the chat
// panel. One call per user message: post {sender, message}, receive an array
// of reply fragments.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
)

// Config represents agent client configuration.
type Config struct {
	URL     string // full webhook URL
	Timeout time.Duration
	// RequestsPerSecond limits outbound messages; zero means 1 rps.
	RequestsPerSecond float64
}

// Reply is one fragment of an agent response. Fragments may carry no text
// (image-only or custom payloads); callers skip those.
type Reply struct {
	Text string `json:"text,omitempty"`
}

type message struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// Client posts chat messages to the agent.
type Client struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates an agent client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("agent URL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// Send posts one message and returns the agent's reply fragments with empty
// ones dropped. Errors are surfaced to the caller as chat notices; they are
// never fatal to the application.
func (c *Client) Send(ctx context.Context, sender, text string) ([]Reply, error) {
	if text == "" {
		return nil, errors.New("message text is empty")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limit wait canceled")
	}

	payload, err := json.Marshal(message{Sender: sender, Message: text})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "agent request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("agent returned status %d", resp.StatusCode)
	}

	var replies []Reply
	if err := json.NewDecoder(resp.Body).Decode(&replies); err != nil {
		return nil, errors.Wrap(err, "failed to decode agent reply")
	}

	out := replies[:0]
	for _, r := range replies {
		if r.Text != "" {
			out = append(out, r)
		}
	}
	return out, nil
}
