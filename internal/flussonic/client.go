// Package flussonic is a thin HTTP client for the remote media server's
// management API. Every call carries basic auth and a bounded timeout so a
// stuck server cannot stall the scheduler.
package flussonic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

const defaultTimeout = 10 * time.Second

// ServerResolver maps a server id to its stored connection record. The db
// layer provides this; tests provide a literal.
type ServerResolver func(serverID int) (model.MediaServer, error)

type Client struct {
	http    *http.Client
	resolve ServerResolver
}

// NewClient builds a client. timeout bounds every request; <= 0 picks the
// default.
func NewClient(resolve ServerResolver, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		resolve: resolve,
	}
}

// StatusError is returned when the media server answers with a non-2xx code.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("media server returned %d: %s", e.Code, e.Body)
}

func (c *Client) request(ctx context.Context, server model.MediaServer, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	url := fmt.Sprintf("http://%s:%d%s", server.Host, server.Port, path)
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(server.Username, server.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("media server request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	// drain so the connection can be reused by the pool
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Play tells the media server to start playing sourceURL on the stream.
// This is the command the schedule engine issues for every schedule item.
func (c *Client) Play(ctx context.Context, stream model.Stream, sourceURL string) error {
	server, err := c.resolve(stream.ServerID)
	if err != nil {
		return fmt.Errorf("resolve media server %d: %w", stream.ServerID, err)
	}
	payload := map[string]any{
		"source": sourceURL,
		"mode":   "vod",
	}
	path := fmt.Sprintf("/api/v1/streams/%s/playout", stream.StreamKey)
	return c.request(ctx, server, http.MethodPost, path, payload, nil)
}

// StopPlayout cancels any active playout on the stream.
func (c *Client) StopPlayout(ctx context.Context, stream model.Stream) error {
	server, err := c.resolve(stream.ServerID)
	if err != nil {
		return fmt.Errorf("resolve media server %d: %w", stream.ServerID, err)
	}
	path := fmt.Sprintf("/api/v1/streams/%s/playout", stream.StreamKey)
	return c.request(ctx, server, http.MethodDelete, path, nil, nil)
}

// StartStream / StopStream toggle the stream itself on the media server.
func (c *Client) StartStream(ctx context.Context, stream model.Stream) error {
	server, err := c.resolve(stream.ServerID)
	if err != nil {
		return fmt.Errorf("resolve media server %d: %w", stream.ServerID, err)
	}
	path := fmt.Sprintf("/api/v1/streams/%s/start", stream.StreamKey)
	return c.request(ctx, server, http.MethodPost, path, nil, nil)
}

func (c *Client) StopStream(ctx context.Context, stream model.Stream) error {
	server, err := c.resolve(stream.ServerID)
	if err != nil {
		return fmt.Errorf("resolve media server %d: %w", stream.ServerID, err)
	}
	path := fmt.Sprintf("/api/v1/streams/%s/stop", stream.StreamKey)
	return c.request(ctx, server, http.MethodPost, path, nil, nil)
}

// StreamHealth is what the dashboard shows for a stream.
type StreamHealth struct {
	StreamKey string          `json:"stream_key"`
	Healthy   bool            `json:"healthy"`
	Playout   json.RawMessage `json:"playout,omitempty"`
	Error     string          `json:"error,omitempty"`
	CheckedAt time.Time       `json:"checked_at"`
}

// GetStreamHealth asks the media server for the stream's playout state.
// A transport or status error is reported inside the result, not returned,
// so the dashboard can render unhealthy streams.
func (c *Client) GetStreamHealth(ctx context.Context, stream model.Stream) StreamHealth {
	health := StreamHealth{StreamKey: stream.StreamKey, CheckedAt: time.Now()}

	server, err := c.resolve(stream.ServerID)
	if err != nil {
		health.Error = err.Error()
		return health
	}

	var playout json.RawMessage
	path := fmt.Sprintf("/api/v1/streams/%s/playout", stream.StreamKey)
	if err := c.request(ctx, server, http.MethodGet, path, nil, &playout); err != nil {
		health.Error = err.Error()
		return health
	}
	health.Healthy = true
	health.Playout = playout
	return health
}

// TestConnection checks that the media server answers its status endpoint.
func (c *Client) TestConnection(ctx context.Context, server model.MediaServer) error {
	return c.request(ctx, server, http.MethodGet, "/api/v1/server/status", nil, nil)
}
