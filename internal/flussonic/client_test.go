package flussonic

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/nereus/internal/model"
)

// serverFor turns an httptest server into the MediaServer record the client
// resolves, since the client always dials host:port itself.
func serverFor(t *testing.T, ts *httptest.Server) model.MediaServer {
	t.Helper()
	host, portStr, err := net.SplitHostPort(ts.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return model.MediaServer{
		ID:       1,
		Name:     "test",
		Host:     host,
		Port:     port,
		Username: "admin",
		Password: "secret",
	}
}

func resolverFor(server model.MediaServer) ServerResolver {
	return func(serverID int) (model.MediaServer, error) {
		if serverID != server.ID {
			return model.MediaServer{}, errors.New("unknown server")
		}
		return server, nil
	}
}

func testStream() model.Stream {
	return model.Stream{ID: 1, Name: "Main", StreamKey: "main", ServerID: 1}
}

func TestPlaySendsPlayoutCommand(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(resolverFor(serverFor(t, ts)), time.Second)
	err := c.Play(context.Background(), testStream(), "vod/headlines.mp4")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/streams/main/playout", gotPath)
	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, "vod/headlines.mp4", gotBody["source"])
	assert.Equal(t, "vod", gotBody["mode"])
}

func TestPlayNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "stream not configured", http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient(resolverFor(serverFor(t, ts)), time.Second)
	err := c.Play(context.Background(), testStream(), "vod/x.mp4")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, statusErr.Body, "stream not configured")
}

func TestPlayResolverFailure(t *testing.T) {
	c := NewClient(func(int) (model.MediaServer, error) {
		return model.MediaServer{}, errors.New("server deleted")
	}, time.Second)

	err := c.Play(context.Background(), testStream(), "vod/x.mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server deleted")
}

func TestPlayRespectsContextTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer ts.Close()

	c := NewClient(resolverFor(serverFor(t, ts)), time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Play(ctx, testStream(), "vod/x.mp4")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStopPlayout(t *testing.T) {
	var gotMethod, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(resolverFor(serverFor(t, ts)), time.Second)
	require.NoError(t, c.StopPlayout(context.Background(), testStream()))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/v1/streams/main/playout", gotPath)
}

func TestGetStreamHealthHealthy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]any{"source": "vod/x.mp4", "mode": "vod"})
	}))
	defer ts.Close()

	c := NewClient(resolverFor(serverFor(t, ts)), time.Second)
	health := c.GetStreamHealth(context.Background(), testStream())

	assert.True(t, health.Healthy)
	assert.Equal(t, "main", health.StreamKey)
	assert.Empty(t, health.Error)
	assert.NotEmpty(t, health.Playout)
	assert.WithinDuration(t, time.Now(), health.CheckedAt, time.Minute)
}

func TestGetStreamHealthReportsErrorInsideResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(resolverFor(serverFor(t, ts)), time.Second)
	health := c.GetStreamHealth(context.Background(), testStream())

	assert.False(t, health.Healthy)
	assert.Contains(t, health.Error, "500")
}

func TestTestConnection(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(resolverFor(serverFor(t, ts)), time.Second)
	require.NoError(t, c.TestConnection(context.Background(), serverFor(t, ts)))
	assert.Equal(t, "/api/v1/server/status", gotPath)
}
