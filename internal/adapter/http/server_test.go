package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/rainfall-atlas/internal/adapter/http"
	"github.com/couchcryptid/rainfall-atlas/internal/domain"
	"github.com/couchcryptid/rainfall-atlas/internal/frames"
	"github.com/couchcryptid/rainfall-atlas/internal/observability"
	"github.com/couchcryptid/rainfall-atlas/internal/render"
)

type mockPlayer struct {
	frame    frames.Frame
	count    int
	state    frames.State
	speed    float64
	readyErr error

	paused   bool
	resumed  bool
	setSpeed float64
	speedErr error
}

func (m *mockPlayer) Current() frames.Frame { return m.frame }
func (m *mockPlayer) FrameCount() int       { return m.count }
func (m *mockPlayer) State() frames.State   { return m.state }
func (m *mockPlayer) Speed() float64        { return m.speed }
func (m *mockPlayer) Pause()                { m.paused = true }
func (m *mockPlayer) Resume()               { m.resumed = true }

func (m *mockPlayer) SetSpeed(mult float64) error {
	m.setSpeed = mult
	return m.speedErr
}

func (m *mockPlayer) CheckReadiness(_ context.Context) error { return m.readyErr }

func testFrame() frames.Frame {
	return frames.Frame{
		Index: 2,
		Kind:  frames.KindBars,
		Year:  2021,
		Title: "Monthly Rainfall Totals, 2021",
		Bars: []frames.Bar{
			{Month: 1, MM: 75, Bucket: domain.BucketLight},
		},
	}
}

func newTestServer(player *mockPlayer) *httpadapter.Server {
	logger := slog.New(slog.DiscardHandler)
	renderer := render.NewRenderer(8, logger, observability.NewMetricsForTesting())
	summary := domain.Summary{Variant: domain.VariantStation, Records: 120, Months: 24}
	return httpadapter.NewServer(":0", player, renderer, summary, logger)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockPlayer{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReflectsPlayerReadiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(&mockPlayer{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(&mockPlayer{readyErr: errors.New("animation has not started yet")})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body["status"])
		assert.Equal(t, "animation has not started yet", body["error"])
	})
}

func TestFrameEndpointServesSVG(t *testing.T) {
	player := &mockPlayer{frame: testFrame(), count: 5, state: frames.StatePlaying, speed: 1}
	srv := newTestServer(player)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.svg", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "2", rec.Header().Get("X-Frame-Index"))
	assert.Contains(t, rec.Body.String(), "Monthly Rainfall Totals, 2021")
}

func TestFrameEndpointBeforeFirstFrame(t *testing.T) {
	player := &mockPlayer{readyErr: errors.New("animation has not started yet")}
	srv := newTestServer(player)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.svg", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	player := &mockPlayer{frame: testFrame(), count: 5, state: frames.StatePlaying, speed: 2}
	srv := newTestServer(player)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(5), body["frame_count"])
	assert.Equal(t, float64(2), body["frame_index"])
	assert.Equal(t, "playing", body["state"])
	assert.Equal(t, float64(2), body["speed"])
	assert.NotNil(t, body["summary"])
}

func TestSpeedEndpoint(t *testing.T) {
	t.Run("valid multiplier", func(t *testing.T) {
		player := &mockPlayer{}
		srv := newTestServer(player)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/speed",
			strings.NewReader(url.Values{"multiplier": {"3"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3.0, player.setSpeed)
	})

	t.Run("non-numeric multiplier", func(t *testing.T) {
		srv := newTestServer(&mockPlayer{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/speed",
			strings.NewReader(url.Values{"multiplier": {"fast"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported multiplier", func(t *testing.T) {
		player := &mockPlayer{speedErr: errors.New("unsupported speed 5x")}
		srv := newTestServer(player)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/speed",
			strings.NewReader(url.Values{"multiplier": {"5"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unsupported speed 5x", body["error"])
	})
}

func TestPauseAndResume(t *testing.T) {
	player := &mockPlayer{state: frames.StatePaused}
	srv := newTestServer(player)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pause", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, player.paused)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/resume", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, player.resumed)
}

func TestIndexServesViewerPage(t *testing.T) {
	srv := newTestServer(&mockPlayer{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/frame.svg")
	assert.Contains(t, rec.Body.String(), "Rainfall Atlas")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockPlayer{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
