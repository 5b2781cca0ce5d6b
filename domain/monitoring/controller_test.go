package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akeren/consent-intake/config/router"
	"github.com/akeren/consent-intake/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err   error
	calls int
}

func (s *stubPinger) Ping(ctx context.Context) error {
	s.calls++
	return s.err
}

func newTestEngine(t *testing.T, store StorePinger) http.Handler {
	t.Helper()
	t.Setenv("METRICS_ENABLED", "false")

	logger := log.NewLoggerWithWriter(io.Discard, slog.LevelError)
	rs := router.CreateRouterService(logger, nil)
	rs.MountController(NewMonitoringControllerFactory(store, logger).CreateController())

	return rs.GetEngine()
}

func TestHealth_StoreReachable(t *testing.T) {
	store := &stubPinger{}
	engine := newTestEngine(t, store)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		OK      bool         `json:"ok"`
		Message string       `json:"message"`
		Data    HealthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.OK)
	assert.Equal(t, 1, body.Data.Database)
	assert.GreaterOrEqual(t, body.Data.Uptime, 0)
	assert.Equal(t, 1, store.calls)
}

func TestHealth_StoreUnreachable(t *testing.T) {
	engine := newTestEngine(t, &stubPinger{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "consent-intake store unreachable", body["error"])
	assert.Equal(t, float64(0), body["details"].(map[string]any)["database"])
}

func TestHealth_NilStore(t *testing.T) {
	engine := newTestEngine(t, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth_Head(t *testing.T) {
	engine := newTestEngine(t, &stubPinger{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMonitorRoot(t *testing.T) {
	engine := newTestEngine(t, &stubPinger{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Monitoring successful")
}
