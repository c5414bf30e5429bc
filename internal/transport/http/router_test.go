package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"tunnelcli/internal/config"
	apierrors "tunnelcli/internal/errors"
	"tunnelcli/internal/infrastructure"
	"tunnelcli/internal/services"
	"tunnelcli/internal/shared/testutil"
	api "tunnelcli/pkg/contracts/api/v1"
)

const goldenData = `x y 5.0 z q w 20.0 extra
x y p
0.0 0.01 -50.0
0.1 0.02 -40.0
0.2 -0.01 30.0
0.3 -0.02 35.0
`

func newTestRouter(t *testing.T, server config.ServerConfig, outputDir string) http.Handler {
	t.Helper()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	metrics, err := infrastructure.CreateReductionMetrics(provider.Meter("test"))
	require.NoError(t, err)

	reduction, err := services.NewReductionService(config.Default().Physics, metrics, quietLogger())
	require.NoError(t, err)

	return NewRouter(RouterDeps{
		Server:         server,
		Reduction:      reduction,
		Health:         services.NewHealthService(reduction, outputDir, quietLogger()),
		Metrics:        metrics,
		PrometheusHTTP: promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
		Logger:         quietLogger(),
	})
}

func TestRouter_Reduce(t *testing.T) {
	router := newTestRouter(t, config.Default().Server, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reduce?name=group_8_test_4.dat", strings.NewReader(goldenData))
	req.Header.Set("X-Request-ID", "req-golden")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	var resp api.ReduceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "req-golden", resp.RequestID)
	assert.InDelta(t, testutil.GoldenLift, resp.Summary.Lift, 1e-12)
	assert.InDelta(t, testutil.GoldenCorrectedReynolds, resp.Summary.Reynolds, 1e-6)
	assert.Equal(t, "File: group_8_test_4.dat\nAngle of attack: AoA = 5 deg\nReynolds number: Re = 628469\nLift coefficient: c_l = 0.0313\n", resp.Report)
}

func TestRouter_ReducePayloadTooLarge(t *testing.T) {
	server := config.Default().Server
	server.MaxUploadBytes = 64
	router := newTestRouter(t, server, "")

	// The limit falls inside a comment line, after the header.
	body := "x y 5.0 z q w 20.0 extra\nx y p\n# " + strings.Repeat("a", 200) + "\n" + goldenData
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reduce", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, apierrors.TypePayloadTooLarge, problem["type"])
}

func TestRouter_Geometry(t *testing.T) {
	router := newTestRouter(t, config.Default().Server, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/geometry", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.GeometryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.45, resp.Chord)
	assert.InDelta(t, 0.123289*0.45*0.45, resp.Areas["tabulated"], 1e-12)
	assert.InDelta(t, testutil.GoldenBlockage, resp.Blockage, 1e-9)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, config.Default().Server, t.TempDir())

	for _, path := range []string{"/api/health", "/api/health/ready", "/api/health/live", "/api/version"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json", path)
	}
}

func TestRouter_NotReady(t *testing.T) {
	file := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, os.WriteFile(file, []byte("not a directory"), 0o644))
	router := newTestRouter(t, config.Default().Server, file)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status services.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "not_ready", status.Status)
	assert.Equal(t, "ready", status.Services["reduction"].Status)
}

func TestRouter_ErrorsAndMetrics(t *testing.T) {
	router := newTestRouter(t, config.Default().Server, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/reduce", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apierrors.TypeNotFound)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reduce", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	server := config.Default().Server
	server.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.1, Burst: 1}
	router := newTestRouter(t, server, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
