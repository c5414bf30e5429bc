package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunnelcli/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 2 * time.Second
	cfg.Run.OutputDir = t.TempDir()
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func baseURL(t *testing.T, app *Application) string {
	t.Helper()
	_, port, err := net.SplitHostPort(app.Addr())
	require.NoError(t, err)
	return fmt.Sprintf("http://127.0.0.1:%s", port)
}

func TestNewApplication(t *testing.T) {
	app, err := NewApplication(testConfig(t), quietLogger())
	require.NoError(t, err)

	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Server)
	assert.NotNil(t, app.Reduction)
	assert.NotNil(t, app.HealthService)
	assert.NotNil(t, app.Metrics)
	assert.NotNil(t, app.OTelProviders.PrometheusHTTP)
	assert.Equal(t, ":0", app.Server.Addr)
	assert.Empty(t, app.Addr())
}

func TestNewApplication_Errors(t *testing.T) {
	_, err := NewApplication(nil, nil)
	assert.Error(t, err)

	cfg := testConfig(t)
	cfg.Physics.Geometry = "spline"
	_, err = NewApplication(cfg, quietLogger())
	assert.Error(t, err)
}

func TestApplication_StartStop(t *testing.T) {
	app, err := NewApplication(testConfig(t), quietLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	require.NotEmpty(t, app.Addr())

	resp, err := http.Get(baseURL(t, app) + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(baseURL(t, app)+"/api/v1/reduce", "text/plain",
		strings.NewReader("x y 5.0 z q w 20.0 extra\nx y p\n0.0 0.01 -50.0\n0.1 0.02 -40.0\n0.2 -0.01 30.0\n0.3 -0.02 35.0\n"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(baseURL(t, app) + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "reduction_files")

	require.NoError(t, app.Stop(ctx))
	_, err = http.Get(baseURL(t, app) + "/api/health")
	assert.Error(t, err)
}

func TestApplication_StartPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	app, err := NewApplication(testConfig(t), quietLogger())
	require.NoError(t, err)
	app.Server.Addr = ln.Addr().String()

	assert.Error(t, app.Start(context.Background()))
}

func TestApplication_Run(t *testing.T) {
	app, err := NewApplication(testConfig(t), quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run(ctx)
	}()

	require.Eventually(t, func() bool { return app.Addr() != "" }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not shut down within timeout")
	}
}
