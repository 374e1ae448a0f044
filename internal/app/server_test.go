package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/colparams/internal/column"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestHandler(t *testing.T) {
	a, _, _ := newTestApp(t, Config{
		ParamsPath: writeParams(t, sampleParams),
		LogLevel:   "info",
		LogFormat:  "text",
	})
	require.NoError(t, a.Run(context.Background()))
	h := a.Handler()

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK\n", rec.Body.String())
	})

	t.Run("parameters", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parameters", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var rep jsonReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
		require.Len(t, rep.Parameters, len(column.UserInterfaceKeys()))
		first := rep.Parameters[0]
		assert.Equal(t, "MaxColumns", first.Key)
		assert.Equal(t, "optional_int", first.Kind)
		assert.True(t, first.Nullable)
		assert.Nil(t, first.Default)
		assert.Equal(t, "min-cost", rep.Required["ProblemType"])
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/parameters", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
	})
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

// getOK reports whether a GET of url answers 200. Keep-alives are disabled
// so no client goroutines outlive the request.
func getOK(url string) bool {
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	port := freePort(t)
	a, _, logs := newTestApp(t, Config{HTTPPort: port, LogLevel: "info", LogFormat: "text"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	require.Eventually(t, func() bool { return getOK(url) }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Contains(t, logs.String(), "Shutting down parameter server...")
}

func TestRun_WatchReloads(t *testing.T) {
	path := writeParams(t, "cost {\n  MaxTrays = 150\n}\n")
	port := freePort(t)
	a, _, logs := newTestApp(t, Config{
		ParamsPath: path,
		HTTPPort:   port,
		Watch:      true,
		LogLevel:   "info",
		LogFormat:  "text",
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	require.Eventually(t, func() bool {
		return getOK(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	}, 5*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Watching parameters for changes.")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 150, a.Params().Cost.MaxTrays)

	// A broken edit is rejected and the previous values stay.
	require.NoError(t, os.WriteFile(path, []byte("cost {\n  Nope = 1\n}\n"), 0600))
	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Parameter reload failed")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 150, a.Params().Cost.MaxTrays)

	require.NoError(t, os.WriteFile(path, []byte("cost {\n  MaxTrays = 90\n}\n"), 0600))
	require.Eventually(t, func() bool {
		return a.Params().Cost.MaxTrays == 90
	}, 5*time.Second, 20*time.Millisecond)
}
