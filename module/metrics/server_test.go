package metrics

import (
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arktech/studydao/utils/unittest"
)

// TestServer_ServesAfterReady checks that /metrics answers as soon as Ready
// has closed.
func TestServer_ServesAfterReady(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewVerificationCollector(reg).KernelRetried()

	server := NewServer(unittest.Logger(), 0, reg)
	unittest.RequireCloseBefore(t, server.Ready(), time.Second, "metrics server not ready")
	defer func() {
		unittest.RequireCloseBefore(t, server.Done(), 5*time.Second, "metrics server not stopped")
	}()
	require.NoError(t, server.Err())
	require.NotNil(t, server.Addr())

	port, err := listenPort(server)
	require.NoError(t, err)
	resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(int(port)) + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "studydao_kernel_retries_total 1")
}

// TestServer_PortInUse checks that a failed bind is reported once Ready
// closes instead of only being logged.
func TestServer_PortInUse(t *testing.T) {
	first := NewServer(unittest.Logger(), 0, prometheus.NewRegistry())
	unittest.RequireCloseBefore(t, first.Ready(), time.Second, "metrics server not ready")
	defer func() {
		unittest.RequireCloseBefore(t, first.Done(), 5*time.Second, "metrics server not stopped")
	}()
	require.NoError(t, first.Err())

	port, err := listenPort(first)
	require.NoError(t, err)

	second := NewServer(unittest.Logger(), port, prometheus.NewRegistry())
	unittest.RequireCloseBefore(t, second.Ready(), time.Second, "metrics server not ready")
	assert.Error(t, second.Err())
	assert.Nil(t, second.Addr())
	unittest.RequireCloseBefore(t, second.Done(), 5*time.Second, "metrics server not stopped")
}

func listenPort(server *Server) (uint, error) {
	_, portStr, err := net.SplitHostPort(server.Addr().String())
	if err != nil {
		return 0, err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	return uint(port), err
}
