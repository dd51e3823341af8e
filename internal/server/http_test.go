package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efficientFrontier/internal/report"
)

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestMuxServesArtifacts(t *testing.T) {
	srv := httptest.NewServer(NewHTTPMux(report.Artifacts{
		Frontier:   []byte("\x89PNGfrontier"),
		Summary:    "max sharpe",
		Commentary: "looks diversified",
	}))
	defer srv.Close()

	resp, body := get(t, srv.URL+"/frontier.png")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "\x89PNGfrontier", body)

	resp, _ = get(t, srv.URL+"/weights.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, body = get(t, srv.URL+"/summary.txt")
	assert.Equal(t, "max sharpe\n\nlooks diversified\n", body)

	resp, _ = get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = get(t, srv.URL+"/")
	assert.Contains(t, body, `src="/frontier.png"`)

	resp, _ = get(t, srv.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ListenAndServe(ctx, addr, NewHTTPMux(report.Artifacts{})) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestListenAndServeBadAddr(t *testing.T) {
	err := ListenAndServe(context.Background(), "not-an-address", NewHTTPMux(report.Artifacts{}))
	assert.Error(t, err)
}
