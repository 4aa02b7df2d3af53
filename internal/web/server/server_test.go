package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig(http.NotFoundHandler())

	assert.Equal(t, ":8080", config.Address)
	assert.Equal(t, 10*time.Second, config.ReadTimeout)
	assert.Equal(t, 15*time.Second, config.ShutdownTimeout)
}

func TestNewServerErrors(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(DefaultConfig(nil))
	assert.Error(t, err)
}

func TestRunAndShutdown(t *testing.T) {
	config := DefaultConfig(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	config.Address = "127.0.0.1:0"

	srv, err := New(config)
	require.NoError(t, err)

	var hookRan bool
	srv.OnShutdown(func(context.Context) error {
		hookRan = true
		return nil
	})
	srv.OnShutdown(func(context.Context) error {
		return errors.New("close redis: already closed")
	})

	require.NoError(t, srv.Listen())
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + srv.Addr())
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "OK", string(body))

	cancel()
	select {
	case err := <-done:
		assert.ErrorContains(t, err, "already closed")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.True(t, hookRan)
}

func TestListenError(t *testing.T) {
	config := DefaultConfig(http.NotFoundHandler())
	config.Address = "256.0.0.1:99999"

	srv, err := New(config)
	require.NoError(t, err)
	assert.Error(t, srv.Run(context.Background()))
}
