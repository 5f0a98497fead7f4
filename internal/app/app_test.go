package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/alexanderramin/pages/internal/config"
	"github.com/alexanderramin/pages/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	cfg := config.Default()
	cfg.Database.Path = ":memory:"
	cfg.Server.ShutdownTimeout = 2 * time.Second
	return cfg
}

func TestNew_WiresServices(t *testing.T) {
	a, err := New(memoryConfig(), nil)
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	require.NoError(t, a.Sites.Create(ctx, &domain.Site{Code: "main", Name: "Main"}))

	resp, err := a.Menu.SiteMenu(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "main", resp.Code)
	assert.Empty(t, resp.PageGroups)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	a, err := New(memoryConfig(), nil)
	require.NoError(t, err)
	defer a.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, ln) }()

	res, err := http.Get(fmt.Sprintf("http://%s/health", ln.Addr()))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "connected", body["database"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
