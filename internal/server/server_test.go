package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/fridge-chef/backend/config"
	"github.com/pageza/fridge-chef/backend/internal/api"
	"github.com/pageza/fridge-chef/backend/internal/service"
	"github.com/pageza/fridge-chef/backend/internal/upload"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:    config.Test,
		ServerHost:     "127.0.0.1",
		ServerPort:     "0",
		AllowedOrigins: []string{"*"},
	}

	store, err := upload.NewStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	logger := zap.NewNop()
	extractor := service.NewIngredientExtractor(nil, "vision", logger)
	generator := service.NewRecipeGenerator(nil, "text", 0, logger)
	handler := api.NewRecipeHandler(extractor, generator, store, nil, nil, logger)

	return New(cfg, handler, logger)
}

func TestNew(t *testing.T) {
	server := newTestServer(t)
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestBanner(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}

func TestMissingIngredients(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/recipes", nil)
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No ingredients provided"}`, w.Body.String())
}

func TestStartAndShutdown(t *testing.T) {
	server := newTestServer(t)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	// Give the listener a moment to come up before shutting down.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
