package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/recipe-service/backend/config"
	"github.com/pageza/recipe-service/backend/internal/mocks"
	"github.com/pageza/recipe-service/backend/internal/store"
	"github.com/pageza/recipe-service/backend/internal/testhelpers"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:    config.Test,
		ServerHost:     "127.0.0.1",
		ServerPort:     "0",
		RequestTimeout: time.Second,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
}

func TestNew(t *testing.T) {
	recipes := store.NewGormStore(testhelpers.SetupSQLiteDB(t))
	srv := New(testConfig(), recipes, zaptest.NewLogger(t))
	require.NotNil(t, srv)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/"+"not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServesAPIDocumentation(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	srv := New(testConfig(), recipes, zaptest.NewLogger(t))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc.Paths, "/recipes")
	require.Contains(t, doc.Paths, "/recipes/{recipeId}")
	for _, method := range []string{"get", "patch", "put", "delete"} {
		assert.Contains(t, doc.Paths["/recipes/{recipeId}"], method)
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthReportsStoreOutage(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	recipes.On("Ping", mock.Anything).Return(errors.New("no reachable servers"))

	srv := New(testConfig(), recipes, zaptest.NewLogger(t))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"store unavailable"}`, w.Body.String())
}

func TestShutdownClosesStore(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	recipes.On("Close", mock.Anything).Return(nil).Once()

	srv := New(testConfig(), recipes, zaptest.NewLogger(t))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	// Give the listener a moment to come up
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, <-errCh)
	recipes.AssertExpectations(t)
}
