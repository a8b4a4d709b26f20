package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/recipe-service/backend/internal/middleware"
	"github.com/pageza/recipe-service/backend/internal/service"
	"github.com/pageza/recipe-service/backend/internal/store"
	"github.com/pageza/recipe-service/backend/internal/testhelpers"
)

// setupRecipeTestRouter wires the handlers to a real service backed by a fresh SQLite store.
func setupRecipeTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logger := zaptest.NewLogger(t)
	recipes := store.NewGormStore(testhelpers.SetupSQLiteDB(t))
	return newRecipeRouter(t, service.NewRecipeService(recipes, 5*time.Second, logger))
}

func newRecipeRouter(t *testing.T, svc service.IRecipeService) *gin.Engine {
	t.Helper()
	return newRecipeRouterWithLogger(t, svc, zaptest.NewLogger(t))
}

func newRecipeRouterWithLogger(t *testing.T, svc service.IRecipeService, logger *zap.Logger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	NewRecipeHandler(svc, logger).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}
