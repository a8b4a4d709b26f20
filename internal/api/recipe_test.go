package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pageza/recipe-service/backend/internal/mocks"
	"github.com/pageza/recipe-service/backend/internal/store"
	"github.com/pageza/recipe-service/backend/internal/testhelpers"
)

func scrambledEggsBody() map[string]interface{} {
	return map[string]interface{}{
		"name":                    "Scrambled Eggs",
		"desc":                    "4 eggs, salt, pepper",
		"imagePath":               "../images/scrambled_eggs.jpg",
		"ingredientIds":           []int{100001, 100002, 100003},
		"ingredientAmountsInGram": []int{50, 1400, 360},
	}
}

func assertRecipeFields(t *testing.T, want map[string]interface{}, got map[string]interface{}) {
	t.Helper()
	assert.Equal(t, want["name"], got["name"])
	assert.Equal(t, want["desc"], got["desc"])
	assert.Equal(t, want["imagePath"], got["imagePath"])
	assert.Equal(t, fmt.Sprint(want["ingredientIds"]), fmt.Sprint(got["ingredientIds"]))
	assert.Equal(t, fmt.Sprint(want["ingredientAmountsInGram"]), fmt.Sprint(got["ingredientAmountsInGram"]))
}

func createRecipe(t *testing.T, router http.Handler, body map[string]interface{}) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/recipes", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id, ok := created["id"].(string)
	require.True(t, ok, "missing id in %v", created)
	return id
}

func TestRecipeLifecycle(t *testing.T) {
	router := setupRecipeTestRouter(t)
	body := scrambledEggsBody()

	// Create
	w := doJSON(t, router, http.MethodPost, "/recipes", body)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assertRecipeFields(t, body, created)
	recipeID := created["id"].(string)
	_, err := uuid.Parse(recipeID)
	require.NoError(t, err)

	// Get
	w = doJSON(t, router, http.MethodGet, "/recipes/"+recipeID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	require.Contains(t, response, "recipe")
	fetched := response["recipe"].(map[string]interface{})
	assert.Equal(t, recipeID, fetched["id"])
	assertRecipeFields(t, body, fetched)

	// Delete
	w = doJSON(t, router, http.MethodDelete, "/recipes/"+recipeID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	deleted := decode(t, w)
	assert.Equal(t, recipeID, deleted["id"])
	assertRecipeFields(t, body, deleted)

	// Get after delete
	w = doJSON(t, router, http.MethodGet, "/recipes/"+recipeID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Recipe not found", decode(t, w)["error"])
}

func TestUpdateRecipeReplacesWholeDocument(t *testing.T) {
	router := setupRecipeTestRouter(t)
	recipeID := createRecipe(t, router, scrambledEggsBody())

	update := map[string]interface{}{
		"name":                    "Fried Eggs",
		"ingredientIds":           []int{100001},
		"ingredientAmountsInGram": []int{100},
	}

	for _, method := range []string{http.MethodPatch, http.MethodPut} {
		t.Run(method, func(t *testing.T) {
			w := doJSON(t, router, method, "/recipes/"+recipeID, update)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			updated := decode(t, w)
			assert.Equal(t, recipeID, updated["id"])

			// Fields absent from the body are cleared
			want := map[string]interface{}{
				"name":                    "Fried Eggs",
				"desc":                    "",
				"imagePath":               "",
				"ingredientIds":           []int{100001},
				"ingredientAmountsInGram": []int{100},
			}
			assertRecipeFields(t, want, updated)

			w = doJSON(t, router, http.MethodGet, "/recipes/"+recipeID, nil)
			require.Equal(t, http.StatusOK, w.Code)
			fetched := decode(t, w)["recipe"].(map[string]interface{})
			assert.Equal(t, recipeID, fetched["id"])
			assertRecipeFields(t, want, fetched)
		})
	}
}

func TestDuplicateRecipesAllowed(t *testing.T) {
	router := setupRecipeTestRouter(t)
	first := createRecipe(t, router, scrambledEggsBody())
	second := createRecipe(t, router, scrambledEggsBody())
	assert.NotEqual(t, first, second)
}

func TestUnknownRecipeIsNotFound(t *testing.T) {
	router := setupRecipeTestRouter(t)
	missing := "/recipes/" + uuid.NewString()

	tests := []struct {
		method string
		body   interface{}
	}{
		{http.MethodGet, nil},
		{http.MethodPatch, scrambledEggsBody()},
		{http.MethodPut, scrambledEggsBody()},
		{http.MethodDelete, nil},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := doJSON(t, router, tt.method, missing, tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Recipe not found", decode(t, w)["error"])
		})
	}
}

func TestBadRequests(t *testing.T) {
	router := setupRecipeTestRouter(t)
	recipeID := createRecipe(t, router, scrambledEggsBody())

	mismatched := scrambledEggsBody()
	mismatched["ingredientAmountsInGram"] = []int{50}

	tests := []struct {
		name      string
		method    string
		path      string
		body      interface{}
		wantError string
	}{
		{"malformed id on get", http.MethodGet, "/recipes/6486e12e1848915af487e38d", nil, "invalid recipe id"},
		{"malformed id on update", http.MethodPatch, "/recipes/not-a-uuid", scrambledEggsBody(), "invalid recipe id"},
		{"malformed id on delete", http.MethodDelete, "/recipes/42", nil, "invalid recipe id"},
		{"malformed json on create", http.MethodPost, "/recipes", `{"name":`, "invalid request body"},
		{"wrong type on create", http.MethodPost, "/recipes", `{"ingredientIds":"abc"}`, "invalid request body"},
		{"malformed json on update", http.MethodPatch, "/recipes/" + recipeID, `[]`, "invalid request body"},
		{"mismatched arrays on create", http.MethodPost, "/recipes", mismatched, "same length"},
		{"mismatched arrays on update", http.MethodPatch, "/recipes/" + recipeID, mismatched, "same length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode(t, w)["error"], tt.wantError)
		})
	}

	// Rejected updates leave the stored recipe untouched
	w := doJSON(t, router, http.MethodGet, "/recipes/"+recipeID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assertRecipeFields(t, scrambledEggsBody(), decode(t, w)["recipe"].(map[string]interface{}))
}

func TestStoreFailuresProduceResponses(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	router := newRecipeRouter(t, svc)
	id := uuid.NewString()
	boom := errors.New("connection refused")

	svc.On("GetRecipe", mock.Anything, id).Return(nil, boom)
	svc.On("CreateRecipe", mock.Anything, mock.Anything).Return(nil, boom)
	svc.On("UpdateRecipe", mock.Anything, id, mock.Anything).Return(nil, fmt.Errorf("update recipe: %w", context.DeadlineExceeded))
	svc.On("DeleteRecipe", mock.Anything, id).Return(nil, fmt.Errorf("delete recipe: %w", store.ErrNotFound))

	tests := []struct {
		method    string
		path      string
		body      interface{}
		wantCode  int
		wantError string
	}{
		{http.MethodGet, "/recipes/" + id, nil, http.StatusInternalServerError, "Failed to fetch recipe"},
		{http.MethodPost, "/recipes", testhelpers.ScrambledEggs(), http.StatusInternalServerError, "Failed to create recipe"},
		{http.MethodPatch, "/recipes/" + id, testhelpers.ScrambledEggs(), http.StatusGatewayTimeout, "Recipe store timed out"},
		{http.MethodDelete, "/recipes/" + id, nil, http.StatusNotFound, "Recipe not found"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantError, decode(t, w)["error"])
		})
	}

	svc.AssertExpectations(t)
}

func TestOversizedOrNulFieldsAreBadRequests(t *testing.T) {
	router := setupRecipeTestRouter(t)
	id := createRecipe(t, router, scrambledEggsBody())

	tests := []struct {
		name  string
		field string
		value string
	}{
		{"name too long", "name", strings.Repeat("a", 300)},
		{"image path too long", "imagePath", strings.Repeat("p", 1025)},
		{"NUL in desc", "desc", "4 eggs\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := scrambledEggsBody()
			body[tt.field] = tt.value

			w := doJSON(t, router, http.MethodPost, "/recipes", body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, decode(t, w)["error"], tt.field)

			w = doJSON(t, router, http.MethodPatch, "/recipes/"+id, body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	// the stored recipe is untouched
	w := doJSON(t, router, http.MethodGet, "/recipes/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assertRecipeFields(t, scrambledEggsBody(), decode(t, w)["recipe"].(map[string]interface{}))
}

func TestStoreRejectedValueIsBadRequest(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	router := newRecipeRouter(t, svc)

	rejected := fmt.Errorf("create recipe: insert recipe: %w: value too long for type character varying(255)", store.ErrInvalidInput)
	svc.On("CreateRecipe", mock.Anything, mock.Anything).Return(nil, rejected)

	w := doJSON(t, router, http.MethodPost, "/recipes", testhelpers.ScrambledEggs())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "recipe contains a value the store cannot hold", decode(t, w)["error"])
	svc.AssertExpectations(t)
}

func TestStoreFailureIsLoggedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := new(mocks.MockRecipeService)
	router := newRecipeRouterWithLogger(t, svc, zap.New(core))
	id := uuid.NewString()

	svc.On("GetRecipe", mock.Anything, id).Return(nil, errors.New("connection refused"))

	w := doJSON(t, router, http.MethodGet, "/recipes/"+id, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestClientCancellationIsQuiet(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := new(mocks.MockRecipeService)
	router := newRecipeRouterWithLogger(t, svc, zap.New(core))
	id := uuid.NewString()

	svc.On("DeleteRecipe", mock.Anything, id).Return(nil, fmt.Errorf("delete recipe %s: %w", id, context.Canceled))

	w := doJSON(t, router, http.MethodDelete, "/recipes/"+id, nil)
	assert.Equal(t, statusClientClosedRequest, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).Len())
}
