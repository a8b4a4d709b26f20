package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-service/backend/internal/middleware"
	"github.com/pageza/recipe-service/backend/internal/model"
	"github.com/pageza/recipe-service/backend/internal/service"
	"github.com/pageza/recipe-service/backend/internal/store"
	"github.com/pageza/recipe-service/backend/internal/types"
)

const recipeIDParam = "recipeId"

// RecipeEnvelope wraps a single recipe in GET responses
type RecipeEnvelope struct {
	Recipe *model.Recipe `json:"recipe"`
}

type RecipeHandler struct {
	recipeService service.IRecipeService
	logger        *zap.Logger
}

func NewRecipeHandler(recipeService service.IRecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:"+recipeIDParam, h.GetRecipe)
		recipes.PATCH("/:"+recipeIDParam, h.UpdateRecipe)
		recipes.PUT("/:"+recipeIDParam, h.UpdateRecipe)
		recipes.DELETE("/:"+recipeIDParam, h.DeleteRecipe)
	}
}

// GetRecipe godoc
// @Summary Find a recipe by its id
// @Description Retrieves the recipe stored under the given id
// @Tags recipes
// @Produce json
// @Param recipeId path string true "Recipe ID" format(uuid)
// @Success 200 {object} RecipeEnvelope
// @Failure 400 {object} middleware.ErrorResponse "Malformed id"
// @Failure 404 {object} middleware.ErrorResponse "Recipe not found"
// @Failure 500 {object} middleware.ErrorResponse "Store failure"
// @Failure 504 {object} middleware.ErrorResponse "Store timed out"
// @Router /recipes/{recipeId} [get]
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), c.Param(recipeIDParam))
	if err != nil {
		h.respondError(c, "fetch", err)
		return
	}

	c.JSON(http.StatusOK, RecipeEnvelope{Recipe: recipe})
}

// CreateRecipe godoc
// @Summary Add a recipe
// @Description Stores a new recipe. Identical recipes may be added more than once.
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body types.RecipeRequest true "Recipe to add"
// @Success 201 {object} model.Recipe
// @Failure 400 {object} middleware.ErrorResponse "Invalid body or field values"
// @Failure 500 {object} middleware.ErrorResponse "Store failure"
// @Failure 504 {object} middleware.ErrorResponse "Store timed out"
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error(), err)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, "create", err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe overwrites the whole recipe; fields missing from the body are cleared
// @Summary Update a recipe
// @Description Replaces every field of an existing recipe. PUT is accepted as an alias.
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipeId path string true "Recipe ID" format(uuid)
// @Param recipe body types.RecipeRequest true "Replacement recipe"
// @Success 200 {object} model.Recipe
// @Failure 400 {object} middleware.ErrorResponse "Malformed id, body or field values"
// @Failure 404 {object} middleware.ErrorResponse "Recipe not found"
// @Failure 500 {object} middleware.ErrorResponse "Store failure"
// @Failure 504 {object} middleware.ErrorResponse "Store timed out"
// @Router /recipes/{recipeId} [patch]
// @Router /recipes/{recipeId} [put]
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error(), err)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), c.Param(recipeIDParam), &req)
	if err != nil {
		h.respondError(c, "update", err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Description Removes the recipe and returns its last stored state
// @Tags recipes
// @Produce json
// @Param recipeId path string true "Recipe ID" format(uuid)
// @Success 200 {object} model.Recipe
// @Failure 400 {object} middleware.ErrorResponse "Malformed id"
// @Failure 404 {object} middleware.ErrorResponse "Recipe not found"
// @Failure 500 {object} middleware.ErrorResponse "Store failure"
// @Failure 504 {object} middleware.ErrorResponse "Store timed out"
// @Router /recipes/{recipeId} [delete]
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipe, err := h.recipeService.DeleteRecipe(c.Request.Context(), c.Param(recipeIDParam))
	if err != nil {
		h.respondError(c, "delete", err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// statusClientClosedRequest is nginx's code for a client that went away before the response
const statusClientClosedRequest = 499

// respondError maps service and store errors onto status codes. Recorded errors are logged by
// middleware.ErrorHandler.
func (h *RecipeHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRecipeID):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid recipe id", err)
	case errors.Is(err, service.ErrIngredientLengthMismatch):
		middleware.AbortWithError(c, http.StatusBadRequest, service.ErrIngredientLengthMismatch.Error(), err)
	case errors.Is(err, service.ErrInvalidRecipeField):
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, store.ErrInvalidInput):
		middleware.AbortWithError(c, http.StatusBadRequest, "recipe contains a value the store cannot hold", err)
	case errors.Is(err, store.ErrNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, "Recipe not found", err)
	case errors.Is(err, context.DeadlineExceeded):
		middleware.AbortWithError(c, http.StatusGatewayTimeout, "Recipe store timed out", err)
	case errors.Is(err, context.Canceled):
		h.logger.Debug("client went away", zap.String("op", op), zap.Error(err))
		c.AbortWithStatus(statusClientClosedRequest)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "Failed to "+op+" recipe", err)
	}
}
