package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/model"
	"recipeapi/internal/service"
)

// RecipeHandler serves the caller's recipes.
type RecipeHandler struct {
	recipes service.RecipeService
	images  service.ImageService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipes service.RecipeService, images service.ImageService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, images: images}
}

// RecipeRequest is the writable part of a recipe. Omitted fields stay nil.
type RecipeRequest struct {
	Title       *string          `json:"title"`
	TimeMinutes *int             `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string" example:"5.00"`
	Link        *string          `json:"link"`
	Tags        *[]uint          `json:"tags"`
	Ingredients *[]uint          `json:"ingredients"`
}

func (r RecipeRequest) input() service.RecipeInput {
	return service.RecipeInput{
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        r.Tags,
		Ingredients: r.Ingredients,
	}
}

// RecipeSummary is the list view: related rows appear as ids.
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`
	Price       string `json:"price" example:"5.00"`
	Link        string `json:"link"`
	Tags        []uint `json:"tags"`
	Ingredients []uint `json:"ingredients"`
}

// RecipeDetail is the single recipe view with nested tags and ingredients.
type RecipeDetail struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	TimeMinutes int                `json:"time_minutes"`
	Price       string             `json:"price" example:"5.00"`
	Link        string             `json:"link"`
	Image       *string            `json:"image"`
	Tags        []model.Tag        `json:"tags"`
	Ingredients []model.Ingredient `json:"ingredients"`
}

// RecipeImageResponse is returned after an upload.
type RecipeImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

func newRecipeSummary(r *model.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        r.TagIDs(),
		Ingredients: r.IngredientIDs(),
	}
}

func (h *RecipeHandler) newRecipeDetail(r *model.Recipe) RecipeDetail {
	detail := RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        r.Tags,
		Ingredients: r.Ingredients,
	}
	if detail.Tags == nil {
		detail.Tags = []model.Tag{}
	}
	if detail.Ingredients == nil {
		detail.Ingredients = []model.Ingredient{}
	}
	if r.Image != "" {
		url := h.images.URL(r.Image)
		detail.Image = &url
	}
	return detail
}

// List godoc
// @Summary List the caller's recipes
// @Tags recipe
// @Produce json
// @Security TokenAuth
// @Success 200 {array} RecipeSummary
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/recipes/ [get]
func (h *RecipeHandler) List(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	recipes, err := h.recipes.List(c.Request().Context(), user.ID)
	if err != nil {
		return errorResponse(err)
	}

	out := make([]RecipeSummary, 0, len(recipes))
	for i := range recipes {
		out = append(out, newRecipeSummary(&recipes[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary Create a recipe
// @Tags recipe
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body RecipeRequest true "Recipe"
// @Success 201 {object} RecipeSummary
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/recipes/ [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	var req RecipeRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	recipe, err := h.recipes.Create(c.Request().Context(), user.ID, req.input())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, newRecipeSummary(recipe))
}

// Retrieve godoc
// @Summary Get one of the caller's recipes
// @Tags recipe
// @Produce json
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeDetail
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id}/ [get]
func (h *RecipeHandler) Retrieve(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipes.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, h.newRecipeDetail(recipe))
}

// Update godoc
// @Summary Replace a recipe; omitted tags, ingredients and link are cleared
// @Tags recipe
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Param request body RecipeRequest true "Recipe"
// @Success 200 {object} RecipeSummary
// @Failure 400 {object} map[string][]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id}/ [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	return h.update(c, false)
}

// PartialUpdate godoc
// @Summary Change the sent fields of a recipe
// @Tags recipe
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Param request body RecipeRequest true "Fields to change"
// @Success 200 {object} RecipeSummary
// @Failure 400 {object} map[string][]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id}/ [patch]
func (h *RecipeHandler) PartialUpdate(c echo.Context) error {
	return h.update(c, true)
}

func (h *RecipeHandler) update(c echo.Context, partial bool) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req RecipeRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	recipe, err := h.recipes.Update(c.Request().Context(), user.ID, id, req.input(), partial)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newRecipeSummary(recipe))
}

// Destroy godoc
// @Summary Delete a recipe
// @Tags recipe
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id}/ [delete]
func (h *RecipeHandler) Destroy(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.recipes.Delete(c.Request().Context(), user.ID, id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Attach an image to a recipe
// @Tags recipe
// @Accept multipart/form-data
// @Produce json
// @Security TokenAuth
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} RecipeImageResponse
// @Failure 400 {object} map[string][]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id}/upload-image/ [post]
func (h *RecipeHandler) UploadImage(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if _, err := h.recipes.Get(c.Request().Context(), user.ID, id); err != nil {
		return errorResponse(err)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return errorResponse(apperrors.NewValidationError("image", "No file was submitted."))
	}
	file, err := fh.Open()
	if err != nil {
		return errorResponse(apperrors.NewValidationError("image", "The submitted file could not be read."))
	}
	defer file.Close()

	recipe, err := h.images.UploadRecipeImage(c.Request().Context(), user.ID, id, file)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, RecipeImageResponse{ID: recipe.ID, Image: h.images.URL(recipe.Image)})
}
