package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipeapi/internal/model"
	"recipeapi/internal/service"
)

// AttributeRequest creates a tag or an ingredient.
type AttributeRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// AttributeHandler serves the caller's tags or ingredients.
type AttributeHandler[T model.Attribute] struct {
	svc service.AttributeService[T]
}

// NewTagHandler creates the tag handler.
func NewTagHandler(svc service.AttributeService[model.Tag]) *AttributeHandler[model.Tag] {
	return &AttributeHandler[model.Tag]{svc: svc}
}

// NewIngredientHandler creates the ingredient handler.
func NewIngredientHandler(svc service.AttributeService[model.Ingredient]) *AttributeHandler[model.Ingredient] {
	return &AttributeHandler[model.Ingredient]{svc: svc}
}

// List godoc
// @Summary List the caller's tags or ingredients, newest name first
// @Tags recipe
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Tag
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/tags/ [get]
// @Router /recipe/ingredients/ [get]
func (h *AttributeHandler[T]) List(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	items, err := h.svc.List(c.Request().Context(), user.ID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create a tag or an ingredient for the caller
// @Tags recipe
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body AttributeRequest true "Name"
// @Success 201 {object} model.Tag
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/tags/ [post]
// @Router /recipe/ingredients/ [post]
func (h *AttributeHandler[T]) Create(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	var req AttributeRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	item, err := h.svc.Create(c.Request().Context(), user.ID, req.Name)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, item)
}
