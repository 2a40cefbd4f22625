package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/middleware"
	"recipeapi/internal/model"
)

// errorResponse turns a service error into the matching echo error.
func errorResponse(err error) error {
	mapped := apperrors.MapErrorToHTTP(err)
	he := echo.NewHTTPError(mapped.StatusCode, mapped.Body)
	if mapped.StatusCode >= http.StatusInternalServerError {
		he.SetInternal(err)
	}
	return he
}

// bindRequest decodes the body into req and runs the struct validator.
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Detail: "JSON parse error.",
			Code:   "PARSE_ERROR",
		})
	}
	if err := c.Validate(req); err != nil {
		return errorResponse(err)
	}
	return nil
}

// pathID reads the :id parameter. Anything that is not a positive integer cannot name a row.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errorResponse(apperrors.ErrRecipeNotFound)
	}
	return uint(id), nil
}

// caller returns the authenticated user or a 401.
func caller(c echo.Context) (*model.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, errorResponse(apperrors.ErrInvalidToken)
	}
	return user, nil
}
