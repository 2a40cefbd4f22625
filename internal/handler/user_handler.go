package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipeapi/internal/model"
	"recipeapi/internal/service"
)

// UserHandler serves registration, login and the caller's profile.
type UserHandler struct {
	users service.UserService
	auth  service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService, auth service.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// CreateUserRequest represents a registration request.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name" validate:"required,max=255"`
}

// UpdateUserRequest represents a partial profile update.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Password *string `json:"password" validate:"omitempty,min=5"`
}

// TokenRequest represents a login request.
type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries the caller's auth token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the public view of a user; the password never leaves the server.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// Create godoc
// @Summary Register a new user
// @Tags user
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "Registration data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} map[string][]string
// @Router /user/create/ [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.Request().Context(), req.Email, req.Password, service.UserFields{Name: req.Name})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, newUserResponse(user))
}

// Token godoc
// @Summary Obtain an auth token
// @Tags user
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} map[string][]string
// @Router /user/token/ [post]
func (h *UserHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Me godoc
// @Summary Get the authenticated user
// @Tags user
// @Produce json
// @Security TokenAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/me/ [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateMe godoc
// @Summary Update the authenticated user
// @Tags user
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/me/ [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	updated, err := h.users.UpdateUser(c.Request().Context(), user.ID, service.UserUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newUserResponse(updated))
}
