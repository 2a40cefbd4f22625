package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"recipeapi/internal/auth"
	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/model"
	"recipeapi/internal/service"
)

const (
	userContextKey  = "user"
	keyCheckedKey   = "auth.key_checked"
	lookupFailedKey = "auth.lookup_failed"
)

// TokenAuth authenticates "Authorization: Token <key>" requests and stores the user in the context.
// Every authentication failure is answered with 401.
func TokenAuth(authService service.AuthService, log *zap.Logger) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: auth.Scheme,
		Validator: func(key string, c echo.Context) (bool, error) {
			c.Set(keyCheckedKey, true)
			user, err := authService.ResolveToken(c.Request().Context(), key)
			if err != nil {
				if errors.Is(err, apperrors.ErrInvalidToken) {
					return false, nil
				}
				c.Set(lookupFailedKey, err)
				return false, err
			}
			c.Set(userContextKey, user)
			return true, nil
		},
		// the header was missing or malformed unless the validator ran
		ErrorHandler: func(err error, c echo.Context) error {
			if lookupErr, ok := c.Get(lookupFailedKey).(error); ok {
				log.Error("token lookup failed", zap.Error(lookupErr))
				return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
					Detail: "internal server error",
					Code:   "INTERNAL_ERROR",
				})
			}
			if checked, _ := c.Get(keyCheckedKey).(bool); checked {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Detail: "Invalid token.",
					Code:   "AUTHENTICATION_FAILED",
				})
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Detail: "Authentication credentials were not provided.",
				Code:   "NOT_AUTHENTICATED",
			})
		},
	})
}

// CurrentUser returns the user stored by TokenAuth, or nil on unauthenticated routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
