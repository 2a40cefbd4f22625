package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"recipeapi/docs"
	"recipeapi/internal/config"
	"recipeapi/internal/handler"
	mw "recipeapi/internal/middleware"
	"recipeapi/internal/model"
	"recipeapi/internal/service"
)

// uploadEnvelopeBytes covers the multipart boundaries and part headers around the image.
const uploadEnvelopeBytes = 64 << 10

// Lister serves GET on a collection.
type Lister interface {
	List(c echo.Context) error
}

// Creator serves POST on a collection.
type Creator interface {
	Create(c echo.Context) error
}

// Retriever serves GET on a single resource.
type Retriever interface {
	Retrieve(c echo.Context) error
}

// Updater serves PUT and PATCH on a single resource.
type Updater interface {
	Update(c echo.Context) error
	PartialUpdate(c echo.Context) error
}

// Destroyer serves DELETE on a single resource.
type Destroyer interface {
	Destroy(c echo.Context) error
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	authService service.AuthService,
	userHandler *handler.UserHandler,
	tagHandler *handler.AttributeHandler[model.Tag],
	ingredientHandler *handler.AttributeHandler[model.Ingredient],
	recipeHandler *handler.RecipeHandler,
) {
	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, "/api/")
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(mw.RequestLogger(log))
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.StorageBackend == "local" {
		e.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	tokenAuth := mw.TokenAuth(authService, log)
	api := e.Group("/api")

	// Public routes
	api.POST("/user/create/", userHandler.Create)
	api.POST("/user/token/", userHandler.Token)

	// Secured routes
	api.GET("/user/me/", userHandler.Me, tokenAuth)
	api.PATCH("/user/me/", userHandler.UpdateMe, tokenAuth)

	recipe := api.Group("/recipe", tokenAuth)
	mount(recipe, "/tags/", tagHandler)
	mount(recipe, "/ingredients/", ingredientHandler)
	mount(recipe, "/recipes/", recipeHandler)
	recipe.POST("/recipes/:id/upload-image/", recipeHandler.UploadImage,
		middleware.BodyLimit(fmt.Sprintf("%dB", cfg.MaxUploadBytes+uploadEnvelopeBytes)))
}

// mount registers every action h supports on the collection at path and its :id/ detail route.
func mount(g *echo.Group, path string, h interface{}) {
	detail := path + ":id/"

	if l, ok := h.(Lister); ok {
		g.GET(path, l.List)
	}
	if cr, ok := h.(Creator); ok {
		g.POST(path, cr.Create)
	}
	if r, ok := h.(Retriever); ok {
		g.GET(detail, r.Retrieve)
	}
	if u, ok := h.(Updater); ok {
		g.PUT(detail, u.Update)
		g.PATCH(detail, u.PartialUpdate)
	}
	if d, ok := h.(Destroyer); ok {
		g.DELETE(detail, d.Destroy)
	}
}
