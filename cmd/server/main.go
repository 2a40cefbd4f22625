package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	_ "recipeapi/docs" // swagger docs

	"recipeapi/internal/auth"
	"recipeapi/internal/cache"
	"recipeapi/internal/config"
	"recipeapi/internal/db"
	"recipeapi/internal/handler"
	"recipeapi/internal/logger"
	"recipeapi/internal/repository"
	"recipeapi/internal/router"
	"recipeapi/internal/service"
	"recipeapi/internal/storage"
)

// @title Recipe API
// @version 1.0
// @description Recipe management backend with per-user tags, ingredients and recipes.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Type "Token" followed by a space and the key returned by /user/token/.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	if err := db.WaitForDB(ctx, gormDB, cfg.DBWaitRetries, cfg.DBWaitInterval, log); err != nil {
		return err
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB, log); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn("redis unavailable, token lookups go to the database", zap.Error(err))
	}

	images, err := newImageStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)

	// Initialize services
	hasher := auth.NewHasher(auth.DefaultCost)
	tokenCache := auth.NewTokenCache(cacheClient, cfg.TokenCacheTTL)
	userService := service.NewUserService(userRepo, hasher, log)
	authService := service.NewAuthService(userRepo, tokenRepo, hasher, tokenCache, log)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, images, log)
	imageService := service.NewImageService(recipeService, recipeRepo, images, cfg.MaxUploadBytes, log)

	e := echo.New()
	e.HideBanner = true
	router.Register(
		e,
		cfg,
		log,
		authService,
		handler.NewUserHandler(userService, authService),
		handler.NewTagHandler(tagService),
		handler.NewIngredientHandler(ingredientService),
		handler.NewRecipeHandler(recipeService, imageService),
	)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server listening", zap.String("addr", addr), zap.String("swagger", "/swagger/index.html"))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newImageStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.ImageStore, error) {
	if cfg.StorageBackend == "s3" {
		store, err := storage.NewS3Store(ctx, storage.S3Options{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			UseSSL:          cfg.S3.UseSSL,
			PublicURL:       cfg.S3.PublicURL,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		return store, nil
	}

	store, err := storage.NewLocalStore(cfg.MediaRoot, cfg.MediaURL)
	if err != nil {
		return nil, fmt.Errorf("local storage: %w", err)
	}
	return store, nil
}
