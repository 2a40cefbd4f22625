package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"recipeapi/internal/auth"
	"recipeapi/internal/config"
	"recipeapi/internal/db"
	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/logger"
	"recipeapi/internal/repository"
	"recipeapi/internal/service"
)

func main() {
	email := flag.String("email", os.Getenv("SUPERUSER_EMAIL"), "superuser email")
	password := flag.String("password", os.Getenv("SUPERUSER_PASSWORD"), "superuser password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), cfg, log, *email, *password); err != nil {
		log.Fatal("createsuperuser failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, email, password string) error {
	if password == "" {
		return errors.New("a password is required (-password or SUPERUSER_PASSWORD)")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := db.WaitForDB(ctx, gormDB, cfg.DBWaitRetries, cfg.DBWaitInterval, log); err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	users := service.NewUserService(repository.NewUserRepository(gormDB), auth.NewHasher(auth.DefaultCost), log)
	user, err := users.CreateSuperuser(ctx, email, password)
	switch {
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		log.Info("superuser already exists, nothing to do", zap.String("email", service.NormalizeEmail(email)))
		return nil
	case err != nil:
		return err
	}

	log.Info("superuser created", zap.Uint("id", user.ID), zap.String("email", user.Email))
	return nil
}
