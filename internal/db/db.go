package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"recipeapi/internal/model"
)

// Open returns a GORM DB instance for the given driver.
// Constraint violations are translated to gorm.ErrDuplicatedKey and friends.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}

// WaitForDB pings the database until it answers or retries are exhausted.
func WaitForDB(ctx context.Context, db *gorm.DB, retries uint64, interval time.Duration, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	attempt := 0
	backoff := retry.WithMaxRetries(retries, retry.NewConstant(interval))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := sqlDB.PingContext(ctx); err != nil {
			log.Info("database unavailable, waiting", zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("wait for database: %w", err)
	}

	log.Info("database available", zap.Int("attempts", attempt))
	return nil
}

// Migrate creates or updates every table, join tables included.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops all tables, children first.
func Reset(db *gorm.DB, log *zap.Logger) error {
	tables := []interface{}{"recipe_tags", "recipe_ingredients"}
	all := model.All()
	for i := len(all) - 1; i >= 0; i-- {
		tables = append(tables, all[i])
	}
	for _, table := range tables {
		if err := db.Migrator().DropTable(table); err != nil {
			log.Warn("drop table failed (may not exist)", zap.Any("table", table), zap.Error(err))
		}
	}
	return nil
}
