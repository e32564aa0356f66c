package testutil

import (
	"context"

	"github.com/farmlink/backend/config"
	"github.com/farmlink/backend/internal/entity"
	"github.com/farmlink/backend/pkg/logger"
	"github.com/farmlink/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockContext returns a context carrying test configs, a silent logger and a
// fresh in-memory sqlite database with every table migrated.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens a new empty database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Default()
	cfg.Storage = StorageConfigs()
	cfg.Database = config.DatabaseConfigs{Driver: "sqlite", Database: ":memory:"}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}
