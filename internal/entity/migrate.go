package entity

import (
	"context"

	"github.com/farmlink/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(&File{})
}
