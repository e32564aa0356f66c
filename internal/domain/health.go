package domain

import (
	"context"

	"github.com/farmlink/backend/internal/model"
	"github.com/farmlink/backend/pkg/media"
	"github.com/farmlink/backend/pkg/xcontext"
)

type HealthDomain interface {
	Check(context.Context, *model.HealthRequest) (*model.HealthResponse, error)
}

type healthDomain struct {
	mediaClient *media.Client
}

func NewHealthDomain(mediaClient *media.Client) HealthDomain {
	return &healthDomain{mediaClient: mediaClient}
}

// Check never fails. An unconfigured store is reported, not treated as an
// outage.
func (d *healthDomain) Check(ctx context.Context, _ *model.HealthRequest) (*model.HealthResponse, error) {
	resp := &model.HealthResponse{Storage: "unconfigured", Database: "down"}
	if d.mediaClient.Configured() {
		resp.Storage = "configured"
	}

	if db := xcontext.DB(ctx); db != nil {
		if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			resp.Database = "up"
		}
	}

	return resp, nil
}
