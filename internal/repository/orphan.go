package repository

import (
	"context"

	"github.com/farmlink/backend/internal/common"
	"github.com/farmlink/backend/pkg/media"
	"github.com/farmlink/backend/pkg/xredis"
)

type orphanRepository struct {
	redisClient xredis.Client
}

var _ media.OrphanLedger = (*orphanRepository)(nil)

func NewOrphanRepository(redisClient xredis.Client) *orphanRepository {
	return &orphanRepository{redisClient: redisClient}
}

func (r *orphanRepository) Record(ctx context.Context, bucket string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := r.redisClient.SAdd(ctx, common.OrphanKey(bucket), keys...); err != nil {
		return err
	}

	return r.redisClient.SAdd(ctx, common.OrphanBucketsKey, bucket)
}

func (r *orphanRepository) Buckets(ctx context.Context) ([]string, error) {
	return r.redisClient.SMembers(ctx, common.OrphanBucketsKey)
}

// Drain unlists the bucket before draining its set. A Record racing with
// Drain lists the bucket again, so no key is left behind unlisted.
func (r *orphanRepository) Drain(ctx context.Context, bucket string) ([]string, error) {
	if err := r.redisClient.SRem(ctx, common.OrphanBucketsKey, bucket); err != nil {
		return nil, err
	}

	return r.redisClient.SDrain(ctx, common.OrphanKey(bucket))
}
