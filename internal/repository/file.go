package repository

import (
	"context"

	"github.com/farmlink/backend/internal/entity"
	"github.com/farmlink/backend/pkg/xcontext"
)

type FileRepository interface {
	Create(context.Context, *entity.File) error
	BulkInsert(context.Context, []*entity.File) error
	GetByID(context.Context, string) (*entity.File, error)
	DeleteByID(context.Context, string) error
}

type fileRepository struct{}

func NewFileRepository() *fileRepository {
	return &fileRepository{}
}

func (r *fileRepository) Create(ctx context.Context, e *entity.File) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *fileRepository) BulkInsert(ctx context.Context, es []*entity.File) error {
	if len(es) == 0 {
		return nil
	}
	return xcontext.DB(ctx).Create(es).Error
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*entity.File, error) {
	var result entity.File
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *fileRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.File{}, "id=?", id).Error
}
