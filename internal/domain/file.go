package domain

import (
	"context"
	"errors"

	"github.com/farmlink/backend/internal/entity"
	"github.com/farmlink/backend/internal/model"
	"github.com/farmlink/backend/internal/repository"
	"github.com/farmlink/backend/pkg/errorx"
	"github.com/farmlink/backend/pkg/idutil"
	"github.com/farmlink/backend/pkg/media"
	"github.com/farmlink/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FileDomain interface {
	UploadImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
	UploadImages(context.Context, *model.UploadImagesRequest) (*model.UploadImagesResponse, error)
	DeleteImage(context.Context, *model.DeleteImageRequest) (*model.DeleteImageResponse, error)
	GetFile(context.Context, *model.GetFileRequest) (*model.GetFileResponse, error)
}

type fileDomain struct {
	mediaClient *media.Client
	fileRepo    repository.FileRepository
	idGenerator idutil.Generator
}

func NewFileDomain(
	mediaClient *media.Client,
	fileRepo repository.FileRepository,
	idGenerator idutil.Generator,
) FileDomain {
	return &fileDomain{
		mediaClient: mediaClient,
		fileRepo:    fileRepo,
		idGenerator: idGenerator,
	}
}

func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	if req.Bucket == "" {
		return nil, errorx.New(errorx.BadRequest, "Require bucket")
	}

	if err := checkSourceSize(ctx, req.Data); err != nil {
		return nil, err
	}

	src := media.ParseSource(req.Data)
	path := media.GeneratePath(req.Folder, req.Prefix, media.ExtensionFor(src, req.Mime))
	result, err := d.mediaClient.UploadImage(ctx, src, req.Bucket, path, req.Mime)
	if err != nil {
		return nil, err
	}

	file := &entity.File{
		Base:      entity.Base{ID: d.idGenerator.Generate().String()},
		Bucket:    req.Bucket,
		ObjectKey: result.ObjectKey,
		Url:       result.PublicURL,
		Mime:      result.Mime,
	}
	if err := d.fileRepo.Create(ctx, file); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create file record: %v", err)
		d.mediaClient.DeleteImage(ctx, req.Bucket, result.ObjectKey)
		return nil, errorx.Unknown
	}

	return &model.UploadImageResponse{File: convertFile(file)}, nil
}

func (d *fileDomain) UploadImages(
	ctx context.Context, req *model.UploadImagesRequest,
) (*model.UploadImagesResponse, error) {
	if req.Bucket == "" {
		return nil, errorx.New(errorx.BadRequest, "Require bucket")
	}

	if maxBatch := xcontext.Configs(ctx).File.MaxBatch; maxBatch > 0 && len(req.Data) > maxBatch {
		return nil, errorx.New(errorx.BadRequest, "Too many images, the limit is %d", maxBatch)
	}

	srcs := make([]media.Source, 0, len(req.Data))
	for _, data := range req.Data {
		if err := checkSourceSize(ctx, data); err != nil {
			return nil, err
		}
		srcs = append(srcs, media.ParseSource(data))
	}

	results, err := d.mediaClient.UploadImages(ctx, srcs, req.Bucket, req.Folder, req.Prefix)
	if err != nil {
		return nil, err
	}

	files := make([]*entity.File, 0, len(results))
	for _, r := range results {
		files = append(files, &entity.File{
			Base:      entity.Base{ID: d.idGenerator.Generate().String()},
			Bucket:    req.Bucket,
			ObjectKey: r.ObjectKey,
			Url:       r.PublicURL,
			Mime:      r.Mime,
		})
	}

	if err := d.fileRepo.BulkInsert(ctx, files); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create file records: %v", err)
		for _, f := range files {
			d.mediaClient.DeleteImage(ctx, f.Bucket, f.ObjectKey)
		}
		return nil, errorx.Unknown
	}

	resp := &model.UploadImagesResponse{Files: []model.File{}}
	for _, f := range files {
		resp.Files = append(resp.Files, convertFile(f))
	}

	return resp, nil
}

// DeleteImage always removes the record. The object itself is removed on a
// best-effort basis.
func (d *fileDomain) DeleteImage(
	ctx context.Context, req *model.DeleteImageRequest,
) (*model.DeleteImageResponse, error) {
	file, err := d.getFile(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.fileRepo.DeleteByID(ctx, file.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete file record: %v", err)
		return nil, errorx.Unknown
	}

	d.mediaClient.DeleteImage(ctx, file.Bucket, file.ObjectKey)

	return &model.DeleteImageResponse{}, nil
}

func (d *fileDomain) GetFile(
	ctx context.Context, req *model.GetFileRequest,
) (*model.GetFileResponse, error) {
	file, err := d.getFile(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetFileResponse{File: convertFile(file)}, nil
}

func (d *fileDomain) getFile(ctx context.Context, id string) (*entity.File, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Require id")
	}

	file, err := d.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found file")
		}

		xcontext.Logger(ctx).Errorf("Cannot get file: %v", err)
		return nil, errorx.Unknown
	}

	return file, nil
}

// checkSourceSize rejects inline payloads that cannot decode to an image
// within the configured limit. Remote sources are limited by the fetcher.
func checkSourceSize(ctx context.Context, data string) error {
	if data == "" {
		return errorx.New(errorx.BadRequest, "Require data")
	}

	maxSize := xcontext.Configs(ctx).File.MaxSizeBytes()
	if maxSize <= 0 || media.ParseSource(data).Kind() != media.DataURI {
		return nil
	}

	// base64 inflates by 4/3.
	if int64(len(data))*3/4 > maxSize {
		return errorx.New(errorx.BadRequest, "Image must be smaller than %dMB", xcontext.Configs(ctx).File.MaxSize)
	}

	return nil
}
