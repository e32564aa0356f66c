package domain

import (
	"time"

	"github.com/farmlink/backend/internal/entity"
	"github.com/farmlink/backend/internal/model"
)

const defaultTimeLayout string = time.RFC3339Nano

func convertFile(file *entity.File) model.File {
	if file == nil {
		return model.File{}
	}

	return model.File{
		ID:        file.ID,
		Bucket:    file.Bucket,
		ObjectKey: file.ObjectKey,
		Url:       file.Url,
		Mime:      file.Mime,
		CreatedAt: file.CreatedAt.Format(defaultTimeLayout),
	}
}
