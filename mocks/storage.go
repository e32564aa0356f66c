package mocks

import (
	"context"

	"github.com/farmlink/backend/pkg/storage"
	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

func (s *Storage) Upload(arg1 context.Context, arg2 *storage.UploadObject) error {
	args := s.Called(arg1, arg2)
	return args.Error(0)
}

func (s *Storage) PublicURL(arg1, arg2 string) string {
	args := s.Called(arg1, arg2)
	return args.String(0)
}

func (s *Storage) Remove(arg1 context.Context, arg2 string, arg3 []string) error {
	args := s.Called(arg1, arg2, arg3)
	return args.Error(0)
}
