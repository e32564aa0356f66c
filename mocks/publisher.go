package mocks

import (
	"context"

	"github.com/farmlink/backend/pkg/pubsub"
	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (p *Publisher) Publish(arg1 context.Context, arg2 string, arg3 *pubsub.Pack) error {
	args := p.Called(arg1, arg2, arg3)
	return args.Error(0)
}
