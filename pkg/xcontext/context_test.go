package xcontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/farmlink/backend/config"
	"github.com/stretchr/testify/require"
)

func TestContext(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, DB(ctx))
	require.NotNil(t, Logger(ctx))
	require.Equal(t, config.Configs{}, Configs(ctx))
	require.Nil(t, HTTPRequest(ctx))
	require.NoError(t, Error(ctx))
	require.True(t, StartTime(ctx).IsZero())

	cfg := config.Default()
	now := time.Now()
	ctx = WithConfigs(ctx, cfg)
	ctx = WithError(ctx, errors.New("boom"))
	ctx = WithStartTime(ctx, now)
	ctx = WithResponse(ctx, 42)

	require.Equal(t, cfg, Configs(ctx))
	require.EqualError(t, Error(ctx), "boom")
	require.Equal(t, now, StartTime(ctx))
	require.Equal(t, 42, Response(ctx))
}
