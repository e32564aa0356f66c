package media_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/farmlink/backend/pkg/logger"
	"github.com/farmlink/backend/pkg/media"
	"github.com/farmlink/backend/pkg/storage"
	"github.com/farmlink/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Unconfigured(t *testing.T) {
	for name, cfg := range map[string]storage.Configs{
		"empty":          {},
		"no access key":  {Endpoint: "http://minio:9000"},
		"no endpoint":    {AccessKey: "key"},
		"blank endpoint": {Endpoint: " ", AccessKey: "key"},
	} {
		t.Run(name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			store := &testutil.MockStorage{}

			c := media.NewClient(cfg,
				media.WithStore(store),
				media.WithLogger(logger.NewLoggerWithOutput(logger.DEBUG, buf)),
			)

			require.False(t, c.Configured())
			require.Equal(t, 1, strings.Count(buf.String(), "level=warning"))
			require.Contains(t, buf.String(), "not configured")
			require.Zero(t, store.Calls())
		})
	}
}

func TestNewClient_Configured(t *testing.T) {
	c := media.NewClient(testutil.StorageConfigs(), media.WithStore(&testutil.MockStorage{}))
	require.True(t, c.Configured())

	// Without an injected store the backend comes from the driver.
	c = media.NewClient(testutil.StorageConfigs())
	require.True(t, c.Configured())
}

func TestNewClient_BadDriver(t *testing.T) {
	buf := new(bytes.Buffer)
	cfg := testutil.StorageConfigs()
	cfg.Driver = "ftp"

	c := media.NewClient(cfg, media.WithLogger(logger.NewLoggerWithOutput(logger.INFO, buf)))
	require.False(t, c.Configured())
	require.Contains(t, buf.String(), "unknown storage driver")
}

func TestClient_NilIsUnconfigured(t *testing.T) {
	var c *media.Client
	require.False(t, c.Configured())
}
