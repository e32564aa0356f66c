package storage

import (
	"context"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Runs against a real S3-compatible endpoint, e.g. a local MinIO:
//
//	RUN_INTEGRATION_TEST=1 STORAGE_ENDPOINT=http://localhost:9000 \
//	STORAGE_ACCESS_KEY=minioadmin STORAGE_SECRET_KEY=minioadmin \
//	STORAGE_BUCKET=testing go test ./pkg/storage
func integrationConfigs(t *testing.T) (Configs, string) {
	if len(os.Getenv("RUN_INTEGRATION_TEST")) == 0 {
		t.Skip("RUN_INTEGRATION_TEST is not set")
	}

	return Configs{
		Endpoint:    os.Getenv("STORAGE_ENDPOINT"),
		AccessKey:   os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey:   os.Getenv("STORAGE_SECRET_KEY"),
		Region:      "us-east-1",
		SSLDisabled: true,
	}, os.Getenv("STORAGE_BUCKET")
}

func TestIntegration_RoundTrip(t *testing.T) {
	cfg, bucket := integrationConfigs(t)

	for _, driver := range []string{"s3", "minio"} {
		t.Run(driver, func(t *testing.T) {
			cfg.Driver = driver
			s, err := New(cfg)
			require.NoError(t, err)

			ctx := context.Background()
			data := []byte("integration-" + driver)
			key := "integration/" + driver + ".txt"

			require.NoError(t, s.Upload(ctx, &UploadObject{
				Bucket: bucket,
				Key:    key,
				Mime:   "text/plain",
				Data:   data,
			}))

			resp, err := http.Get(s.PublicURL(bucket, key))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Equal(t, data, body)

			require.NoError(t, s.Remove(ctx, bucket, []string{key, "integration/missing.txt"}))
		})
	}
}
