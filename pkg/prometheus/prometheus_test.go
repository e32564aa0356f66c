package prometheus

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/farmlink/backend/pkg/media"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	media.PromCounters[media.MediaUploadTotal].WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `media_upload_total{outcome="ok"}`)
	require.Contains(t, string(body), "go_goroutines")
}
