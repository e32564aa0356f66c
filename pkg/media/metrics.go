package media

import "github.com/prometheus/client_golang/prometheus"

const (
	MediaUploadTotal           = "media_upload_total"
	MediaUploadDurationSeconds = "media_upload_duration_seconds"
	MediaUploadBytes           = "media_upload_bytes"
	MediaDeleteTotal           = "media_delete_total"
)

const (
	outcomeOK            = "ok"
	outcomeNotConfigured = "not_configured"
	outcomeUnreadable    = "unreadable"
	outcomeFailed        = "failed"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		MediaUploadTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MediaUploadTotal,
			Help: "Count of image uploads by outcome",
		}, []string{"outcome"}),
		MediaDeleteTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MediaDeleteTotal,
			Help: "Count of image deletes by outcome",
		}, []string{"outcome"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		MediaUploadDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: MediaUploadDurationSeconds,
			Help: "Duration of image uploads including source resolution",
		}, []string{"outcome"}),
		MediaUploadBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MediaUploadBytes,
			Help:    "Size of uploaded images",
			Buckets: prometheus.ExponentialBuckets(16<<10, 4, 6),
		}, []string{"mime"}),
	}
)
