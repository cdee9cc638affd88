package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/infras/metrics"
)

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()

	m.RecordMedia(metrics.OperationDelete, 20*time.Millisecond, errors.New("unavailable"))
	m.RecordOrphaned("places", 2)
	m.RecordOrphaned("places", 0)
	m.RecordNotification(errors.New("smtp down"))
	m.RecordNotification(nil)
	m.RecordCache(true)
	m.RecordCache(false)
	m.RecordCache(false)
	m.RecordRequest(http.MethodGet, "/v1/places/{id}", http.StatusOK, 5*time.Millisecond)
	m.RecordRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `voyage_media_operation_errors_total{operation="delete"} 1`)
	assert.Contains(t, text, `voyage_media_orphaned_total{directory="places"} 2`)
	assert.Contains(t, text, `voyage_notification_sent_total{result="failed"} 1`)
	assert.Contains(t, text, `voyage_notification_sent_total{result="ok"} 1`)
	assert.Contains(t, text, `voyage_cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, text, `voyage_cache_lookups_total{result="miss"} 2`)
	assert.Contains(t, text, `voyage_http_request_duration_seconds_count{method="GET",route="/v1/places/{id}",status="200"} 1`)
	assert.Contains(t, text, `route="unmatched"`)
}
