package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(recomputeTotal.WithLabelValues("volume"))
	RecordRecompute("volume", 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(recomputeTotal.WithLabelValues("volume")))

	hits := testutil.ToFloat64(cacheHitsTotal.WithLabelValues("heatmap"))
	RecordCacheHit("heatmap")
	assert.Equal(t, hits+1, testutil.ToFloat64(cacheHitsTotal.WithLabelValues("heatmap")))

	skipped := testutil.ToFloat64(skippedRecordsTotal)
	RecordSkipped(0)
	RecordSkipped(3)
	assert.Equal(t, skipped+3, testutil.ToFloat64(skippedRecordsTotal))

	RecordExport("failure")
	assert.GreaterOrEqual(t, testutil.ToFloat64(exportsTotal.WithLabelValues("failure")), 1.0)
}
