package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsServed.WithLabelValues(ModeCoverage, "ok"))
	RecommendationsServed.WithLabelValues(ModeCoverage, "ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RecommendationsServed.WithLabelValues(ModeCoverage, "ok")))

	IngestedRecords.WithLabelValues("course", "created").Add(3)
	assert.GreaterOrEqual(t, testutil.ToFloat64(IngestedRecords.WithLabelValues("course", "created")), 3.0)
}

func TestHistogramsRegistered(t *testing.T) {
	RecommendationDuration.WithLabelValues(ModeWeighted).Observe(0.01)
	assert.Equal(t, 1, testutil.CollectAndCount(RecommendationDuration))
}
