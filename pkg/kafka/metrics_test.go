package kafka

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatherMetricNames collects all metric names from the default registry.
func gatherMetricNames(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	return names
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, topic string) float64 {
	t.Helper()
	m, err := vec.GetMetricWithLabelValues(topic)
	require.NoError(t, err)

	pb := &dto.Metric{}
	require.NoError(t, m.Write(pb))
	return pb.GetCounter().GetValue()
}

func TestProducerMetrics_Registered(t *testing.T) {
	// Metric vectors only appear in Gather() once at least one label
	// combination has been touched.
	ProducerMessagesPublished.WithLabelValues("test-topic")
	ProducerPublishErrors.WithLabelValues("test-topic")
	ProducerPublishDuration.WithLabelValues("test-topic")

	names := gatherMetricNames(t)

	expected := []string{
		"kafka_producer_messages_published_total",
		"kafka_producer_publish_errors_total",
		"kafka_producer_publish_duration_seconds",
	}

	for _, name := range expected {
		assert.True(t, names[name], "expected metric %q to be registered", name)
	}
}

func TestProducerMetrics_Increment(t *testing.T) {
	// Use a unique topic so other tests cannot interfere with the value.
	topic := "metrics-increment-topic"

	before := counterValue(t, ProducerMessagesPublished, topic)
	ProducerMessagesPublished.WithLabelValues(topic).Inc()
	after := counterValue(t, ProducerMessagesPublished, topic)

	assert.Equal(t, before+1, after)
}
