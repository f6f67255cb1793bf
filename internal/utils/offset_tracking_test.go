package utils

import (
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msgAt(topic string, partition int32, offset int64) *kafka.Message {
	return &kafka.Message{TopicPartition: kafka.TopicPartition{
		Topic:     &topic,
		Partition: partition,
		Offset:    kafka.Offset(offset),
	}}
}

func TestOffsetTracker_Drain(t *testing.T) {
	t.Parallel()

	tr := NewOffsetTracker()
	tr.Track(msgAt("analysis-request", 1, 7))
	tr.Track(msgAt("analysis-request", 0, 3))
	tr.Track(msgAt("analysis-request", 0, 5))
	tr.Track(msgAt("analysis-request", 0, 4))
	tr.Track(nil)

	assert.Equal(t, 2, tr.Pending())

	got := tr.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, int32(0), got[0].Partition)
	assert.Equal(t, kafka.Offset(6), got[0].Offset)
	assert.Equal(t, int32(1), got[1].Partition)
	assert.Equal(t, kafka.Offset(8), got[1].Offset)
	assert.Equal(t, "analysis-request", *got[0].Topic)

	assert.Nil(t, tr.Drain())
	assert.Zero(t, tr.Pending())
}
