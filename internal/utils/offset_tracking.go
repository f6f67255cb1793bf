package utils

import (
	"sort"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

type partitionKey struct {
	topic     string
	partition int32
}

// OffsetTracker remembers the highest consumed offset per partition so a
// whole batch can be committed at once.
type OffsetTracker struct {
	mu      sync.Mutex
	offsets map[partitionKey]kafka.Offset
}

func NewOffsetTracker() *OffsetTracker {
	return &OffsetTracker{offsets: make(map[partitionKey]kafka.Offset)}
}

func (t *OffsetTracker) Track(msg *kafka.Message) {
	if msg == nil || msg.TopicPartition.Topic == nil {
		return
	}
	key := partitionKey{topic: *msg.TopicPartition.Topic, partition: msg.TopicPartition.Partition}

	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.offsets[key]; !ok || msg.TopicPartition.Offset > cur {
		t.offsets[key] = msg.TopicPartition.Offset
	}
}

// Drain returns the offsets to commit (last consumed + 1) and forgets them.
func (t *OffsetTracker) Drain() []kafka.TopicPartition {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.offsets) == 0 {
		return nil
	}

	out := make([]kafka.TopicPartition, 0, len(t.offsets))
	for key, off := range t.offsets {
		topic := key.topic
		out = append(out, kafka.TopicPartition{
			Topic:     &topic,
			Partition: key.partition,
			Offset:    off + 1,
		})
	}
	clear(t.offsets)

	sort.Slice(out, func(i, j int) bool {
		if *out[i].Topic != *out[j].Topic {
			return *out[i].Topic < *out[j].Topic
		}
		return out[i].Partition < out[j].Partition
	})
	return out
}

func (t *OffsetTracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.offsets)
}
