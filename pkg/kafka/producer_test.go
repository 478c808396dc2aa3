package kafka

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBatch(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	msgs, size, err := encodeBatch("risk", []Message{
		{Key: []byte("a"), Value: []byte("raw")},
		{Key: []byte("b"), Value: "text"},
		{Key: []byte("c"), Value: map[string]int{"n": 1}},
	}, at)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, "raw", string(msgs[0].Value))
	assert.Equal(t, "text", string(msgs[1].Value))
	assert.JSONEq(t, `{"n":1}`, string(msgs[2].Value))
	assert.Equal(t, int64(3+4+7), size)
	for _, m := range msgs {
		assert.Equal(t, "risk", m.Topic)
		assert.Equal(t, at, m.Time)
	}
}

func TestEncodeBatchRejectsUnencodable(t *testing.T) {
	_, _, err := encodeBatch("risk", []Message{{Value: make(chan int)}}, time.Now())
	assert.Error(t, err)
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	assert.Equal(t, kafka.Snappy, parseCompression("snappy"))
	assert.Equal(t, kafka.Zstd, parseCompression("zstd"))
	assert.Equal(t, kafka.Gzip, parseCompression("unknown"))
}
