package repository

import (
	"context"
	"errors"
	"testing"

	"SentimentDash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	topic  string
	key    []byte
	value  interface{}
	err    error
	closed bool
}

func (f *fakeProducer) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	f.topic, f.key, f.value = topic, key, value
	return f.err
}

func (f *fakeProducer) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisherKeysBySymbol(t *testing.T) {
	fp := &fakeProducer{}
	p := &KafkaPublisher{producer: fp, topic: "dashboard.sentiment.series"}
	ev := &models.SeriesEvent{ID: "e1", Symbol: "AAPL", Interval: models.IntervalWeek}

	require.NoError(t, p.PublishSeries(context.Background(), ev))
	assert.Equal(t, "dashboard.sentiment.series", fp.topic)
	assert.Equal(t, []byte("AAPL"), fp.key)
	assert.Same(t, ev, fp.value)

	require.NoError(t, p.Close())
	assert.True(t, fp.closed)
}

func TestKafkaPublisherPropagatesErrors(t *testing.T) {
	fp := &fakeProducer{err: errors.New("broker unavailable")}
	p := &KafkaPublisher{producer: fp, topic: "t"}
	assert.EqualError(t, p.PublishSeries(context.Background(), &models.SeriesEvent{Symbol: "MSFT"}), "broker unavailable")
}
