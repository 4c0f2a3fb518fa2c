package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu      sync.Mutex
	topics  []string
	batches [][]AggregatedLogEntry
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.batches = append(p.batches, payload.([]AggregatedLogEntry))
	return nil
}

func (p *capturePublisher) snapshot() ([]string, [][]AggregatedLogEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...), append([][]AggregatedLogEntry(nil), p.batches...)
}

func TestLogCollectorDeduplicatesAndFlushesOnClose(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 10,
		Topic:          "dashboard.logs",
		Publisher:      pub,
	})

	fields := map[string]interface{}{"symbol": "AAPL"}
	c.AddLog("error", "bucket fetch failed", fields, "usecase/aggregate.go:10")
	c.AddLog("error", "bucket fetch failed", fields, "usecase/aggregate.go:10")
	c.AddLog("error", "proxy upstream error", nil, "handler/api/proxy.go:42")
	c.Close()

	require.Eventually(t, func() bool {
		_, batches := pub.snapshot()
		return len(batches) == 1
	}, time.Second, 10*time.Millisecond)

	topics, batches := pub.snapshot()
	assert.Equal(t, []string{"dashboard.logs"}, topics)
	require.Len(t, batches[0], 2)

	counts := map[string]int{}
	for _, e := range batches[0] {
		counts[e.Message] = e.Count
	}
	assert.Equal(t, 2, counts["bucket fetch failed"])
	assert.Equal(t, 1, counts["proxy upstream error"])
}

func TestLogCollectorFlushesAtThreshold(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 2,
		Topic:          "dashboard.logs",
		Publisher:      pub,
	})
	defer c.Close()

	c.AddLog("error", "a", nil, "x:1")
	c.AddLog("error", "b", nil, "x:2")

	require.Eventually(t, func() bool {
		_, batches := pub.snapshot()
		return len(batches) >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestLoggerErrorFeedsCollector(t *testing.T) {
	pub := &capturePublisher{}
	l := Nop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 1, Topic: "t", Publisher: pub})
	defer l.RemoveCollector()

	l.Error("upstream failed", Error(errors.New("boom")), String("asset", "TSLA"))

	require.Eventually(t, func() bool {
		_, batches := pub.snapshot()
		return len(batches) == 1
	}, time.Second, 10*time.Millisecond)

	_, batches := pub.snapshot()
	require.Len(t, batches[0], 1)
	assert.Equal(t, "upstream failed", batches[0][0].Message)
	assert.Equal(t, "boom", batches[0][0].Fields["error"])
	assert.Equal(t, "TSLA", batches[0][0].Fields["asset"])
}

func TestLogCollectorGroupsByCallSiteNotFields(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 10, Publisher: pub})

	c.AddLog("error", "bucket fetch failed", map[string]interface{}{"bucket": "2024-01-01"}, "usecase/aggregate.go:10")
	c.AddLog("error", "bucket fetch failed", map[string]interface{}{"bucket": "2024-01-02"}, "usecase/aggregate.go:10")
	c.AddLog("error", "bucket fetch failed", nil, "usecase/sentiment.go:30")
	c.Close()

	_, batches := pub.snapshot()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)
	assert.Equal(t, "usecase/aggregate.go:10", batches[0][0].Caller)
	assert.Equal(t, 2, batches[0][0].Count)
	assert.Equal(t, "2024-01-02", batches[0][0].Fields["bucket"])
	assert.Equal(t, "usecase/sentiment.go:30", batches[0][1].Caller)
}

type stalledPublisher struct {
	capturePublisher
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *stalledPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	p.once.Do(func() { close(p.started) })
	<-p.release
	return p.capturePublisher.PublishMessage(ctx, topic, payload)
}

func TestLogCollectorReportsDroppedBatches(t *testing.T) {
	pub := &stalledPublisher{started: make(chan struct{}), release: make(chan struct{})}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 1,
		QueueSize:      1,
		Publisher:      pub,
	})

	c.AddLog("error", "a", nil, "x:1")
	select {
	case <-pub.started:
	case <-time.After(time.Second):
		t.Fatal("first batch never reached the publisher")
	}
	c.AddLog("error", "b", nil, "x:2") // queued
	c.AddLog("error", "c", nil, "x:3") // queue full
	c.AddLog("error", "c", nil, "x:3")

	close(pub.release)
	c.Close()

	_, batches := pub.snapshot()
	require.Len(t, batches, 3)
	assert.Equal(t, "a", batches[0][0].Message)
	assert.Equal(t, "b", batches[1][0].Message)
	require.Len(t, batches[2], 1)
	assert.Equal(t, "warn", batches[2][0].Level)
	assert.Equal(t, droppedMessage, batches[2][0].Message)
	assert.Equal(t, 2, batches[2][0].Count)
}

func TestLogCollectorIgnoresLogsAfterClose(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 10, Publisher: pub})
	c.Close()
	c.AddLog("error", "late", nil, "x:1")
	c.Close()

	_, batches := pub.snapshot()
	assert.Empty(t, batches)
}
