package logger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// Publisher ships aggregated error batches, usually to a Kafka topic.
type Publisher interface {
	PublishMessage(ctx context.Context, topic string, payload interface{}) error
}

// CollectionConfig tunes error aggregation. The service logs errors in bursts
// (one per failed bucket when the feed is down), so entries are grouped by
// call site and message rather than by their fields.
type CollectionConfig struct {
	TimeInterval   time.Duration // flush period, default 10s
	CountThreshold int           // distinct entries that force an early flush, default 50
	QueueSize      int           // pending batches before new ones are dropped, default 4
	PublishTimeout time.Duration // per batch, default 5s
	Topic          string
	Publisher      Publisher
}

// AggregatedLogEntry is one call site and message seen Count times. Fields
// are those of the latest occurrence.
type AggregatedLogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

const droppedMessage = "log collector dropped entries"

type LogCollector struct {
	config *CollectionConfig

	mu      sync.Mutex
	entries map[string]*AggregatedLogEntry
	order   []string
	dropped int
	closed  bool

	batches   chan []AggregatedLogEntry
	stop      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewLogCollector(config *CollectionConfig) *LogCollector {
	if config.TimeInterval <= 0 {
		config.TimeInterval = 10 * time.Second
	}
	if config.CountThreshold <= 0 {
		config.CountThreshold = 50
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 4
	}
	if config.PublishTimeout <= 0 {
		config.PublishTimeout = 5 * time.Second
	}

	c := &LogCollector{
		config:  config,
		entries: make(map[string]*AggregatedLogEntry),
		batches: make(chan []AggregatedLogEntry, config.QueueSize),
		stop:    make(chan struct{}),
	}
	c.wg.Add(2)
	go c.run()
	go c.send()
	return c
}

func (c *LogCollector) AddLog(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now()
	key := level + "\x00" + caller + "\x00" + message

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if e, ok := c.entries[key]; ok {
		e.Count++
		e.LastSeen = now
		e.Fields = fields
	} else {
		c.entries[key] = &AggregatedLogEntry{
			Level:     level,
			Message:   message,
			Fields:    fields,
			Caller:    caller,
			Count:     1,
			FirstSeen: now,
			LastSeen:  now,
		}
		c.order = append(c.order, key)
	}

	if len(c.entries) >= c.config.CountThreshold {
		c.enqueueLocked()
	}
}

// takeLocked drains pending entries in first-seen order, reporting earlier
// drops as a trailing entry.
func (c *LogCollector) takeLocked() []AggregatedLogEntry {
	if len(c.order) == 0 && c.dropped == 0 {
		return nil
	}
	batch := make([]AggregatedLogEntry, 0, len(c.order)+1)
	for _, k := range c.order {
		batch = append(batch, *c.entries[k])
	}
	if c.dropped > 0 {
		now := time.Now()
		batch = append(batch, AggregatedLogEntry{
			Level:     "warn",
			Message:   droppedMessage,
			Count:     c.dropped,
			FirstSeen: now,
			LastSeen:  now,
		})
		c.dropped = 0
	}
	c.entries = make(map[string]*AggregatedLogEntry)
	c.order = nil
	return batch
}

// enqueueLocked never blocks the logging caller; a full queue drops the batch.
func (c *LogCollector) enqueueLocked() {
	batch := c.takeLocked()
	if len(batch) == 0 {
		return
	}
	select {
	case c.batches <- batch:
	default:
		for _, e := range batch {
			c.dropped += e.Count
		}
	}
}

func (c *LogCollector) run() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.TimeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.enqueueLocked()
			c.mu.Unlock()
		case <-c.stop:
			c.mu.Lock()
			batch := c.takeLocked()
			c.closed = true
			c.mu.Unlock()
			if len(batch) > 0 {
				c.batches <- batch
			}
			close(c.batches)
			return
		}
	}
}

func (c *LogCollector) send() {
	defer c.wg.Done()
	for batch := range c.batches {
		if c.config.Publisher == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), c.config.PublishTimeout)
		if err := c.config.Publisher.PublishMessage(ctx, c.config.Topic, batch); err != nil {
			// the logger cannot report its own sink failures through itself
			fmt.Fprintf(os.Stderr, "log collector: publish %d entries: %v\n", len(batch), err)
		}
		cancel()
	}
}

// Close flushes pending entries and waits for the sink.
func (c *LogCollector) Close() {
	c.closeOnce.Do(func() { close(c.stop) })
	c.wg.Wait()
}
