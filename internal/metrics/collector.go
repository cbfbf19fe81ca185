package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventCallEntered    EventType = "call_entered"
	EventCallCompleted  EventType = "call_completed"
	EventCallFaulted    EventType = "call_faulted"
	EventRepositoryCall EventType = "repository_call"
)

type Event struct {
	Type      EventType
	Timestamp time.Time
	Target    string
}

type Collector struct {
	eventCh chan Event
	metrics *Metrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan Event, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

func (c *Collector) EventChannel() chan<- Event {
	return c.eventCh
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Interception metrics collector started")
	defer c.logger.Info("Interception metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event Event) {
	switch event.Type {
	case EventCallEntered:
		c.metrics.RecordEntry(event.Target)

	case EventCallCompleted:
		c.metrics.RecordExit(event.Target)

	case EventCallFaulted:
		c.metrics.RecordFault(event.Target)

	case EventRepositoryCall:
		c.metrics.RecordRepositoryCall(event.Target)
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot()
}
