package analytics

import (
	"Wordrush/logger"
	redis_models "Wordrush/models/redis"
	wr_redis "Wordrush/services/redis"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Sink receives analytics events. Enqueue must never block gameplay
type Sink interface {
	Enqueue(event redis_models.AnalyticsEvent)
}

// Recorder is where the dispatcher writes. *redis.RedisClient satisfies it
type Recorder interface {
	PushEvent(ctx context.Context, event redis_models.AnalyticsEvent) error
	IncrementCategoryStat(ctx context.Context, categoryID, field string, n int64) error
}

// NopSink drops every event
type NopSink struct{}

func (NopSink) Enqueue(redis_models.AnalyticsEvent) {}

// Dispatcher buffers events in memory and writes them from a single
// worker. Events are dropped when the buffer is full
type Dispatcher struct {
	recorder Recorder
	events   chan redis_models.AnalyticsEvent
	timeout  time.Duration
	now      func() time.Time

	dropped atomic.Int64

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(recorder Recorder, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 1024
	}
	return &Dispatcher{
		recorder: recorder,
		events:   make(chan redis_models.AnalyticsEvent, buffer),
		timeout:  2 * time.Second,
		now:      time.Now,
	}
}

// Start launches the worker. It stops once Close has drained the buffer
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for event := range d.events {
			d.write(event)
		}
	}()
}

func (d *Dispatcher) Enqueue(event redis_models.AnalyticsEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp == 0 {
		event.Timestamp = d.now().UnixMilli()
	}

	select {
	case d.events <- event:
	default:
		if n := d.dropped.Add(1); n%100 == 1 {
			logger.Warnf("[ANALYTICS] buffer full, %d events dropped so far", n)
		}
	}
}

// Dropped is the number of events lost to a full buffer
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting events and waits for the buffered ones
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) write(event redis_models.AnalyticsEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.recorder.PushEvent(ctx, event); err != nil {
		logger.Warnf("[ANALYTICS] push %s failed: %v", event.Type, err)
	}

	field := statField(event)
	if field == "" || event.CategoryID == "" {
		return
	}
	if err := d.recorder.IncrementCategoryStat(ctx, event.CategoryID, field, 1); err != nil {
		logger.Warnf("[ANALYTICS] stat %s of %s failed: %v", field, event.CategoryID, err)
	}
}

// statField maps an event onto the category counter it feeds
func statField(event redis_models.AnalyticsEvent) string {
	switch event.Type {
	case redis_models.EventRoundStarted:
		return wr_redis.StatRounds
	case redis_models.EventDeadRound:
		return wr_redis.StatDeadRounds
	case redis_models.EventWordAccepted:
		if event.Grand {
			return ""
		}
		return wr_redis.StatAccepted
	case redis_models.EventWordRejected:
		if event.Grand || !event.JudgedByOracle {
			return ""
		}
		return wr_redis.StatRejected
	}
	return ""
}
