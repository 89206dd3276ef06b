package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/websiters/gastroreview/internal/api/metrics"
	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes review events to a fixed set of workers using consistent
// hashing on the review ID, guaranteeing per-review event ordering.
type Dispatcher struct {
	workers   []chan domain.ReviewEvent
	processor ports.ReviewEventProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.ReviewEventProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.ReviewEvent, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ReviewEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its review ID.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event domain.ReviewEvent) {
	idx := d.shardIndex(event.ReviewID)
	d.workers[idx] <- event
	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a review ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(reviewID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(reviewID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ReviewEvent) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			err := d.processor.Process(ctx, event)
			metrics.EventProcessingDuration.WithLabelValues(string(event.Kind)).Observe(time.Since(start).Seconds())
			metrics.EventsQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err != nil {
				metrics.ReviewEventsProcessedTotal.WithLabelValues(string(event.Kind), "error").Inc()
				d.log.Error().Err(err).
					Str("review_id", event.ReviewID).
					Int("worker_id", id).
					Msg("review event processing failed")
				continue
			}
			metrics.ReviewEventsProcessedTotal.WithLabelValues(string(event.Kind), "ok").Inc()
		}
	}
}
