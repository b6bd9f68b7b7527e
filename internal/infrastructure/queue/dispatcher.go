package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/api/metrics"
	"github.com/devport/portfolio/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes inquiry activity to a fixed set of workers, hashing on the
// inquiry id so that one inquiry's activity is processed in order.
type Dispatcher struct {
	workers   []chan ports.InquiryActivity
	processor ports.ActivityProcessor
	log       zerolog.Logger
}

var _ ports.ActivitySink = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.ActivityProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.InquiryActivity, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.InquiryActivity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands activity to the worker that owns its inquiry. When that
// worker's buffer is full the record is dropped and logged; request handlers
// never wait on it.
func (d *Dispatcher) Enqueue(a ports.InquiryActivity) {
	idx := d.shardIndex(a.InquiryID)
	select {
	case d.workers[idx] <- a:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("inquiry_id", a.InquiryID).
			Str("kind", string(a.Kind)).
			Int("worker_id", idx).
			Msg("activity queue full, dropping record")
	}
}

func (d *Dispatcher) shardIndex(inquiryID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(inquiryID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.InquiryActivity) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			start := time.Now()
			err := d.processor.Process(ctx, a)
			metrics.ActivityProcessingDuration.WithLabelValues(string(a.Kind)).Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.ActivityErrorsTotal.WithLabelValues(string(a.Kind)).Inc()
				d.log.Error().Err(err).
					Str("inquiry_id", a.InquiryID).
					Str("kind", string(a.Kind)).
					Int("worker_id", id).
					Msg("activity processing failed")
			}
		}
	}
}
