package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/spotjobs/spotjobs-api/internal/api/metrics"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Invoker fires one scoring run. Implementations must be safe for concurrent
// use by multiple workers.
type Invoker interface {
	Invoke(ctx context.Context, req ports.ScoringRequest) error
}

// Dispatcher routes scoring requests to a fixed set of workers using
// consistent hashing on the application ID, so retries for the same
// application never race each other. Invocation failures are logged and
// counted; they are never reported back to the apply path.
type Dispatcher struct {
	workers []chan ports.ScoringRequest
	invoker Invoker
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, invoker Invoker, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ScoringRequest, numWorkers),
		invoker: invoker,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ScoringRequest, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a scoring request to the worker responsible for its
// application. The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(req ports.ScoringRequest) {
	idx := d.shardIndex(req.ApplicationID)
	d.workers[idx] <- req
	metrics.ScoringQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an application ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(applicationID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(applicationID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ScoringRequest) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-ch:
			if !ok {
				return
			}
			metrics.ScoringQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := d.invoker.Invoke(ctx, req); err != nil {
				metrics.ScoringInvocationsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("application_id", req.ApplicationID).
					Int("worker_id", id).
					Msg("scoring invocation failed")
				continue
			}
			metrics.ScoringInvocationsTotal.WithLabelValues("ok").Inc()
			d.log.Info().
				Str("application_id", req.ApplicationID).
				Int("worker_id", id).
				Msg("scoring invocation queued")
		}
	}
}
