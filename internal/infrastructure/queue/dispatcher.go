package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/soportec/inventory-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ActivityDispatcher routes session activity signals to a fixed set of
// workers using consistent hashing on the session id, so signals for one
// session are always applied in order while request handlers never block
// on the idle monitor.
type ActivityDispatcher struct {
	workers []chan string
	monitor ports.SessionMonitor
	log     zerolog.Logger
}

// NewActivityDispatcher creates a dispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewActivityDispatcher(numWorkers int, monitor ports.SessionMonitor, log zerolog.Logger) *ActivityDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &ActivityDispatcher{
		workers: make([]chan string, numWorkers),
		monitor: monitor,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *ActivityDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue reports activity for sessionID to the worker responsible for
// it. When that worker's buffer is full the signal is dropped: activity
// is a level signal, losing one observation under load is harmless.
func (d *ActivityDispatcher) Enqueue(sessionID string) {
	select {
	case d.workers[d.shardIndex(sessionID)] <- sessionID:
	default:
		d.log.Warn().Str("session_id", sessionID).Msg("activity buffer full, signal dropped")
	}
}

// shardIndex maps a session id deterministically to a worker index.
func (d *ActivityDispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *ActivityDispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case sessionID, ok := <-ch:
			if !ok {
				return
			}
			d.monitor.Activity(sessionID)
		}
	}
}
