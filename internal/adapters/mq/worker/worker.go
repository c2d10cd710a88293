// Package worker runs conversion jobs taken from the job queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/skillrate/internal/domain/conversion"
	"github.com/okian/skillrate/internal/domain/model"
	"github.com/okian/skillrate/pkg/logger"
	"github.com/okian/skillrate/pkg/metrics"
)

const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	poolShutdownTimeout     = 30 * time.Second
)

// Job abstracts what workers read off the queue.
type Job = model.Job

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker converts jobs until its queue closes or it is shut down.
type Worker interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	converter conversion.Converter
	name      string
	processed *atomic.Int64

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, converter conversion.Converter, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		converter: converter,
		name:      "worker",
		processed: new(atomic.Int64),
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, j)
		}
	}
}

// Shutdown signals the worker to stop and waits for it.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process converts one job and delivers its result.
func (w *InMemoryWorker) process(ctx context.Context, j Job) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	start := time.Now()
	out, err := w.converter.Convert(ctx, j.Input, j.Target)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordWorkerJob(latencyMs)
	w.processed.Add(1)

	if err != nil {
		w.logger.Debug(ctx, "job failed",
			logger.String("jobID", j.ID),
			logger.String("batchID", j.BatchID),
			logger.Error(err),
		)
		if !errors.Is(err, conversion.ErrUnsupportedConversion) &&
			!errors.Is(err, conversion.ErrInvalidInput) &&
			!errors.Is(err, conversion.ErrOutOfRange) {
			metrics.RecordErrorByComponent("worker", "conversion_error")
		}
	}

	if j.Reply != nil {
		j.Reply <- model.JobResult{JobID: j.ID, Index: j.Index, Output: out, Err: err, LatencyMs: latencyMs}
	}
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers   []*InMemoryWorker
	processed atomic.Int64
	logger    logger.Logger
}

// NewPool creates a pool of workerCount workers. A non-positive count
// means two workers per CPU.
func NewPool(workerCount int, queue Queue, converter conversion.Converter) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(queue, converter,
			WithName("worker-"+strconv.Itoa(i)),
			withCounter(&p.processed),
		)
	}
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	metrics.UpdateWorkerCount(len(p.workers))
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Processed returns the number of jobs handled so far.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Stop shuts down every worker, waiting at most poolShutdownTimeout.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateWorkerCount(0)
}
