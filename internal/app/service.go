// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/skillrate/internal/adapters/mq/queue"
	workerpool "github.com/okian/skillrate/internal/adapters/mq/worker"
	"github.com/okian/skillrate/internal/domain/conversion"
	"github.com/okian/skillrate/internal/domain/model"
	"github.com/okian/skillrate/pkg/logger"
	"github.com/okian/skillrate/pkg/metrics"
)

const (
	defaultQueueSize    = 10_000
	defaultMaxBatchSize = 1_000
)

// Request asks for one rating to be converted into To.
type Request struct {
	Rating model.Rating `json:"rating"`
	To     model.System `json:"to"`
}

// ItemResult is the outcome of one batch item. Exactly one of Rating and
// Err is set.
type ItemResult struct {
	Rating *model.Rating
	Err    error
}

// BatchResult holds batch results in request order.
type BatchResult struct {
	BatchID string
	Results []ItemResult
}

// SystemInfo describes a rating system.
type SystemInfo struct {
	Name          model.System `json:"name"`
	LowerIsBetter bool         `json:"lower_is_better"`
	HasDefault    bool         `json:"has_default"`
}

// Service converts ratings synchronously and in batches.
type Service struct {
	mu sync.RWMutex

	registry   *conversion.Registry
	jobQueue   *eventqueue.InMemoryQueue
	workerPool *workerpool.Pool
	cancel     context.CancelFunc

	workerCount  int
	queueSize    int
	maxBatchSize int

	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		registry:     conversion.DefaultRegistry(),
		workerCount:  runtime.NumCPU() * 2,
		queueSize:    defaultQueueSize,
		maxBatchSize: defaultMaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates the job queue and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.jobQueue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))

	// Workers outlive the Start call; they are bound to Stop, not ctx.
	poolCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s.registry)
	s.workerPool.Start(poolCtx)

	s.started = true
	s.logger.Info(ctx, "conversion service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("maxBatchSize", s.maxBatchSize),
		logger.Int("conversions", len(s.registry.Supported())),
	)
	return nil
}

// Stop closes the queue and waits for the workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping conversion service...")

	_ = s.jobQueue.Close()
	s.workerPool.Stop()
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "conversion service stopped")
}

// Convert converts one rating synchronously.
func (s *Service) Convert(ctx context.Context, in model.Rating, to model.System) (model.Rating, error) {
	start := time.Now()
	out, err := s.registry.Convert(ctx, in, to)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000

	metrics.RecordConversion(label(in.System), label(to), outcome(err), latencyMs)
	if err != nil {
		s.log().Debug(ctx, "conversion rejected",
			logger.String("from", in.System.String()),
			logger.String("to", to.String()),
			logger.Error(err),
		)
		return model.Rating{}, err
	}
	return out, nil
}

// ConvertBatch converts every request on the worker pool and returns the
// results in request order. Per-item failures are reported in the result;
// the returned error is only set when the batch as a whole is rejected.
func (s *Service) ConvertBatch(ctx context.Context, reqs []Request) (BatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return BatchResult{}, ErrNotStarted
	}
	if len(reqs) == 0 {
		return BatchResult{}, ErrEmptyBatch
	}
	if len(reqs) > s.maxBatchSize {
		return BatchResult{}, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(reqs), s.maxBatchSize)
	}

	batchID := uuid.NewString()
	reply := make(chan model.JobResult, len(reqs))
	results := make([]ItemResult, len(reqs))
	pending := 0

	for i, r := range reqs {
		job := model.Job{
			ID:      uuid.NewString(),
			BatchID: batchID,
			Index:   i,
			Input:   r.Rating,
			Target:  r.To,
			Reply:   reply,
		}
		if !s.jobQueue.Enqueue(ctx, job) {
			results[i] = ItemResult{Err: ErrBackpressure}
			continue
		}
		pending++
	}
	if pending == 0 {
		return BatchResult{}, ErrBackpressure
	}

	for pending > 0 {
		select {
		case res := <-reply:
			pending--
			r := reqs[res.Index]
			metrics.RecordConversion(label(r.Rating.System), label(r.To), outcome(res.Err), res.LatencyMs)
			if res.Err != nil {
				results[res.Index] = ItemResult{Err: res.Err}
				continue
			}
			out := res.Output
			results[res.Index] = ItemResult{Rating: &out}
		case <-ctx.Done():
			return BatchResult{}, fmt.Errorf("batch %s: %w", batchID, ctx.Err())
		}
	}

	metrics.RecordBatch(len(reqs))
	s.log().Debug(ctx, "batch converted",
		logger.String("batchID", batchID),
		logger.Int("items", len(reqs)),
	)
	return BatchResult{BatchID: batchID, Results: results}, nil
}

// Default returns the default rating of a system.
func (s *Service) Default(_ context.Context, sys model.System) (model.Rating, error) {
	return model.Default(sys)
}

// Systems describes every supported rating system.
func (s *Service) Systems(_ context.Context) []SystemInfo {
	list := model.Systems()
	out := make([]SystemInfo, len(list))
	for i, sys := range list {
		out[i] = SystemInfo{Name: sys, LowerIsBetter: sys.LowerIsBetter(), HasDefault: sys.HasDefault()}
	}
	return out
}

// Conversions lists the supported (from, to) pairs.
func (s *Service) Conversions(_ context.Context) []conversion.Pair {
	return s.registry.Supported()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"maxBatchSize": s.maxBatchSize,
		"conversions":  len(s.registry.Supported()),
	}
	if s.started {
		queueLen := s.jobQueue.Len(context.Background())
		stats["queueLength"] = queueLen
		stats["jobsProcessed"] = s.workerPool.Processed()
		metrics.UpdateQueue(queueLen, s.queueSize)
	}
	return stats
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get().Named("service")
	}
	return s.logger
}

// label keeps metric label values bounded to known systems.
func label(sys model.System) string {
	if sys.Valid() {
		return sys.String()
	}
	return "unknown"
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, conversion.ErrUnsupportedConversion):
		return metrics.OutcomeUnsupported
	case errors.Is(err, conversion.ErrInvalidInput), errors.Is(err, conversion.ErrOutOfRange):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
