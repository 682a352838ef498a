package fxvanilla

import (
	"context"
	"runtime"
	"sync"
)

// ExecutionMode defines how batches are evaluated
type ExecutionMode string

const (
	ExecutionModeAuto       ExecutionMode = "auto"
	ExecutionModeParallel   ExecutionMode = "parallel"
	ExecutionModeSequential ExecutionMode = "sequential"
)

const defaultParallelThreshold = 64

// BatchResult is the outcome of one request in a batch
type BatchResult struct {
	Index  int
	Result PricingResult
	Err    error
}

// Engine prices batches of requests, optionally on a worker pool.
// Pricing itself is pure so an Engine is safe for concurrent use.
type Engine struct {
	executionMode     ExecutionMode
	workers           int
	parallelThreshold int
}

// NewEngine creates an engine in auto mode with one worker per CPU
func NewEngine() *Engine {
	return &Engine{
		executionMode:     ExecutionModeAuto,
		workers:           runtime.NumCPU(),
		parallelThreshold: defaultParallelThreshold,
	}
}

// NewEngineForced creates engine with forced execution mode
func NewEngineForced(mode string) *Engine {
	e := NewEngine()

	switch ExecutionMode(mode) {
	case ExecutionModeParallel:
		e.executionMode = ExecutionModeParallel
	case ExecutionModeSequential:
		e.executionMode = ExecutionModeSequential
	default:
		e.executionMode = ExecutionModeAuto
	}

	return e
}

// NewEngineWithConfig creates an engine from configured mode, worker count and
// the batch size from which auto mode switches to the worker pool.
// Non-positive values keep the defaults.
func NewEngineWithConfig(mode string, workers, parallelThreshold int) *Engine {
	e := NewEngineForced(mode)
	if workers > 0 {
		e.workers = workers
	}
	if parallelThreshold > 0 {
		e.parallelThreshold = parallelThreshold
	}
	return e
}

// Mode returns the configured execution mode
func (e *Engine) Mode() ExecutionMode {
	return e.executionMode
}

// Workers returns the worker pool size
func (e *Engine) Workers() int {
	return e.workers
}

// modeFor resolves auto mode for a batch of n requests.
func (e *Engine) modeFor(n int) ExecutionMode {
	switch e.executionMode {
	case ExecutionModeParallel:
		if e.workers > 1 {
			return ExecutionModeParallel
		}
		return ExecutionModeSequential
	case ExecutionModeSequential:
		return ExecutionModeSequential
	}
	if e.workers > 1 && n >= e.parallelThreshold {
		return ExecutionModeParallel
	}
	return ExecutionModeSequential
}

// PriceBatch prices every request and returns the results in input order.
// Per-request failures are reported in BatchResult.Err; the returned error is
// only set when ctx is cancelled before the batch completes.
func (e *Engine) PriceBatch(ctx context.Context, reqs []PricingRequest) ([]BatchResult, error) {
	results, _, err := e.priceBatch(ctx, reqs)
	return results, err
}

func (e *Engine) priceBatch(ctx context.Context, reqs []PricingRequest) ([]BatchResult, ExecutionMode, error) {
	mode := e.modeFor(len(reqs))
	if len(reqs) == 0 {
		return []BatchResult{}, mode, nil
	}

	results := make([]BatchResult, len(reqs))

	if mode == ExecutionModeSequential {
		for i, req := range reqs {
			if err := ctx.Err(); err != nil {
				return nil, mode, err
			}
			res, err := Price(req)
			results[i] = BatchResult{Index: i, Result: res, Err: err}
		}
		return results, mode, nil
	}

	workers := e.workers
	if workers > len(reqs) {
		workers = len(reqs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := Price(reqs[i])
				results[i] = BatchResult{Index: i, Result: res, Err: err}
			}
		}()
	}

	var cancelled error
dispatch:
	for i := range reqs {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, mode, cancelled
	}
	return results, mode, nil
}
