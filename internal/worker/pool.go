package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool manages a fixed set of workers that execute jobs concurrently.
// Results are delivered in completion order; jobs that need their original
// position carry an index and callers reorder on collection.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeJobs  sync.Once
	closeOnce  sync.Once
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit submits a job to the pool for execution
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Collect starts a collector that drains results as workers produce them.
// Call it before submitting: both channels are bounded, so a caller that
// submits every job before reading any result fills them and blocks the
// workers, which blocks Submit in turn.
func (p *Pool) Collect() *ResultCollector {
	c := &ResultCollector{
		pool: p,
		done: make(chan struct{}),
	}

	go func() {
		defer close(c.done)
		for result := range p.results {
			c.results = append(c.results, result)
		}
	}()

	return c
}

// Shutdown shuts down the worker pool immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// ResultCollector accumulates results concurrently with job submission
type ResultCollector struct {
	pool    *Pool
	results []Result
	done    chan struct{}
}

// Wait closes the job queue, waits for all submitted jobs to complete and
// returns their results in completion order
func (c *ResultCollector) Wait() []Result {
	c.pool.closeJobs.Do(func() {
		close(c.pool.jobQueue)
	})
	c.pool.wg.Wait()
	c.pool.closeResults()

	<-c.done
	return c.results
}
