package batch

import (
	"runtime"
	"sync"
)

// workerPool distributes jobs across a fixed set of goroutines and collects
// their results. Jobs carry an index so callers can restore input order.
type workerPool[Job any, Result any] struct {
	numWorkers int
	jobs       chan Job
	results    chan Result
	wg         sync.WaitGroup
}

// newWorkerPool creates a pool sized to numWorkers, capped at numJobs.
// If numWorkers is 0 or negative it defaults to the CPU count.
func newWorkerPool[Job any, Result any](numWorkers, numJobs int) *workerPool[Job, Result] {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numJobs > 0 {
		numWorkers = min(numWorkers, numJobs)
	}

	return &workerPool[Job, Result]{
		numWorkers: numWorkers,
		jobs:       make(chan Job, numJobs),
		results:    make(chan Result, numJobs),
	}
}

// start begins the workers with the provided worker function.
func (p *workerPool[Job, Result]) start(workerFn func(Job) Result) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.results <- workerFn(job)
			}
		}()
	}
}

// submit adds a job to the queue.
func (p *workerPool[Job, Result]) submit(job Job) {
	p.jobs <- job
}

// close closes the job channel and, once all workers finish, the results
// channel.
func (p *workerPool[Job, Result]) close() {
	close(p.jobs)
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}
