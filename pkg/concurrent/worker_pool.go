package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

// NewWorkerPool. jobQueueSize must be at least the number of jobs added before CollectResults is drained,
// workers block on a full results channel.
func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		res := jobFunc(job)
		wp.results <- res
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 1; i <= wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// RunAll. runs jobFunc over every job on numWorkers goroutines and returns the results in job order.
func RunAll[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	type indexed struct {
		pos int
		res G
	}

	wp := NewWorkerPool[int, indexed](numWorkers, len(jobs))
	wp.Start(func(pos int) indexed {
		return indexed{pos: pos, res: jobFunc(jobs[pos])}
	})

	for i := range jobs {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	results := make([]G, len(jobs))
	for r := range wp.CollectResults() {
		results[r.pos] = r.res
	}
	return results
}
