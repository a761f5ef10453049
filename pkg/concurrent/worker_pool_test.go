package concurrent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunAllKeepsJobOrder(t *testing.T) {
	testCases := []struct {
		name       string
		numWorkers int
		numJobs    int
	}{
		{name: "single worker", numWorkers: 1, numJobs: 10},
		{name: "more workers than jobs", numWorkers: 8, numJobs: 3},
		{name: "many jobs", numWorkers: 4, numJobs: 500},
		{name: "no jobs", numWorkers: 4, numJobs: 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			jobs := make([]int, tt.numJobs)
			for i := range jobs {
				jobs[i] = i
			}

			results := RunAll(tt.numWorkers, jobs, func(job int) int {
				return job * job
			})

			assert.Len(t, results, tt.numJobs)
			for i, r := range results {
				assert.Equal(t, i*i, r)
			}
		})
	}
}

func TestWorkerPoolCollectResults(t *testing.T) {
	wp := NewWorkerPool[int, int](3, 5)
	wp.Start(func(job int) int { return job + 1 })
	for i := 0; i < 5; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	sum := 0
	for r := range wp.CollectResults() {
		sum += r
	}
	assert.Equal(t, 15, sum)
}
