package limb

import(
	"runtime"
	"sync"
)

// DefaultWorkers is how many goroutines the samplers and the corrector
// use when the caller doesn't say.
var DefaultWorkers = runtime.NumCPU()

// forEachRow feeds the row numbers [0,n) to a pool of goroutines. Each
// row goes to exactly one worker, so workers that only write to their
// own rows need no locking.
func forEachRow(n, nWorkers int, fn func(row int)) {
	if nWorkers < 1 {
		nWorkers = 1
	}

	var wg sync.WaitGroup
	jobsChan := make(chan int, n)

	// Kick off worker pool
	for i:=0; i<nWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			for row := range jobsChan {
				fn(row)
			}
		}()
	}

	// Feed in jobs
	for i:=0; i<n; i++ {
		jobsChan<- i
	}

	close(jobsChan)
	wg.Wait()
}
