package genome

import (
	"runtime"
	"sync"
)

// WorkItem names one record file queued for loading.
type WorkItem struct {
	Seq  int
	Path string
}

// WorkResult holds the loaded genome for a single file. Err carries
// per-file failures; the batch itself keeps going.
type WorkResult struct {
	Seq    int
	Path   string
	Genome *Genome
	Err    error
}

// ParallelLoad loads record files using a pool of workers. Results are sent
// to the returned channel in arrival order (not sequence order). Use
// OrderedCollect to consume results in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func ParallelLoad(items <-chan WorkItem, workers int, opts Options) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				g, err := LoadFile(item.Path, opts)
				results <- WorkResult{
					Seq:    item.Seq,
					Path:   item.Path,
					Genome: g,
					Err:    err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
