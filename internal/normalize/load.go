package normalize

import (
	"context"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/avigne/cpfind/internal/engine"
)

// LoadFiles reads and normalizes every file in parallel, bounded by jobs.
// Unreadable files are reported through onError and skipped; the rest load
// in input order. Both callbacks may be nil and may be invoked from multiple
// goroutines.
func LoadFiles(paths []string, n Normalizer, jobs int, onProgress func(), onError func(path string, err error)) []engine.FileLines {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	slots := make([]*engine.FileLines, len(paths))
	sem := semaphore.NewWeighted(int64(jobs))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			sem.Acquire(context.Background(), 1)
			defer sem.Release(1)

			if onProgress != nil {
				defer onProgress()
			}
			content, err := os.ReadFile(path)
			if err != nil {
				if onError != nil {
					onError(path, err)
				}
				return
			}
			slots[idx] = &engine.FileLines{Path: path, Lines: n.Normalize(string(content))}
		}(i, path)
	}
	wg.Wait()

	files := make([]engine.FileLines, 0, len(paths))
	for _, slot := range slots {
		if slot != nil {
			files = append(files, *slot)
		}
	}
	return files
}
