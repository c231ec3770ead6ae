package engine

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/semaphore"
)

// hashBase is the multiplier of the polynomial rolling hash over per-line
// xxhash64 values. Arithmetic wraps modulo 2^64.
const hashBase uint64 = 0x100000001b3

// windowRef locates one fingerprinted window: a file index and the index of
// the window's first normalized line.
type windowRef struct {
	file  int
	start int
}

// buildIndex fingerprints every run of window consecutive normalized lines
// and buckets window positions by fingerprint. Files are hashed in parallel
// bounded by jobs; buckets with a single entry cannot seed a match and are
// dropped. Windows never span files.
func buildIndex(files []FileLines, window int, jobs int, onProgress ProgressFunc) map[uint64][]windowRef {
	perFile := make([][]uint64, len(files))

	sem := semaphore.NewWeighted(int64(jobs))
	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem.Acquire(context.Background(), 1)
			defer sem.Release(1)

			perFile[idx] = fingerprintFile(files[idx].Lines, window)
			if onProgress != nil {
				onProgress()
			}
		}(i)
	}
	wg.Wait()

	index := make(map[uint64][]windowRef)
	for i, hashes := range perFile {
		for start, h := range hashes {
			index[h] = append(index[h], windowRef{file: i, start: start})
		}
	}
	for h, refs := range index {
		if len(refs) < 2 {
			delete(index, h)
		}
	}
	return index
}

// fingerprintFile computes the rolling window fingerprints for one file.
// hashes[i] covers the window starting at normalized line i. A file shorter
// than the window yields nothing.
func fingerprintFile(lines []SourceLine, window int) []uint64 {
	if len(lines) < window {
		return nil
	}

	lineHashes := make([]uint64, len(lines))
	for i, ln := range lines {
		lineHashes[i] = xxhash.Sum64String(ln.Text)
	}

	// Weight of the outgoing line when the window advances.
	basePow := uint64(1)
	for i := 0; i < window-1; i++ {
		basePow *= hashBase
	}

	hashes := make([]uint64, len(lines)-window+1)
	var h uint64
	for i := 0; i < window; i++ {
		h = h*hashBase + lineHashes[i]
	}
	hashes[0] = h
	for i := 1; i < len(hashes); i++ {
		h = (h-lineHashes[i-1]*basePow)*hashBase + lineHashes[i+window-1]
		hashes[i] = h
	}
	return hashes
}
