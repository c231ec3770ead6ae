package engine

import (
	"fmt"
	"runtime"
)

// Config holds the detection thresholds and runtime knobs.
type Config struct {
	MinLineCount int // minimum duplicated lines per block
	MinCharCount int // minimum duplicated chars, measured on original text
	TopResults   int // clusters kept after ranking
	Jobs         int // parallel workers; <= 0 means NumCPU
}

func (c Config) validate() error {
	if c.MinLineCount < 1 {
		return fmt.Errorf("min line count must be at least 1, got %d", c.MinLineCount)
	}
	if c.MinCharCount < 1 {
		return fmt.Errorf("min char count must be at least 1, got %d", c.MinCharCount)
	}
	if c.TopResults < 1 {
		return fmt.Errorf("top result count must be at least 1, got %d", c.TopResults)
	}
	return nil
}

// Result is one completed detection run.
type Result struct {
	Clusters      []Cluster // ranked, truncated to Config.TopResults
	TotalClusters int       // cluster count before truncation
}

// ProgressFunc is called once per file as fingerprinting completes.
type ProgressFunc func()

// Run detects duplicated blocks across the given normalized files.
func Run(files []FileLines, cfg Config) (*Result, error) {
	return RunWithProgress(files, cfg, nil)
}

// RunWithProgress is Run with a per-file progress callback. The callback may
// be invoked from multiple goroutines.
func RunWithProgress(files []FileLines, cfg Config, onProgress ProgressFunc) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	index := buildIndex(files, cfg.MinLineCount, jobs, onProgress)
	clusters := buildClusters(files, index, cfg)
	clusters = resolveOverlaps(clusters)

	total := len(clusters)
	clusters = rank(clusters, cfg.TopResults)
	return &Result{Clusters: clusters, TotalClusters: total}, nil
}
