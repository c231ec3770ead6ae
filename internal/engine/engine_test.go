package engine

import (
	"fmt"
	"reflect"
	"testing"
)

func makeFile(path string, texts ...string) FileLines {
	lines := make([]SourceLine, len(texts))
	offset := 0
	for i, text := range texts {
		lines[i] = SourceLine{Number: i + 1, Text: text, OrigLen: len(text), Offset: offset}
		offset += len(text) + 1
	}
	return FileLines{Path: path, Lines: lines}
}

func defaultConfig() Config {
	return Config{MinLineCount: 6, MinCharCount: 80, TopResults: 30, Jobs: 2}
}

// sharedBlock generates n distinct lines long enough to pass the default
// char threshold together.
func sharedBlock(tag string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s result = compute(%d) + offset(%d)", tag, i, i*3)
	}
	return lines
}

// filler generates lines unique to one position so they never match.
func filler(tag string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("unique %s line %d with no twin anywhere", tag, i)
	}
	return lines
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestSharedBlockAcrossTwoFiles(t *testing.T) {
	block := sharedBlock("dup", 10)
	fileA := makeFile("a.java", concat(filler("a-top", 3), block, filler("a-bot", 4))...)
	fileB := makeFile("b.java", concat(filler("b-top", 5), block, filler("b-bot", 2))...)

	result, err := Run([]FileLines{fileA, fileB}, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(result.Clusters))
	}

	c := result.Clusters[0]
	if c.LineCount != 10 {
		t.Errorf("expected line count 10, got %d", c.LineCount)
	}
	if len(c.Occurrences) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(c.Occurrences))
	}
	if c.Occurrences[0].File != "a.java" || c.Occurrences[0].StartLine != 4 || c.Occurrences[0].EndLine != 13 {
		t.Errorf("unexpected first occurrence: %+v", c.Occurrences[0])
	}
	if c.Occurrences[1].File != "b.java" || c.Occurrences[1].StartLine != 6 || c.Occurrences[1].EndLine != 15 {
		t.Errorf("unexpected second occurrence: %+v", c.Occurrences[1])
	}
}

func TestBlockBelowLineThreshold(t *testing.T) {
	block := sharedBlock("dup", 4)
	fileA := makeFile("a.java", concat(filler("a", 5), block)...)
	fileB := makeFile("b.java", concat(block, filler("b", 5))...)

	result, err := Run([]FileLines{fileA, fileB}, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clusters) != 0 {
		t.Errorf("expected no clusters for a 4-line block, got %d", len(result.Clusters))
	}
}

func TestSharedBlockAcrossThreeFiles(t *testing.T) {
	block := sharedBlock("dup", 8)
	files := []FileLines{
		makeFile("a.java", concat(filler("a", 2), block)...),
		makeFile("b.java", concat(filler("b", 4), block, filler("b2", 1))...),
		makeFile("c.java", concat(block, filler("c", 3))...),
	}

	result, err := Run(files, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(result.Clusters))
	}
	if got := len(result.Clusters[0].Occurrences); got != 3 {
		t.Errorf("expected 3 occurrences, got %d", got)
	}
}

func TestInnerBlockConsumedByLarger(t *testing.T) {
	block := sharedBlock("big", 12)
	inner := block[3:9]
	files := []FileLines{
		makeFile("a.java", concat(filler("a", 2), block, filler("a2", 3))...),
		makeFile("b.java", concat(filler("b", 4), block)...),
		makeFile("c.java", concat(filler("c", 3), inner, filler("c2", 3))...),
	}

	result, err := Run(files, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clusters) != 1 {
		t.Fatalf("expected only the larger block, got %d clusters", len(result.Clusters))
	}
	c := result.Clusters[0]
	if c.LineCount != 12 {
		t.Errorf("expected line count 12, got %d", c.LineCount)
	}
	if len(c.Occurrences) != 2 {
		t.Errorf("expected 2 occurrences, got %d", len(c.Occurrences))
	}
}

func TestSameFileDuplicate(t *testing.T) {
	block := sharedBlock("twice", 6)
	file := makeFile("a.java", concat(block, filler("mid", 4), block)...)

	result, err := Run([]FileLines{file}, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(result.Clusters))
	}
	c := result.Clusters[0]
	if len(c.Occurrences) != 2 {
		t.Fatalf("expected 2 occurrences in the same file, got %d", len(c.Occurrences))
	}
	if c.Occurrences[0].StartLine != 1 || c.Occurrences[1].StartLine != 11 {
		t.Errorf("unexpected occurrence positions: %+v", c.Occurrences)
	}
}

func TestRankingAndTruncation(t *testing.T) {
	wide := sharedBlock("wide", 6) // 6 lines x 3 occurrences = 18
	tall := sharedBlock("tall", 8) // 8 lines x 2 occurrences = 16
	files := []FileLines{
		makeFile("a.java", concat(wide, filler("a", 3), tall)...),
		makeFile("b.java", concat(filler("b", 2), wide, filler("b2", 2), tall)...),
		makeFile("c.java", concat(filler("c", 5), wide)...),
	}

	result, err := Run(files, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(result.Clusters))
	}
	if result.Clusters[0].Size() < result.Clusters[1].Size() {
		t.Errorf("clusters not ordered by size: %d before %d",
			result.Clusters[0].Size(), result.Clusters[1].Size())
	}
	if result.Clusters[0].LineCount != 6 || len(result.Clusters[0].Occurrences) != 3 {
		t.Errorf("expected the 6x3 cluster first, got %dx%d",
			result.Clusters[0].LineCount, len(result.Clusters[0].Occurrences))
	}

	cfg := defaultConfig()
	cfg.TopResults = 1
	result, err = Run(files, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clusters) != 1 {
		t.Fatalf("expected truncation to 1 cluster, got %d", len(result.Clusters))
	}
	if result.TotalClusters != 2 {
		t.Errorf("expected total of 2 clusters before truncation, got %d", result.TotalClusters)
	}
}

func TestCharThreshold(t *testing.T) {
	short := []string{"a = 1", "b = 2", "c = 3", "d = 4", "e = 5", "f = 6"}
	files := []FileLines{
		makeFile("a.java", concat(short, filler("a", 3))...),
		makeFile("b.java", concat(filler("b", 3), short)...),
	}

	result, err := Run(files, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clusters) != 0 {
		t.Errorf("expected char threshold to reject the block, got %d clusters", len(result.Clusters))
	}

	cfg := defaultConfig()
	cfg.MinCharCount = 10
	result, err = Run(files, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clusters) != 1 {
		t.Errorf("expected 1 cluster with lowered char threshold, got %d", len(result.Clusters))
	}
}

func TestCharThresholdUsesLargerSide(t *testing.T) {
	texts := sharedBlock("pad", 6)
	fileA := makeFile("a.java", texts...)
	fileB := makeFile("b.java", texts...)
	// Same normalized text, different original widths: only B passes alone.
	for i := range fileA.Lines {
		fileA.Lines[i].OrigLen = 11 // 66 chars total
		fileB.Lines[i].OrigLen = 15 // 90 chars total
	}

	result, err := Run([]FileLines{fileA, fileB}, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clusters) != 1 {
		t.Fatalf("expected the larger side to satisfy the threshold, got %d clusters", len(result.Clusters))
	}
	if got := result.Clusters[0].CharCount; got != 90 {
		t.Errorf("expected cluster char count 90 (max across occurrences), got %d", got)
	}
}

func TestNoOverlappingOccurrences(t *testing.T) {
	// Runs of one repeated line produce heavily overlapping candidates.
	repeated := make([]string, 12)
	for i := range repeated {
		repeated[i] = "counter = counter + increment(step)"
	}
	files := []FileLines{
		makeFile("a.java", concat(repeated, filler("a", 2))...),
		makeFile("b.java", concat(filler("b", 2), repeated[:8])...),
	}

	result, err := Run(files, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string][][2]int)
	for _, c := range result.Clusters {
		if c.LineCount < 6 {
			t.Errorf("cluster below line threshold: %d", c.LineCount)
		}
		if c.CharCount < 80 {
			t.Errorf("cluster below char threshold: %d", c.CharCount)
		}
		if len(c.Occurrences) < 2 {
			t.Errorf("cluster with fewer than 2 occurrences: %+v", c)
		}
		for _, occ := range c.Occurrences {
			for _, prev := range seen[occ.File] {
				if occ.StartLine <= prev[1] && occ.EndLine >= prev[0] {
					t.Errorf("overlapping occurrences in %s: [%d,%d] and [%d,%d]",
						occ.File, occ.StartLine, occ.EndLine, prev[0], prev[1])
				}
			}
			seen[occ.File] = append(seen[occ.File], [2]int{occ.StartLine, occ.EndLine})
		}
	}
}

func TestDeterminism(t *testing.T) {
	block := sharedBlock("dup", 7)
	other := sharedBlock("other", 6)
	files := []FileLines{
		makeFile("a.java", concat(block, filler("a", 2), other)...),
		makeFile("b.java", concat(other, filler("b", 3), block)...),
		makeFile("c.java", concat(filler("c", 1), block)...),
	}

	first, err := Run(files, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Run(files, defaultConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("results differ between runs:\n%+v\n%+v", first, again)
		}
	}
}

func TestThresholdMonotonicity(t *testing.T) {
	block := sharedBlock("dup", 9)
	files := []FileLines{
		makeFile("a.java", concat(filler("a", 2), block)...),
		makeFile("b.java", concat(block, filler("b", 2))...),
	}

	counts := make([]int, 0, 3)
	for _, minLines := range []int{6, 9, 10} {
		cfg := defaultConfig()
		cfg.MinLineCount = minLines
		result, err := Run(files, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		counts = append(counts, len(result.Clusters))
	}
	if counts[0] != 1 || counts[1] != 1 || counts[2] != 0 {
		t.Errorf("expected cluster counts [1 1 0] for thresholds [6 9 10], got %v", counts)
	}
}

func TestEmptyAndTinyInput(t *testing.T) {
	result, err := Run(nil, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error on empty input: %v", err)
	}
	if len(result.Clusters) != 0 {
		t.Errorf("expected no clusters for empty input, got %d", len(result.Clusters))
	}

	tiny := makeFile("a.java", "only", "three", "lines")
	result, err = Run([]FileLines{tiny, tiny}, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error on tiny input: %v", err)
	}
	if len(result.Clusters) != 0 {
		t.Errorf("expected no clusters for files shorter than the window, got %d", len(result.Clusters))
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []Config{
		{MinLineCount: 0, MinCharCount: 80, TopResults: 30},
		{MinLineCount: 6, MinCharCount: 0, TopResults: 30},
		{MinLineCount: 6, MinCharCount: 80, TopResults: 0},
		{MinLineCount: -1, MinCharCount: 80, TopResults: 30},
	}
	for _, cfg := range cases {
		if _, err := Run(nil, cfg); err == nil {
			t.Errorf("expected error for config %+v", cfg)
		}
	}
}
