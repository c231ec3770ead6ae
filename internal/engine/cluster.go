package engine

import (
	"sort"
	"strings"
)

type occKey struct {
	file  int
	start int
	end   int
}

// draft accumulates the occurrences of one duplicated block before overlap
// resolution, keyed by position so identical records collapse.
type draft struct {
	lineCount int
	occs      map[occKey]Occurrence
}

// buildClusters turns the fingerprint index into clusters. Each bucket is
// verified line-by-line (matching hashes are never trusted), verified pairs
// are extended to maximal blocks, thresholds are applied, and blocks with
// identical normalized content are unioned into one cluster. Buckets are
// processed in sorted hash order so the result is deterministic.
func buildClusters(files []FileLines, index map[uint64][]windowRef, cfg Config) []Cluster {
	window := cfg.MinLineCount

	hashes := make([]uint64, 0, len(index))
	for h := range index {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	drafts := make(map[string]*draft)
	for _, h := range hashes {
		refs := index[h]
		sort.Slice(refs, func(i, j int) bool {
			if refs[i].file != refs[j].file {
				return files[refs[i].file].Path < files[refs[j].file].Path
			}
			return refs[i].start < refs[j].start
		})

		// Group bucket members by actual window content. A group of one is
		// a hash collision and seeds nothing.
		groups := make(map[string][]windowRef)
		var order []string
		for _, ref := range refs {
			text := blockText(files[ref.file].Lines, ref.start, ref.start+window-1)
			if _, ok := groups[text]; !ok {
				order = append(order, text)
			}
			groups[text] = append(groups[text], ref)
		}

		for _, text := range order {
			group := groups[text]
			if len(group) < 2 {
				continue
			}
			for i := 0; i < len(group); i++ {
				for j := i + 1; j < len(group); j++ {
					extendSeed(files, group[i], group[j], window, cfg, drafts)
				}
			}
		}
	}

	keys := make([]string, 0, len(drafts))
	for key := range drafts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	clusters := make([]Cluster, 0, len(keys))
	for _, key := range keys {
		d := drafts[key]
		occs := make([]Occurrence, 0, len(d.occs))
		for _, occ := range d.occs {
			occs = append(occs, occ)
		}
		sortOccurrences(occs)
		clusters = append(clusters, Cluster{
			LineCount:   d.lineCount,
			CharCount:   maxCharCount(occs),
			Occurrences: occs,
		})
	}
	return clusters
}

// extendSeed grows a verified window pair outward one line at a time while
// the normalized texts keep matching, bounded by file ends, then applies the
// size thresholds and records both sides under the block's content key. The
// char threshold is met when the larger side passes it.
func extendSeed(files []FileLines, a, b windowRef, window int, cfg Config, drafts map[string]*draft) {
	la := files[a.file].Lines
	lb := files[b.file].Lines

	startA, startB := a.start, b.start
	endA, endB := a.start+window-1, b.start+window-1

	for startA > 0 && startB > 0 && la[startA-1].Text == lb[startB-1].Text {
		startA--
		startB--
	}
	for endA+1 < len(la) && endB+1 < len(lb) && la[endA+1].Text == lb[endB+1].Text {
		endA++
		endB++
	}

	occA := makeOccurrence(files, a.file, startA, endA)
	occB := makeOccurrence(files, b.file, startB, endB)

	lineCount := endA - startA + 1
	if lineCount < cfg.MinLineCount {
		return
	}
	if occA.CharCount < cfg.MinCharCount && occB.CharCount < cfg.MinCharCount {
		return
	}

	key := blockText(la, startA, endA)
	d, ok := drafts[key]
	if !ok {
		d = &draft{lineCount: lineCount, occs: make(map[occKey]Occurrence)}
		drafts[key] = d
	}
	d.occs[occKey{a.file, startA, endA}] = occA
	d.occs[occKey{b.file, startB, endB}] = occB
}

// resolveOverlaps enforces the per-file overlap policy: when two blocks claim
// overlapping line ranges in the same file, the longer block wins and ties go
// to the larger char count. Clusters are processed in that priority order
// over a shared claimed-range table, single-threaded, so results are stable.
// Clusters left with fewer than two occurrences are dropped.
func resolveOverlaps(clusters []Cluster) []Cluster {
	order := make([]int, len(clusters))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := clusters[order[i]], clusters[order[j]]
		if a.LineCount != b.LineCount {
			return a.LineCount > b.LineCount
		}
		if a.CharCount != b.CharCount {
			return a.CharCount > b.CharCount
		}
		oa, ob := a.Occurrences[0], b.Occurrences[0]
		if oa.File != ob.File {
			return oa.File < ob.File
		}
		return oa.StartLine < ob.StartLine
	})

	type span struct{ start, end int }
	claimed := make(map[string][]span)

	var kept []Cluster
	for _, ci := range order {
		c := clusters[ci]
		var occs []Occurrence
		for _, occ := range c.Occurrences {
			taken := false
			for _, s := range claimed[occ.File] {
				if occ.start <= s.end && occ.end >= s.start {
					taken = true
					break
				}
			}
			if taken {
				continue
			}
			claimed[occ.File] = append(claimed[occ.File], span{occ.start, occ.end})
			occs = append(occs, occ)
		}
		if len(occs) < 2 {
			continue
		}
		kept = append(kept, Cluster{
			LineCount:   c.LineCount,
			CharCount:   maxCharCount(occs),
			Occurrences: occs,
		})
	}
	return kept
}

func makeOccurrence(files []FileLines, fileIdx, start, end int) Occurrence {
	lines := files[fileIdx].Lines
	chars := 0
	for i := start; i <= end; i++ {
		chars += lines[i].OrigLen
	}
	return Occurrence{
		File:      files[fileIdx].Path,
		StartLine: lines[start].Number,
		EndLine:   lines[end].Number,
		CharCount: chars,
		start:     start,
		end:       end,
	}
}

// blockText joins the normalized lines start..end inclusive.
func blockText(lines []SourceLine, start, end int) string {
	var sb strings.Builder
	for i := start; i <= end; i++ {
		if i > start {
			sb.WriteByte('\n')
		}
		sb.WriteString(lines[i].Text)
	}
	return sb.String()
}

func sortOccurrences(occs []Occurrence) {
	sort.Slice(occs, func(i, j int) bool {
		if occs[i].File != occs[j].File {
			return occs[i].File < occs[j].File
		}
		return occs[i].StartLine < occs[j].StartLine
	})
}

func maxCharCount(occs []Occurrence) int {
	max := 0
	for _, occ := range occs {
		if occ.CharCount > max {
			max = occ.CharCount
		}
	}
	return max
}
