package engine

import "sort"

// rank orders clusters by total duplicated size descending and keeps the top
// n. Ties fall back to the larger line count, then to the earliest occurrence
// by (file, start line) so equal-sized clusters report in a stable order.
func rank(clusters []Cluster, n int) []Cluster {
	sort.Slice(clusters, func(i, j int) bool {
		si, sj := clusters[i].Size(), clusters[j].Size()
		if si != sj {
			return si > sj
		}
		if clusters[i].LineCount != clusters[j].LineCount {
			return clusters[i].LineCount > clusters[j].LineCount
		}
		oi, oj := clusters[i].Occurrences[0], clusters[j].Occurrences[0]
		if oi.File != oj.File {
			return oi.File < oj.File
		}
		return oi.StartLine < oj.StartLine
	})
	if len(clusters) > n {
		clusters = clusters[:n]
	}
	return clusters
}
