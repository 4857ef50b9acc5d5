package track404

import (
	"sort"
)

// Select returns the entries seen at least minCount times, most frequent
// first, keeping at most limit of them (limit 0 means no limit). Paths with
// equal counts are sorted alphabetically. The input slice is not modified.
func Select(entries []Entry, minCount, limit int) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count == sorted[j].Count {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Count > sorted[j].Count
	})
	results := make([]Entry, 0, len(sorted))
	for _, e := range sorted {
		if e.Count < minCount {
			break
		}
		results = append(results, e)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results
}
