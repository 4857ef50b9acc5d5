package track404

import (
	"sort"
	"sync"
)

// Entry is a sanitized path together with the number of times it was seen.
type Entry struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Counter accumulates hit counts per sanitized path. Its methods may be
// called concurrently.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int
	total  int
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: map[string]int{}}
}

// Record counts one hit for path.
func (c *Counter) Record(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[path]++
	c.total++
}

// Merge adds every count in other to c. other is not modified.
func (c *Counter) Merge(other *Counter) {
	if other == nil || other == c {
		return
	}
	other.mu.Lock()
	counts := make(map[string]int, len(other.counts))
	for path, n := range other.counts {
		counts[path] = n
	}
	total := other.total
	other.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	for path, n := range counts {
		c.counts[path] += n
	}
	c.total += total
}

// Len returns the number of distinct paths recorded.
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.counts)
}

// Total returns the number of hits recorded across all paths.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Snapshot returns a copy of the accumulated counts, ordered by path.
func (c *Counter) Snapshot() []Entry {
	c.mu.Lock()
	entries := make([]Entry, 0, len(c.counts))
	for path, n := range c.counts {
		entries = append(entries, Entry{Path: path, Count: n})
	}
	c.mu.Unlock()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}
