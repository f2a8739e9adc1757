// Package stats holds the process-wide scan counter.
package stats

import "sync/atomic"

// ScanCounter counts successfully extracted codes since process start.
// Updates must be atomic: the transport may deliver updates concurrently.
// The counter is deliberately not persisted; it resets on restart.
type ScanCounter struct {
	total atomic.Int64
}

func NewScanCounter() *ScanCounter {
	return &ScanCounter{}
}

// Add increments the counter by n and returns the new total.
func (c *ScanCounter) Add(n int64) int64 {
	return c.total.Add(n)
}

// Total returns the current count.
func (c *ScanCounter) Total() int64 {
	return c.total.Load()
}
