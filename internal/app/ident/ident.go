/*
Package ident provides process-wide unique identifier allocation.

Identifiers produced here are session-scoped pre-assignments: the durable
store's own generated keys remain the authoritative source of truth for
persisted entities.
*/
package ident

import "sync/atomic"

// Allocator hands out monotonically increasing identifiers starting at 1.
// It is safe for concurrent use; values are never reused within the process.
type Allocator struct {
	counter atomic.Int64
}

// NewAllocator returns an Allocator whose first Next call yields 1.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns the next identifier.
func (a *Allocator) Next() int64 {
	return a.counter.Add(1)
}
