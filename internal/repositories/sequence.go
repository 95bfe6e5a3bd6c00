package repositories

import (
	"sync/atomic"
	"time"
)

var lastSeq atomic.Int64

// nextSeq returns a strictly increasing insertion sequence number seeded from
// the wall clock, so rows created within the same timestamp tick keep their
// insertion order.
func nextSeq() int64 {
	for {
		last := lastSeq.Load()
		next := time.Now().UnixNano()
		if next <= last {
			next = last + 1
		}
		if lastSeq.CompareAndSwap(last, next) {
			return next
		}
	}
}
