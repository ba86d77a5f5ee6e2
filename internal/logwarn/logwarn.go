// Package logwarn centralizes the rank-0-gated "Warning: ..." printing
// used for numerical non-convergence and threshold-crossing invariant
// clips, so every package that needs to warn does it the same way
// instead of calling fmt.Printf directly.
package logwarn

import (
	"fmt"
	"sync/atomic"
)

// rank identifies which SPMD rank this process is; only rank 0 prints.
// SetRank is called once by the CLI/SPMD bootstrap before any other
// package runs.
var rank int32

func SetRank(r int) { atomic.StoreInt32(&rank, int32(r)) }

// Warnf prints a "Warning: ..." line on rank 0 only. Safe to call from
// every rank uniformly; non-zero ranks are no-ops.
func Warnf(format string, args ...interface{}) {
	if atomic.LoadInt32(&rank) != 0 {
		return
	}
	fmt.Printf("Warning: "+format+"\n", args...)
}

// ClipCounter tracks how many times a real-domain invariant (e.g. a
// negative density or pressure) has been clipped back into range, and
// emits one warning per crossing of threshold, not once per clip.
type ClipCounter struct {
	name      string
	threshold int64
	count     int64
	warned    int64
}

func NewClipCounter(name string, threshold int64) *ClipCounter {
	return &ClipCounter{name: name, threshold: threshold}
}

// Clip records one clip event, warning the first time count reaches
// threshold (and every threshold crossing thereafter).
func (c *ClipCounter) Clip() {
	n := atomic.AddInt64(&c.count, 1)
	if c.threshold <= 0 {
		return
	}
	if n/c.threshold > atomic.LoadInt64(&c.warned) {
		atomic.StoreInt64(&c.warned, n/c.threshold)
		Warnf("%s clipped %d times", c.name, n)
	}
}

func (c *ClipCounter) Count() int64 { return atomic.LoadInt64(&c.count) }
