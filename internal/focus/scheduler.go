package focus

import (
	"sync/atomic"
	"time"
)

// Scheduler runs a callback once after a delay. Callbacks must run on the
// same goroutine that drives the Manager.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// LoopScheduler hands due callbacks to the host event loop over a channel.
// The loop must receive from C and invoke each function.
type LoopScheduler struct {
	ch      chan func()
	pending atomic.Int32
}

// NewLoopScheduler returns a scheduler whose channel has the given buffer.
func NewLoopScheduler(buffer int) *LoopScheduler {
	return &LoopScheduler{ch: make(chan func(), buffer)}
}

func (s *LoopScheduler) AfterFunc(d time.Duration, f func()) {
	s.pending.Add(1)
	time.AfterFunc(d, func() {
		s.ch <- func() {
			s.pending.Add(-1)
			f()
		}
	})
}

// Pending reports callbacks that were scheduled and have not run yet.
func (s *LoopScheduler) Pending() int {
	return int(s.pending.Load())
}

// C delivers callbacks that are due.
func (s *LoopScheduler) C() <-chan func() {
	return s.ch
}
