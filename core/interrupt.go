package core

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
)

// Interrupt is the one bit of state shared between the signal watcher and the
// shell loop. The watcher raises it; the loop observes and clears it before
// the next prompt.
type Interrupt struct {
	flag atomic.Bool
	// wake holds at most one token so blocked reads notice a raise.
	wake chan struct{}
}

// NewInterrupt creates a lowered flag.
func NewInterrupt() *Interrupt {
	return &Interrupt{wake: make(chan struct{}, 1)}
}

// Raise sets the flag and wakes any blocked read. Repeated raises collapse
// into one.
func (i *Interrupt) Raise() {
	i.flag.Store(true)
	select {
	case i.wake <- struct{}{}:
	default:
	}
}

// Pending reports whether the flag is set.
func (i *Interrupt) Pending() bool {
	return i.flag.Load()
}

// Clear lowers the flag and reports whether it was set.
// The token is drained first, so a raise that races with Clear always leaves
// a token behind for its flag.
func (i *Interrupt) Clear() bool {
	select {
	case <-i.wake:
	default:
	}
	return i.flag.Swap(false)
}

// Wake is signaled after a raise. A token may be stale, so receivers must
// check Pending.
func (i *Interrupt) Wake() <-chan struct{} {
	return i.wake
}

// WatchInterrupts raises the returned flag on every SIGINT instead of letting
// the signal terminate the process. Call stop to restore the default
// disposition.
func WatchInterrupts() (intr *Interrupt, stop func()) {
	intr = NewInterrupt()
	signals := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(signals, os.Interrupt)

	go func() {
		for {
			select {
			case <-signals:
				intr.Raise()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	stop = func() {
		once.Do(func() {
			signal.Stop(signals)
			close(done)
		})
	}
	return intr, stop
}
