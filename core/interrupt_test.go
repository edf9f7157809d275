package core

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterruptRaiseClear(t *testing.T) {
	intr := NewInterrupt()
	assert.False(t, intr.Pending())
	assert.False(t, intr.Clear())

	intr.Raise()
	intr.Raise()
	assert.True(t, intr.Pending())

	// Repeated raises collapse into one.
	assert.True(t, intr.Clear())
	assert.False(t, intr.Pending())
	assert.False(t, intr.Clear())

	select {
	case <-intr.Wake():
		t.Fatal("wake token survived Clear")
	default:
	}
}

func TestInterruptWakes(t *testing.T) {
	intr := NewInterrupt()
	intr.Raise()

	select {
	case <-intr.Wake():
	case <-time.After(time.Second):
		t.Fatal("Raise didn't wake")
	}
	assert.True(t, intr.Pending(), "waking doesn't lower the flag")
}

func TestWatchInterrupts(t *testing.T) {
	intr, stop := WatchInterrupts()
	defer stop()

	self, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatal(err)
	}
	if err := self.Signal(syscall.SIGINT); err != nil {
		t.Fatal(err)
	}

	select {
	case <-intr.Wake():
	case <-time.After(5 * time.Second):
		t.Fatal("SIGINT didn't raise the flag")
	}
	assert.True(t, intr.Clear())

	// The process is still alive to get here; stop is safe to repeat.
	stop()
}

func TestInterruptClearRacingRaise(t *testing.T) {
	for i := 0; i < 10000; i++ {
		intr := NewInterrupt()
		raised := make(chan struct{})
		go func() {
			intr.Raise()
			close(raised)
		}()

		intr.Clear()
		<-raised

		// A raised flag must always be observable by a blocked read.
		if intr.Pending() {
			select {
			case <-intr.Wake():
			default:
				t.Fatalf("iteration %d: flag raised without a wake token", i)
			}
		}
	}
}
