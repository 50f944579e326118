package s3types

import "sync/atomic"

// ControlSignal is the shared cancellation and pause state for one bulk
// operation. The caller creates one signal per operation, keeps it for the
// duration of the run, and is the only writer; the enumeration goroutine
// and every worker read it cooperatively. The zero value is ready to use.
//
// Cancellation has bounded but nonzero latency: work already handed to the
// pool always runs to completion, and only future submissions and progress
// reporting are suppressed.
type ControlSignal struct {
	cancelled atomic.Bool
	paused    atomic.Bool
}

// NewControlSignal returns a fresh signal in the running state.
func NewControlSignal() *ControlSignal {
	return &ControlSignal{}
}

// Cancel requests a cooperative stop. It is safe to call more than once.
func (c *ControlSignal) Cancel() {
	c.cancelled.Store(true)
}

// Pause halts new submissions until Resume is called. Work already
// dispatched is not paused.
func (c *ControlSignal) Pause() {
	c.paused.Store(true)
}

// Resume lifts a pause.
func (c *ControlSignal) Resume() {
	c.paused.Store(false)
}

// IsCancelled reports whether a stop has been requested.
func (c *ControlSignal) IsCancelled() bool {
	if c == nil {
		return false
	}
	return c.cancelled.Load()
}

// IsPaused reports whether the operation is paused.
func (c *ControlSignal) IsPaused() bool {
	if c == nil {
		return false
	}
	return c.paused.Load()
}
