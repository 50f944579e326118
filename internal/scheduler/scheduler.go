// Package scheduler runs bulk work against a bounded worker pool while a
// listing source is still producing pages.
//
// The driver goroutine pulls pages from a Source, groups items into tasks,
// and submits them to workers over a bounded channel. Submission drains
// finished results opportunistically, so the number of queued tasks and
// unconsumed results stays proportional to the worker count regardless of
// bucket size.
//
// Cancellation is cooperative and fire-and-forget: at each checkpoint the
// driver consults the control signal, and on cancel it stops feeding work
// and returns without waiting for in-flight tasks. Workers notice the stop
// signal, finish their current task, and exit. Pause busy-waits between
// pages until resumed or cancelled.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/coviedoy1989/CleanAwsS3/errors"
	"github.com/coviedoy1989/CleanAwsS3/internal/enumerate"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

// pausePollInterval is how often a paused run re-checks the control signal.
const pausePollInterval = 500 * time.Millisecond

// TaskFunc executes one task of work items. It returns how many items were
// completed and any per-item failures. Item failures are soft; a TaskFunc
// never aborts the run.
type TaskFunc func(ctx context.Context, items []s3types.WorkItem) (done int, errs []s3types.ItemError)

// Scheduler coordinates one bulk run over a worker pool.
type Scheduler struct {
	workers int
	control *s3types.ControlSignal
	logger  zerolog.Logger

	// OnSubmit, when set, is called with the task size each time a task is
	// handed to the pool.
	OnSubmit func(n int)
}

// New creates a scheduler with the given pool size. Workers is assumed to
// be already clamped to a sane range by the caller.
func New(workers int, control *s3types.ControlSignal, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		workers: workers,
		control: control,
		logger:  logger,
	}
}

type task struct {
	items []s3types.WorkItem
}

type result struct {
	done int
	errs []s3types.ItemError
}

// Run streams pages from src, groups items into tasks of at most batchSize,
// and executes them with exec on the worker pool. Tasks may span listing
// pages; a partial group is flushed when the listing ends.
//
// Run returns the total completed items and collected item errors. The
// returned error is errors.ErrCancelled when the control signal stopped the
// run, the listing error when enumeration failed, or nil.
func (s *Scheduler) Run(
	ctx context.Context,
	src enumerate.Source,
	batchSize int,
	exec TaskFunc,
	tracker PageTracker,
) (int, []s3types.ItemError, error) {
	tasks := make(chan task, 2*s.workers)
	results := make(chan result, 2*s.workers)
	stop := make(chan struct{})

	for i := 0; i < s.workers; i++ {
		go s.worker(ctx, tasks, results, stop, exec)
	}

	r := &run{
		scheduler: s,
		tasks:     tasks,
		results:   results,
		stop:      stop,
		batchSize: batchSize,
	}
	return r.drive(ctx, src, tracker)
}

// PageTracker receives one callback per listing page with the item count.
type PageTracker interface {
	Page(n int)
}

// worker executes tasks until the task channel closes or the run stops.
func (s *Scheduler) worker(
	ctx context.Context,
	tasks <-chan task,
	results chan<- result,
	stop <-chan struct{},
	exec TaskFunc,
) {
	for t := range tasks {
		select {
		case <-stop:
			return
		default:
		}

		done, errs := exec(ctx, t.items)

		select {
		case results <- result{done: done, errs: errs}:
		case <-stop:
			return
		}
	}
}

// run holds the mutable state of one Run invocation.
type run struct {
	scheduler *Scheduler
	tasks     chan task
	results   chan result
	stop      chan struct{}
	batchSize int

	submitted int
	completed int
	done      int
	errs      []s3types.ItemError
}

func (r *run) drive(ctx context.Context, src enumerate.Source, tracker PageTracker) (int, []s3types.ItemError, error) {
	var pending []s3types.WorkItem

	for {
		if err := r.checkpoint(ctx); err != nil {
			return r.abort(err)
		}

		items, more, err := src.Next(ctx)
		if err != nil {
			return r.abort(err)
		}
		if tracker != nil {
			tracker.Page(len(items))
		}

		pending = append(pending, items...)
		for len(pending) >= r.batchSize {
			if err := r.checkpoint(ctx); err != nil {
				return r.abort(err)
			}
			r.submit(pending[:r.batchSize])
			pending = pending[r.batchSize:]
		}

		if !more {
			break
		}
	}

	if len(pending) > 0 {
		if err := r.checkpoint(ctx); err != nil {
			return r.abort(err)
		}
		r.submit(pending)
	}
	close(r.tasks)

	for r.completed < r.submitted {
		if err := r.checkpoint(ctx); err != nil {
			return r.abortClosed(err)
		}
		r.handle(<-r.results)
	}

	return r.done, r.errs, nil
}

// submit hands a task to the pool. While the task channel is full it
// consumes finished results instead of blocking, which keeps the pool fed
// and bounds in-flight work.
func (r *run) submit(items []s3types.WorkItem) {
	t := task{items: append([]s3types.WorkItem(nil), items...)}
	if r.scheduler.OnSubmit != nil {
		r.scheduler.OnSubmit(len(t.items))
	}

	for {
		select {
		case r.tasks <- t:
			r.submitted++
			return
		case res := <-r.results:
			r.handle(res)
		}
	}
}

func (r *run) handle(res result) {
	r.completed++
	r.done += res.done
	r.errs = append(r.errs, res.errs...)
}

// checkpoint enforces pause and cancel between units of driver work.
// While paused it re-checks the control signal at a fixed interval.
func (r *run) checkpoint(ctx context.Context) error {
	control := r.scheduler.control

	for control.IsPaused() && !control.IsCancelled() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pausePollInterval):
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if control.IsCancelled() {
		return errors.ErrCancelled
	}
	return nil
}

// abort stops the run without waiting for in-flight tasks. Workers observe
// the stop channel and exit after their current task.
func (r *run) abort(err error) (int, []s3types.ItemError, error) {
	close(r.stop)
	close(r.tasks)
	r.drainBuffered()
	r.logAbort(err)
	return r.done, r.errs, err
}

// abortClosed is abort for the drain phase, after the task channel has
// already been closed.
func (r *run) abortClosed(err error) (int, []s3types.ItemError, error) {
	close(r.stop)
	r.drainBuffered()
	r.logAbort(err)
	return r.done, r.errs, err
}

// drainBuffered collects results that finished before the stop signal, so
// the reported completion count reflects work that actually happened.
func (r *run) drainBuffered() {
	for {
		select {
		case res := <-r.results:
			r.handle(res)
		default:
			return
		}
	}
}

func (r *run) logAbort(err error) {
	r.scheduler.logger.Debug().
		Int("submitted", r.submitted).
		Int("completed", r.completed).
		Int("items_done", r.done).
		Err(err).
		Msg("run stopped early")
}
