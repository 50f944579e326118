// Package progress tracks counters for long-running bulk operations and
// throttles human-readable status reporting.
//
// All methods are safe for concurrent use. Reporting goes to an optional
// callback plus a structured logger, and is rate limited so that very large
// buckets do not flood the consumer with one message per page or per object.
package progress

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

// Reporting cadence. Empty listing pages, batch creation, and copy
// completions are each reported every Nth event rather than every time.
const (
	emptyPageInterval = 10
	batchInterval     = 5
	copyInterval      = 50
)

// Tracker accumulates progress counters for one operation run.
type Tracker struct {
	mu sync.Mutex

	pages      int
	emptyPages int
	created    int
	itemsDone  int
	copies     int

	report s3types.ProgressFunc
	logger zerolog.Logger
}

// NewTracker builds a tracker reporting to the given callback and logger.
// A nil callback disables callback reporting; counters still accumulate.
func NewTracker(report s3types.ProgressFunc, logger zerolog.Logger) *Tracker {
	return &Tracker{
		report: report,
		logger: logger,
	}
}

// Page records one listing page containing n items.
// Pages with no items are reported at a throttled cadence so a long crawl
// over an already-empty key range still shows signs of life.
func (t *Tracker) Page(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pages++
	if n > 0 {
		return
	}

	t.emptyPages++
	if t.emptyPages%emptyPageInterval == 0 {
		t.emit(fmt.Sprintf("scanned %d pages, no matching objects yet", t.pages))
	}
}

// BatchCreated records that a delete batch of n items was formed.
func (t *Tracker) BatchCreated(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.created++
	if t.created%batchInterval == 0 {
		t.emit(fmt.Sprintf("queued batch %d (%d objects)", t.created, n))
	}
}

// BatchDeleted records that a delete batch finished, removing n items.
// Every completed batch is reported.
func (t *Tracker) BatchDeleted(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.itemsDone += n
	t.emit(fmt.Sprintf("deleted %d objects so far", t.itemsDone))
}

// TaskCreated records that a single-object task was handed to the pool.
// Creation is counted but not reported; copy progress is reported on
// completion instead.
func (t *Tracker) TaskCreated() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.created++
}

// CopyDone records one completed object copy.
func (t *Tracker) CopyDone() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.itemsDone++
	t.copies++
	if t.copies%copyInterval == 0 {
		t.emit(fmt.Sprintf("copied %d objects so far", t.copies))
	}
}

// Snapshot returns the current counters. Created counts delete batches
// or copy tasks handed to the pool, whichever the run dispatches.
func (t *Tracker) Snapshot() (pages, created, itemsDone int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.pages, t.created, t.itemsDone
}

// emit sends a status line to the callback and logger.
// Callers must hold t.mu.
func (t *Tracker) emit(msg string) {
	t.logger.Info().
		Int("pages", t.pages).
		Int("items_done", t.itemsDone).
		Msg(msg)
	if t.report != nil {
		t.report(msg)
	}
}
