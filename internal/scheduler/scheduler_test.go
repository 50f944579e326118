package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coviedoy1989/CleanAwsS3/errors"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

// sliceSource replays a fixed set of pages, optionally running a hook
// before each page is returned.
type sliceSource struct {
	pages  [][]s3types.WorkItem
	next   int
	err    error
	onPage func(page int)
}

func (s *sliceSource) Next(ctx context.Context) ([]s3types.WorkItem, bool, error) {
	if s.onPage != nil {
		s.onPage(s.next)
	}
	if s.err != nil && s.next == len(s.pages) {
		return nil, false, s.err
	}
	if s.next >= len(s.pages) {
		return nil, false, nil
	}
	page := s.pages[s.next]
	s.next++
	more := s.next < len(s.pages) || s.err != nil
	return page, more, nil
}

// pageCounter is a minimal PageTracker.
type pageCounter struct {
	mu    sync.Mutex
	pages []int
}

func (p *pageCounter) Page(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages = append(p.pages, n)
}

func makeItems(n int, prefix string) []s3types.WorkItem {
	items := make([]s3types.WorkItem, n)
	for i := range items {
		items[i] = s3types.WorkItem{Key: fmt.Sprintf("%s/%06d", prefix, i)}
	}
	return items
}

// countingExec returns a TaskFunc that marks every item done and records
// task sizes.
func countingExec(sizes *[]int, mu *sync.Mutex) TaskFunc {
	return func(ctx context.Context, items []s3types.WorkItem) (int, []s3types.ItemError) {
		mu.Lock()
		*sizes = append(*sizes, len(items))
		mu.Unlock()
		return len(items), nil
	}
}

func TestScheduler_RunCompletes(t *testing.T) {
	src := &sliceSource{pages: [][]s3types.WorkItem{
		makeItems(1000, "p0"),
		makeItems(1000, "p1"),
		makeItems(500, "p2"),
	}}

	var mu sync.Mutex
	var sizes []int

	var submitted atomic.Int32
	sched := New(4, s3types.NewControlSignal(), zerolog.Nop())
	sched.OnSubmit = func(n int) { submitted.Add(1) }

	tracker := &pageCounter{}
	done, itemErrs, err := sched.Run(context.Background(), src, 1000, countingExec(&sizes, &mu), tracker)

	require.NoError(t, err)
	assert.Equal(t, 2500, done)
	assert.Empty(t, itemErrs)
	assert.Equal(t, int32(3), submitted.Load())
	assert.Equal(t, []int{1000, 1000, 500}, tracker.pages)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, sizes, 3)
}

func TestScheduler_BatchesSpanPages(t *testing.T) {
	// 600 + 600 items with a 1000 batch limit should produce tasks of
	// 1000 and 200, not 600 and 600
	src := &sliceSource{pages: [][]s3types.WorkItem{
		makeItems(600, "p0"),
		makeItems(600, "p1"),
	}}

	var mu sync.Mutex
	var sizes []int

	sched := New(1, s3types.NewControlSignal(), zerolog.Nop())
	done, _, err := sched.Run(context.Background(), src, 1000, countingExec(&sizes, &mu), nil)

	require.NoError(t, err)
	assert.Equal(t, 1200, done)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []int{1000, 200}, sizes)
}

func TestScheduler_SingleItemTasks(t *testing.T) {
	src := &sliceSource{pages: [][]s3types.WorkItem{makeItems(25, "p0")}}

	var mu sync.Mutex
	var sizes []int

	sched := New(8, s3types.NewControlSignal(), zerolog.Nop())
	done, _, err := sched.Run(context.Background(), src, 1, countingExec(&sizes, &mu), nil)

	require.NoError(t, err)
	assert.Equal(t, 25, done)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, sizes, 25)
	for _, n := range sizes {
		assert.Equal(t, 1, n)
	}
}

func TestScheduler_ItemErrorsAreSoft(t *testing.T) {
	src := &sliceSource{pages: [][]s3types.WorkItem{makeItems(10, "p0")}}

	exec := func(ctx context.Context, items []s3types.WorkItem) (int, []s3types.ItemError) {
		errs := []s3types.ItemError{{Key: items[0].Key, Message: "access denied"}}
		return len(items) - 1, errs
	}

	sched := New(2, s3types.NewControlSignal(), zerolog.Nop())
	done, itemErrs, err := sched.Run(context.Background(), src, 4, exec, nil)

	require.NoError(t, err)
	assert.Equal(t, 7, done) // 10 items in tasks of 4+4+2, one error each
	assert.Len(t, itemErrs, 3)
}

func TestScheduler_ListingErrorAborts(t *testing.T) {
	listErr := errors.NewBucketError("listObjects", "b", errors.ErrListing)
	src := &sliceSource{
		pages: [][]s3types.WorkItem{makeItems(100, "p0")},
		err:   listErr,
	}

	var mu sync.Mutex
	var sizes []int

	sched := New(2, s3types.NewControlSignal(), zerolog.Nop())
	done, _, err := sched.Run(context.Background(), src, 1000, countingExec(&sizes, &mu), nil)

	require.Error(t, err)
	assert.True(t, errors.IsListing(err))
	// the pending partial batch is dropped on abort
	assert.Equal(t, 0, done)
}

func TestScheduler_CancelBeforeStart(t *testing.T) {
	control := s3types.NewControlSignal()
	control.Cancel()

	src := &sliceSource{pages: [][]s3types.WorkItem{makeItems(10, "p0")}}

	sched := New(2, control, zerolog.Nop())
	done, _, err := sched.Run(context.Background(), src, 1000,
		func(ctx context.Context, items []s3types.WorkItem) (int, []s3types.ItemError) {
			t.Error("exec should not run after cancel")
			return 0, nil
		},
		nil,
	)

	require.ErrorIs(t, err, errors.ErrCancelled)
	assert.Equal(t, 0, done)
}

func TestScheduler_CancelMidRun(t *testing.T) {
	control := s3types.NewControlSignal()

	// cancel while pulling the third page; pages one and two were
	// already submitted
	src := &sliceSource{
		pages: [][]s3types.WorkItem{
			makeItems(50, "p0"),
			makeItems(50, "p1"),
			makeItems(50, "p2"),
			makeItems(50, "p3"),
		},
		onPage: func(page int) {
			if page == 2 {
				control.Cancel()
			}
		},
	}

	var executed atomic.Int32
	exec := func(ctx context.Context, items []s3types.WorkItem) (int, []s3types.ItemError) {
		executed.Add(1)
		return len(items), nil
	}

	sched := New(2, control, zerolog.Nop())
	done, _, err := sched.Run(context.Background(), src, 50, exec, nil)

	require.ErrorIs(t, err, errors.ErrCancelled)
	// never more than the two submitted pages, and whatever finished
	// before the stop was counted
	assert.LessOrEqual(t, done, 100)
	assert.LessOrEqual(t, executed.Load(), int32(2))
}

func TestScheduler_PauseResumes(t *testing.T) {
	control := s3types.NewControlSignal()
	control.Pause()

	src := &sliceSource{pages: [][]s3types.WorkItem{makeItems(10, "p0")}}

	go func() {
		time.Sleep(50 * time.Millisecond)
		control.Resume()
	}()

	var mu sync.Mutex
	var sizes []int

	sched := New(2, control, zerolog.Nop())
	start := time.Now()
	done, _, err := sched.Run(context.Background(), src, 1000, countingExec(&sizes, &mu), nil)

	require.NoError(t, err)
	assert.Equal(t, 10, done)
	// the run waited for at least one pause poll before starting
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestScheduler_CancelWhilePaused(t *testing.T) {
	control := s3types.NewControlSignal()
	control.Pause()

	src := &sliceSource{pages: [][]s3types.WorkItem{makeItems(10, "p0")}}

	go func() {
		time.Sleep(50 * time.Millisecond)
		control.Cancel()
	}()

	sched := New(2, control, zerolog.Nop())
	done, _, err := sched.Run(context.Background(), src, 1000,
		func(ctx context.Context, items []s3types.WorkItem) (int, []s3types.ItemError) {
			return len(items), nil
		},
		nil,
	)

	require.ErrorIs(t, err, errors.ErrCancelled)
	assert.Equal(t, 0, done)
}

func TestScheduler_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &sliceSource{pages: [][]s3types.WorkItem{makeItems(10, "p0")}}

	sched := New(2, s3types.NewControlSignal(), zerolog.Nop())
	_, _, err := sched.Run(ctx, src, 1000,
		func(ctx context.Context, items []s3types.WorkItem) (int, []s3types.ItemError) {
			return len(items), nil
		},
		nil,
	)

	require.ErrorIs(t, err, context.Canceled)
}

func TestScheduler_ManyPagesBoundedSubmission(t *testing.T) {
	// 50 single-item pages against one slow-ish worker; the submit path
	// must drain results instead of deadlocking on the bounded channels
	pages := make([][]s3types.WorkItem, 50)
	for i := range pages {
		pages[i] = makeItems(1, fmt.Sprintf("p%d", i))
	}
	src := &sliceSource{pages: pages}

	var executed atomic.Int32
	exec := func(ctx context.Context, items []s3types.WorkItem) (int, []s3types.ItemError) {
		executed.Add(1)
		time.Sleep(time.Millisecond)
		return len(items), nil
	}

	sched := New(1, s3types.NewControlSignal(), zerolog.Nop())
	done, itemErrs, err := sched.Run(context.Background(), src, 1, exec, nil)

	require.NoError(t, err)
	assert.Equal(t, 50, done)
	assert.Empty(t, itemErrs)
	assert.Equal(t, int32(50), executed.Load())
}
