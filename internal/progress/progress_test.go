package progress

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTracker_BatchDeletedReportsEveryBatch(t *testing.T) {
	var messages []string
	tracker := NewTracker(func(msg string) { messages = append(messages, msg) }, zerolog.Nop())

	tracker.BatchDeleted(1000)
	tracker.BatchDeleted(500)

	_, _, itemsDone := tracker.Snapshot()
	assert.Equal(t, 1500, itemsDone)
	assert.Len(t, messages, 2)
	assert.Contains(t, messages[1], "1500")
}

func TestTracker_BatchCreatedThrottled(t *testing.T) {
	var messages []string
	tracker := NewTracker(func(msg string) { messages = append(messages, msg) }, zerolog.Nop())

	for i := 0; i < 12; i++ {
		tracker.BatchCreated(1000)
	}

	// reported on the 5th and 10th batch only
	assert.Len(t, messages, 2)
}

func TestTracker_TaskCreatedCountsSilently(t *testing.T) {
	var messages []string
	tracker := NewTracker(func(msg string) { messages = append(messages, msg) }, zerolog.Nop())

	for i := 0; i < 37; i++ {
		tracker.TaskCreated()
	}

	_, created, _ := tracker.Snapshot()
	assert.Equal(t, 37, created)
	assert.Empty(t, messages)
}

func TestTracker_CopyDoneThrottled(t *testing.T) {
	var messages []string
	tracker := NewTracker(func(msg string) { messages = append(messages, msg) }, zerolog.Nop())

	for i := 0; i < 120; i++ {
		tracker.CopyDone()
	}

	_, _, itemsDone := tracker.Snapshot()
	assert.Equal(t, 120, itemsDone)
	// reported at 50 and 100
	assert.Len(t, messages, 2)
	assert.Contains(t, messages[0], "50")
}

func TestTracker_EmptyPagesThrottled(t *testing.T) {
	var messages []string
	tracker := NewTracker(func(msg string) { messages = append(messages, msg) }, zerolog.Nop())

	for i := 0; i < 25; i++ {
		tracker.Page(0)
	}
	tracker.Page(3)

	pages, _, _ := tracker.Snapshot()
	assert.Equal(t, 26, pages)
	// reported at the 10th and 20th empty page; non-empty pages are silent
	assert.Len(t, messages, 2)
}

func TestTracker_NilCallback(t *testing.T) {
	tracker := NewTracker(nil, zerolog.Nop())

	tracker.Page(0)
	tracker.BatchCreated(10)
	tracker.BatchDeleted(10)
	tracker.CopyDone()

	pages, created, itemsDone := tracker.Snapshot()
	assert.Equal(t, 1, pages)
	assert.Equal(t, 1, created)
	assert.Equal(t, 11, itemsDone)
}

func TestTracker_ConcurrentUse(t *testing.T) {
	var mu sync.Mutex
	count := 0
	tracker := NewTracker(func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	}, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tracker.CopyDone()
			}
		}()
	}
	wg.Wait()

	_, _, itemsDone := tracker.Snapshot()
	assert.Equal(t, 1000, itemsDone)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 20, count) // 1000 copies / 50 per report
}
