package s3clean

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coviedoy1989/CleanAwsS3/internal/enumerate"
	copyop "github.com/coviedoy1989/CleanAwsS3/internal/operations/copy"
	"github.com/coviedoy1989/CleanAwsS3/internal/progress"
	"github.com/coviedoy1989/CleanAwsS3/internal/scheduler"
	"github.com/coviedoy1989/CleanAwsS3/internal/validation"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

// Copy copies every object under srcPrefix in srcBucket to dstPrefix in
// dstBucket using server-side copies. Keys are remapped by replacing
// srcPrefix with dstPrefix; the relative layout underneath is preserved.
// Empty prefixes address the bucket root on either side.
//
// Only current object versions are copied. Copies run one object per task
// on a bounded worker pool; individual copy failures are recorded in the
// outcome and never abort the run. Objects already present at a destination
// key are overwritten.
//
// The returned error is non-nil only when the outcome status is Failed.
// Cancellation through a ControlSignal yields the Cancelled outcome with a
// nil error. Objects copied before a failure or cancellation remain.
func (c *Client) Copy(ctx context.Context, srcBucket, srcPrefix, dstBucket, dstPrefix string, opts ...s3types.RunOption) (outcome *s3types.OperationOutcome, err error) {
	cfg := runConfig(DefaultCopyWorkers, opts)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			outcome, err = c.failedOutcome("copy", srcBucket, start, fmt.Errorf("panic: %v", r))
		}
	}()

	logger := c.logger.With().
		Str("op", "copy").
		Str("src_bucket", srcBucket).
		Str("dst_bucket", dstBucket).
		Logger()

	if err := validation.ValidatePrefix(srcPrefix); err != nil {
		return c.failedOutcome("copy", srcBucket, start, err)
	}
	if err := validation.ValidatePrefix(dstPrefix); err != nil {
		return c.failedOutcome("copy", dstBucket, start, err)
	}
	if err := c.verifyBucket(ctx, "copy", srcBucket); err != nil {
		return c.failedOutcome("copy", srcBucket, start, err)
	}
	if err := c.verifyBucket(ctx, "copy", dstBucket); err != nil {
		return c.failedOutcome("copy", dstBucket, start, err)
	}

	srcPrefix = strings.Trim(srcPrefix, "/")
	dstPrefix = strings.Trim(dstPrefix, "/")

	logger.Info().
		Str("src_prefix", srcPrefix).
		Str("dst_prefix", dstPrefix).
		Int("workers", cfg.Workers).
		Msg("starting copy")

	src := enumerate.NewObjectSource(c.s3Client, srcBucket, srcPrefix)
	tracker := progress.NewTracker(cfg.Progress, logger)
	copier := copyop.NewCopier(c.s3Client)

	sched := scheduler.New(cfg.Workers, cfg.Control, logger)
	sched.OnSubmit = func(int) { tracker.TaskCreated() }

	done, itemErrs, runErr := sched.Run(ctx, src, 1,
		func(ctx context.Context, items []s3types.WorkItem) (int, []s3types.ItemError) {
			var copied int
			var errs []s3types.ItemError
			for _, item := range items {
				dstKey := copyop.DestinationKey(item.Key, srcPrefix, dstPrefix)
				if err := copier.Copy(ctx, srcBucket, item.Key, dstBucket, dstKey); err != nil {
					logger.Warn().
						Str("key", item.Key).
						Err(err).
						Msg("object copy failed")
					errs = append(errs, s3types.ItemError{
						Key:     item.Key,
						Message: err.Error(),
					})
					continue
				}
				copied++
				tracker.CopyDone()
			}
			return copied, errs
		},
		tracker,
	)

	pages, tasks, _ := tracker.Snapshot()
	logger.Debug().
		Int("pages", pages).
		Int("tasks_created", tasks).
		Msg("dispatch finished")

	return c.finishOutcome("copy", srcBucket, start, done, itemErrs, runErr,
		fmt.Sprintf("copied %d objects from %s to %s", done, srcBucket, dstBucket),
		fmt.Sprintf("cancelled after copying %d objects from %s to %s", done, srcBucket, dstBucket),
	)
}
