package s3clean

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coviedoy1989/CleanAwsS3/errors"
	"github.com/coviedoy1989/CleanAwsS3/internal/enumerate"
	"github.com/coviedoy1989/CleanAwsS3/internal/operations/delete"
	"github.com/coviedoy1989/CleanAwsS3/internal/progress"
	"github.com/coviedoy1989/CleanAwsS3/internal/scheduler"
	"github.com/coviedoy1989/CleanAwsS3/internal/validation"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

// Clean deletes every object under prefix in bucket. An empty prefix cleans
// the whole bucket. On versioned buckets (including suspended versioning)
// all object versions and delete markers are removed; otherwise only
// current objects are.
//
// Deletion streams listing pages into batches of up to 1000 keys and runs
// the batches on a bounded worker pool. Individual object failures are
// recorded in the outcome and never abort the run.
//
// The returned error is non-nil only when the outcome status is Failed.
// Cancellation through a ControlSignal yields the Cancelled outcome with a
// nil error. Objects deleted before a failure or cancellation stay deleted.
func (c *Client) Clean(ctx context.Context, bucket, prefix string, opts ...s3types.RunOption) (outcome *s3types.OperationOutcome, err error) {
	cfg := runConfig(DefaultDeleteWorkers, opts)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			outcome, err = c.failedOutcome("clean", bucket, start, fmt.Errorf("panic: %v", r))
		}
	}()

	logger := c.logger.With().
		Str("op", "clean").
		Str("bucket", bucket).
		Str("prefix", prefix).
		Logger()

	if err := validation.ValidatePrefix(prefix); err != nil {
		return c.failedOutcome("clean", bucket, start, err)
	}
	if err := c.verifyBucket(ctx, "clean", bucket); err != nil {
		return c.failedOutcome("clean", bucket, start, err)
	}
	prefix = strings.Trim(prefix, "/")

	versioned := c.IsVersioned(ctx, bucket)
	logger.Info().
		Bool("versioned", versioned).
		Int("workers", cfg.Workers).
		Msg("starting clean")

	var src enumerate.Source
	if versioned {
		src = enumerate.NewVersionSource(c.s3Client, bucket, prefix)
	} else {
		src = enumerate.NewObjectSource(c.s3Client, bucket, prefix)
	}

	tracker := progress.NewTracker(cfg.Progress, logger)
	deleter := delete.NewBatchDeleter(c.s3Client, logger)

	sched := scheduler.New(cfg.Workers, cfg.Control, logger)
	sched.OnSubmit = tracker.BatchCreated

	done, itemErrs, runErr := sched.Run(ctx, src, delete.MaxBatchSize,
		func(ctx context.Context, items []s3types.WorkItem) (int, []s3types.ItemError) {
			res := deleter.Delete(ctx, bucket, items)
			tracker.BatchDeleted(res.Deleted)
			return res.Deleted, res.Errors
		},
		tracker,
	)

	pages, batches, _ := tracker.Snapshot()
	logger.Debug().
		Int("pages", pages).
		Int("batches_created", batches).
		Msg("dispatch finished")

	return c.finishOutcome("clean", bucket, start, done, itemErrs, runErr,
		fmt.Sprintf("deleted %d objects from %s", done, bucket),
		fmt.Sprintf("cancelled after deleting %d objects from %s", done, bucket),
	)
}

// finishOutcome maps a scheduler result onto the terminal outcome.
// Item errors ride along on every status; only infrastructure errors flip
// the status to Failed.
func (c *Client) finishOutcome(
	op, bucket string,
	start time.Time,
	done int,
	itemErrs []s3types.ItemError,
	runErr error,
	completedMsg, cancelledMsg string,
) (*s3types.OperationOutcome, error) {
	outcome := &s3types.OperationOutcome{
		ItemsDone:  done,
		ItemErrors: itemErrs,
		Duration:   time.Since(start),
	}

	switch {
	case runErr == nil:
		outcome.Status = s3types.StatusCompleted
		outcome.Message = completedMsg
		c.logger.Info().
			Str("op", op).
			Str("bucket", bucket).
			Int("items_done", done).
			Int("item_errors", len(itemErrs)).
			Dur("duration", outcome.Duration).
			Msg("operation completed")
		return outcome, nil

	case errors.IsCancelled(runErr):
		outcome.Status = s3types.StatusCancelled
		outcome.Message = cancelledMsg
		c.logger.Info().
			Str("op", op).
			Str("bucket", bucket).
			Int("items_done", done).
			Msg("operation cancelled")
		return outcome, nil

	default:
		outcome.Status = s3types.StatusFailed
		outcome.Message = fmt.Sprintf("%s failed: %v", op, runErr)
		c.logger.Error().
			Str("op", op).
			Str("bucket", bucket).
			Int("items_done", done).
			Err(runErr).
			Msg("operation failed")
		return outcome, runErr
	}
}

// failedOutcome builds the Failed outcome for errors raised before any work
// was scheduled.
func (c *Client) failedOutcome(op, bucket string, start time.Time, err error) (*s3types.OperationOutcome, error) {
	c.logger.Error().
		Str("op", op).
		Str("bucket", bucket).
		Err(err).
		Msg("operation failed")

	return &s3types.OperationOutcome{
		Status:   s3types.StatusFailed,
		Message:  fmt.Sprintf("%s failed: %v", op, err),
		Duration: time.Since(start),
	}, err
}
