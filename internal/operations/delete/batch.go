// Package delete implements batch object deletion.
package delete

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/coviedoy1989/CleanAwsS3/internal/s3api"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

// MaxBatchSize is the maximum number of objects per DeleteObjects call,
// imposed by the S3 API.
const MaxBatchSize = 1000

// BatchDeleter deletes batches of objects, including specific versions and
// delete markers, in single DeleteObjects calls.
type BatchDeleter struct {
	client s3api.S3API
	logger zerolog.Logger
}

// NewBatchDeleter creates a BatchDeleter using the given S3 client.
func NewBatchDeleter(client s3api.S3API, logger zerolog.Logger) *BatchDeleter {
	return &BatchDeleter{
		client: client,
		logger: logger,
	}
}

// Result reports the outcome of one batch deletion.
type Result struct {
	// Deleted is the number of objects the service confirmed removed.
	Deleted int
	// Errors holds per-object failures. A failed object never fails the
	// batch; it is recorded here and the rest of the batch proceeds.
	Errors []s3types.ItemError
}

// Delete removes the given items from bucket in one DeleteObjects call.
// Items carrying a version ID delete that specific version or marker.
//
// Failures are soft: a whole-call error converts every item in the batch
// into an item error, and per-object errors returned by the service are
// collected alongside the successes. Delete never returns a Go error for
// object-level failures.
func (d *BatchDeleter) Delete(ctx context.Context, bucket string, items []s3types.WorkItem) Result {
	if len(items) == 0 {
		return Result{}
	}

	objects := make([]types.ObjectIdentifier, 0, len(items))
	for _, item := range items {
		obj := types.ObjectIdentifier{Key: aws.String(item.Key)}
		if item.VersionID != "" {
			obj.VersionId = aws.String(item.VersionID)
		}
		objects = append(objects, obj)
	}

	result, err := d.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		d.logger.Warn().
			Str("bucket", bucket).
			Int("batch_size", len(items)).
			Err(err).
			Msg("batch delete call failed")
		return Result{Errors: batchFailure(items, err)}
	}

	failed := make(map[string]bool, len(result.Errors))
	res := Result{Errors: make([]s3types.ItemError, 0, len(result.Errors))}
	for _, e := range result.Errors {
		itemErr := s3types.ItemError{}
		if e.Key != nil {
			itemErr.Key = *e.Key
			failed[identity(*e.Key, e.VersionId)] = true
		}
		if e.VersionId != nil {
			itemErr.VersionID = *e.VersionId
		}
		if e.Message != nil {
			itemErr.Message = *e.Message
		} else if e.Code != nil {
			itemErr.Message = *e.Code
		}
		res.Errors = append(res.Errors, itemErr)
	}

	for _, item := range items {
		if !failed[identity(item.Key, aws.String(item.VersionID))] {
			res.Deleted++
		}
	}

	return res
}

// batchFailure converts a whole-call failure into one item error per object.
func batchFailure(items []s3types.WorkItem, err error) []s3types.ItemError {
	itemErrs := make([]s3types.ItemError, 0, len(items))
	for _, item := range items {
		itemErrs = append(itemErrs, s3types.ItemError{
			Key:       item.Key,
			VersionID: item.VersionID,
			Message:   err.Error(),
		})
	}
	return itemErrs
}

func identity(key string, versionID *string) string {
	if versionID == nil || *versionID == "" {
		return key
	}
	return key + "\x00" + *versionID
}
