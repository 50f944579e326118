package s3clean

import (
	"context"
	stderrors "errors"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/coviedoy1989/CleanAwsS3/errors"
	"github.com/coviedoy1989/CleanAwsS3/internal/validation"
)

// Ping verifies that the account is reachable with the current credentials
// by issuing a ListBuckets call.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return errors.NewError("ping", errors.ErrInvalidCredentials).WithMessage(err.Error())
	}
	return nil
}

// ListBuckets returns the names of all buckets owned by the account,
// sorted alphabetically.
func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	result, err := c.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, errors.NewError("listBuckets", err)
	}

	names := make([]string, 0, len(result.Buckets))
	for _, b := range result.Buckets {
		if b.Name != nil {
			names = append(names, *b.Name)
		}
	}
	sort.Strings(names)

	return names, nil
}

// BucketExists reports whether the bucket exists and is accessible with the
// current credentials. A missing bucket is not an error; transport and
// permission failures are.
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return false, err
	}

	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if isBucketMissing(err) {
			return false, nil
		}
		return false, errors.NewBucketError("headBucket", bucket, err)
	}

	return true, nil
}

// IsVersioned reports whether versioning is enabled or suspended on the
// bucket. Buckets that were ever versioned keep their version history, so
// suspended counts as versioned for cleaning purposes.
//
// Failure to read the versioning state is soft: the bucket is treated as
// unversioned and the error is logged, matching the most common cause
// (s3:GetBucketVersioning not granted).
func (c *Client) IsVersioned(ctx context.Context, bucket string) bool {
	result, err := c.s3Client.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		c.logger.Warn().
			Str("bucket", bucket).
			Err(err).
			Msg("versioning state unavailable, assuming unversioned")
		return false
	}

	return result.Status == types.BucketVersioningStatusEnabled ||
		result.Status == types.BucketVersioningStatusSuspended
}

// verifyBucket validates the bucket name and confirms the bucket exists,
// returning ErrBucketNotFound wrapped in ErrPrecondition context otherwise.
func (c *Client) verifyBucket(ctx context.Context, op, bucket string) error {
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return errors.NewBucketError(op, bucket, errors.ErrPrecondition).WithMessage(err.Error())
	}
	if !exists {
		return errors.NewBucketError(op, bucket, errors.ErrBucketNotFound)
	}
	return nil
}

// isBucketMissing detects the not-found family of HeadBucket errors.
func isBucketMissing(err error) bool {
	var notFound *types.NotFound
	if stderrors.As(err, &notFound) {
		return true
	}
	var noSuchBucket *types.NoSuchBucket
	return stderrors.As(err, &noSuchBucket)
}
