// Package enumerate provides streaming paginated access to bucket contents.
//
// Sources pull one page of keys at a time from S3 so callers never hold a
// full bucket listing in memory. Versioned sources flatten object versions
// and delete markers into a single item stream per page.
package enumerate

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/coviedoy1989/CleanAwsS3/errors"
	"github.com/coviedoy1989/CleanAwsS3/internal/s3api"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

// PageSize is the maximum number of keys requested per listing call.
// It matches the S3 listing API maximum.
const PageSize = 1000

// Source yields pages of work items from a bucket listing.
// Next returns the items of the next page and whether more pages remain.
// Once it returns more=false the source is exhausted and further calls
// return empty pages.
type Source interface {
	Next(ctx context.Context) (items []s3types.WorkItem, more bool, err error)
}

// NewObjectSource returns a Source that pages through current objects
// under prefix using ListObjectsV2.
func NewObjectSource(client s3api.S3API, bucket, prefix string) Source {
	return &objectSource{
		client: client,
		bucket: bucket,
		prefix: prefix,
		more:   true,
	}
}

// NewVersionSource returns a Source that pages through all object versions
// and delete markers under prefix using ListObjectVersions.
func NewVersionSource(client s3api.S3API, bucket, prefix string) Source {
	return &versionSource{
		client: client,
		bucket: bucket,
		prefix: prefix,
		more:   true,
	}
}

// objectSource pages through current objects with a continuation token.
type objectSource struct {
	client s3api.S3API
	bucket string
	prefix string

	token *string
	more  bool
}

func (s *objectSource) Next(ctx context.Context) ([]s3types.WorkItem, bool, error) {
	if !s.more {
		return nil, false, nil
	}

	input := &s3.ListObjectsV2Input{
		Bucket:            aws.String(s.bucket),
		MaxKeys:           aws.Int32(PageSize),
		ContinuationToken: s.token,
	}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	result, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		s.more = false
		return nil, false, errors.NewBucketError("listObjects", s.bucket, errors.ErrListing).
			WithMessage(err.Error())
	}

	items := make([]s3types.WorkItem, 0, len(result.Contents))
	for _, obj := range result.Contents {
		if obj.Key == nil {
			continue
		}
		items = append(items, s3types.WorkItem{Key: *obj.Key})
	}

	s.more = result.IsTruncated != nil && *result.IsTruncated
	if s.more {
		s.token = result.NextContinuationToken
	}

	return items, s.more, nil
}

// versionSource pages through object versions and delete markers with
// key/version-id markers. Each page flattens versions first, then markers.
type versionSource struct {
	client s3api.S3API
	bucket string
	prefix string

	keyMarker       *string
	versionIDMarker *string
	more            bool
}

func (s *versionSource) Next(ctx context.Context) ([]s3types.WorkItem, bool, error) {
	if !s.more {
		return nil, false, nil
	}

	input := &s3.ListObjectVersionsInput{
		Bucket:          aws.String(s.bucket),
		MaxKeys:         aws.Int32(PageSize),
		KeyMarker:       s.keyMarker,
		VersionIdMarker: s.versionIDMarker,
	}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	result, err := s.client.ListObjectVersions(ctx, input)
	if err != nil {
		s.more = false
		return nil, false, errors.NewBucketError("listVersions", s.bucket, errors.ErrListing).
			WithMessage(err.Error())
	}

	items := make([]s3types.WorkItem, 0, len(result.Versions)+len(result.DeleteMarkers))
	for _, v := range result.Versions {
		if v.Key == nil {
			continue
		}
		item := s3types.WorkItem{Key: *v.Key}
		if v.VersionId != nil {
			item.VersionID = *v.VersionId
		}
		items = append(items, item)
	}
	for _, m := range result.DeleteMarkers {
		if m.Key == nil {
			continue
		}
		item := s3types.WorkItem{Key: *m.Key, DeleteMarker: true}
		if m.VersionId != nil {
			item.VersionID = *m.VersionId
		}
		items = append(items, item)
	}

	s.more = result.IsTruncated != nil && *result.IsTruncated
	if s.more {
		s.keyMarker = result.NextKeyMarker
		s.versionIDMarker = result.NextVersionIdMarker
	}

	return items, s.more, nil
}
