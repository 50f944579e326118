package s3clean

import (
	"context"
	"strings"

	"github.com/coviedoy1989/CleanAwsS3/internal/enumerate"
	"github.com/coviedoy1989/CleanAwsS3/internal/validation"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

// CountObjects walks the bucket under prefix and returns object counts.
// For unversioned buckets only Objects is populated; for versioned buckets
// Versions and DeleteMarkers are counted from the full version listing and
// Objects counts the current listing separately.
//
// Counting streams pages and holds no listing in memory, but it still
// visits every key; on very large buckets it takes as long as a crawl.
func (c *Client) CountObjects(ctx context.Context, bucket, prefix string) (*s3types.ObjectCounts, error) {
	if err := validation.ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	if err := c.verifyBucket(ctx, "countObjects", bucket); err != nil {
		return nil, err
	}
	prefix = strings.Trim(prefix, "/")

	counts := &s3types.ObjectCounts{}

	src := enumerate.NewObjectSource(c.s3Client, bucket, prefix)
	for {
		items, more, err := src.Next(ctx)
		if err != nil {
			return nil, err
		}
		counts.Objects += len(items)
		if !more {
			break
		}
	}

	if !c.IsVersioned(ctx, bucket) {
		return counts, nil
	}

	vsrc := enumerate.NewVersionSource(c.s3Client, bucket, prefix)
	for {
		items, more, err := vsrc.Next(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.DeleteMarker {
				counts.DeleteMarkers++
			} else {
				counts.Versions++
			}
		}
		if !more {
			break
		}
	}

	return counts, nil
}
