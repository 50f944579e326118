// Package copy implements server-side object copies and destination key
// remapping between buckets.
package copy

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/coviedoy1989/CleanAwsS3/errors"
	"github.com/coviedoy1989/CleanAwsS3/internal/s3api"
)

// Copier performs server-side copies between buckets.
type Copier struct {
	client s3api.S3API
}

// NewCopier creates a Copier using the given S3 client.
func NewCopier(client s3api.S3API) *Copier {
	return &Copier{client: client}
}

// Copy copies one object from srcBucket/srcKey to dstBucket/dstKey using a
// single server-side CopyObject call. The object data never transits the
// caller.
func (c *Copier) Copy(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	_, err := c.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dstBucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(srcBucket + "/" + srcKey),
	})
	if err != nil {
		return errors.NewObjectError("copyObject", dstBucket, dstKey, err)
	}
	return nil
}

// DestinationKey maps a source object key into the destination prefix.
// The source prefix is stripped from the front of the key, any leading
// slashes on the remainder are dropped, and the remainder is joined under
// dstPrefix. A key equal to its prefix maps to dstPrefix itself.
//
// Prefixes are expected to already be normalized (no surrounding slashes).
func DestinationKey(srcKey, srcPrefix, dstPrefix string) string {
	rel := strings.TrimPrefix(srcKey, srcPrefix)
	rel = strings.TrimLeft(rel, "/")

	if rel == "" {
		return dstPrefix
	}
	if dstPrefix == "" {
		return rel
	}
	return dstPrefix + "/" + rel
}
