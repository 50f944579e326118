package delete

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coviedoy1989/CleanAwsS3/internal/testutil"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

func TestBatchDeleter_Delete(t *testing.T) {
	mockClient := &testutil.MockS3Client{
		DeleteObjectsFunc: func(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
			assert.Equal(t, "test-bucket", aws.ToString(params.Bucket))
			require.NotNil(t, params.Delete)
			require.Len(t, params.Delete.Objects, 3)

			assert.Equal(t, "a.txt", aws.ToString(params.Delete.Objects[0].Key))
			assert.Nil(t, params.Delete.Objects[0].VersionId)
			assert.Equal(t, "v1", aws.ToString(params.Delete.Objects[1].VersionId))
			assert.Equal(t, "v2", aws.ToString(params.Delete.Objects[2].VersionId))

			return &s3.DeleteObjectsOutput{}, nil
		},
	}

	deleter := NewBatchDeleter(mockClient, zerolog.Nop())
	res := deleter.Delete(context.Background(), "test-bucket", []s3types.WorkItem{
		{Key: "a.txt"},
		{Key: "b.txt", VersionID: "v1"},
		{Key: "b.txt", VersionID: "v2", DeleteMarker: true},
	})

	assert.Equal(t, 3, res.Deleted)
	assert.Empty(t, res.Errors)
}

func TestBatchDeleter_PartialErrors(t *testing.T) {
	mockClient := &testutil.MockS3Client{
		DeleteObjectsFunc: func(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
			return &s3.DeleteObjectsOutput{
				Errors: []types.Error{
					{
						Key:     aws.String("locked.txt"),
						Code:    aws.String("AccessDenied"),
						Message: aws.String("access denied"),
					},
				},
			}, nil
		},
	}

	deleter := NewBatchDeleter(mockClient, zerolog.Nop())
	res := deleter.Delete(context.Background(), "test-bucket", []s3types.WorkItem{
		{Key: "a.txt"},
		{Key: "locked.txt"},
		{Key: "c.txt"},
	})

	assert.Equal(t, 2, res.Deleted)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "locked.txt", res.Errors[0].Key)
	assert.Equal(t, "access denied", res.Errors[0].Message)
}

func TestBatchDeleter_VersionedPartialErrors(t *testing.T) {
	mockClient := &testutil.MockS3Client{
		DeleteObjectsFunc: func(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
			return &s3.DeleteObjectsOutput{
				Errors: []types.Error{
					{
						Key:       aws.String("file.txt"),
						VersionId: aws.String("v2"),
						Code:      aws.String("AccessDenied"),
					},
				},
			}, nil
		},
	}

	deleter := NewBatchDeleter(mockClient, zerolog.Nop())
	res := deleter.Delete(context.Background(), "test-bucket", []s3types.WorkItem{
		{Key: "file.txt", VersionID: "v1"},
		{Key: "file.txt", VersionID: "v2"},
	})

	// only the matching version is counted as failed
	assert.Equal(t, 1, res.Deleted)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "v2", res.Errors[0].VersionID)
	assert.Equal(t, "AccessDenied", res.Errors[0].Message)
}

func TestBatchDeleter_WholeCallFailure(t *testing.T) {
	mockClient := &testutil.MockS3Client{
		DeleteObjectsFunc: func(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
			return nil, errors.New("connection reset")
		},
	}

	deleter := NewBatchDeleter(mockClient, zerolog.Nop())
	res := deleter.Delete(context.Background(), "test-bucket", []s3types.WorkItem{
		{Key: "a.txt"},
		{Key: "b.txt", VersionID: "v1"},
	})

	// the whole batch becomes item errors, no hard failure
	assert.Equal(t, 0, res.Deleted)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "a.txt", res.Errors[0].Key)
	assert.Equal(t, "v1", res.Errors[1].VersionID)
	assert.Contains(t, res.Errors[0].Message, "connection reset")
}

func TestBatchDeleter_EmptyBatch(t *testing.T) {
	called := false
	mockClient := &testutil.MockS3Client{
		DeleteObjectsFunc: func(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
			called = true
			return &s3.DeleteObjectsOutput{}, nil
		},
	}

	deleter := NewBatchDeleter(mockClient, zerolog.Nop())
	res := deleter.Delete(context.Background(), "test-bucket", nil)

	assert.False(t, called)
	assert.Equal(t, 0, res.Deleted)
	assert.Empty(t, res.Errors)
}
