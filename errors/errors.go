// Package errors provides error types and handling for bulk S3 operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents an S3 operation error with context about the operation that failed.
// It wraps the underlying AWS SDK error with additional context for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "clean", "copy", "listVersions")
	Op string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("s3clean.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("s3clean.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("s3clean.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("s3clean.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Err:    err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for bulk operation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrBucketNotFound indicates that the requested bucket does not exist
	// or is not accessible with the current credentials.
	ErrBucketNotFound = errors.New("s3clean: bucket not found")

	// ErrPrecondition indicates that an operation precondition failed before
	// any mutation started (missing bucket, bad credentials).
	ErrPrecondition = errors.New("s3clean: precondition failed")

	// ErrListing indicates that a pagination call failed. Listing failures
	// abort the whole operation; per-item failures do not.
	ErrListing = errors.New("s3clean: listing failed")

	// ErrCancelled marks a cooperative stop requested through a ControlSignal.
	// It is not a failure: callers see it as the Cancelled outcome status.
	ErrCancelled = errors.New("s3clean: operation cancelled")

	// ErrInvalidInput indicates that the provided input is invalid.
	ErrInvalidInput = errors.New("s3clean: invalid input")

	// ErrInvalidBucketName indicates that the bucket name is invalid.
	ErrInvalidBucketName = errors.New("s3clean: invalid bucket name")

	// ErrInvalidCredentials indicates that the AWS credentials are invalid.
	ErrInvalidCredentials = errors.New("s3clean: invalid credentials")
)

// IsBucketNotFound checks if an error indicates that a bucket was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// IsCancelled checks if an error marks a cooperative cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsListing checks if an error came from a failed pagination call.
func IsListing(err error) bool {
	return errors.Is(err, ErrListing)
}

// IsInvalidInput checks if an error indicates invalid input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
