// Package s3types provides shared type definitions for the bulk-operation module.
package s3types

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"
)

// WorkItem is one deletable or copyable unit produced by enumeration.
// VersionID is set only for versioned-bucket deletion entries (object
// versions and delete markers); it is empty for plain-object deletion
// and for copy.
type WorkItem struct {
	// Key is the S3 object key
	Key string

	// VersionID is the object version identifier, if any
	VersionID string

	// DeleteMarker marks the entry as a delete-marker tombstone rather
	// than an object version
	DeleteMarker bool
}

// ItemError records a single failed delete or copy inside an otherwise
// running operation. Item errors are logged and counted; they never abort
// sibling work.
type ItemError struct {
	// Key is the S3 object key that failed
	Key string

	// VersionID is the version ID, if the item carried one
	VersionID string

	// Message is the store-reported error message
	Message string
}

// OperationStatus is the terminal status of a bulk operation.
type OperationStatus string

// Terminal statuses for bulk operations.
const (
	// StatusCompleted means enumeration and draining finished with no
	// infrastructure error and no cancellation observed. Item-level
	// errors do not prevent this status.
	StatusCompleted OperationStatus = "completed"

	// StatusCancelled means a cancellation request was observed at a
	// checkpoint. Work already dispatched ran to completion.
	StatusCancelled OperationStatus = "cancelled"

	// StatusFailed means verification, listing, or the scheduler itself
	// failed. Already-completed deletions or copies are not rolled back.
	StatusFailed OperationStatus = "failed"
)

// OperationOutcome is the terminal result of a Clean or Copy run.
type OperationOutcome struct {
	// Status is the terminal status
	Status OperationStatus

	// Message is a human-readable summary; cancellation text is distinct
	// from failure text so callers can tell a user-initiated stop from
	// an error
	Message string

	// ItemsDone is the number of objects (or versions) deleted or copied
	ItemsDone int

	// ItemErrors holds the per-item failures recorded during the run
	ItemErrors []ItemError

	// Duration is how long the operation took
	Duration time.Duration
}

// Completed reports whether the operation reached the Completed status.
func (o *OperationOutcome) Completed() bool {
	return o.Status == StatusCompleted
}

// Cancelled reports whether the operation was stopped by a ControlSignal.
func (o *OperationOutcome) Cancelled() bool {
	return o.Status == StatusCancelled
}

// ObjectCounts is the result of a CountObjects probe.
type ObjectCounts struct {
	// Objects is the number of current objects in the plain listing
	Objects int

	// Versions is the number of object versions (versioned buckets only)
	Versions int

	// DeleteMarkers is the number of delete markers (versioned buckets only)
	DeleteMarkers int
}

// ProgressFunc receives progress messages during a bulk operation. It may
// be invoked concurrently from multiple goroutines; messages form a log,
// not an ordered sequence.
type ProgressFunc func(message string)

// ClientConfig holds configuration for the bulk-operation client.
type ClientConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	MaxRetries      int
	Timeout         time.Duration
	ForcePathStyle  bool
	CustomAWSConfig *aws.Config
	Logger          *zerolog.Logger
}

// RunConfig holds per-operation configuration applied via functional options.
type RunConfig struct {
	// Workers is the bounded worker-pool size, clamped to [1, 100].
	// Zero selects the per-operation default (10 for delete, 20 for copy).
	Workers int

	// Progress receives throttled progress messages, if non-nil
	Progress ProgressFunc

	// Control is the shared cancel/pause signal, if non-nil
	Control *ControlSignal
}

// Option is a functional option for configuring the client.
type Option func(*ClientConfig)

// RunOption is a functional option for configuring a single Clean or Copy run.
type RunOption func(*RunConfig)
