// Package s3clean provides functional options for configuring client and run behavior.
// These options follow the functional options pattern for clean, composable configuration.
package s3clean

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"

	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

// WithRegion sets the AWS region for S3 operations.
// If not specified, uses the default AWS region from the credential chain.
func WithRegion(region string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with MinIO.
func WithEndpoint(endpoint string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithStaticCredentials sets explicit AWS credentials, bypassing the
// default credential chain. The session token may be empty.
func WithStaticCredentials(accessKeyID, secretAccessKey, sessionToken string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.AccessKeyID = accessKeyID
		c.SecretAccessKey = secretAccessKey
		c.SessionToken = sessionToken
	}
}

// WithMaxRetries sets the maximum number of retry attempts for failed operations.
// Default is 3 retries. Set to 0 to disable retries.
func WithMaxRetries(maxRetries int) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithTimeout sets the timeout for individual S3 calls.
// Default is no timeout (0). Values should be positive durations.
func WithTimeout(timeout time.Duration) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
// This is required for S3-compatible services that don't support virtual hosting.
// Default is false (uses virtual-hosted style).
func WithForcePathStyle(forcePathStyle bool) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
// Use this when you need fine-grained control over AWS SDK configuration.
func WithAWSConfig(config *aws.Config) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithLogger sets the structured logger for the client.
// If not specified, logging is disabled.
func WithLogger(logger zerolog.Logger) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Logger = &logger
	}
}

// WithWorkers sets the worker-pool size for a single Clean or Copy run.
// Values are clamped to [1, 100]. Zero selects the operation default
// (10 for Clean, 20 for Copy).
func WithWorkers(workers int) s3types.RunOption {
	return func(c *s3types.RunConfig) {
		c.Workers = workers
	}
}

// WithProgressFunc sets a callback that receives throttled progress
// messages during a run. The callback may be invoked from multiple
// goroutines.
func WithProgressFunc(fn s3types.ProgressFunc) s3types.RunOption {
	return func(c *s3types.RunConfig) {
		c.Progress = fn
	}
}

// WithControl attaches a shared cancel/pause signal to a run.
// The same signal can be watched by a signal handler or UI goroutine.
func WithControl(control *s3types.ControlSignal) s3types.RunOption {
	return func(c *s3types.RunConfig) {
		c.Control = control
	}
}
