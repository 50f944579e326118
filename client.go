// Package s3clean provides client initialization and configuration.
//
// The Client provides a high-level interface for bulk S3 maintenance,
// supporting bucket cleaning, cross-bucket copies, and object counting
// with bounded concurrency, cooperative cancellation, and progress
// reporting.
package s3clean

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/coviedoy1989/CleanAwsS3/errors"
	"github.com/coviedoy1989/CleanAwsS3/internal/s3api"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

// Default and maximum worker-pool sizes for bulk operations.
const (
	// DefaultDeleteWorkers is the pool size used by Clean when none is set.
	DefaultDeleteWorkers = 10

	// DefaultCopyWorkers is the pool size used by Copy when none is set.
	DefaultCopyWorkers = 20

	// MaxWorkers caps any requested pool size.
	MaxWorkers = 100
)

// Client represents a bulk-operation S3 client with configurable options.
// It is safe for concurrent use; each operation carries its own run state.
type Client struct {
	// s3Client is the underlying AWS SDK S3 client
	s3Client s3api.S3API

	// config holds the AWS configuration
	config aws.Config

	// logger receives structured operational logs
	logger zerolog.Logger
}

// New creates a new client with the provided options.
// It loads AWS credentials using the default credential chain unless
// static credentials or a custom AWS config are supplied.
//
// Example:
//
//	client, err := s3clean.New(
//	    s3clean.WithRegion("us-west-2"),
//	    s3clean.WithMaxRetries(3),
//	)
func New(opts ...s3types.Option) (*Client, error) {
	clientCfg := &s3types.ClientConfig{
		MaxRetries: 3,
		Timeout:    0,
	}

	for _, opt := range opts {
		opt(clientCfg)
	}

	var cfg aws.Config
	var err error

	if clientCfg.CustomAWSConfig != nil {
		cfg = *clientCfg.CustomAWSConfig
	} else {
		cfg, err = loadConfig(clientCfg)
		if err != nil {
			return nil, errors.NewError("client initialization", err)
		}
	}

	if clientCfg.Region != "" {
		cfg.Region = clientCfg.Region
	} else if cfg.Region == "" {
		cfg.Region = "us-east-1" // AWS default region
	}

	if clientCfg.MaxRetries > 0 {
		cfg.RetryMaxAttempts = clientCfg.MaxRetries
	}

	var s3Opts []func(*s3.Options)

	if clientCfg.Endpoint != "" {
		endpoint := clientCfg.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	if clientCfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	if clientCfg.Timeout > 0 {
		httpClient := &http.Client{
			Timeout: clientCfg.Timeout,
		}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	logger := zerolog.Nop()
	if clientCfg.Logger != nil {
		logger = *clientCfg.Logger
	}

	return &Client{
		s3Client: s3.NewFromConfig(cfg, s3Opts...),
		config:   cfg,
		logger:   logger,
	}, nil
}

// NewWithClient creates a client with a custom S3API implementation.
// This is primarily used for testing with mocked clients.
func NewWithClient(s3Client s3api.S3API) *Client {
	return &Client{
		s3Client: s3Client,
		config:   aws.Config{},
		logger:   zerolog.Nop(),
	}
}

// loadConfig builds an AWS config from the default chain, overlaying static
// credentials when the options supplied them.
func loadConfig(clientCfg *s3types.ClientConfig) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error

	if clientCfg.AccessKeyID != "" || clientCfg.SecretAccessKey != "" {
		if clientCfg.AccessKeyID == "" || clientCfg.SecretAccessKey == "" {
			return aws.Config{}, errors.ErrInvalidCredentials
		}
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				clientCfg.AccessKeyID,
				clientCfg.SecretAccessKey,
				clientCfg.SessionToken,
			),
		))
	}

	return config.LoadDefaultConfig(context.Background(), loadOpts...)
}

// runConfig applies run options over per-operation defaults and clamps the
// worker count to [1, MaxWorkers].
func runConfig(defaultWorkers int, opts []s3types.RunOption) *s3types.RunConfig {
	cfg := &s3types.RunConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Workers == 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Workers > MaxWorkers {
		cfg.Workers = MaxWorkers
	}

	return cfg
}
