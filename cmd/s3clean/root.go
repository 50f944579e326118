package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	s3clean "github.com/coviedoy1989/CleanAwsS3"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

var rootCmd = &cobra.Command{
	Use:   "s3clean",
	Short: "s3clean - bulk maintenance for S3 buckets",
	Long: `s3clean performs bulk maintenance on AWS S3 buckets.

It can empty a bucket (including all versions and delete markers on
versioned buckets), copy key ranges between buckets with prefix remapping,
and count objects. Listings are streamed, so bucket size does not matter.

Press Ctrl-C once to stop an operation cleanly; work already dispatched
finishes and the item count is reported. Press Ctrl-C twice to abort.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	flagRegion    string
	flagEndpoint  string
	flagPathStyle bool
	flagAccessKey string
	flagSecretKey string
	flagToken     string
	flagRetries   int
	flagTimeout   time.Duration
	flagVerbose   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "AWS region (default: credential chain)")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "Custom S3 endpoint URL (for MinIO and friends)")
	rootCmd.PersistentFlags().BoolVar(&flagPathStyle, "path-style", false, "Use path-style addressing")
	rootCmd.PersistentFlags().StringVar(&flagAccessKey, "access-key", "", "AWS access key ID (default: credential chain)")
	rootCmd.PersistentFlags().StringVar(&flagSecretKey, "secret-key", "", "AWS secret access key")
	rootCmd.PersistentFlags().StringVar(&flagToken, "session-token", "", "AWS session token")
	rootCmd.PersistentFlags().IntVar(&flagRetries, "retries", 3, "Maximum retry attempts per S3 call")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-call timeout, 0 for none")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a console logger at the level selected by --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// newClient assembles a client from the persistent flags.
func newClient(logger zerolog.Logger) (*s3clean.Client, error) {
	opts := []s3types.Option{
		s3clean.WithMaxRetries(flagRetries),
		s3clean.WithLogger(logger),
	}
	if flagRegion != "" {
		opts = append(opts, s3clean.WithRegion(flagRegion))
	}
	if flagEndpoint != "" {
		opts = append(opts, s3clean.WithEndpoint(flagEndpoint))
	}
	if flagPathStyle {
		opts = append(opts, s3clean.WithForcePathStyle(true))
	}
	if flagAccessKey != "" {
		opts = append(opts, s3clean.WithStaticCredentials(flagAccessKey, flagSecretKey, flagToken))
	}
	if flagTimeout > 0 {
		opts = append(opts, s3clean.WithTimeout(flagTimeout))
	}
	return s3clean.New(opts...)
}

// watchInterrupt wires SIGINT/SIGTERM to the control signal. The first
// signal requests a cooperative stop; the second exits immediately.
// The returned func releases the handler.
func watchInterrupt(control *s3types.ControlSignal, logger zerolog.Logger) func() {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-ch
		logger.Warn().Msg("stop requested, letting in-flight work finish (Ctrl-C again to abort)")
		control.Cancel()
		<-ch
		os.Exit(130)
	}()

	return func() { signal.Stop(ch) }
}

// printOutcome writes the operation result to stdout and returns an exit
// error when the run failed.
func printOutcome(outcome *s3types.OperationOutcome, err error) error {
	if outcome != nil {
		fmt.Printf("%s (%d items, %d item errors, %s)\n",
			outcome.Message, outcome.ItemsDone, len(outcome.ItemErrors), outcome.Duration.Round(time.Millisecond))
		for _, ie := range outcome.ItemErrors {
			if ie.VersionID != "" {
				fmt.Printf("  failed: %s@%s: %s\n", ie.Key, ie.VersionID, ie.Message)
			} else {
				fmt.Printf("  failed: %s: %s\n", ie.Key, ie.Message)
			}
		}
	}
	return err
}
