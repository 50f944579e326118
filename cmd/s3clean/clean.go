package main

import (
	"fmt"

	"github.com/spf13/cobra"

	s3clean "github.com/coviedoy1989/CleanAwsS3"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

var cleanWorkers int

var cleanCmd = &cobra.Command{
	Use:   "clean BUCKET [PREFIX]",
	Short: "Delete every object under a prefix",
	Long: `Delete every object under PREFIX in BUCKET. With no PREFIX the whole
bucket is emptied. On versioned buckets all object versions and delete
markers are removed, leaving no history behind.

Example:
  s3clean clean my-bucket tmp/ --workers 20`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().IntVar(&cleanWorkers, "workers", 0, "Delete worker count (default 10, max 100)")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	client, err := newClient(logger)
	if err != nil {
		return err
	}

	bucket := args[0]
	prefix := ""
	if len(args) == 2 {
		prefix = args[1]
	}

	control := s3types.NewControlSignal()
	defer watchInterrupt(control, logger)()

	outcome, err := client.Clean(cmd.Context(), bucket, prefix,
		s3clean.WithWorkers(cleanWorkers),
		s3clean.WithControl(control),
		s3clean.WithProgressFunc(func(msg string) { fmt.Println(msg) }),
	)
	return printOutcome(outcome, err)
}
