package main

import (
	"fmt"

	"github.com/spf13/cobra"

	s3clean "github.com/coviedoy1989/CleanAwsS3"
	"github.com/coviedoy1989/CleanAwsS3/s3types"
)

var (
	copyWorkers   int
	copySrcPrefix string
	copyDstPrefix string
)

var copyCmd = &cobra.Command{
	Use:   "copy SRC_BUCKET DST_BUCKET",
	Short: "Copy objects between buckets with prefix remapping",
	Long: `Copy every object under --src-prefix in SRC_BUCKET to --dst-prefix in
DST_BUCKET using server-side copies. The relative key layout under the
source prefix is preserved at the destination. Existing destination
objects are overwritten.

Example:
  s3clean copy prod-data backup-data --src-prefix logs/2025 --dst-prefix archive/logs/2025`,
	Args: cobra.ExactArgs(2),
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().StringVar(&copySrcPrefix, "src-prefix", "", "Source key prefix (default: whole bucket)")
	copyCmd.Flags().StringVar(&copyDstPrefix, "dst-prefix", "", "Destination key prefix (default: bucket root)")
	copyCmd.Flags().IntVar(&copyWorkers, "workers", 0, "Copy worker count (default 20, max 100)")
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	client, err := newClient(logger)
	if err != nil {
		return err
	}

	control := s3types.NewControlSignal()
	defer watchInterrupt(control, logger)()

	outcome, err := client.Copy(cmd.Context(), args[0], copySrcPrefix, args[1], copyDstPrefix,
		s3clean.WithWorkers(copyWorkers),
		s3clean.WithControl(control),
		s3clean.WithProgressFunc(func(msg string) { fmt.Println(msg) }),
	)
	return printOutcome(outcome, err)
}
