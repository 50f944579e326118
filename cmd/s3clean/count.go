package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count BUCKET [PREFIX]",
	Short: "Count objects, versions, and delete markers",
	Long: `Count the objects under PREFIX in BUCKET. On versioned buckets the
object versions and delete markers are counted as well.

Counting streams the listings, so it works on buckets of any size, but it
still visits every key.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
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

	counts, err := client.CountObjects(cmd.Context(), bucket, prefix)
	if err != nil {
		return err
	}

	fmt.Printf("objects:        %d\n", counts.Objects)
	if counts.Versions > 0 || counts.DeleteMarkers > 0 {
		fmt.Printf("versions:       %d\n", counts.Versions)
		fmt.Printf("delete markers: %d\n", counts.DeleteMarkers)
	}
	return nil
}
