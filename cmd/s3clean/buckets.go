package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List buckets owned by the account",
	Args:  cobra.NoArgs,
	RunE:  runBuckets,
}

func init() {
	rootCmd.AddCommand(bucketsCmd)
}

func runBuckets(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	client, err := newClient(logger)
	if err != nil {
		return err
	}

	names, err := client.ListBuckets(cmd.Context())
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
