// Package s3clean provides bulk maintenance operations for AWS S3 buckets.
// It wraps AWS SDK v2 to clean buckets, copy key ranges between buckets,
// and count objects, streaming listings so arbitrarily large buckets are
// handled in constant memory.
//
// Key features:
//   - Clean removes every object under a prefix, including all versions
//     and delete markers on versioned buckets
//   - Copy performs server-side copies with prefix remapping
//   - Bounded worker pools with per-operation sizing
//   - Cooperative cancel and pause through a shared ControlSignal
//   - Throttled progress reporting safe for concurrent use
//   - Fail-soft item errors: one bad object never aborts a run
//
// Example usage:
//
//	client, err := s3clean.New(s3clean.WithRegion("us-west-2"))
//	if err != nil {
//	    return err
//	}
//
//	control := s3types.NewControlSignal()
//	outcome, err := client.Clean(ctx, "my-bucket", "tmp/",
//	    s3clean.WithControl(control),
//	    s3clean.WithProgressFunc(func(msg string) { fmt.Println(msg) }),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(outcome.Message)
package s3clean
