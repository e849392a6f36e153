package adapter

import "log/slog"

// Option is a functional option for the DynamoDBAdapter.
type Option func(*DynamoDBAdapter)

// WithBatchSize sets the number of write operations bundled into one batch
// call. It defaults to DefaultBatchSize, the DynamoDB per-request cap; stores
// with a different limit can tune it. Values below one are ignored.
func WithBatchSize(size int) Option {
	return func(a *DynamoDBAdapter) {
		if size > 0 {
			a.batchSize = size
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *DynamoDBAdapter) { a.logger = l }
}
