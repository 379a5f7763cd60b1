package classify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pictura/internal/library"
	"pictura/internal/logging"
)

// ProgressFunc receives one call per attempted image, successful or not.
type ProgressFunc func(completed, total int, path string)

// ProcessBatch classifies each path in order, skipping failures. The
// configured pause is inserted between items but not after the last one.
// Cancellation stops the batch before the next item.
func (c *Classifier) ProcessBatch(ctx context.Context, paths []string, progress ProgressFunc) ([]*library.Record, error) {
	batchID := uuid.NewString()
	total := len(paths)
	logger := c.logger.With(logging.String(logging.FieldBatchID, batchID))
	logger.InfoContext(ctx, "starting batch", logging.Int("total", total))

	var records []*library.Record
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		record, err := c.Process(ctx, path, false)
		if err != nil {
			logger.WarnContext(ctx, "skipping image",
				logging.String(logging.FieldPath, path), logging.Error(err))
		} else {
			records = append(records, record)
		}

		if progress != nil {
			progress(i+1, total, path)
		}

		if i < total-1 {
			if pause := c.cfg.BatchPause(); pause > 0 {
				select {
				case <-ctx.Done():
					return records, ctx.Err()
				case <-time.After(pause):
				}
			}
		}
	}

	logger.InfoContext(ctx, "batch complete",
		logging.Int("processed", len(records)), logging.Int("total", total))
	return records, nil
}
