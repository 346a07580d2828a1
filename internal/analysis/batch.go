package analysis

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tagwise/internal/logging"
	"tagwise/internal/services"
)

// BatchItem is the outcome for one path in a batch.
type BatchItem struct {
	Path          string
	CorrelationID string
	Result        Result
	Err           error
}

// Batch analyzes paths with at most workers concurrent runs. Items are
// returned in input order. Once ctx is cancelled, paths that have not
// started report ctx.Err().
func (a *Analyzer) Batch(ctx context.Context, paths []string, workers int) []BatchItem {
	if ctx == nil {
		ctx = context.Background()
	}
	items := make([]BatchItem, len(paths))
	if len(paths) == 0 {
		return items
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				items[idx] = a.runOne(ctx, paths[idx])
			}
		}()
	}

	for idx := range paths {
		if ctx.Err() != nil {
			items[idx] = BatchItem{Path: paths[idx], Err: ctx.Err()}
			continue
		}
		select {
		case jobs <- idx:
		case <-ctx.Done():
			items[idx] = BatchItem{Path: paths[idx], Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	a.logger.Info("batch analysis complete",
		logging.Int("tracks", len(paths)),
		logging.Int("failed", failed),
		logging.Int("workers", workers),
	)
	return items
}

func (a *Analyzer) runOne(ctx context.Context, path string) BatchItem {
	id := uuid.NewString()
	item := BatchItem{Path: path, CorrelationID: id}
	if err := ctx.Err(); err != nil {
		item.Err = err
		return item
	}
	runCtx := services.WithRequestID(ctx, id)
	item.Result, item.Err = a.AnalyzeTrack(runCtx, path)
	if item.Err != nil {
		logging.WarnWithContext(logging.WithContext(services.WithTrack(runCtx, path), a.logger),
			"track analysis failed", "track_analysis_failed",
			logging.Error(item.Err),
			logging.String(logging.FieldErrorHint, "verify the file exists and is readable"),
			logging.String(logging.FieldImpact, "track left untagged"),
		)
	}
	return item
}
