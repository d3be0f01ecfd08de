package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/drainplan/pkg/observability"
)

// Job is one pipeline run of a batch.
type Job struct {
	// ID identifies the job in logs. A random UUID is assigned when empty.
	ID      string
	Options Options
}

// BatchResult is the outcome of one job. Exactly one of Result and Err is set.
type BatchResult struct {
	Job    Job
	Result *Result
	Err    error
}

// Batch executes jobs on up to workers goroutines and returns one result per
// job, in job order. A failing job does not stop the others; its error is
// recorded on its result. The returned error is non-nil only when ctx is
// cancelled before all jobs ran.
func (r *Runner) Batch(ctx context.Context, jobs []Job, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]BatchResult, len(jobs))
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job
		if job.ID == "" {
			job.ID = uuid.NewString()
		}
		results[i].Job = job

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			logger := r.Logger.With("job", job.ID)
			if job.Options.Name != "" {
				logger = logger.With("frame", job.Options.Name)
			}
			opts := job.Options
			opts.Logger = logger

			res, err := r.Execute(gctx, opts)
			if err != nil {
				logger.Error("job failed", "error", err)
				results[i].Err = err
				return nil
			}
			results[i].Result = res
			return nil
		})
	}

	err := g.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	observability.Pipeline().OnBatchComplete(ctx, len(jobs), failed, time.Since(start))
	r.Logger.Info("batch finished", "jobs", len(jobs), "failed", failed, "duration", time.Since(start))

	if err != nil {
		return results, err
	}
	return results, ctx.Err()
}
