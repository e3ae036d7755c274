// Package convert implements the batch-conversion orchestration layer:
// expanding inputs into job descriptors, executing them with bounded
// concurrency, and aggregating per-job results into a batch report. The
// defining guarantee is isolation: one job's failure never affects another
// job or the batch's completion.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/mediaforge/mediaconv/pkg/convert/ffmpeg"
)

// Engine orchestrates one batch run.
type Engine struct {
	opts    *Options
	logger  *slog.Logger
	hooks   Hooks
	prober  ffmpeg.Prober
	workers int
}

// NewEngine validates the configuration and prepares an engine. Validation
// failures here are usage errors: they abort before any job is built.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger handler cannot be nil")
	}
	if len(opts.Inputs) == 0 {
		return nil, errors.New("no input files given")
	}
	if err := validateOptions(&opts); err != nil {
		return nil, err
	}

	if opts.Hooks == nil {
		opts.Hooks = NoOpHooks{}
	}
	if opts.Prober == nil {
		opts.Prober = ffmpeg.NewProber()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers()
	}

	return &Engine{
		opts:    &opts,
		logger:  slog.New(opts.Logger).With(slog.String("component", "engine")),
		hooks:   opts.Hooks,
		prober:  opts.Prober,
		workers: workers,
	}, nil
}

// validateOptions rejects configuration that would fail every job the same
// way, so the user gets one usage error instead of N identical failures.
func validateOptions(opts *Options) error {
	if opts.Format != "" {
		if _, err := OutputExt(opts.Kind, opts.Format); err != nil {
			return err
		}
	}
	switch opts.Kind {
	case KindImage:
		if _, err := opts.ImageQuality(); err != nil {
			return err
		}
	case KindVideo:
		if _, err := opts.VideoQuality(); err != nil {
			return err
		}
		if opts.Resolution != "" {
			if _, _, err := ParseResolution(opts.Resolution); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown media kind %q", string(opts.Kind))
	}
	return nil
}

// defaultWorkers sizes the pool to the logical CPU count; encoding is
// CPU-bound and unconstrained parallelism just thrashes.
func defaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Run executes the batch: expand, probe, build, dispatch, aggregate. The
// returned error is reserved for batch-wide fatal conditions (capability
// missing, unwritable output root, bad globs); per-job failures live inside
// the report.
func (e *Engine) Run(ctx context.Context) (Report, error) {
	started := time.Now()

	candidates, err := ExpandInputs(e.opts.Inputs, e.opts.Recursive)
	if err != nil {
		return Report{}, err
	}
	if len(candidates) == 0 {
		return Report{}, errors.New("no input files matched")
	}
	e.logger.Info("Batch starting",
		slog.String("kind", string(e.opts.Kind)),
		slog.Int("candidates", len(candidates)),
		slog.Int("workers", e.workers))

	// An explicit single-file output cannot serve several inputs; this is a
	// batch-wide precondition, not a per-job condition.
	if len(candidates) > 1 && e.opts.OutputPath != "" && !outputIsDir(e.opts.OutputPath) {
		return Report{}, fmt.Errorf("%w: %d inputs but output %q is not a directory",
			ErrAmbiguousOutput, len(candidates), e.opts.OutputPath)
	}

	var capability ffmpeg.Capability
	if e.opts.Kind == KindVideo {
		capability = e.prober.Probe(ctx)
		if !capability.Available {
			return Report{}, fmt.Errorf("%w: install ffmpeg to convert videos", ErrToolMissing)
		}
		e.logger.Debug("Encoder available",
			slog.String("path", capability.Path),
			slog.String("version", capability.Version))
	}

	// Create the shared output directory once, before dispatch, so
	// concurrent jobs never race on it.
	if e.opts.OutputPath != "" && outputIsDir(e.opts.OutputPath) {
		if err := os.MkdirAll(e.opts.OutputPath, 0o755); err != nil {
			return Report{}, fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}

	executor := e.opts.Executor
	if executor == nil {
		executor = NewJobExecutor(e.opts, e.opts.Logger, capability)
	}

	results := make([]Result, len(candidates))
	pending := make([]Job, 0, len(candidates))
	for i, path := range candidates {
		job, err := BuildJob(i, path, e.opts, len(candidates))
		if err != nil {
			e.logger.Warn("Skipping input", slog.String("path", path), slog.String("reason", err.Error()))
			results[i] = Result{
				Job:     Job{Index: i, Source: path},
				Outcome: OutcomeSkipped,
				Err:     err,
			}
			continue
		}
		pending = append(pending, job)
	}

	e.hooks.OnBatchStart(len(candidates))
	for _, res := range results {
		if res.Outcome == OutcomeSkipped {
			e.hooks.OnJobDone(res)
		}
	}

	jobCh := make(chan Job)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go e.worker(ctx, executor, jobCh, results, &wg)
	}
	for _, job := range pending {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()

	report := Summarize(results, BatchMeta{
		Kind:           e.opts.Kind,
		Workers:        e.workers,
		Started:        started,
		EncoderVersion: capability.Version,
	})
	e.logger.Info("Batch finished",
		slog.Int("succeeded", report.Summary.Succeeded),
		slog.Int("failed", report.Summary.Failed),
		slog.Int("skipped", report.Summary.Skipped),
		slog.Duration("took", time.Since(started)))
	return report, nil
}

// worker drains the job channel. After cancellation, not-yet-started jobs
// become skipped results; a job that already began is left to finish so it
// cannot leave a corrupt output behind. Results land at the job's input
// index, which preserves input ordering no matter the completion order.
func (e *Engine) worker(ctx context.Context, executor JobExecutor, jobCh <-chan Job, results []Result, wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range jobCh {
		if ctx.Err() != nil {
			res := Result{Job: job, Outcome: OutcomeSkipped, Err: ErrBatchCancelled}
			results[job.Index] = res
			e.hooks.OnJobDone(res)
			continue
		}
		res := executor.Execute(ctx, job)
		results[job.Index] = res
		e.hooks.OnJobDone(res)
	}
}
