package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("job runner is closed")

// Progress lets a running job report where it is.
type Progress interface {
	Stage(name string)
	Sections(done, total int)
	OutputDir(dir string)
}

// Result is what a successful run produced.
type Result struct {
	OutlinePath string
	GuidePath   string
}

// RunFunc executes one job. It must honor ctx.
type RunFunc func(ctx context.Context, job Job, progress Progress) (Result, error)

// Runner executes submitted jobs in their own goroutines and records the
// outcome in a Store.
type Runner struct {
	store   *Store
	run     RunFunc
	timeout time.Duration
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewRunner returns a Runner. timeout <= 0 leaves runs unbounded.
func NewRunner(store *Store, run RunFunc, timeout time.Duration, logger *slog.Logger) (*Runner, error) {
	if store == nil {
		return nil, errors.New("job store is required")
	}
	if run == nil {
		return nil, errors.New("run func is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		store:   store,
		run:     run,
		timeout: timeout,
		logger:  logger.With("component", "jobs"),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Get returns the current snapshot of a job.
func (r *Runner) Get(id string) (Job, bool) { return r.store.Get(id) }

// List returns all jobs, oldest first.
func (r *Runner) List() []Job { return r.store.List() }

// Submit records a pending job and starts it in the background.
func (r *Runner) Submit(topic, audience string) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Job{}, ErrClosed
	}
	job := r.store.Create(topic, audience)
	r.wg.Add(1)
	go r.execute(job)
	r.logger.Info("job submitted", "job_id", job.ID, "topic", topic, "audience", audience)
	return job, nil
}

func (r *Runner) execute(job Job) {
	defer r.wg.Done()

	ctx := r.ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	started := time.Now().UTC()
	r.store.Update(job.ID, func(j *Job) {
		j.Status = StatusRunning
		j.StartedAt = &started
	})
	job.Status = StatusRunning
	job.StartedAt = &started

	logger := r.logger.With("job_id", job.ID)
	logger.Info("job started")

	res, err := r.run(ctx, job, &progress{store: r.store, id: job.ID})

	finished := time.Now().UTC()
	r.store.Update(job.ID, func(j *Job) {
		j.FinishedAt = &finished
		if err != nil {
			j.Status = StatusFailed
			j.Error = err.Error()
			return
		}
		j.Status = StatusSucceeded
		j.OutlinePath = res.OutlinePath
		j.GuidePath = res.GuidePath
	})
	if err != nil {
		logger.Error("job failed", "error", err, "duration", finished.Sub(started))
		return
	}
	logger.Info("job succeeded", "guide", res.GuidePath, "duration", finished.Sub(started))
}

// Wait blocks until every submitted job has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close stops accepting jobs, cancels running ones and waits for them.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.cancel()
	r.wg.Wait()
}

type progress struct {
	store *Store
	id    string
}

func (p *progress) Stage(name string) {
	p.store.Update(p.id, func(j *Job) { j.Stage = name })
}

func (p *progress) Sections(done, total int) {
	p.store.Update(p.id, func(j *Job) {
		j.SectionsDone = done
		j.SectionsTotal = total
	})
}

func (p *progress) OutputDir(dir string) {
	p.store.Update(p.id, func(j *Job) { j.OutputDir = dir })
}
