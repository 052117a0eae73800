package lazybones

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/danpasecinic/lazybones/internal/task"
	"github.com/danpasecinic/lazybones/lifecycle"
)

// Job is a block of work started by a lifecycle phase and cancelled by a
// later one.
type Job struct {
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	started atomic.Bool
	err     error
}

func newJob() *Job {
	ctx, cancel := context.WithCancel(context.Background())
	return &Job{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

func (j *Job) start(pool *ants.Pool, block func(ctx context.Context) error) error {
	if !j.started.CompareAndSwap(false, true) {
		return nil
	}

	if err := task.Execute(pool, func() { j.finish(block(j.ctx)) }); err != nil {
		j.cancel()
		j.finish(err)
		return errJobRejected(err)
	}
	return nil
}

func (j *Job) finish(err error) {
	j.err = err
	close(j.done)
}

// Cancel cancels the job's context. A job that never started is finished
// with context.Canceled.
func (j *Job) Cancel() {
	j.cancel()
	if j.started.CompareAndSwap(false, true) {
		j.finish(context.Canceled)
	}
}

func (j *Job) Started() bool {
	return j.started.Load()
}

func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Err returns the block's result once the job is done, nil before that.
func (j *Job) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}

func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LaunchOnCreated runs block the first time src is created and cancels it on destroy.
func LaunchOnCreated(src lifecycle.Source, block func(ctx context.Context) error, opts ...Option) *Lazy[*Job] {
	return launchOn(src, PhaseCreate, block, opts)
}

// LaunchOnStarted runs block the first time src is started and cancels it on destroy.
func LaunchOnStarted(src lifecycle.Source, block func(ctx context.Context) error, opts ...Option) *Lazy[*Job] {
	return launchOn(src, PhaseStart, block, opts)
}

// LaunchOnResumed runs block the first time src is resumed and cancels it on destroy.
func LaunchOnResumed(src lifecycle.Source, block func(ctx context.Context) error, opts ...Option) *Lazy[*Job] {
	return launchOn(src, PhaseResume, block, opts)
}

func launchOn(src lifecycle.Source, p Phase, block func(ctx context.Context) error, opts []Option) *Lazy[*Job] {
	cfg := newBindingConfig(opts)
	job := newJob()

	return BindFunc(src, func() *Job { return job }, opts...).
		On(p, func(j *Job) error { return j.start(cfg.pool, block) }).
		OnDestroy(func(j *Job) error {
			j.Cancel()
			return nil
		})
}

func CollectOnCreated[V any](src lifecycle.Source, ch <-chan V, fn func(V), opts ...Option) *Lazy[*Job] {
	return LaunchOnCreated(src, collector(ch, fn), opts...)
}

func CollectOnStarted[V any](src lifecycle.Source, ch <-chan V, fn func(V), opts ...Option) *Lazy[*Job] {
	return LaunchOnStarted(src, collector(ch, fn), opts...)
}

func CollectOnResumed[V any](src lifecycle.Source, ch <-chan V, fn func(V), opts ...Option) *Lazy[*Job] {
	return LaunchOnResumed(src, collector(ch, fn), opts...)
}

// collector drains ch until it is closed or the job is cancelled.
func collector[V any](ch <-chan V, fn func(V)) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case v, ok := <-ch:
				if !ok {
					return nil
				}
				fn(v)
			}
		}
	}
}

// RepeatingJob restarts its block every time the lifecycle enters a phase
// and cancels it when the lifecycle leaves that phase.
type RepeatingJob struct {
	mu      sync.Mutex
	pool    *ants.Pool
	block   func(ctx context.Context) error
	current *Job
	runs    int
	closed  bool
}

func (r *RepeatingJob) launch() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	if r.current != nil {
		r.current.Cancel()
	}
	job := newJob()
	r.current = job
	r.runs++
	r.mu.Unlock()

	return job.start(r.pool, r.block)
}

func (r *RepeatingJob) halt() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil {
		r.current.Cancel()
	}
}

// Cancel stops the current run and prevents any further ones.
func (r *RepeatingJob) Cancel() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.halt()
}

// Current returns the latest run, nil before the first one.
func (r *RepeatingJob) Current() *Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *RepeatingJob) Runs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

// RepeatOnLifecycle runs block whenever src enters p and cancels it when src
// leaves p: CREATE pairs with DESTROY, START with STOP, RESUME with PAUSE.
// Any other phase is rejected and reported by Err on the returned binding.
func RepeatOnLifecycle(
	src lifecycle.Source,
	p Phase,
	block func(ctx context.Context) error,
	opts ...Option,
) *Lazy[*RepeatingJob] {
	cfg := newBindingConfig(opts)
	r := &RepeatingJob{pool: cfg.pool, block: block}
	l := BindFunc(src, func() *RepeatingJob { return r }, opts...)

	leave, ok := leavingPhase(p)
	if !ok {
		l.binding.fail(errUnsupportedPhase(p))
		return l
	}

	l.On(p, func(r *RepeatingJob) error { return r.launch() })
	if leave != PhaseDestroy {
		l.On(leave, func(r *RepeatingJob) error {
			r.halt()
			return nil
		})
	}
	return l.OnDestroy(func(r *RepeatingJob) error {
		r.Cancel()
		return nil
	})
}

func leavingPhase(p Phase) (Phase, bool) {
	switch p {
	case PhaseCreate:
		return PhaseDestroy, true
	case PhaseStart:
		return PhaseStop, true
	case PhaseResume:
		return PhasePause, true
	default:
		return 0, false
	}
}
