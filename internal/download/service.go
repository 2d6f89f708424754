package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/ytdlp-manager/internal/model"
	"github.com/ytget/ytdlp-manager/internal/security"
)

// ErrClosed is returned by Submit after Shutdown
var ErrClosed = errors.New("download service is shut down")

// Config holds the dependencies and initial limits of a Service
type Config struct {
	MaxConcurrent int
	DepMode       model.DepMode
	KillTimeout   time.Duration
	Runner        Runner
	Locator       Locator
	Logger        *zap.SugaredLogger
}

type jobEntry struct {
	job             model.Job
	req             Request
	proc            Process
	cancelRequested bool
	done            chan struct{}
}

// Service owns the job registry and the FIFO admission queue. A single
// mutex guards all of its state; it is never held across process spawn,
// wait or termination.
type Service struct {
	mu            sync.Mutex
	jobs          map[string]*jobEntry
	order         []string
	queue         []string
	running       int
	maxConcurrent int
	depMode       model.DepMode
	closed        bool

	runner      Runner
	locator     Locator
	log         *zap.SugaredLogger
	killTimeout time.Duration
	events      *dispatcher
	wg          sync.WaitGroup
}

var _ Downloader = (*Service)(nil)

// NewService creates a new download service
func NewService(cfg Config) *Service {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	mode := cfg.DepMode
	if !mode.IsValid() {
		mode = model.DepModeAuto
	}
	runner := cfg.Runner
	if runner == nil {
		runner = NewExecRunner()
	}
	killTimeout := cfg.KillTimeout
	if killTimeout <= 0 {
		killTimeout = DefaultKillTimeout
	}

	return &Service{
		jobs:          make(map[string]*jobEntry),
		maxConcurrent: security.ClampMaxConcurrent(cfg.MaxConcurrent),
		depMode:       mode,
		runner:        runner,
		locator:       cfg.Locator,
		log:           log,
		killTimeout:   killTimeout,
		events:        newDispatcher(),
	}
}

// Subscribe registers fn for job snapshots. Events for one job arrive in
// the order its state changed.
func (s *Service) Subscribe(fn func(model.Job)) {
	s.events.subscribe(fn)
}

// Submit registers a job and queues it for admission
func (s *Service) Submit(req Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}

	id, err := generateJobID()
	if err != nil {
		return "", err
	}

	e := &jobEntry{
		job: model.Job{
			ID:            id,
			URL:           req.URL,
			OutputDir:     req.OutputDir,
			Template:      req.Template,
			CookieBrowser: req.CookieBrowser,
			State:         model.JobStateQueued,
			ETASec:        -1,
			CreatedAt:     time.Now(),
		},
		req:  req,
		done: make(chan struct{}),
	}
	s.jobs[id] = e
	s.order = append(s.order, id)
	s.queue = append(s.queue, id)
	s.log.Infof("Queued job %s for %s", id, req.URL)
	s.events.publish(e.job)

	s.admitLocked()
	return id, nil
}

// admitLocked starts queued jobs in FIFO order while slots are free
func (s *Service) admitLocked() {
	for !s.closed && s.running < s.maxConcurrent && len(s.queue) > 0 {
		id := s.queue[0]
		s.queue = s.queue[1:]

		e, ok := s.jobs[id]
		if !ok || e.job.State != model.JobStateQueued {
			continue
		}

		if !s.transitionLocked(e, model.JobStateRunning) {
			continue
		}
		s.running++
		s.events.publish(e.job)

		s.wg.Add(1)
		go s.run(e, s.depMode)
	}
}

// run spawns yt-dlp for an admitted job and waits for it to exit
func (s *Service) run(e *jobEntry, mode model.DepMode) {
	defer s.wg.Done()

	if s.locator == nil {
		s.finish(e, errors.New("no binary locator configured"))
		return
	}
	res, err := s.locator.Resolve(context.Background(), mode)
	if err != nil {
		s.finish(e, err)
		return
	}

	s.mu.Lock()
	if e.cancelRequested {
		s.mu.Unlock()
		s.finish(e, nil)
		return
	}
	req := e.req
	id := e.job.ID
	s.mu.Unlock()

	proc, err := s.runner.Start(Invocation{
		Path:        res.YtDlp,
		Args:        BuildArgs(res, req),
		KillTimeout: s.killTimeout,
		OnStdout: func(line string) {
			s.handleLine(e, line)
		},
	})
	if err != nil {
		s.finish(e, fmt.Errorf("failed to start yt-dlp: %w", err))
		return
	}

	s.mu.Lock()
	e.proc = proc
	cancelled := e.cancelRequested
	s.mu.Unlock()

	s.log.Infof("Started job %s (pid %d)", id, proc.Pid())
	if cancelled {
		proc.Terminate()
	}

	s.finish(e, proc.Wait())
}

// finish records the terminal state, frees the slot and admits the next job
func (s *Service) finish(e *jobEntry, err error) {
	s.mu.Lock()

	e.proc = nil
	next := model.JobStateCompleted
	switch {
	case e.cancelRequested:
		next = model.JobStateCancelled
	case err != nil:
		next = model.JobStateFailed
	}
	if s.transitionLocked(e, next) {
		switch next {
		case model.JobStateFailed:
			e.job.Error = security.SanitizeErrorMessage(err.Error())
		case model.JobStateCompleted:
			e.job.Progress = 1.0
			e.job.ETASec = 0
		}
	}
	s.running--
	job := e.job
	s.events.publish(job)
	s.admitLocked()

	s.mu.Unlock()
	close(e.done)

	switch job.State {
	case model.JobStateFailed:
		s.log.Errorf("Job %s failed: %s", job.ID, job.Error)
	default:
		s.log.Infof("Job %s %s", job.ID, job.State)
	}
}

// transitionLocked moves e to next if the lifecycle allows it and stamps
// the start or finish time.
func (s *Service) transitionLocked(e *jobEntry, next model.JobState) bool {
	if !e.job.State.CanTransitionTo(next) {
		s.log.Warnf("Ignoring transition of job %s from %s to %s", e.job.ID, e.job.State, next)
		return false
	}

	e.job.State = next
	switch {
	case next.IsActive():
		e.job.StartedAt = time.Now()
	case next.IsTerminal():
		e.job.FinishedAt = time.Now()
	}
	return true
}

// handleLine applies one line of yt-dlp output to the job
func (s *Service) handleLine(e *jobEntry, line string) {
	u := parseLine(line)
	if u.empty() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !e.job.State.IsActive() {
		return
	}
	if u.Progress >= 0 {
		e.job.Progress = u.Progress
	}
	if u.ETASec >= 0 {
		e.job.ETASec = u.ETASec
	}
	if u.OutputPath != "" {
		e.job.OutputPath = u.OutputPath
	}
	s.events.publish(e.job)
}

// Cancel cancels a job. A queued job is cancelled immediately; for a
// running job Cancel returns once the process has exited or ctx is done.
// Cancelling a finished job is a no-op.
func (s *Service) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()

	e, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return model.NewCustomf("job not found: %s", id)
	}

	switch e.job.State {
	case model.JobStateQueued:
		s.removeQueuedLocked(id)
		s.transitionLocked(e, model.JobStateCancelled)
		s.events.publish(e.job)
		s.mu.Unlock()
		close(e.done)
		s.log.Infof("Cancelled queued job %s", id)
		return nil
	case model.JobStateRunning:
		e.cancelRequested = true
		proc := e.proc
		done := e.done
		s.mu.Unlock()

		if proc != nil {
			s.log.Infof("Terminating job %s (pid %d)", id, proc.Pid())
			proc.Terminate()
		}

		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	default:
		s.mu.Unlock()
		return nil
	}
}

func (s *Service) removeQueuedLocked(id string) {
	for i, queued := range s.queue {
		if queued == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Get returns a snapshot of a job
func (s *Service) Get(id string) (model.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.jobs[id]
	if !ok {
		return model.Job{}, false
	}
	return e.job, true
}

// List returns snapshots of all jobs in submission order
func (s *Service) List() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]model.Job, 0, len(s.order))
	for _, id := range s.order {
		jobs = append(jobs, s.jobs[id].job)
	}
	return jobs
}

// Clear removes a finished job from the registry
func (s *Service) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.jobs[id]
	if !ok {
		return model.NewCustomf("job not found: %s", id)
	}
	if !e.job.State.IsTerminal() {
		return model.NewCustomf("job %s is still %s", id, e.job.State)
	}
	s.removeLocked(id)
	return nil
}

// ClearFinished removes every finished job and returns how many were removed
func (s *Service) ClearFinished() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, id := range append([]string(nil), s.order...) {
		if s.jobs[id].job.State.IsTerminal() {
			s.removeLocked(id)
			removed++
		}
	}
	return removed
}

func (s *Service) removeLocked(id string) {
	delete(s.jobs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// SetMaxConcurrent clamps n and applies it to future admissions. Running
// jobs are never preempted when the limit shrinks.
func (s *Service) SetMaxConcurrent(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxConcurrent = security.ClampMaxConcurrent(n)
	s.admitLocked()
}

// MaxConcurrent returns the current limit
func (s *Service) MaxConcurrent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxConcurrent
}

// RunningCount returns the number of occupied slots
func (s *Service) RunningCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SetDepMode selects the binary resolution mode for future admissions
func (s *Service) SetDepMode(mode model.DepMode) {
	if !mode.IsValid() {
		mode = model.DepModeAuto
	}
	s.mu.Lock()
	s.depMode = mode
	s.mu.Unlock()
}

// Shutdown stops admission, cancels every unfinished job and waits for all
// processes to exit.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	var pending []string
	for _, id := range s.order {
		if !s.jobs[id].job.State.IsTerminal() {
			pending = append(pending, id)
		}
	}
	s.mu.Unlock()

	var errs []error
	for _, id := range pending {
		if err := s.Cancel(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}

	waited := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
	}

	s.events.close()
	return errors.Join(errs...)
}

func generateJobID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate job id: %w", err)
	}
	return "job-" + id.String(), nil
}
