package download

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ytget/ytdlp-manager/internal/binary"
	"github.com/ytget/ytdlp-manager/internal/model"
)

var errTerminated = errors.New("signal: terminated")

type fakeProcess struct {
	pid        int
	inv        Invocation
	exit       chan error
	once       sync.Once
	terminated atomic.Bool

	// ignoreTerminate keeps the process alive after Terminate
	ignoreTerminate bool
}

func (p *fakeProcess) Pid() int { return p.pid }

func (p *fakeProcess) Wait() error { return <-p.exit }

func (p *fakeProcess) Terminate() {
	p.terminated.Store(true)
	if !p.ignoreTerminate {
		p.exitWith(errTerminated)
	}
}

func (p *fakeProcess) exitWith(err error) {
	p.once.Do(func() { p.exit <- err })
}

func (p *fakeProcess) url() string {
	return p.inv.Args[len(p.inv.Args)-1]
}

type fakeRunner struct {
	mu       sync.Mutex
	procs    []*fakeProcess
	startErr error
	onStart  func()

	ignoreTerminate bool
}

func (r *fakeRunner) Start(inv Invocation) (Process, error) {
	if r.onStart != nil {
		r.onStart()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.startErr != nil {
		return nil, r.startErr
	}
	p := &fakeProcess{
		pid:             1000 + len(r.procs),
		inv:             inv,
		exit:            make(chan error, 1),
		ignoreTerminate: r.ignoreTerminate,
	}
	r.procs = append(r.procs, p)
	return p, nil
}

func (r *fakeRunner) started() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.procs)
}

func (r *fakeRunner) proc(i int) *fakeProcess {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.procs[i]
}

// procFor returns the process started for url, or nil
func (r *fakeRunner) procFor(url string) *fakeProcess {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.procs {
		if p.url() == url {
			return p
		}
	}
	return nil
}

type fakeLocator struct {
	mu    sync.Mutex
	err   error
	modes []model.DepMode
}

func (l *fakeLocator) seen() []model.DepMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.DepMode(nil), l.modes...)
}

func (l *fakeLocator) Resolve(_ context.Context, mode model.DepMode) (*binary.Resolution, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.modes = append(l.modes, mode)
	if l.err != nil {
		return nil, l.err
	}
	return &binary.Resolution{Mode: mode, YtDlp: "/opt/bin/yt-dlp", FFmpeg: "/opt/bin/ffmpeg"}, nil
}
