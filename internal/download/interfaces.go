package download

import (
	"context"
	"time"

	"github.com/ytget/ytdlp-manager/internal/binary"
	"github.com/ytget/ytdlp-manager/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	Subscribe(func(model.Job))
	Submit(req Request) (string, error)
	Get(id string) (model.Job, bool)
	List() []model.Job
	Cancel(ctx context.Context, id string) error
	Clear(id string) error
	ClearFinished() int

	// SetMaxConcurrent changes the concurrency limit for future admissions
	SetMaxConcurrent(n int)
	MaxConcurrent() int
	RunningCount() int

	// SetDepMode selects how binaries are resolved for future admissions
	SetDepMode(mode model.DepMode)

	Shutdown(ctx context.Context) error
}

// Request describes a job. Every field has already passed the sanitizer.
type Request struct {
	URL           string
	OutputDir     string
	Template      string
	CookieBrowser string
}

// Locator resolves the executables a job needs
type Locator interface {
	Resolve(ctx context.Context, mode model.DepMode) (*binary.Resolution, error)
}

// Invocation is a fully-built command line plus process handling options
type Invocation struct {
	Path string
	Args []string

	// KillTimeout bounds how long a terminated process may take to exit
	// before it is killed.
	KillTimeout time.Duration

	// OnStdout receives stdout one line at a time
	OnStdout func(line string)
}

// Runner starts processes
type Runner interface {
	Start(inv Invocation) (Process, error)
}

// Process is a started child process. Wait must be called exactly once.
// Terminate may be called any number of times from any goroutine.
type Process interface {
	Pid() int
	Wait() error
	Terminate()
}
