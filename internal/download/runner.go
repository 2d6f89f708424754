package download

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultKillTimeout is how long a terminated process may take to exit
	// before it is killed
	DefaultKillTimeout = 5 * time.Second

	// stderrTailSize caps the stderr kept as failure detail
	stderrTailSize = 2048
)

// ExecRunner starts real processes with os/exec
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Start launches the invocation. Terminate asks the process (and its
// process group where supported) to exit; after KillTimeout the leader is
// killed. Once Wait returns after a Terminate, every process left in the
// group is killed too, so nothing the job started outlives it.
func (r *ExecRunner) Start(inv Invocation) (Process, error) {
	ctx, cancel := context.WithCancel(context.Background())

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	configureCommand(cmd)

	killTimeout := inv.KillTimeout
	if killTimeout <= 0 {
		killTimeout = DefaultKillTimeout
	}
	cmd.WaitDelay = killTimeout

	stdout := newLineWriter(inv.OnStdout)
	stderr := newTailBuffer(stderrTailSize)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, err
	}

	return &execProcess{cmd: cmd, cancel: cancel, stdout: stdout, stderr: stderr}, nil
}

type execProcess struct {
	cmd        *exec.Cmd
	cancel     context.CancelFunc
	stdout     *lineWriter
	stderr     *tailBuffer
	terminated atomic.Bool
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Wait() error {
	err := p.cmd.Wait()
	if p.terminated.Load() {
		killProcessGroup(p.cmd)
	}
	p.cancel()
	p.stdout.Flush()

	if err == nil {
		return nil
	}
	if tail := strings.TrimSpace(p.stderr.String()); tail != "" {
		return fmt.Errorf("%w: %s", err, tail)
	}
	return err
}

func (p *execProcess) Terminate() {
	p.terminated.Store(true)
	p.cancel()
}

// lineWriter splits written bytes into lines and hands each to fn
type lineWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	fn  func(string)
}

func newLineWriter(fn func(string)) *lineWriter {
	return &lineWriter{fn: fn}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		data := w.buf.Bytes()
		i := bytes.IndexAny(data, "\r\n")
		if i < 0 {
			break
		}
		line := string(data[:i])
		w.buf.Next(i + 1)
		if line != "" && w.fn != nil {
			w.fn(line)
		}
	}
	return len(p), nil
}

// Flush emits a trailing line that had no newline
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 && w.fn != nil {
		w.fn(w.buf.String())
	}
	w.buf.Reset()
}

// tailBuffer keeps only the last size bytes written to it
type tailBuffer struct {
	mu   sync.Mutex
	size int
	data []byte
}

func newTailBuffer(size int) *tailBuffer {
	return &tailBuffer{size: size}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append(b.data, p...)
	if over := len(b.data) - b.size; over > 0 {
		b.data = append(b.data[:0], b.data[over:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.data)
}
