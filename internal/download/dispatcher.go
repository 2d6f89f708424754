package download

import (
	"slices"
	"sync"

	"github.com/ytget/ytdlp-manager/internal/model"
)

// dispatcher delivers job snapshots to subscribers on a single goroutine,
// preserving the order in which they were published. Subscribers run
// without any service lock held and may call back into the service.
type dispatcher struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []model.Job
	subs    []func(model.Job)
	closed  bool
	done    chan struct{}
}

func newDispatcher() *dispatcher {
	d := &dispatcher{done: make(chan struct{})}
	d.cond = sync.NewCond(&d.mu)
	go d.loop()
	return d
}

func (d *dispatcher) subscribe(fn func(model.Job)) {
	d.mu.Lock()
	d.subs = append(d.subs, fn)
	d.mu.Unlock()
}

func (d *dispatcher) publish(job model.Job) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending = append(d.pending, job)
	d.cond.Signal()
}

func (d *dispatcher) loop() {
	defer close(d.done)
	for {
		d.mu.Lock()
		for len(d.pending) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.pending) == 0 && d.closed {
			d.mu.Unlock()
			return
		}
		batch := d.pending
		d.pending = nil
		subs := slices.Clone(d.subs)
		d.mu.Unlock()

		for _, job := range batch {
			for _, fn := range subs {
				fn(job)
			}
		}
	}
}

// close stops accepting events and waits for queued ones to be delivered
func (d *dispatcher) close() {
	d.mu.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.mu.Unlock()
	<-d.done
}
