package loader

import (
	"fmt"
	"sync"

	"github.com/alitto/pond/v2"
)

// MaxConcurrentLoads bounds how many model files are read at once.
const MaxConcurrentLoads = 4

var loadPool = pond.NewPool(MaxConcurrentLoads)

// Pending is the result of a load running on the load pool. The render
// thread polls it once per frame; GL uploads happen there, never in the load.
type Pending[T any] struct {
	source string
	done   chan struct{}
	value  T
	err    error

	mu    sync.Mutex
	taken bool
}

// Go queues load on the load pool.
func Go[T any](source string, load func() (T, error)) *Pending[T] {
	p := &Pending[T]{source: source, done: make(chan struct{})}
	loadPool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				p.err = fmt.Errorf("load %s panicked: %v", source, r)
			}
			close(p.done)
		}()
		p.value, p.err = load()
	})
	return p
}

func (p *Pending[T]) Source() string {
	return p.source
}

// Poll never blocks. ok reports whether the load has finished and this is
// the first call to see it; later calls return ok false.
func (p *Pending[T]) Poll() (value T, ok bool, err error) {
	select {
	case <-p.done:
	default:
		return value, false, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.taken {
		return value, false, nil
	}
	p.taken = true
	return p.value, true, p.err
}

// Wait blocks until the load finishes. It does not consume the result.
func (p *Pending[T]) Wait() (T, error) {
	<-p.done
	return p.value, p.err
}
