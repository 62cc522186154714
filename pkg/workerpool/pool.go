// Package workerpool runs error-returning tasks on a fixed number of
// goroutines. The seeders use it to hash demo passwords in parallel, which
// matters once bcrypt is the credential scheme.
//
//	pool := workerpool.New(runtime.NumCPU())
//	for _, job := range jobs {
//	    job := job
//	    _ = pool.Submit(func() error { return job.Run() })
//	}
//	err := pool.Wait() // joined task errors
package workerpool

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Submit after Wait has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool. Tasks run in submission order per worker
// but complete in any order.
type Pool struct {
	tasks   chan func() error
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}

	mu   sync.Mutex
	errs []error
}

// New starts size workers. A size below 1 is treated as 1.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		tasks:   make(chan func() error, size),
		closeCh: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit queues task, blocking while every worker is busy.
func (p *Pool) Submit(task func() error) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case <-p.closeCh:
		return ErrPoolClosed
	case p.tasks <- task:
		return nil
	}
}

// Wait stops accepting tasks, waits for the queued ones and returns their
// errors joined. Safe to call more than once.
func (p *Pool) Wait() error {
	p.once.Do(func() {
		close(p.closeCh)
		close(p.tasks)
	})
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		if err := run(task); err != nil {
			p.mu.Lock()
			p.errs = append(p.errs, err)
			p.mu.Unlock()
		}
	}
}

// run executes task and reports a panic as an error.
func run(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workerpool: task panicked: %v", r)
		}
	}()
	return task()
}
