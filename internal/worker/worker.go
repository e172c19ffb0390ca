// Package worker provides a minimal fixed-size worker pool for
// background jobs that should not block a request handler, such as
// recording a user's last login time.
package worker

import "sync"

// Task is a unit of work submitted to the pool.
type Task func()

// Pool accepts tasks and runs them on a fixed set of goroutines.
type Pool interface {
	Submit(t Task)
	Stop()
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
}

// NewPool starts n workers. n values below 1 are treated as 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for t := range p.jobs {
				t()
			}
		}()
	}
	return p
}

// Submit blocks until a worker picks up the task.
func (p *pool) Submit(t Task) {
	p.jobs <- t
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
