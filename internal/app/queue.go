package app

import "sync"

// Queue runs jobs one at a time, in submission order, on a background goroutine.
// Submit never blocks, so a caller that must return promptly (a browser event
// handler) can hand off work that waits on storage. The zero value is ready to use.
type Queue struct {
	mu      sync.Mutex
	pending []job
	running bool
}

type job struct {
	run  func() interface{}
	done func(interface{})
}

// Submit queues run; done receives its result on the queue's goroutine.
func (q *Queue) Submit(run func() interface{}, done func(interface{})) {
	q.mu.Lock()
	q.pending = append(q.pending, job{run: run, done: done})
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	go q.drain()
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		j := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		j.done(j.run())
	}
}
