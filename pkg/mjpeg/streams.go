package mjpeg

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Streams tracks the running video streams of a server. Stop cancels them and
// waits for their loops to return, so the capture resources they read from can be
// released afterwards.
type Streams struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	active  int
	stopped bool
	idle    chan struct{}
}

func NewStreams() *Streams {
	ctx, cancel := context.WithCancel(context.Background())
	return &Streams{
		ctx:    ctx,
		cancel: cancel,
		idle:   make(chan struct{}),
	}
}

// Begin registers a new stream. The returned context is cancelled by Stop and
// done must be called when the stream loop returns. ok is false once Stop has
// been called.
func (s *Streams) Begin() (ctx context.Context, done func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, nil, false
	}
	s.active++

	var once sync.Once
	return s.ctx, func() { once.Do(s.end) }, true
}

func (s *Streams) end() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active--
	if s.stopped && s.active == 0 {
		close(s.idle)
	}
}

func (s *Streams) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Stop cancels every stream and waits up to timeout for all of them to return.
func (s *Streams) Stop(timeout time.Duration) error {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		s.cancel()
		if s.active == 0 {
			close(s.idle)
		}
	}
	s.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-s.idle:
		return nil
	case <-timer.C:
		return fmt.Errorf("%d video streams still running after %s", s.Active(), timeout)
	}
}
