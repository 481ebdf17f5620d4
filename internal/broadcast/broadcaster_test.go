package broadcast

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	mu     sync.Mutex
	status map[string]string
}

func (s *fakeSource) CurrentStatus() interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]string{"status": s.status["status"]}
}

func (s *fakeSource) set(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status["status"] = v
}

type fakePublisher struct {
	mu    sync.Mutex
	sent  []string
	fails int
}

func (p *fakePublisher) PublishStatus(_ context.Context, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fails > 0 {
		p.fails--
		return errors.New("redis down")
	}
	p.sent = append(p.sent, string(body))
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestTickSkipsUnchangedStatus(t *testing.T) {
	src := &fakeSource{status: map[string]string{"status": "Checking..."}}
	pub := &fakePublisher{}
	b := New(quietLogger(), src, pub, time.Second)

	b.tick(context.Background())
	b.tick(context.Background())
	assert.Equal(t, 1, pub.count())

	src.set("Live Person Detected!")
	b.tick(context.Background())
	assert.Equal(t, 2, pub.count())

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Equal(t, []string{
		`{"status":"Checking..."}`,
		`{"status":"Live Person Detected!"}`,
	}, pub.sent)
}

func TestTickRetriesAfterPublishFailure(t *testing.T) {
	src := &fakeSource{status: map[string]string{"status": "Checking..."}}
	pub := &fakePublisher{fails: 1}
	b := New(quietLogger(), src, pub, time.Second)

	b.tick(context.Background())
	assert.Equal(t, 0, pub.count())

	b.tick(context.Background())
	assert.Equal(t, 1, pub.count())
}

func TestRunStopsOnCancel(t *testing.T) {
	src := &fakeSource{status: map[string]string{"status": "Checking..."}}
	pub := &fakePublisher{}
	b := New(quietLogger(), src, pub, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return pub.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
