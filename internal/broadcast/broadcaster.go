// Package broadcast republishes the active mode's status on a pub/sub channel.
package broadcast

import (
	"bytes"
	"context"
	"moodcam/internal/entity"
	"moodcam/pkg/log"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// Publisher receives the JSON encoded status.
type Publisher interface {
	PublishStatus(ctx context.Context, body []byte) error
}

type Broadcaster struct {
	log       *logrus.Logger
	source    entity.StatusProvider
	publisher Publisher
	interval  time.Duration
	last      []byte
}

func New(log *logrus.Logger, source entity.StatusProvider, publisher Publisher, interval time.Duration) *Broadcaster {
	if interval <= 0 {
		interval = time.Second
	}
	return &Broadcaster{
		log:       log,
		source:    source,
		publisher: publisher,
		interval:  interval,
	}
}

// Run publishes until ctx is done. A status identical to the previous one is not
// published again.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		b.tick(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (b *Broadcaster) tick(ctx context.Context) {
	body, err := jsoniter.Marshal(b.source.CurrentStatus())
	if err != nil {
		b.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Failed to encode status")
		return
	}
	if bytes.Equal(body, b.last) {
		return
	}

	if err := b.publisher.PublishStatus(ctx, body); err != nil {
		b.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Warn("Failed to publish status")
		return
	}
	b.last = body
}
