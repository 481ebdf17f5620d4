package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type IRedis interface {
	PublishStatus(ctx context.Context, body []byte) error
	Close() error
}

type redisClient struct {
	client  *redis.Client
	channel string
	log     *logrus.Logger
}

type Options struct {
	Address  string
	Password string
	DB       int
	Channel  string
}

func New(log *logrus.Logger, opts Options) IRedis {
	log.Info(fmt.Sprintf("Connecting to Redis at %s...", opts.Address))

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		log.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, channel: opts.Channel, log: log}
}

// PublishStatus publishes the encoded status on the status channel.
func (r *redisClient) PublishStatus(ctx context.Context, body []byte) error {
	if err := r.client.Publish(ctx, r.channel, body).Err(); err != nil {
		r.log.Error(fmt.Sprintf("Error publishing status on %s: %v", r.channel, err))
		return err
	}
	return nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
