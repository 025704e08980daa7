package redis

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/extra/redisotel/v8"
	goredis "github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Storage keeps every key as a field of one Redis hash.
type Storage struct {
	client goredis.UniversalClient
	hash   string
	log    logrus.FieldLogger
}

// NewClient accepts either a redis:// URL or a bare host:port.
func NewClient(addr string) *goredis.Client {
	opts, err := goredis.ParseURL(addr)
	if err != nil {
		opts = &goredis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}
	}
	client := goredis.NewClient(opts)
	client.AddHook(redisotel.NewTracingHook())
	return client
}

func NewStorage(client goredis.UniversalClient, hash string, log logrus.FieldLogger) *Storage {
	if hash == "" {
		hash = "storefront"
	}
	return &Storage{client: client, hash: hash, log: log}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.hash, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "redis HGET %s %s", s.hash, key)
	}
	return v, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	err := s.client.HSet(ctx, s.hash, key, value).Err()
	return errors.Wrapf(err, "redis HSET %s %s", s.hash, key)
}

func (s *Storage) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Ping(pingCtx).Err()
}

// WaitReady pings Redis with exponential backoff until it answers,
// maxElapsed passes or ctx is done.
func (s *Storage) WaitReady(ctx context.Context, maxElapsed time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = maxElapsed

	attempt := 0
	op := func() error {
		attempt++
		if err := s.Ping(ctx); err != nil {
			s.log.WithError(err).WithField("attempt", attempt).Warn("redis ping failed")
			return err
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return errors.Wrap(err, "redis not ready")
	}
	s.log.WithField("attempt", attempt).Info("redis ready")
	return nil
}
