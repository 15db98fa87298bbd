// Package redis builds go-redis clients for the catalog store.
package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// Options configures Redis client behavior
type Options struct {
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	MaxRetries   int
	UseTLS       bool
}

// NewClient creates a client for a single Redis instance. Connections are
// made lazily.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	redisOpts := &redis.Options{
		Addr:         endpoint,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		DialTimeout:  opts.DialTimeout,
		MaxRetries:   opts.MaxRetries,
	}
	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return redis.NewClient(redisOpts), nil
}

// Connect creates a client and checks the server answers
func Connect(ctx context.Context, endpoint string, opts *Options) (Client, error) {
	client, err := NewClient(endpoint, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "redis at %s is unavailable", endpoint)
	}
	return client, nil
}
