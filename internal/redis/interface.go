package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis repositories depend on. It is satisfied by
// single node, cluster and failover clients alike.
type Client interface {
	redis.UniversalClient
}
