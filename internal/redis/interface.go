package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the UniversalClient every store and tracker is written against,
// so single-node, cluster and Sentinel deployments share one code path
type Client interface {
	redis.UniversalClient
}

// Pipeliner wraps redis.Pipeliner for batch operations
type Pipeliner interface {
	redis.Pipeliner
}
