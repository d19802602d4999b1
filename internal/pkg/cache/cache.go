package cache

import (
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("not found in cache")

// client is the process-wide redis client backing all Set caches.
// Populated once during fx startup, before any controller is registered.
var client *redis.Client

func Initialize(c *redis.Client) {
	client = c
}
