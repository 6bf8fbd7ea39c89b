package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-market/goapi/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("key not found")
)

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

// Service provides the manipulation interface of redis
type Service interface {
	// Get returns ErrNotFound if the key does not exist
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
	// TTL returns the remaining seconds to live of a key
	TTL(c ctx.Ctx, key string) (int64, error)
}
