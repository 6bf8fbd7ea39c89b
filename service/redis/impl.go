package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/metrics"
)

const (
	keyAttribute = "key"

	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2
)

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// New redis service over the given pools
func New(name string, met metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   met,
		pools: pools,
	}
}

func (im *redImpl) conn() redis.Conn {
	return im.pools.Src.Get()
}

func (im *redImpl) Get(c ctx.Ctx, key string) ([]byte, error) {
	defer im.met.BumpTime("get.latency").End()

	conn := im.conn()
	defer conn.Close()

	val, err := redis.Bytes(conn.Do("GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	}
	if err != nil {
		im.met.BumpSum("get.err", 1)
		c.WithField("err", err).WithField(keyAttribute, key).Error("redis GET failed")
		return nil, err
	}
	return val, nil
}

func (im *redImpl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	defer im.met.BumpTime("set.latency").End()

	conn := im.conn()
	defer conn.Close()

	var err error
	if ttl > 0 {
		_, err = conn.Do("SET", key, value, "PX", int64(ttl/time.Millisecond))
	} else {
		_, err = conn.Do("SET", key, value)
	}
	if err != nil {
		im.met.BumpSum("set.err", 1)
		c.WithField("err", err).WithField(keyAttribute, key).Error("redis SET failed")
		return err
	}
	return nil
}

func (im *redImpl) Del(c ctx.Ctx, key string) error {
	defer im.met.BumpTime("del.latency").End()

	conn := im.conn()
	defer conn.Close()

	if _, err := conn.Do("DEL", key); err != nil {
		im.met.BumpSum("del.err", 1)
		c.WithField("err", err).WithField(keyAttribute, key).Error("redis DEL failed")
		return err
	}
	return nil
}

func (im *redImpl) TTL(c ctx.Ctx, key string) (int64, error) {
	defer im.met.BumpTime("ttl.latency").End()

	conn := im.conn()
	defer conn.Close()

	ttl, err := redis.Int64(conn.Do("TTL", key))
	if err != nil {
		im.met.BumpSum("ttl.err", 1)
		c.WithField("err", err).WithField(keyAttribute, key).Error("redis TTL failed")
		return 0, err
	}
	if ttl == retTTLNoKey {
		return 0, ErrNotFound
	}
	return ttl, nil
}
