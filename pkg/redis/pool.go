package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

type PoolOption struct {
	f func(*redis.Pool)
}

func PoolDial(f func() (redis.Conn, error)) PoolOption {
	return PoolOption{func(p *redis.Pool) {
		p.Dial = f
	}}
}

func PoolIdleTimeout(timeout time.Duration) PoolOption {
	return PoolOption{func(p *redis.Pool) {
		p.IdleTimeout = timeout
	}}
}

func PoolMaxActive(i int) PoolOption {
	return PoolOption{func(p *redis.Pool) {
		p.MaxActive = i
	}}
}

func PoolMaxIdle(i int) PoolOption {
	return PoolOption{func(p *redis.Pool) {
		p.MaxIdle = i
	}}
}

func PoolWait(b bool) PoolOption {
	return PoolOption{func(p *redis.Pool) {
		p.Wait = b
	}}
}

// PoolTestOnBorrow pings connections that sat idle for longer than idle.
func PoolTestOnBorrow(idle time.Duration) PoolOption {
	return PoolOption{func(p *redis.Pool) {
		p.TestOnBorrow = func(c redis.Conn, t time.Time) error {
			if time.Since(t) < idle {
				return nil
			}
			_, err := c.Do("PING")
			return err
		}
	}}
}

// AddrDialer dials addr and selects db, authenticating when password is set.
func AddrDialer(addr, password string, db int) func() (redis.Conn, error) {
	return func() (redis.Conn, error) {
		opts := []redis.DialOption{
			redis.DialDatabase(db),
			redis.DialConnectTimeout(5 * time.Second),
		}
		if password != "" {
			opts = append(opts, redis.DialPassword(password))
		}
		return redis.Dial("tcp", addr, opts...)
	}
}

// NewPool returns a pool dialing localhost by default.
func NewPool(options ...PoolOption) *redis.Pool {
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", ":6379")
		},
	}

	for _, option := range options {
		option.f(pool)
	}

	return pool
}

// Ping checks that a connection can be borrowed and answers PING.
func Ping(ctx context.Context, pool *redis.Pool) error {
	conn, err := pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("redis: get connection: %w", err)
	}
	defer conn.Close()

	if _, err := redis.String(conn.Do("PING")); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}
