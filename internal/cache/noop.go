package cache

import (
	"context"
	"time"
)

// Noop satisfies Cache when caching is disabled or Redis is unreachable;
// every lookup is a miss.
type Noop struct{}

func (Noop) GetJSON(ctx context.Context, key string, dst any) (bool, error) { return false, nil }

func (Noop) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error { return nil }

func (Noop) GetBytes(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) SetBytes(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (Noop) Del(ctx context.Context, keys ...string) error { return nil }
