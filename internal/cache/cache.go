// Package cache backs the warm-reload course/lesson lists. Entries are
// advisory: a miss, an expired entry or a corrupt one all read as absent and
// the caller re-fetches from the API.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Noop satisfies Cache for configurations with caching disabled.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool)            { return nil, false }
func (Noop) Set(context.Context, string, []byte, time.Duration)    {}
func (Noop) Delete(context.Context, string)                        {}
