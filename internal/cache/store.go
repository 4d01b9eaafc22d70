package cache

import "context"

// Store is a string key-value store backing the series cache.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
