// Package cache defines the backend the ILS layer stores its expensively
// built translation tables in. The core only gets and sets; eviction policy
// belongs to the backend.
package cache

import "context"

// Cache is a minimal get/set store. Get decodes the cached value into v and
// reports whether the key was present; Set stores v under key. Both follow
// the backend's own concurrency contract.
type Cache interface {
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}
