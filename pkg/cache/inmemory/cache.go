// Package inmemory is a process-lifetime cache backend.
package inmemory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type Cache struct {
	mx      sync.RWMutex
	entries map[string][]byte
}

func New() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

func (c *Cache) Get(_ context.Context, key string, v any) (bool, error) {
	c.mx.RLock()
	raw, ok := c.entries[key]
	c.mx.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode cached value: %w", err)
	}
	return true, nil
}

func (c *Cache) Set(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}

	c.mx.Lock()
	c.entries[key] = raw
	c.mx.Unlock()

	return nil
}
