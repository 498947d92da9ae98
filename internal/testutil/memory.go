// Package testutil provides in-memory implementations of the storage ports
// for tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oggyb/greenapi-notifier/internal/cache"
	"github.com/oggyb/greenapi-notifier/internal/domain/device"
)

// MemoryStorage is a map-backed settings storage.
type MemoryStorage struct {
	mu    sync.Mutex
	items map[string]map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]map[string]string)}
}

func (m *MemoryStorage) GetItem(_ context.Context, nativeID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[nativeID][key]
	return v, ok, nil
}

func (m *MemoryStorage) SetItem(_ context.Context, nativeID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items[nativeID] == nil {
		m.items[nativeID] = make(map[string]string)
	}
	m.items[nativeID][key] = value
	return nil
}

func (m *MemoryStorage) RemoveItems(_ context.Context, nativeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, nativeID)
	return nil
}

// MemoryRegistry is a map-backed device registry.
type MemoryRegistry struct {
	mu      sync.Mutex
	devices map[string]device.Manifest
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{devices: make(map[string]device.Manifest)}
}

func (r *MemoryRegistry) OnDeviceDiscovered(_ context.Context, m device.Manifest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[m.NativeID] = m
	return nil
}

func (r *MemoryRegistry) NativeIDs(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.devices))
	for id := range r.devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MemoryRegistry) DeviceState(_ context.Context, nativeID string) (*device.Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.devices[nativeID]
	if !ok {
		return nil, device.ErrNotRegistered
	}
	return &m, nil
}

func (r *MemoryRegistry) RemoveDevice(_ context.Context, nativeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.devices, nativeID)
	return nil
}

var _ device.Registry = (*MemoryRegistry)(nil)

// MemoryCache is a map-backed cache. TTLs are recorded but not enforced.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]string
	TTLs map[string]time.Duration
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]string), TTLs: make(map[string]time.Duration)}
}

func (c *MemoryCache) Ping(context.Context) error { return nil }

func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.TTLs[key] = ttl
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	return v, nil
}

var _ cache.Cache = (*MemoryCache)(nil)
