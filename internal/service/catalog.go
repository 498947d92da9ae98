package service

import "sync"

// Catalog maps native ids to notifier instances for the process lifetime.
type Catalog struct {
	mu      sync.Mutex
	devices map[string]*Notifier
}

func NewCatalog() *Catalog {
	return &Catalog{devices: make(map[string]*Notifier)}
}

// GetOrCreate returns the cached notifier or stores the one built by create.
func (c *Catalog) GetOrCreate(nativeID string, create func() *Notifier) *Notifier {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.devices[nativeID]; ok {
		return n
	}
	n := create()
	if n != nil {
		c.devices[nativeID] = n
	}
	return n
}

func (c *Catalog) Has(nativeID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.devices[nativeID]
	return ok
}

func (c *Catalog) Remove(nativeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.devices, nativeID)
}

func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.devices)
}
