package alerts

import (
	"sync"
	"time"
)

// Cache is a concurrency-safe holder for the most recent alert snapshot.
// A failed refresh simply leaves the previous snapshot in place.
type Cache struct {
	mu        sync.RWMutex
	alerts    []Alert
	fetchedAt time.Time
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// Set replaces the snapshot.
func (c *Cache) Set(alerts []Alert, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = alerts
	c.fetchedAt = fetchedAt
}

// Get returns a copy of the current snapshot and the time it was fetched.
// The zero time means no refresh has succeeded yet.
func (c *Cache) Get() ([]Alert, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Alert, len(c.alerts))
	copy(out, c.alerts)
	return out, c.fetchedAt
}
