package cache

import (
	"time"

	"rent-hub/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const homeKey = "home"

// ContentCache is a TTL-bounded read cache for the hot public reads: the
// home-page configuration and vehicle detail pages. Entries expire on their
// own; admin updates invalidate the home entry eagerly so editors see their
// change on the next read.
type ContentCache struct {
	home     *expirable.LRU[string, *domain.HomeContent]
	vehicles *expirable.LRU[string, *domain.VehicleDetail]
}

// NewContentCache creates a cache holding up to size vehicle details, each
// entry living for ttl.
func NewContentCache(size int, ttl time.Duration) *ContentCache {
	return &ContentCache{
		home:     expirable.NewLRU[string, *domain.HomeContent](1, nil, ttl),
		vehicles: expirable.NewLRU[string, *domain.VehicleDetail](size, nil, ttl),
	}
}

// HomeContent returns the cached home configuration, if fresh.
func (c *ContentCache) HomeContent() (*domain.HomeContent, bool) {
	return c.home.Get(homeKey)
}

// SetHomeContent stores the home configuration.
func (c *ContentCache) SetHomeContent(content *domain.HomeContent) {
	c.home.Add(homeKey, content)
}

// InvalidateHomeContent drops the cached home configuration.
func (c *ContentCache) InvalidateHomeContent() {
	c.home.Remove(homeKey)
}

// Vehicle returns the cached detail for a vehicle id, if fresh.
func (c *ContentCache) Vehicle(id string) (*domain.VehicleDetail, bool) {
	return c.vehicles.Get(id)
}

// SetVehicle stores one vehicle detail.
func (c *ContentCache) SetVehicle(id string, detail *domain.VehicleDetail) {
	c.vehicles.Add(id, detail)
}
