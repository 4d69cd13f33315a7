// Package cache keeps rendered search pages for a short time. Entries are
// grouped per entity and a write to the entity drops the whole group.
package cache

import "context"

const (
	EntityVendors  = "vendors"
	EntityProducts = "products"
)

// Slot is where a missed lookup may be filled. It is bound to the
// generation seen by Get, so a value computed before an Invalidate lands
// in a generation nobody reads any more. The zero Slot stores nothing.
type Slot struct {
	key string
}

type ListingCache interface {
	// Get decodes the cached value into dest and reports whether it was
	// found. On a miss the returned Slot is what Set must be given.
	Get(ctx context.Context, entity, key string, dest any) (Slot, bool)
	Set(ctx context.Context, slot Slot, value any)
	Invalidate(ctx context.Context, entities ...string)
}

type noopCache struct{}

// NewNoop returns a cache that never stores anything.
func NewNoop() ListingCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, string, any) (Slot, bool) { return Slot{}, false }

func (noopCache) Set(context.Context, Slot, any) {}

func (noopCache) Invalidate(context.Context, ...string) {}
