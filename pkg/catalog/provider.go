package catalog

import (
	"sync/atomic"
)

// Provider hands out Catalog snapshots and supports atomic replacement.
// Parses in flight keep using the snapshot they fetched; parses started after
// Replace see the new catalog. A partially updated catalog is never visible.
type Provider struct {
	cur atomic.Pointer[Catalog]
}

// NewProvider creates a Provider serving the given catalog.
func NewProvider(c *Catalog) *Provider {
	p := &Provider{}
	p.cur.Store(c)
	return p
}

// Snapshot returns the current catalog.
func (p *Provider) Snapshot() *Catalog {
	return p.cur.Load()
}

// Replace swaps in a new catalog for subsequent snapshots.
func (p *Provider) Replace(c *Catalog) {
	p.cur.Store(c)
}
