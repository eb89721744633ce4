// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package recommend

import (
	"sort"
	"sync"
)

// CatalogEntry is a content item with its insertion sequence, the unit the
// catalog persists.
type CatalogEntry struct {
	Item ContentItem `json:"item"`
	Seq  uint64      `json:"seq"`
}

// Catalog owns every registered content item. Listing follows insertion
// order; replacing an item keeps its original position.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]*CatalogEntry
	order   []string
	nextSeq uint64
}

var _ CatalogReader = (*Catalog)(nil)

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]*CatalogEntry)}
}

// Register inserts or replaces item and returns the stored entry. The
// item's Version is assigned here.
func (c *Catalog) Register(item ContentItem) CatalogEntry {
	next := item.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &CatalogEntry{Item: next}
	if cur, ok := c.entries[item.ID]; ok {
		entry.Seq = cur.Seq
		entry.Item.Version = cur.Item.Version + 1
	} else {
		c.nextSeq++
		entry.Seq = c.nextSeq
		entry.Item.Version = 1
		c.order = append(c.order, item.ID)
	}
	c.entries[item.ID] = entry
	return CatalogEntry{Item: entry.Item.Clone(), Seq: entry.Seq}
}

// Item returns a copy of the item with the given id.
func (c *Catalog) Item(id string) (ContentItem, bool) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return ContentItem{}, false
	}
	return e.Item.Clone(), true
}

// Items returns copies of every item in insertion order.
func (c *Catalog) Items() []ContentItem {
	c.mu.RLock()
	snaps := make([]*CatalogEntry, 0, len(c.order))
	for _, id := range c.order {
		snaps = append(snaps, c.entries[id])
	}
	c.mu.RUnlock()

	out := make([]ContentItem, len(snaps))
	for i, e := range snaps {
		out[i] = e.Item.Clone()
	}
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Restore replaces the catalog with persisted entries, ordering them by
// their sequence numbers.
func (c *Catalog) Restore(entries []CatalogEntry) {
	sorted := make([]CatalogEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Seq < sorted[j].Seq })

	fresh := make(map[string]*CatalogEntry, len(sorted))
	order := make([]string, 0, len(sorted))
	var maxSeq uint64
	for i := range sorted {
		e := CatalogEntry{Item: sorted[i].Item.Clone(), Seq: sorted[i].Seq}
		if _, dup := fresh[e.Item.ID]; !dup {
			order = append(order, e.Item.ID)
		}
		fresh[e.Item.ID] = &e
		if e.Seq > maxSeq {
			maxSeq = e.Seq
		}
	}

	c.mu.Lock()
	c.entries = fresh
	c.order = order
	c.nextSeq = maxSeq
	c.mu.Unlock()
}
