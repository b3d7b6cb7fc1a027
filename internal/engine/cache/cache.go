// Package cache keeps the most recent fetch result of one record type in
// memory and mirrors confirmed writes into it, so a page does not refetch
// after every create, update or delete.
//
// A Cache is owned by a single page controller and is not safe for
// concurrent use.
package cache

import (
	"fmt"
	"sort"

	"github.com/dmitrijs2005/moodkeeper/internal/client/models"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
)

// Entry is a cacheable record: it has an identity and supports a shallow
// merge of a patch over its fields.
type Entry[T any] interface {
	RecordID() string
	Merge(patch models.Row) (T, error)
}

// Cache is an ordered collection holding at most one record per id.
type Cache[T Entry[T]] struct {
	items []T
}

func New[T Entry[T]]() *Cache[T] {
	return &Cache[T]{}
}

// Replace swaps the whole content for records, keeping their order. When an
// id repeats, its first occurrence wins.
func (c *Cache[T]) Replace(records []T) {
	seen := make(map[string]struct{}, len(records))
	items := make([]T, 0, len(records))
	for _, r := range records {
		id := r.RecordID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, r)
	}
	c.items = items
}

// InsertFront places a freshly created record at the head. Records without
// a store-assigned id, or whose id is already cached, are rejected.
func (c *Cache[T]) InsertFront(record T) error {
	id := record.RecordID()
	if id == "" {
		return fmt.Errorf("insert: record has no id")
	}
	if c.indexOf(id) >= 0 {
		return fmt.Errorf("insert %s: %w", id, common.ErrorAlreadyExists)
	}

	c.items = append(c.items, record)
	copy(c.items[1:], c.items[:len(c.items)-1])
	c.items[0] = record
	return nil
}

// Update replaces the record with the given id by a shallow merge of patch
// over it. Position and identity are preserved. A missing id reports
// common.ErrorNotFound and leaves the cache untouched.
func (c *Cache[T]) Update(id string, patch models.Row) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", id, common.ErrorNotFound)
	}

	merged, err := c.items[i].Merge(patch)
	if err != nil {
		return fmt.Errorf("update %s: %w", id, err)
	}
	if merged.RecordID() != id {
		return fmt.Errorf("update %s: merge changed identity to %q", id, merged.RecordID())
	}

	c.items[i] = merged
	return nil
}

// Remove deletes the record with the given id. A missing id reports
// common.ErrorNotFound and leaves the cache untouched.
func (c *Cache[T]) Remove(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, common.ErrorNotFound)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// Get returns the record with the given id.
func (c *Cache[T]) Get(id string) (T, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Find returns the first record matching pred.
func (c *Cache[T]) Find(pred func(T) bool) (T, bool) {
	for _, it := range c.items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Items returns a copy of the records in cache order.
func (c *Cache[T]) Items() []T {
	return append([]T{}, c.items...)
}

func (c *Cache[T]) Len() int { return len(c.items) }

// SortStable reorders the records. Pages ordered by logical date call it
// after InsertFront.
func (c *Cache[T]) SortStable(less func(a, b T) bool) {
	sort.SliceStable(c.items, func(i, j int) bool { return less(c.items[i], c.items[j]) })
}

func (c *Cache[T]) indexOf(id string) int {
	for i, it := range c.items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}
