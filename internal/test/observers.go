package test

import (
	"context"
	"sync"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// EventRecorder collects published events.
type EventRecorder struct {
	mu     sync.Mutex
	events []model.Event
	Err    error
}

// Publish stores events and returns the configured error.
func (r *EventRecorder) Publish(_ context.Context, events ...model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return r.Err
}

// Events returns a copy of everything published so far.
func (r *EventRecorder) Events() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Event(nil), r.events...)
}

// Types lists the types of published events in order.
func (r *EventRecorder) Types() []model.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]model.EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

// MetricsRecorder counts observed events by type.
type MetricsRecorder struct {
	mu     sync.Mutex
	counts map[model.EventType]int
}

// ObserveEvent increments the counter for eventType.
func (m *MetricsRecorder) ObserveEvent(eventType model.EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[model.EventType]int)
	}
	m.counts[eventType]++
}

// Count returns how many times eventType was observed.
func (m *MetricsRecorder) Count(eventType model.EventType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[eventType]
}

// CatalogCacheStub is a map backed cache that records invalidations.
type CatalogCacheStub struct {
	mu          sync.Mutex
	items       map[string]model.CatalogItem
	Invalidated []string
	Err         error
}

// Get returns a cached copy or nil on a miss.
func (c *CatalogCacheStub) Get(_ context.Context, id string) (*model.CatalogItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	item, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// Set stores item.
func (c *CatalogCacheStub) Set(_ context.Context, item model.CatalogItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if c.items == nil {
		c.items = make(map[string]model.CatalogItem)
	}
	c.items[item.ID] = item
	return nil
}

// Invalidate drops ids and records them.
func (c *CatalogCacheStub) Invalidate(_ context.Context, ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.items, id)
	}
	c.Invalidated = append(c.Invalidated, ids...)
	return c.Err
}

// Cached reports whether id is currently cached.
func (c *CatalogCacheStub) Cached(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[id]
	return ok
}
