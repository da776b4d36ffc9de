package repository

import (
	"context"
	"sync"

	"telemetry_demo/internal/models"
)

// EventMemory is an append-only log trimmed to the newest capacity entries on write.
type EventMemory struct {
	mu       sync.RWMutex
	capacity int
	events   []models.Event
}

func NewEventMemory(capacity int) *EventMemory {
	if capacity <= 0 {
		capacity = models.EventLogCapacity
	}
	return &EventMemory{
		capacity: capacity,
		events:   make([]models.Event, 0, capacity),
	}
}

// Append adds e at the tail and drops the oldest entries beyond capacity.
func (r *EventMemory) Append(_ context.Context, e models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	if over := len(r.events) - r.capacity; over > 0 {
		// shift in place so the backing array does not grow unbounded
		n := copy(r.events, r.events[over:])
		r.events = r.events[:n]
	}
	return nil
}

// List returns a snapshot of the log, oldest to newest. Never nil.
func (r *EventMemory) List(_ context.Context) ([]models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Event, len(r.events))
	copy(out, r.events)
	return out, nil
}
