package repository

import (
	"context"
	"sync"

	"telemetry_demo/internal/models"
)

// LatestMemory is a single overwrite-on-save slot.
type LatestMemory struct {
	mu    sync.RWMutex
	state models.LatestState
}

func NewLatestMemory() *LatestMemory {
	return &LatestMemory{state: models.InitialState()}
}

// Save replaces the slot wholesale.
func (r *LatestMemory) Save(_ context.Context, s models.LatestState) error {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
	return nil
}

// Load returns a copy of the slot.
func (r *LatestMemory) Load(_ context.Context) (models.LatestState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state, nil
}
