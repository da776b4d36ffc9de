package repository

import (
	"context"
	"sync/atomic"
)

// FaultMemory holds the fault-injection flag.
type FaultMemory struct {
	on atomic.Bool
}

func NewFaultMemory() *FaultMemory { return &FaultMemory{} }

// Set stores the flag and returns the stored value.
func (r *FaultMemory) Set(_ context.Context, on bool) (bool, error) {
	r.on.Store(on)
	return on, nil
}

func (r *FaultMemory) Get(_ context.Context) (bool, error) {
	return r.on.Load(), nil
}
