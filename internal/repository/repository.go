package repository

import (
	"context"

	"telemetry_demo/internal/models"
)

// LatestRepo holds the single most-recent telemetry slot.
type LatestRepo interface {
	Save(ctx context.Context, s models.LatestState) error
	Load(ctx context.Context) (models.LatestState, error)
}

// EventRepo holds the bounded transition log, oldest first.
type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context) ([]models.Event, error)
}

// FaultRepo holds the fault-injection flag.
type FaultRepo interface {
	Set(ctx context.Context, on bool) (bool, error)
	Get(ctx context.Context) (bool, error)
}

// Mirror receives copies of collector writes for external consumers.
type Mirror interface {
	PublishLatest(ctx context.Context, s models.LatestState) error
	PublishEvent(ctx context.Context, e models.Event) error
}

type Repository struct {
	LatestRepo LatestRepo
	EventRepo  EventRepo
	FaultRepo  FaultRepo
	Mirror     Mirror
}

// NewRepository builds the in-memory stores. A nil mirror disables mirroring.
func NewRepository(mirror Mirror) *Repository {
	if mirror == nil {
		mirror = NopMirror{}
	}
	return &Repository{
		LatestRepo: NewLatestMemory(),
		EventRepo:  NewEventMemory(models.EventLogCapacity),
		FaultRepo:  NewFaultMemory(),
		Mirror:     mirror,
	}
}
