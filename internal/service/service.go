package service

import (
	"context"
	"time"

	"telemetry_demo/internal/logger"
	"telemetry_demo/internal/models"
	"telemetry_demo/internal/repository"
)

// Telemetry accepts readings and serves the latest one.
type Telemetry interface {
	Ingest(ctx context.Context, r models.Reading) error
	GetLatest(ctx context.Context) (models.LatestState, error)
}

// EventLog exposes the bounded transition log.
type EventLog interface {
	List(ctx context.Context) ([]models.Event, error)
}

// Fault exposes the fault-injection flag.
type Fault interface {
	SetFault(ctx context.Context, on bool) (bool, error)
	GetFault(ctx context.Context) (bool, error)
}

// Authorization guards operator endpoints. Disabled when no secret is configured.
type Authorization interface {
	Enabled() bool
	IssueToken(subject string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Service aggregates the collector's sub-services.
type Service struct {
	Telemetry
	EventLog
	Fault
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth AuthParams, log *logger.Logger) *Service {
	return &Service{
		Telemetry:     NewTelemetryService(repos.LatestRepo, repos.EventRepo, repos.Mirror, log),
		EventLog:      NewEventLogService(repos.EventRepo),
		Fault:         NewFaultService(repos.FaultRepo),
		Authorization: NewAuthService(auth.Secret, auth.TTL),
	}
}

// AuthParams configures the bearer guard.
type AuthParams struct {
	Secret string
	TTL    time.Duration
}
