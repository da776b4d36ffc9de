package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"telemetry_demo/internal/logger"
	"telemetry_demo/internal/models"
	"telemetry_demo/internal/repository"
)

const mirrorTimeout = 500 * time.Millisecond

// TelemetryService owns the ingest critical section: the latest slot write,
// the transition check and the log append happen under one lock.
type TelemetryService struct {
	latestRepo repository.LatestRepo
	eventRepo  repository.EventRepo
	mirror     repository.Mirror
	log        *logger.Logger
	now        func() time.Time

	mu         sync.Mutex
	lastStatus string
	lastTS     float64
}

func NewTelemetryService(latestRepo repository.LatestRepo, eventRepo repository.EventRepo, mirror repository.Mirror, log *logger.Logger) *TelemetryService {
	if mirror == nil {
		mirror = repository.NopMirror{}
	}
	return &TelemetryService{
		latestRepo: latestRepo,
		eventRepo:  eventRepo,
		mirror:     mirror,
		log:        log,
		now:        time.Now,
		lastStatus: models.StatusInit,
	}
}

// Ingest stores r as the latest reading and logs a transition if its status
// differs from the previous ingest.
func (s *TelemetryService) Ingest(ctx context.Context, r models.Reading) error {
	if r.Status == "" {
		r.Status = models.StatusOK
	}

	s.mu.Lock()
	ts := s.receiptTime()
	state := r.Stamp(ts)
	if err := s.latestRepo.Save(ctx, state); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save latest: %w", err)
	}
	next, ev := Transition(s.lastStatus, r.Status, ts)
	if ev != nil {
		if err := s.eventRepo.Append(ctx, *ev); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("append event: %w", err)
		}
	}
	s.lastStatus = next
	s.mu.Unlock()

	s.mirrorWrite(ctx, state, ev)
	return nil
}

// GetLatest returns the latest reading verbatim.
func (s *TelemetryService) GetLatest(ctx context.Context) (models.LatestState, error) {
	return s.latestRepo.Load(ctx)
}

// receiptTime returns the current time in unix seconds, never earlier than
// the previous receipt. Caller holds s.mu.
func (s *TelemetryService) receiptTime() float64 {
	ts := float64(s.now().UnixNano()) / float64(time.Second)
	if ts < s.lastTS {
		ts = s.lastTS
	}
	s.lastTS = ts
	return ts
}

// mirrorWrite is best-effort; failures are logged and never reach the caller.
func (s *TelemetryService) mirrorWrite(ctx context.Context, state models.LatestState, ev *models.Event) {
	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mirrorTimeout)
	defer cancel()

	if err := s.mirror.PublishLatest(mctx, state); err != nil && s.log != nil {
		s.log.Warnw("mirror_latest_failed", "err", err)
	}
	if ev == nil {
		return
	}
	if err := s.mirror.PublishEvent(mctx, *ev); err != nil && s.log != nil {
		s.log.Warnw("mirror_event_failed", "err", err, "msg", ev.Msg)
	}
}
