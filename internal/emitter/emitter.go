package emitter

import (
	"context"
	"time"

	"telemetry_demo/internal/logger"
	"telemetry_demo/internal/models"
)

const defaultInterval = 100 * time.Millisecond

// collector is the part of Client the loop needs.
type collector interface {
	FaultMode(ctx context.Context) (bool, error)
	Send(ctx context.Context, r models.Reading) error
}

// readingSource synthesizes the next reading.
type readingSource interface {
	Next(fault bool) models.Reading
}

// Emitter polls the fault flag and posts one synthetic reading per tick.
type Emitter struct {
	client   collector
	gen      readingSource
	interval time.Duration
	log      *logger.Logger
}

func New(client collector, gen readingSource, interval time.Duration, log *logger.Logger) *Emitter {
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Emitter{client: client, gen: gen, interval: interval, log: log}
}

// Run ticks at the configured interval until ctx is canceled.
func (e *Emitter) Run(ctx context.Context) {
	t := time.NewTicker(e.interval)
	defer t.Stop()
	for {
		e.Step(ctx)
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Step performs one poll-synthesize-send cycle. Errors are logged, never returned.
func (e *Emitter) Step(ctx context.Context) models.Reading {
	fault := e.faultMode(ctx)
	r := e.gen.Next(fault)
	if err := e.client.Send(ctx, r); err != nil {
		if ctx.Err() == nil {
			e.log.Warnw("emitter_send_failed", "err", err, "status", r.Status)
		}
		return r
	}
	e.log.Debugw("emitter_sent", "status", r.Status, "temp", r.Temp)
	return r
}

// faultMode fails open: any error reads as "no fault".
func (e *Emitter) faultMode(ctx context.Context) bool {
	on, err := e.client.FaultMode(ctx)
	if err != nil {
		e.log.Debugw("emitter_fault_poll_failed", "err", err)
		return false
	}
	return on
}
