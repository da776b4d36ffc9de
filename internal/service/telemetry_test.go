package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"telemetry_demo/internal/logger"
	"telemetry_demo/internal/models"
	"telemetry_demo/internal/repository"
)

// recordingMirror captures mirror calls and can be told to fail.
type recordingMirror struct {
	mu      sync.Mutex
	latest  []models.LatestState
	events  []models.Event
	failErr error
}

func (m *recordingMirror) PublishLatest(ctx context.Context, s models.LatestState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = append(m.latest, s)
	return m.failErr
}

func (m *recordingMirror) PublishEvent(ctx context.Context, e models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return m.failErr
}

// newTelemetryFixture returns a service over fresh in-memory stores.
func newTelemetryFixture(mirror repository.Mirror) (*TelemetryService, *repository.EventMemory) {
	events := repository.NewEventMemory(models.EventLogCapacity)
	svc := NewTelemetryService(repository.NewLatestMemory(), events, mirror, logger.Nop())
	return svc, events
}

func reading(status string) models.Reading {
	return models.Reading{Pressure: 8.0, Temp: 45.0, Vib: 0.8, Status: status}
}

func mustIngest(t *testing.T, svc *TelemetryService, r models.Reading) {
	t.Helper()
	if err := svc.Ingest(context.Background(), r); err != nil {
		t.Fatalf("Ingest(%+v): %v", r, err)
	}
}

func listMsgs(t *testing.T, repo *repository.EventMemory) []string {
	t.Helper()
	evs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Msg
	}
	return out
}

func TestIngest_LatestReflectsReading(t *testing.T) {
	t.Parallel()

	svc, _ := newTelemetryFixture(nil)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 500_000_000, time.UTC)
	svc.now = func() time.Time { return fixed }

	mustIngest(t, svc, reading("OK"))

	got, err := svc.GetLatest(context.Background())
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	want := models.LatestState{
		TS:       float64(fixed.UnixNano()) / float64(time.Second),
		Pressure: 8.0, Temp: 45.0, Vib: 0.8, Status: "OK",
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestIngest_EmptyStatusDefaultsToOK(t *testing.T) {
	t.Parallel()

	svc, _ := newTelemetryFixture(nil)
	mustIngest(t, svc, reading(""))

	got, _ := svc.GetLatest(context.Background())
	if got.Status != models.StatusOK {
		t.Fatalf("status: got %q, want OK", got.Status)
	}
}

func TestIngest_GetLatestBeforeIngestIsPlaceholder(t *testing.T) {
	t.Parallel()

	svc, _ := newTelemetryFixture(nil)
	got, _ := svc.GetLatest(context.Background())
	if got != models.InitialState() {
		t.Fatalf("got %+v, want INIT placeholder", got)
	}
}

func TestIngest_TimestampNeverDecreases(t *testing.T) {
	t.Parallel()

	svc, _ := newTelemetryFixture(nil)
	base := time.Date(2026, 1, 1, 0, 0, 10, 0, time.UTC)
	clock := []time.Time{base, base.Add(-5 * time.Second), base.Add(time.Second)}
	i := 0
	svc.now = func() time.Time { ts := clock[i]; i++; return ts }

	var prev float64
	for range clock {
		mustIngest(t, svc, reading("OK"))
		got, _ := svc.GetLatest(context.Background())
		if got.TS < prev {
			t.Fatalf("timestamp went backwards: %v < %v", got.TS, prev)
		}
		prev = got.TS
	}
}

func TestIngest_SameStatusLogsNothing(t *testing.T) {
	t.Parallel()

	svc, events := newTelemetryFixture(nil)
	mustIngest(t, svc, reading("OK")) // INIT -> OK
	before := len(listMsgs(t, events))

	mustIngest(t, svc, reading("OK"))
	mustIngest(t, svc, reading("OK"))

	if after := len(listMsgs(t, events)); after != before {
		t.Fatalf("expected no new entries, before=%d after=%d", before, after)
	}
}

func TestIngest_FirstOKAfterStartupRecordsRecovery(t *testing.T) {
	t.Parallel()

	svc, events := newTelemetryFixture(nil)
	mustIngest(t, svc, reading("OK"))

	msgs := listMsgs(t, events)
	if len(msgs) != 1 || msgs[0] != "RECOVERED: OK" {
		t.Fatalf("got %v", msgs)
	}
}

func TestIngest_FaultAndRecoveryScenario(t *testing.T) {
	t.Parallel()

	svc, events := newTelemetryFixture(nil)
	mustIngest(t, svc, reading("OK"))
	before := len(listMsgs(t, events))

	for _, st := range []string{"OK", "OVERTEMP", "OVERTEMP", "OK"} {
		mustIngest(t, svc, reading(st))
	}

	msgs := listMsgs(t, events)[before:]
	if len(msgs) != 2 || msgs[0] != "FAULT: OVERTEMP" || msgs[1] != "RECOVERED: OK" {
		t.Fatalf("got %v", msgs)
	}
}

func TestIngest_EventLogCappedAtCapacity(t *testing.T) {
	t.Parallel()

	svc, events := newTelemetryFixture(nil)
	mustIngest(t, svc, reading("OK"))

	// 60 alternating transitions, each with a distinct fault name so order is checkable.
	for i := 0; i < 60; i++ {
		if i%2 == 0 {
			mustIngest(t, svc, reading(fmt.Sprintf("F%02d", i)))
		} else {
			mustIngest(t, svc, reading("OK"))
		}
	}

	msgs := listMsgs(t, events)
	if len(msgs) != models.EventLogCapacity {
		t.Fatalf("len=%d, want %d", len(msgs), models.EventLogCapacity)
	}
	// newest 50 of 60 transitions: i = 10..59
	if msgs[0] != "FAULT: F10" {
		t.Fatalf("oldest retained: got %q, want %q", msgs[0], "FAULT: F10")
	}
	if msgs[len(msgs)-1] != "RECOVERED: OK" || msgs[len(msgs)-2] != "FAULT: F58" {
		t.Fatalf("newest retained: %v", msgs[len(msgs)-2:])
	}
}

func TestIngest_ConcurrentIngestsLogEveryTransitionOnce(t *testing.T) {
	t.Parallel()

	svc, events := newTelemetryFixture(nil)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_ = svc.Ingest(context.Background(), reading("OK"))
			}
		}()
	}
	wg.Wait()

	msgs := listMsgs(t, events)
	if len(msgs) != 1 || msgs[0] != "RECOVERED: OK" {
		t.Fatalf("expected exactly one INIT->OK transition, got %v", msgs)
	}
}

func TestIngest_MirrorsLatestAndTransitions(t *testing.T) {
	t.Parallel()

	m := &recordingMirror{}
	svc, _ := newTelemetryFixture(m)

	mustIngest(t, svc, reading("OK"))
	mustIngest(t, svc, reading("OK"))
	mustIngest(t, svc, reading("OVERTEMP"))

	if len(m.latest) != 3 {
		t.Fatalf("latest mirrored %d times, want 3", len(m.latest))
	}
	if len(m.events) != 2 || m.events[1].Msg != "FAULT: OVERTEMP" {
		t.Fatalf("unexpected mirrored events: %+v", m.events)
	}
}

func TestIngest_MirrorFailureDoesNotFailIngest(t *testing.T) {
	t.Parallel()

	m := &recordingMirror{failErr: errors.New("redis down")}
	svc, events := newTelemetryFixture(m)

	if err := svc.Ingest(context.Background(), reading("OVERTEMP")); err != nil {
		t.Fatalf("ingest should ignore mirror errors, got %v", err)
	}
	if msgs := listMsgs(t, events); len(msgs) != 1 || msgs[0] != "FAULT: OVERTEMP" {
		t.Fatalf("local state not updated: %v", msgs)
	}
}

// failingLatestRepo rejects every save.
type failingLatestRepo struct{ err error }

func (f failingLatestRepo) Save(context.Context, models.LatestState) error { return f.err }
func (f failingLatestRepo) Load(context.Context) (models.LatestState, error) {
	return models.LatestState{}, f.err
}

func TestIngest_SaveErrorLeavesTrackerUntouched(t *testing.T) {
	t.Parallel()

	events := repository.NewEventMemory(models.EventLogCapacity)
	svc := NewTelemetryService(failingLatestRepo{err: errors.New("boom")}, events, nil, nil)

	err := svc.Ingest(context.Background(), reading("OVERTEMP"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if svc.lastStatus != models.StatusInit {
		t.Fatalf("tracker moved on failed ingest: %q", svc.lastStatus)
	}
	if msgs := listMsgs(t, events); len(msgs) != 0 {
		t.Fatalf("event appended on failed ingest: %v", msgs)
	}
}
