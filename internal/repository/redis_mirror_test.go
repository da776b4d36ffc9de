package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-redis/redis/v8"

	"telemetry_demo/internal/models"
)

type fakeRedis struct {
	hsetKey    string
	hsetValues []interface{}
	pubChannel string
	pubMessage interface{}
	err        error
}

func (f *fakeRedis) HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.hsetKey = key
	f.hsetValues = values
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(int64(len(values)))
	}
	return cmd
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.pubChannel = channel
	f.pubMessage = message
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func TestRedisMirror_PublishLatest(t *testing.T) {
	fr := &fakeRedis{}
	m := NewRedisMirror(fr, "telemetry:latest", "telemetry:events")

	st := models.LatestState{TS: 10.5, Pressure: 8, Temp: 45, Vib: 0.8, Status: "OK"}
	if err := m.PublishLatest(context.Background(), st); err != nil {
		t.Fatalf("PublishLatest: %v", err)
	}
	if fr.hsetKey != "telemetry:latest" {
		t.Fatalf("key=%q", fr.hsetKey)
	}
	if len(fr.hsetValues) != 1 {
		t.Fatalf("expected a single map argument, got %d", len(fr.hsetValues))
	}
	fields, ok := fr.hsetValues[0].(map[string]interface{})
	if !ok {
		t.Fatalf("expected map argument, got %T", fr.hsetValues[0])
	}
	if fields["status"] != "OK" || fields["ts"] != 10.5 || fields["temp"] != 45.0 {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestRedisMirror_PublishEvent(t *testing.T) {
	fr := &fakeRedis{}
	m := NewRedisMirror(fr, "telemetry:latest", "telemetry:events")

	if err := m.PublishEvent(context.Background(), models.Event{TS: 3, Msg: "FAULT: OVERTEMP"}); err != nil {
		t.Fatalf("PublishEvent: %v", err)
	}
	if fr.pubChannel != "telemetry:events" {
		t.Fatalf("channel=%q", fr.pubChannel)
	}
	b, ok := fr.pubMessage.([]byte)
	if !ok {
		t.Fatalf("expected []byte payload, got %T", fr.pubMessage)
	}
	var got models.Event
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if got.Msg != "FAULT: OVERTEMP" || got.TS != 3 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestRedisMirror_WrapsErrors(t *testing.T) {
	fr := &fakeRedis{err: errors.New("connection refused")}
	m := NewRedisMirror(fr, "k", "c")

	err := m.PublishLatest(context.Background(), models.LatestState{})
	if err == nil || !strings.Contains(err.Error(), "hset k") || !errors.Is(err, fr.err) {
		t.Fatalf("unexpected latest error: %v", err)
	}
	err = m.PublishEvent(context.Background(), models.Event{})
	if err == nil || !strings.Contains(err.Error(), "publish c") || !errors.Is(err, fr.err) {
		t.Fatalf("unexpected event error: %v", err)
	}
}
