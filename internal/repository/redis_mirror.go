package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"telemetry_demo/internal/models"
)

// redisWriter is the subset of *redis.Client the mirror needs.
type redisWriter interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisMirror copies the latest reading into a hash and publishes each
// transition as JSON on a channel.
type RedisMirror struct {
	rdb           redisWriter
	latestKey     string
	eventsChannel string
}

var _ Mirror = (*RedisMirror)(nil)

func NewRedisMirror(rdb redisWriter, latestKey, eventsChannel string) *RedisMirror {
	return &RedisMirror{rdb: rdb, latestKey: latestKey, eventsChannel: eventsChannel}
}

// PublishLatest overwrites the latest hash.
func (m *RedisMirror) PublishLatest(ctx context.Context, s models.LatestState) error {
	err := m.rdb.HSet(ctx, m.latestKey, map[string]interface{}{
		"ts":       s.TS,
		"pressure": s.Pressure,
		"temp":     s.Temp,
		"vib":      s.Vib,
		"status":   s.Status,
	}).Err()
	if err != nil {
		return fmt.Errorf("hset %s: %w", m.latestKey, err)
	}
	return nil
}

// PublishEvent publishes e to the events channel.
func (m *RedisMirror) PublishEvent(ctx context.Context, e models.Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := m.rdb.Publish(ctx, m.eventsChannel, b).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", m.eventsChannel, err)
	}
	return nil
}

// NopMirror discards everything.
type NopMirror struct{}

func (NopMirror) PublishLatest(context.Context, models.LatestState) error { return nil }
func (NopMirror) PublishEvent(context.Context, models.Event) error        { return nil }
