package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"film-backend/logging"
	"film-backend/metrics"
	"film-backend/models"
	"film-backend/store"
)

// ActivityFeed records user actions and serves them back newest first.
type ActivityFeed struct {
	events store.EventLog
	now    func() time.Time

	// last is the most recently issued timestamp; timestamps are strictly
	// increasing within the process.
	last atomic.Int64
}

func NewActivityFeed(events store.EventLog) *ActivityFeed {
	return &ActivityFeed{events: events, now: time.Now}
}

// nextTimestamp returns the wall clock in epoch milliseconds, bumped past the
// previous value when the clock stalls or steps back.
func (f *ActivityFeed) nextTimestamp() int64 {
	for {
		prev := f.last.Load()
		ts := f.now().UnixMilli()
		if ts <= prev {
			ts = prev + 1
		}
		if f.last.CompareAndSwap(prev, ts) {
			return ts
		}
	}
}

// Record appends an event for userID. The timestamp is assigned here, never
// by the caller.
func (f *ActivityFeed) Record(ctx context.Context, userID int64, eventType models.EventType, op models.Operation, entityID int64) (*models.Event, error) {
	if !eventType.Valid() {
		return nil, invalidf("unknown event type %q", eventType)
	}
	if !op.Valid() {
		return nil, invalidf("unknown operation %q", op)
	}

	e := &models.Event{
		Timestamp: f.nextTimestamp(),
		UserID:    userID,
		EventType: eventType,
		Operation: op,
		EntityID:  entityID,
	}
	if err := f.events.AppendEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}

	logging.Ctx(ctx).Info().
		Int64("user_id", userID).
		Str("event_type", string(eventType)).
		Str("operation", string(op)).
		Int64("entity_id", entityID).
		Msg("Event recorded")
	return e, nil
}

// Feed returns the user's events ordered by timestamp, then id, both
// descending.
func (f *ActivityFeed) Feed(ctx context.Context, userID int64) (events []models.Event, err error) {
	defer func() { metrics.ObserveOp("feed", len(events), err) }()
	return f.events.EventsOf(ctx, userID)
}
