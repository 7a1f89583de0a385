package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"film-backend/models"

	"github.com/redis/go-redis/v9"
)

const eventSeqKey = "events:seq"

// RedisEventLog keeps one sorted set per user, scored by event timestamp.
// Members are "<zero-padded id>:<type>:<operation>:<entity>", so redis' reverse
// lexical order among equal scores is also descending ID order.
type RedisEventLog struct {
	client *redis.Client
}

func NewRedisEventLog(client *redis.Client) *RedisEventLog {
	return &RedisEventLog{client: client}
}

func eventKey(userID int64) string {
	return fmt.Sprintf("events:%d", userID)
}

func (r *RedisEventLog) AppendEvent(ctx context.Context, e *models.Event) error {
	id, err := r.client.Incr(ctx, eventSeqKey).Result()
	if err != nil {
		return fmt.Errorf("allocate event id: %w", err)
	}
	e.ID = id

	member := fmt.Sprintf("%020d:%s:%s:%d", e.ID, e.EventType, e.Operation, e.EntityID)
	return r.client.ZAdd(ctx, eventKey(e.UserID), redis.Z{
		Score:  float64(e.Timestamp),
		Member: member,
	}).Err()
}

func (r *RedisEventLog) EventsOf(ctx context.Context, userID int64) ([]models.Event, error) {
	results, err := r.client.ZRevRangeWithScores(ctx, eventKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(results))
	for _, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		e, err := parseEventMember(member)
		if err != nil {
			return nil, err
		}
		e.UserID = userID
		e.Timestamp = int64(z.Score)
		events = append(events, e)
	}
	return events, nil
}

func parseEventMember(member string) (models.Event, error) {
	parts := strings.Split(member, ":")
	if len(parts) != 4 {
		return models.Event{}, fmt.Errorf("malformed event member %q", member)
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return models.Event{}, fmt.Errorf("event id in %q: %w", member, err)
	}
	entityID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return models.Event{}, fmt.Errorf("entity id in %q: %w", member, err)
	}
	return models.Event{
		ID:        id,
		EventType: models.EventType(parts[1]),
		Operation: models.Operation(parts[2]),
		EntityID:  entityID,
	}, nil
}
