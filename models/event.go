package models

// Event is an immutable record of a user action. Timestamp is epoch
// milliseconds assigned by the server.
type Event struct {
	ID        int64     `gorm:"primaryKey" json:"eventId"`
	Timestamp int64     `gorm:"index:idx_event_user_time,priority:2;not null" json:"timestamp"`
	UserID    int64     `gorm:"index:idx_event_user_time,priority:1;not null" json:"userId"`
	EventType EventType `gorm:"type:varchar(16);not null" json:"eventType"`
	Operation Operation `gorm:"type:varchar(16);not null" json:"operation"`
	EntityID  int64     `json:"entityId"`
}

type EventType string

// EventType constants
const (
	EventTypeLike   EventType = "LIKE"
	EventTypeFriend EventType = "FRIEND"
	EventTypeReview EventType = "REVIEW"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeLike, EventTypeFriend, EventTypeReview:
		return true
	}
	return false
}

type Operation string

// Operation constants
const (
	OperationAdd    Operation = "ADD"
	OperationRemove Operation = "REMOVE"
	OperationUpdate Operation = "UPDATE"
)

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	switch o {
	case OperationAdd, OperationRemove, OperationUpdate:
		return true
	}
	return false
}

// NewerThan orders events newest first: higher timestamp wins, then higher ID.
func (e Event) NewerThan(other Event) bool {
	if e.Timestamp != other.Timestamp {
		return e.Timestamp > other.Timestamp
	}
	return e.ID > other.ID
}
