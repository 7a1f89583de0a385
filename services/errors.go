package services

import (
	"errors"
	"fmt"

	"film-backend/store"
)

// Error classes returned by every service. Handlers map them to HTTP status
// codes with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// lookupErr turns a store miss into ErrNotFound naming the entity and passes
// any other failure through.
func lookupErr(err error, entity string, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return fmt.Errorf("load %s %d: %w", entity, id, err)
}
