package store

import (
	"errors"
	"time"
)

// Sentinel errors shared by every store implementation.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// EventFilter narrows an event listing. Category is an exact match when
// non-empty; From is an inclusive lower bound on the event date. There is
// deliberately no upper bound.
type EventFilter struct {
	Category string
	From     *time.Time
}
