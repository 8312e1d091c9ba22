package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/niteen-codes/go-eventhub/models"
	"github.com/niteen-codes/go-eventhub/store"
	"github.com/niteen-codes/go-eventhub/utils"
)

// Broadcast names pushed to real-time clients.
const (
	EventCreated   = "newEvent"
	EventUpdated   = "updateEvent"
	EventDeleted   = "deleteEvent"
	EventCancelled = "cancelEvent"
)

// Accepted date layouts. The web client submits the datetime-local format;
// API callers normally send RFC 3339.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// EventStore is the persistence surface the lifecycle manager needs.
// Implementations must report a missing event as store.ErrNotFound and
// perform AddAttendee/RemoveAttendee atomically (add-to-set / pull), so
// concurrent membership changes cannot clobber each other.
type EventStore interface {
	InsertEvent(ctx context.Context, ev *models.Event) (*models.Event, error)
	FindEventByID(ctx context.Context, id string) (*models.Event, error)
	FindEvents(ctx context.Context, f store.EventFilter) ([]models.Event, error)
	PatchEvent(ctx context.Context, id string, fields map[string]interface{}) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	AddAttendee(ctx context.Context, id, userID string) (*models.Event, error)
	RemoveAttendee(ctx context.Context, id, userID string) (*models.Event, error)
}

// Broadcaster fans a notification out to every connected real-time client.
// Publish must never block and never fail the triggering operation; zero
// subscribers is a normal state.
type Broadcaster interface {
	Publish(event string, payload interface{})
}

// CreateEventInput carries the fields for a new event. Date arrives as the
// caller's raw string and is parsed (and normalized to UTC) here.
type CreateEventInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
}

// UpdateEventInput is a partial patch; nil fields keep their prior value.
type UpdateEventInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Category    *string `json:"category"`
}

// EventList is the read-time partition of events around the current instant.
type EventList struct {
	UpcomingEvents []models.Event `json:"upcomingEvents"`
	PastEvents     []models.Event `json:"pastEvents"`
}

// EventService enforces the event lifecycle: creation validation, ownership
// checks on mutation, attendance membership, and the active->cancelled
// transition. Every completed Create/Update/Delete/Cancel is announced
// through the Broadcaster; Attend/Leave are intentionally silent.
type EventService struct {
	store EventStore
	bus   Broadcaster
	now   func() time.Time
}

func NewEventService(s EventStore, b Broadcaster) *EventService {
	return &EventService{store: s, bus: b, now: time.Now}
}

// Create validates and persists a new active event owned by creatorID.
// The date must parse and be strictly in the future.
func (s *EventService) Create(ctx context.Context, creatorID string, in CreateEventInput) (*models.Event, error) {
	if creatorID == utils.GuestSubject {
		return nil, ErrGuest
	}
	if in.Name == "" || in.Description == "" || in.Category == "" {
		return nil, invalid("name, description and category are required")
	}
	if !models.ValidCategory(in.Category) {
		return nil, invalid("unknown category: " + in.Category)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if !date.After(s.now()) {
		return nil, invalid("please select a future date and time")
	}

	ev := &models.Event{
		Name:        in.Name,
		Description: in.Description,
		Date:        date,
		Category:    in.Category,
		CreatedBy:   creatorID,
		Attendees:   []string{},
		Status:      models.StatusActive,
		ImageURL:    in.ImageURL,
		CreatedAt:   s.now().UTC(),
	}

	ev, err = s.store.InsertEvent(ctx, ev)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.bus.Publish(EventCreated, ev)
	return ev, nil
}

// List returns matching events split into upcoming and past by comparing the
// stored date against the clock at query time. Order is store iteration
// order; no sorting is promised.
func (s *EventService) List(ctx context.Context, category, fromDate string) (*EventList, error) {
	filter := store.EventFilter{Category: category}
	if fromDate != "" {
		from, err := parseDate(fromDate)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}

	events, err := s.store.FindEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := &EventList{UpcomingEvents: []models.Event{}, PastEvents: []models.Event{}}
	now := s.now()
	for _, ev := range events {
		if ev.Upcoming(now) {
			out.UpcomingEvents = append(out.UpcomingEvents, ev)
		} else {
			out.PastEvents = append(out.PastEvents, ev)
		}
	}
	return out, nil
}

// Get fetches a single event by id.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	ev, err := s.store.FindEventByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("get event", err)
	}
	return ev, nil
}

// Update applies a partial patch; only the creator may update.
func (s *EventService) Update(ctx context.Context, id, callerID string, in UpdateEventInput) (*models.Event, error) {
	ev, err := s.store.FindEventByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("update event", err)
	}
	if ev.CreatedBy != callerID {
		return nil, ErrForbidden
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, invalid("name cannot be empty")
		}
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		if *in.Description == "" {
			return nil, invalid("description cannot be empty")
		}
		fields["description"] = *in.Description
	}
	if in.Date != nil {
		date, err := parseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		fields["date"] = date
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return nil, invalid("unknown category: " + *in.Category)
		}
		fields["category"] = *in.Category
	}
	if len(fields) == 0 {
		return nil, invalid("no fields to update")
	}

	updated, err := s.store.PatchEvent(ctx, id, fields)
	if err != nil {
		return nil, s.storeErr("update event", err)
	}

	s.bus.Publish(EventUpdated, updated)
	return updated, nil
}

// Delete hard-removes the event; only the creator may delete. The removed
// event's last-known state is broadcast.
func (s *EventService) Delete(ctx context.Context, id, callerID string) (*models.Event, error) {
	ev, err := s.store.FindEventByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("delete event", err)
	}
	if ev.CreatedBy != callerID {
		return nil, ErrForbidden
	}

	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return nil, s.storeErr("delete event", err)
	}

	s.bus.Publish(EventDeleted, ev)
	return ev, nil
}

// Cancel marks the event cancelled; only the creator may cancel. Cancelling
// an already-cancelled event is permitted and re-broadcasts, matching the
// original behavior of the system.
func (s *EventService) Cancel(ctx context.Context, id, callerID string) (*models.Event, error) {
	ev, err := s.store.FindEventByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("cancel event", err)
	}
	if ev.CreatedBy != callerID {
		return nil, ErrForbidden
	}

	updated, err := s.store.PatchEvent(ctx, id, map[string]interface{}{"status": models.StatusCancelled})
	if err != nil {
		return nil, s.storeErr("cancel event", err)
	}

	s.bus.Publish(EventCancelled, updated)
	return updated, nil
}

// Attend adds the caller to the attendee list. A duplicate attend is a
// silent no-op: the store's add-to-set makes the second call idempotent and
// race-free. (The alternative of rejecting with an already-attending error
// existed in an earlier revision and was dropped in favor of idempotence.)
// No broadcast is sent for attendance changes.
func (s *EventService) Attend(ctx context.Context, id, callerID string) (*models.Event, error) {
	ev, err := s.store.AddAttendee(ctx, id, callerID)
	if err != nil {
		return nil, s.storeErr("attend event", err)
	}
	return ev, nil
}

// Leave removes the caller from the attendee list; a no-op if absent.
func (s *EventService) Leave(ctx context.Context, id, callerID string) (*models.Event, error) {
	ev, err := s.store.RemoveAttendee(ctx, id, callerID)
	if err != nil {
		return nil, s.storeErr("leave event", err)
	}
	return ev, nil
}

// storeErr translates store sentinels, wrapping anything else as a
// persistence failure.
func (s *EventService) storeErr(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalid("invalid date format")
}
