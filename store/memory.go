package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/niteen-codes/go-eventhub/models"
)

// Memory is an in-process store with the same semantics as Mongo, used by
// tests and for running without a database. All mutations happen under one
// lock, so the attendee set ops are atomic here too.
type Memory struct {
	mu     sync.Mutex
	events map[string]models.Event
	users  map[string]models.User
}

func NewMemory() *Memory {
	return &Memory{
		events: map[string]models.Event{},
		users:  map[string]models.User{},
	}
}

func (m *Memory) InsertEvent(_ context.Context, ev *models.Event) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev.ID = primitive.NewObjectID()
	m.events[ev.ID.Hex()] = *ev
	return ev, nil
}

func (m *Memory) FindEventByID(_ context.Context, id string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyEvent(ev), nil
}

func (m *Memory) FindEvents(_ context.Context, f EventFilter) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Event{}
	for _, ev := range m.events {
		if f.Category != "" && ev.Category != f.Category {
			continue
		}
		if f.From != nil && ev.Date.Before(*f.From) {
			continue
		}
		out = append(out, *copyEvent(ev))
	}
	return out, nil
}

func (m *Memory) PatchEvent(_ context.Context, id string, fields map[string]interface{}) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			ev.Name = v.(string)
		case "description":
			ev.Description = v.(string)
		case "date":
			ev.Date = v.(time.Time)
		case "category":
			ev.Category = v.(string)
		case "status":
			ev.Status = v.(string)
		}
	}
	m.events[id] = ev
	return copyEvent(ev), nil
}

func (m *Memory) DeleteEvent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *Memory) AddAttendee(_ context.Context, id, userID string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !ev.Attending(userID) {
		ev.Attendees = append(append([]string{}, ev.Attendees...), userID)
		m.events[id] = ev
	}
	return copyEvent(ev), nil
}

func (m *Memory) RemoveAttendee(_ context.Context, id, userID string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	kept := []string{}
	for _, a := range ev.Attendees {
		if a != userID {
			kept = append(kept, a)
		}
	}
	ev.Attendees = kept
	m.events[id] = ev
	return copyEvent(ev), nil
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == u.Username {
			return nil, ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	m.users[u.ID.Hex()] = *u
	return u, nil
}

func (m *Memory) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Username == username })
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email != "" && u.Email == email })
}

func (m *Memory) findUser(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if match(u) {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SetResetOTP(_ context.Context, userID, hashedOTP string, expiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.ResetOTP = hashedOTP
	u.ResetOTPExp = expiry
	m.users[userID] = u
	return nil
}

func (m *Memory) UpdatePassword(_ context.Context, userID, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Password = newHash
	u.ResetOTP = ""
	u.ResetOTPExp = time.Time{}
	m.users[userID] = u
	return nil
}

func copyEvent(ev models.Event) *models.Event {
	ev.Attendees = append([]string{}, ev.Attendees...)
	return &ev
}
