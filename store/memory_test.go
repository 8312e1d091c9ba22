package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niteen-codes/go-eventhub/models"
)

func seedEvent(t *testing.T, m *Memory, name, category string, date time.Time) *models.Event {
	t.Helper()
	ev, err := m.InsertEvent(context.Background(), &models.Event{
		Name:        name,
		Description: "d",
		Date:        date,
		Category:    category,
		CreatedBy:   "alice",
		Attendees:   []string{},
		Status:      models.StatusActive,
	})
	require.NoError(t, err)
	return ev
}

func TestMemoryAddAttendeeIsSetLike(t *testing.T) {
	m := NewMemory()
	ev := seedEvent(t, m, "Meetup", "Educational Events", time.Now().Add(time.Hour))
	id := ev.ID.Hex()

	for i := 0; i < 3; i++ {
		_, err := m.AddAttendee(context.Background(), id, "bob")
		require.NoError(t, err)
	}

	got, err := m.FindEventByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, got.Attendees)
}

func TestMemoryConcurrentAttends(t *testing.T) {
	m := NewMemory()
	ev := seedEvent(t, m, "Meetup", "Educational Events", time.Now().Add(time.Hour))
	id := ev.ID.Hex()

	var wg sync.WaitGroup
	users := []string{"bob", "carol", "dave", "erin"}
	for _, u := range users {
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(u string) {
				defer wg.Done()
				_, err := m.AddAttendee(context.Background(), id, u)
				assert.NoError(t, err)
			}(u)
		}
	}
	wg.Wait()

	got, err := m.FindEventByID(context.Background(), id)
	require.NoError(t, err)
	assert.ElementsMatch(t, users, got.Attendees)
}

func TestMemoryFilters(t *testing.T) {
	m := NewMemory()
	now := time.Now()
	seedEvent(t, m, "Soon", "Educational Events", now.Add(time.Hour))
	seedEvent(t, m, "Later", "Sports & Fitness Events", now.Add(48*time.Hour))

	byCategory, err := m.FindEvents(context.Background(), EventFilter{Category: "Sports & Fitness Events"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Later", byCategory[0].Name)

	from := now.Add(24 * time.Hour)
	byDate, err := m.FindEvents(context.Background(), EventFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "Later", byDate[0].Name)
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := NewMemory()
	ev := seedEvent(t, m, "Meetup", "Educational Events", time.Now().Add(time.Hour))
	id := ev.ID.Hex()

	got, err := m.FindEventByID(context.Background(), id)
	require.NoError(t, err)
	got.Name = "mutated"
	got.Attendees = append(got.Attendees, "mallory")

	again, err := m.FindEventByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Meetup", again.Name)
	assert.Empty(t, again.Attendees)
}

func TestMemoryUserUniqueness(t *testing.T) {
	m := NewMemory()

	_, err := m.CreateUser(context.Background(), &models.User{Username: "alice", Password: "h"})
	require.NoError(t, err)

	_, err = m.CreateUser(context.Background(), &models.User{Username: "alice", Password: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)

	// usernames are case-sensitive; a different casing is a different user
	_, err = m.CreateUser(context.Background(), &models.User{Username: "Alice", Password: "h"})
	assert.NoError(t, err)
}

func TestMemoryNotFound(t *testing.T) {
	m := NewMemory()

	_, err := m.FindEventByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = m.DeleteEvent(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.FindUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
