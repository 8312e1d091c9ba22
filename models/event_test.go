package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidCategory(t *testing.T) {
	assert.Len(t, Categories, 10)
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("educational events")) // exact match only
}

func TestUpcomingIsStrict(t *testing.T) {
	now := time.Now()
	ev := Event{Date: now}
	assert.False(t, ev.Upcoming(now), "date == now counts as past")

	ev.Date = now.Add(time.Second)
	assert.True(t, ev.Upcoming(now))
}

func TestAttending(t *testing.T) {
	ev := Event{Attendees: []string{"alice", "bob"}}
	assert.True(t, ev.Attending("bob"))
	assert.False(t, ev.Attending("carol"))
	assert.False(t, (&Event{}).Attending("alice"))
}
