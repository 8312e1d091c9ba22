package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event statuses. An event starts active and can only move to cancelled.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Categories is the fixed set of labels an event may carry.
var Categories = []string{
	"Business & Corporate Events",
	"Social & Personal Events",
	"Educational Events",
	"Cultural & Religious Events",
	"Entertainment & Recreational Events",
	"Sports & Fitness Events",
	"Charity & Fundraising Events",
	"Government & Political Events",
	"Technology & Innovation Events",
	"Virtual & Hybrid Events",
}

// ValidCategory reports whether c is one of the known category labels.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Event is a user-created record for a scheduled happening.
// CreatedBy and Attendees hold raw user-id strings; ownership and
// membership checks are plain string equality.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	Category    string             `bson:"category" json:"category"`
	CreatedBy   string             `bson:"created_by" json:"createdBy"`
	Attendees   []string           `bson:"attendees" json:"attendees"`
	Status      string             `bson:"status" json:"status"`
	ImageURL    string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// Upcoming reports whether the event is still in the future at now.
// The upcoming/past split is derived at read time, never stored.
func (e *Event) Upcoming(now time.Time) bool {
	return e.Date.After(now)
}

// Attending reports whether userID is on the attendee list.
func (e *Event) Attending(userID string) bool {
	for _, a := range e.Attendees {
		if a == userID {
			return true
		}
	}
	return false
}
