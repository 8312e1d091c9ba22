package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/niteen-codes/go-eventhub/middleware"
	"github.com/niteen-codes/go-eventhub/services"
)

// EventController maps REST requests onto the event lifecycle service.
type EventController struct {
	events *services.EventService
}

func NewEventController(events *services.EventService) *EventController {
	return &EventController{events: events}
}

// Create handles POST /api/events.
func (e *EventController) Create(c *gin.Context) {
	var input services.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, err := e.events.Create(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// List handles GET /api/events with optional ?category and ?date filters.
func (e *EventController) List(c *gin.Context) {
	list, err := e.events.List(c.Request.Context(), c.Query("category"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get handles GET /api/events/:id.
func (e *EventController) Get(c *gin.Context) {
	ev, err := e.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ev)
}

// Update handles PUT /api/events/:id; creator only.
func (e *EventController) Update(c *gin.Context) {
	var input services.UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, err := e.events.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ev)
}

// Delete handles DELETE /api/events/:id; creator only.
func (e *EventController) Delete(c *gin.Context) {
	if _, err := e.events.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// Cancel handles POST /api/events/:id/cancel; creator only.
func (e *EventController) Cancel(c *gin.Context) {
	ev, err := e.events.Cancel(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ev)
}

// Attend handles POST /api/events/:id/attend.
func (e *EventController) Attend(c *gin.Context) {
	ev, err := e.events.Attend(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ev)
}

// Leave handles POST /api/events/:id/leave.
func (e *EventController) Leave(c *gin.Context) {
	ev, err := e.events.Leave(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ev)
}

// respondError maps service errors onto HTTP statuses; anything unexpected
// is a 500 with the detail kept server-side.
func respondError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to modify this event"})
	case errors.Is(err, services.ErrGuest):
		c.JSON(http.StatusForbidden, gin.H{"error": "guests cannot create events"})
	default:
		log.Printf("events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
	}
}
