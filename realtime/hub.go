// Package realtime fans event notifications out to connected websocket
// clients. Delivery is best-effort: no acknowledgement, no retry, and a
// hub with zero subscribers is a normal state.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// cross-origin browser clients are expected; auth happens on the REST
	// surface, the push channel is read-only
	CheckOrigin: func(r *http.Request) bool { return true },
}

type roomOp struct {
	client *client
	room   string
	join   bool
}

// Hub tracks connected clients and delivers published envelopes to all of
// them. Clients may join rooms keyed by event id; rooms are maintained but
// every publish is global — room scoping is retained for future use.
type Hub struct {
	clients    map[*client]bool
	rooms      map[string]map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	roomOps    chan roomOp
}

func NewHub() *Hub {
	return &Hub{
		clients:    map[*client]bool{},
		rooms:      map[string]map[*client]bool{},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		roomOps:    make(chan roomOp),
	}
}

// Run owns all hub state. Start it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			h.drop(c)
		case op := <-h.roomOps:
			h.applyRoomOp(op)
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow client: drop it rather than block the hub
					h.drop(c)
				}
			}
		}
	}
}

// Publish sends {"event": name, "data": payload} to every connected client.
// It never blocks the caller and never reports failure; if the hub's buffer
// is full the notification is dropped.
func (h *Hub) Publish(event string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		log.Printf("realtime: marshal %s notification: %v", event, err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("realtime: dropping %s notification, hub busy", event)
	}
}

// ServeWS upgrades the request and registers the connection with the hub.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed: %v", err)
		return
	}

	cl := &client{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.register <- cl

	go cl.writePump()
	go cl.readPump()
}

func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) applyRoomOp(op roomOp) {
	if !h.clients[op.client] {
		return
	}
	if op.join {
		if h.rooms[op.room] == nil {
			h.rooms[op.room] = map[*client]bool{}
		}
		h.rooms[op.room][op.client] = true
		return
	}
	if members := h.rooms[op.room]; members != nil {
		delete(members, op.client)
		if len(members) == 0 {
			delete(h.rooms, op.room)
		}
	}
}
