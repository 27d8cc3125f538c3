package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-booking/models"
)

// Event types pushed to connected dashboards.
const (
	EventBookingCreate = "booking_create"
	EventBookingUpdate = "booking_update"
	EventBookingDelete = "booking_delete"
	EventTableCreate   = "table_create"
	EventTableUpdate   = "table_update"
	EventTableDelete   = "table_delete"
	EventStatsUpdate   = "stats_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the dashboard websocket connections (admin and staff) and fans
// booking and table lifecycle events out to all of them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
	logf    func(format string, args ...interface{})
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
	logf:    func(string, ...interface{}) {},
}

// SetLogger routes hub diagnostics somewhere useful.
func SetLogger(logf func(format string, args ...interface{})) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.logf = logf
}

func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func BroadcastBookingCreate(booking models.Booking) {
	broadcast(Message{Event: EventBookingCreate, Data: booking})
}

func BroadcastBookingUpdate(booking models.Booking) {
	broadcast(Message{Event: EventBookingUpdate, Data: booking})
}

func BroadcastBookingDelete(id uint) {
	broadcast(Message{Event: EventBookingDelete, Data: map[string]uint{"id": id}})
}

func BroadcastTableCreate(table models.Table) {
	broadcast(Message{Event: EventTableCreate, Data: table})
}

func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table})
}

func BroadcastTableDelete(id uint) {
	broadcast(Message{Event: EventTableDelete, Data: map[string]uint{"id": id}})
}

func BroadcastStats(stats interface{}) {
	broadcast(Message{Event: EventStatsUpdate, Data: stats})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		hub.logf("events: marshal failed: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			hub.logf("events: send failed, dropping client: %v", err)
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
