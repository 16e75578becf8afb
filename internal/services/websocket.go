package services

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// ChatGate decides whether a user may listen on a trip's message channel.
// The participation service implements it.
type ChatGate interface {
	CanAccessChat(ctx context.Context, tripID, userID uint) (bool, error)
}

// Client represents a WebSocket client
type Client struct {
	ID    uint
	Conn  *websocket.Conn
	Send  chan []byte
	Hub   *Hub
	trips map[uint]bool
}

// Hub maintains the set of active clients and the per-trip rooms used for
// change-feed notifications.
type Hub struct {
	gate       ChatGate
	clients    map[*Client]bool
	rooms      map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub(gate ChatGate) *Hub {
	return &Hub{
		gate:       gate,
		clients:    make(map[*Client]bool),
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Info().Uint("userId", client.ID).Msg("websocket client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				for tripID := range client.trips {
					h.leaveRoomLocked(client, tripID)
				}
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Info().Uint("userId", client.ID).Msg("websocket client disconnected")
		}
	}
}

func (h *Hub) joinRoom(client *Client, tripID uint) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	room, ok := h.rooms[tripID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[tripID] = room
	}
	room[client] = true
	client.trips[tripID] = true
}

func (h *Hub) leaveRoom(client *Client, tripID uint) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.leaveRoomLocked(client, tripID)
}

func (h *Hub) leaveRoomLocked(client *Client, tripID uint) {
	if room, ok := h.rooms[tripID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, tripID)
		}
	}
	delete(client.trips, tripID)
}

// RemoveUserFromTrip revokes a user's live subscription to a trip's channel,
// used when the host removes an approved member.
func (h *Hub) RemoveUserFromTrip(tripID, userID uint) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	room, ok := h.rooms[tripID]
	if !ok {
		return
	}
	for client := range room {
		if client.ID == userID {
			h.leaveRoomLocked(client, tripID)
		}
	}
}

// BroadcastToTrip sends a message to every client subscribed to a trip.
func (h *Hub) BroadcastToTrip(tripID uint, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for client := range h.rooms[tripID] {
		select {
		case client.Send <- message:
		default:
			log.Warn().Uint("userId", client.ID).Msg("websocket send channel full, dropping notification")
		}
	}
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// WebSocketMessage is the envelope for all frames in both directions.
type WebSocketMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// TripRef identifies a trip in subscribe/unsubscribe frames and in outgoing
// change notifications.
type TripRef struct {
	TripID uint `json:"tripId"`
}

// NotifyMessageInserted pushes a change notification for a trip's message
// channel. It carries only the trip id: subscribers refetch the full message
// list, which keeps the contract idempotent.
func (h *Hub) NotifyMessageInserted(tripID uint) {
	payload, err := json.Marshal(TripRef{TripID: tripID})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal message notification")
		return
	}
	data, err := json.Marshal(WebSocketMessage{Type: "message_inserted", Data: payload})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal message notification")
		return
	}
	h.BroadcastToTrip(tripID, data)
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade error")
		return
	}

	client := &Client{
		ID:    userID,
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Hub:   hub,
		trips: make(map[uint]bool),
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Msg("websocket read error")
			}
			break
		}

		var wsMessage WebSocketMessage
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Error().Err(err).Msg("error unmarshaling websocket message")
			continue
		}

		switch wsMessage.Type {
		case "subscribe_trip":
			c.handleSubscribe(wsMessage.Data)
		case "unsubscribe_trip":
			c.handleUnsubscribe(wsMessage.Data)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Error().Err(err).Msg("websocket write error")
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// handleSubscribe attaches the client to a trip's message channel after the
// participation gate confirms the user is the host or an approved member.
func (c *Client) handleSubscribe(data json.RawMessage) {
	var ref TripRef
	if err := json.Unmarshal(data, &ref); err != nil || ref.TripID == 0 {
		return
	}
	ok, err := c.Hub.gate.CanAccessChat(context.Background(), ref.TripID, c.ID)
	if err != nil {
		log.Error().Err(err).Uint("tripId", ref.TripID).Uint("userId", c.ID).Msg("chat gate check failed")
		return
	}
	if !ok {
		log.Info().Uint("tripId", ref.TripID).Uint("userId", c.ID).Msg("chat subscription denied")
		return
	}
	c.Hub.joinRoom(c, ref.TripID)
}

func (c *Client) handleUnsubscribe(data json.RawMessage) {
	var ref TripRef
	if err := json.Unmarshal(data, &ref); err != nil || ref.TripID == 0 {
		return
	}
	c.Hub.leaveRoom(c, ref.TripID)
}
