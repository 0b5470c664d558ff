package ws_room

import (
	"log/slog"
	"sync"
	"time"

	usecase_vote "github.com/Kieransaunders/moviezang-core/internal/usecase/vote"
)

const (
	EventParticipantJoined = "PARTICIPANT_JOINED"
	EventParticipantLeft   = "PARTICIPANT_LEFT"
	EventVotingProgress    = "VOTING_PROGRESS"
	EventVotingFinished    = "VOTING_FINISHED"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type roomEvent struct {
	roomID string
	event  Event
}

// Hub fans room events out to websocket viewers, keyed by room ID.
// HTTP controllers push events after their writes commit; the hub itself
// never mutates room state.
type Hub struct {
	logger     *slog.Logger
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomEvent
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		logger:     slog.Default(),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomEvent),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case roomEvent := <-h.broadcast:
			h.broadcastToRoom(roomEvent.roomID, roomEvent.event)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, exists := h.rooms[client.roomID]; !exists {
		h.rooms[client.roomID] = make(map[*Client]bool)
	}
	h.rooms[client.roomID][client] = true

	h.logger.Info("client registered",
		"participant_id", client.participantID,
		"room", client.roomID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		if roomClients, exists := h.rooms[client.roomID]; exists {
			delete(roomClients, client)
			if len(roomClients) == 0 {
				delete(h.rooms, client.roomID)
			}
		}
	}

	h.logger.Info("client unregistered",
		"participant_id", client.participantID,
		"room", client.roomID)
}

// broadcastToRoom evicts clients whose send buffer is full. Eviction must
// remove the client from both maps so a later unregister from its pumps
// does not close the send channel a second time.
func (h *Hub) broadcastToRoom(roomID string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[roomID] {
		select {
		case client.send <- event:
		default:
			close(client.send)
			delete(h.clients, client)
			delete(h.rooms[roomID], client)
		}
	}
	if len(h.rooms[roomID]) == 0 {
		delete(h.rooms, roomID)
	}
}

func (h *Hub) NotifyParticipantJoined(roomID string, participantID string) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventParticipantJoined,
			Payload: map[string]interface{}{
				"participant_id": participantID,
				"room_id":        roomID,
			},
		},
	}
}

func (h *Hub) NotifyParticipantLeft(roomID string, participantID string) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventParticipantLeft,
			Payload: map[string]interface{}{
				"participant_id": participantID,
				"room_id":        roomID,
			},
		},
	}
}

func (h *Hub) NotifyVotingProgress(roomID string, progress usecase_vote.Progress) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventVotingProgress,
			Payload: map[string]interface{}{
				"room_id":    roomID,
				"total":      progress.Total,
				"completed":  progress.Completed,
				"pending":    progress.Pending,
				"percentage": progress.Percentage,
			},
		},
	}
}

func (h *Hub) NotifyVotingFinished(roomID string) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventVotingFinished,
			Payload: map[string]interface{}{
				"room_id":   roomID,
				"message":   "All participants have voted",
				"timestamp": time.Now().Unix(),
			},
		},
	}

	h.logger.Info("voting finished notification sent",
		"room", roomID)
}
