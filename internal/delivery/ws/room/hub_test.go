package ws_room

import (
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type HubUnitSuite struct {
	suite.Suite
}

func newTestClient(hub *Hub, roomID string, buffer int) *Client {
	return &Client{
		hub:           hub,
		send:          make(chan Event, buffer),
		participantID: "alice",
		roomID:        roomID,
	}
}

func (suite *HubUnitSuite) TestBroadcast(t provider.T) {
	t.Parallel()

	t.Run("Should deliver events to room clients", func(t provider.T) {
		t.Parallel()
		hub := NewHub()
		client := newTestClient(hub, "room-1", 1)
		hub.handleRegister(client)

		hub.broadcastToRoom("room-1", Event{Type: EventParticipantJoined})

		event := <-client.send
		assert.Equal(t, EventParticipantJoined, event.Type)
	})

	t.Run("Should not reach clients in other rooms", func(t provider.T) {
		t.Parallel()
		hub := NewHub()
		client := newTestClient(hub, "room-2", 1)
		hub.handleRegister(client)

		hub.broadcastToRoom("room-1", Event{Type: EventVotingFinished})

		assert.Empty(t, client.send)
	})

	t.Run("Should evict slow client without a later double close", func(t provider.T) {
		t.Parallel()
		hub := NewHub()
		client := newTestClient(hub, "room-1", 0)
		hub.handleRegister(client)

		// Unbuffered channel with no reader: the broadcast evicts the
		// client and closes its send channel.
		hub.broadcastToRoom("room-1", Event{Type: EventVotingProgress})

		hub.mu.RLock()
		_, registered := hub.clients[client]
		_, roomKept := hub.rooms["room-1"]
		hub.mu.RUnlock()
		assert.False(t, registered)
		assert.False(t, roomKept)

		// The pumps still unregister on their way out.
		assert.NotPanics(t, func() {
			hub.handleUnregister(client)
		})
	})
}

func (suite *HubUnitSuite) TestUnregister(t provider.T) {
	t.Parallel()

	t.Run("Should drop room bucket with its last client", func(t provider.T) {
		t.Parallel()
		hub := NewHub()
		client := newTestClient(hub, "room-1", 1)
		hub.handleRegister(client)

		hub.handleUnregister(client)

		hub.mu.RLock()
		_, roomKept := hub.rooms["room-1"]
		hub.mu.RUnlock()
		assert.False(t, roomKept)

		_, open := <-client.send
		assert.False(t, open)
	})
}

func TestHubUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(HubUnitSuite))
}
