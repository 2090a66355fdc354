// Package websocket implements a WebSocket Hub for broadcasting real-time
// scoreboard updates. Spectators watching a live match see score changes the
// moment they're entered, without polling the API. The scoring engine itself
// never broadcasts anything; the HTTP handlers call the Hub after each write
// with freshly recomputed derived state.
package websocket

import (
	"encoding/json"
	"sync"
)

// Event names pushed to clients after a score write. Each write fans out to
// every level of derived state the write can change.
const (
	EventScoreUpdated      = "score_updated"
	EventMatchUpdated      = "match_updated"
	EventRoundUpdated      = "round_updated"
	EventTournamentUpdated = "tournament_updated"
)

// Envelope is the JSON frame sent to clients: an event name plus the
// recomputed payload for that level.
type Envelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Client represents a single connected WebSocket client. Each spectator
// watching a live match has one Client instance on the server.
type Client struct {
	MatchID string      // Which match this client is watching
	Send    chan []byte // Buffered channel of outgoing frames
}

// Message is a unit of data to broadcast to all clients watching a match.
type Message struct {
	MatchID string
	Data    []byte
}

// Hub manages all active WebSocket connections, grouped by match ID.
// It runs in its own goroutine and processes registration, unregistration,
// and broadcast events through channels — keeping map mutation on a single
// goroutine avoids data races on the clients map.
type Hub struct {
	// clients is a nested map: matchID -> set of Client pointers.
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// mu lets broadcasts read the client list concurrently with the main
	// loop's mutations.
	mu sync.RWMutex
}

// NewHub creates and initializes a Hub. The broadcast channel is buffered
// so handlers don't block if the Hub goroutine is briefly busy; register
// and unregister complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's main event loop. Call it in a goroutine ("go hub.Run()");
// it blocks forever.
func (h *Hub) Run() {
	for {
		select {

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.MatchID] == nil {
				h.clients[client.MatchID] = make(map[*Client]bool)
			}
			h.clients[client.MatchID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.drop(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[msg.MatchID]
			h.mu.RUnlock()

			// Collect slow clients first; dropping them mid-iteration would
			// mutate the map being ranged over.
			var slow []*Client
			for client := range clients {
				select {
				case client.Send <- msg.Data:
				// A full Send buffer means the client is too slow — drop it
				// rather than blocking the broadcast loop for everyone else.
				// The removal happens inline: sending to h.unregister from
				// here would deadlock the loop against itself.
				default:
					slow = append(slow, client)
				}
			}
			for _, client := range slow {
				h.drop(client)
			}
		}
	}
}

// drop removes a client from the hub and closes its Send channel, which
// signals the connection writer goroutine to stop. Only called from the Run
// goroutine.
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.MatchID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.MatchID)
	}
}

// BroadcastEvent marshals an event envelope and sends it to all clients
// watching the given match. Handlers call this after each score mutation
// with the recomputed match, round, and tournament state.
func (h *Hub) BroadcastEvent(matchID, event string, payload interface{}) {
	data, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		return
	}
	h.broadcast <- &Message{MatchID: matchID, Data: data}
}

// Register adds a client to the Hub so it starts receiving broadcasts for
// its match. Called when a WebSocket connection is opened.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the Hub when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
