package ws

import (
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Hub tracks connected clients and fans account events out to them. Each
// account gets its own private stream; there is no cross-account broadcast.
type Hub struct {
	// clients maps accountID → connections for that account.
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client
	deliver    chan *deliverMsg
}

type deliverMsg struct {
	accountID uuid.UUID
	data      []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan *deliverMsg, 256),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.accountID] = append(h.clients[client.accountID], client)
			log.Debug("ws hub: client connected", "account", client.accountID, "conns", len(h.clients[client.accountID]))

		case client := <-h.unregister:
			conns := h.clients[client.accountID]
			for i, c := range conns {
				if c == client {
					h.clients[client.accountID] = append(conns[:i], conns[i+1:]...)
					close(client.send)
					close(client.done)
					break
				}
			}
			if len(h.clients[client.accountID]) == 0 {
				delete(h.clients, client.accountID)
			}
			log.Debug("ws hub: client disconnected", "account", client.accountID)

		case msg := <-h.deliver:
			for _, client := range h.clients[msg.accountID] {
				select {
				case client.send <- msg.data:
				default:
					// Client buffer full - drop the event, the HTTP state
					// endpoints remain authoritative.
				}
			}
		}
	}
}

// SendToAccount delivers an event to every connection of one account.
func (h *Hub) SendToAccount(accountID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error("ws hub: marshal error", "err", err)
		return
	}
	h.deliver <- &deliverMsg{accountID: accountID, data: data}
}
