package transport

import (
	"sync"

	"go.uber.org/zap"

	"github.com/casenight/casenight-backend/internal/types"
)

// Hub tracks live websocket connections and their room groups, and
// implements the coordinator's Sender interface. Unlike the coordinator
// it is called from many goroutines (the coordinator loop plus every
// connection's reader), so it locks.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]*client
	groups map[string]map[string]*client
	log    *zap.Logger
}

type client struct {
	id   string
	out  chan types.ServerMessage
	room string
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]*client),
		groups: make(map[string]map[string]*client),
		log:    log,
	}
}

func (h *Hub) register(connID string) *client {
	cl := &client{id: connID, out: make(chan types.ServerMessage, 32)}
	h.mu.Lock()
	h.conns[connID] = cl
	h.mu.Unlock()
	return cl
}

func (h *Hub) unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(connID)
}

// drop removes a connection and closes its outbox. Caller holds mu.
// Safe to call twice; a slow consumer may already be gone by the time
// its reader exits.
func (h *Hub) drop(connID string) {
	cl, ok := h.conns[connID]
	if !ok {
		return
	}
	delete(h.conns, connID)
	if cl.room != "" {
		if g := h.groups[cl.room]; g != nil {
			delete(g, connID)
			if len(g) == 0 {
				delete(h.groups, cl.room)
			}
		}
	}
	close(cl.out)
}

// JoinGroup moves a connection into a room's broadcast group. A
// connection belongs to at most one room.
func (h *Hub) JoinGroup(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cl, ok := h.conns[connID]
	if !ok {
		return
	}
	if cl.room != "" {
		if g := h.groups[cl.room]; g != nil {
			delete(g, connID)
		}
	}
	cl.room = roomCode
	g := h.groups[roomCode]
	if g == nil {
		g = make(map[string]*client)
		h.groups[roomCode] = g
	}
	g[connID] = cl
}

func (h *Hub) Send(connID, event string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cl, ok := h.conns[connID]; ok {
		h.push(cl, types.ServerMessage{Event: event, Data: data})
	}
}

func (h *Hub) Broadcast(roomCode, event string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cl := range h.groups[roomCode] {
		h.push(cl, types.ServerMessage{Event: event, Data: data})
	}
}

func (h *Hub) BroadcastExcept(roomCode, exceptConnID, event string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, cl := range h.groups[roomCode] {
		if id == exceptConnID {
			continue
		}
		h.push(cl, types.ServerMessage{Event: event, Data: data})
	}
}

func (h *Hub) BroadcastAll(event string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cl := range h.conns {
		h.push(cl, types.ServerMessage{Event: event, Data: data})
	}
}

// push hands a message to the connection's writer without blocking the
// caller. A full outbox means the consumer stopped draining; drop it.
// Caller holds mu.
func (h *Hub) push(cl *client, msg types.ServerMessage) {
	select {
	case cl.out <- msg:
	default:
		h.log.Warn("dropping slow consumer", zap.String("conn", cl.id))
		h.drop(cl.id)
	}
}
