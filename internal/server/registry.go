package server

import (
	"fmt"
	"log"
	"sync"

	"github.com/studyhall/studyhall/internal/stats"
)

// RoomId returns the room key for a channel. Rooms are scoped per channel
// and disjoint from community identifiers.
func RoomId(channelId int) string {
	return fmt.Sprintf("channel_%d", channelId)
}

// Registry is the sole owner of the connection-to-room mapping. Subscribe,
// Unsubscribe and Disconnect are the only mutations, and broadcasts iterate
// room membership under the same lock so fan-out never races a departing
// connection.
type Registry struct {
	mu          sync.RWMutex
	rooms       map[string]map[*Client]struct{}
	clientRooms map[*Client]map[string]struct{}
	log         *log.Logger
	stats       stats.StatsProvider
}

func NewRegistry(logger *log.Logger, statsProvider stats.StatsProvider) *Registry {
	return &Registry{
		rooms:       make(map[string]map[*Client]struct{}),
		clientRooms: make(map[*Client]map[string]struct{}),
		log:         logger,
		stats:       statsProvider,
	}
}

// Subscribe adds the client to a room. Subscribing twice is a no-op.
func (r *Registry) Subscribe(c *Client, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room]; !ok {
		r.rooms[room] = make(map[*Client]struct{})
		r.stats.Incr(stats.NumActiveRooms)
	}

	if _, ok := r.rooms[room][c]; ok {
		return
	}

	r.rooms[room][c] = struct{}{}

	if r.clientRooms[c] == nil {
		r.clientRooms[c] = make(map[string]struct{})
	}
	r.clientRooms[c][room] = struct{}{}
}

// Unsubscribe removes the client from a room. Unsubscribing from a room the
// client never joined is a no-op.
func (r *Registry) Unsubscribe(c *Client, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(c, room)
}

// Disconnect removes the client from every room it is subscribed to.
func (r *Registry) Disconnect(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room := range r.clientRooms[c] {
		r.removeLocked(c, room)
	}
}

func (r *Registry) removeLocked(c *Client, room string) {
	clients, ok := r.rooms[room]
	if !ok {
		return
	}

	if _, ok := clients[c]; !ok {
		return
	}

	delete(clients, c)
	if len(clients) == 0 {
		delete(r.rooms, room)
		r.stats.Decr(stats.NumActiveRooms)
	}

	delete(r.clientRooms[c], room)
	if len(r.clientRooms[c]) == 0 {
		delete(r.clientRooms, c)
	}
}

// Broadcast queues msg on every connection subscribed to the room,
// including the sender's.
func (r *Registry) Broadcast(room string, msg *ServerMessage) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for c := range r.rooms[room] {
		if !c.queueMessage(msg) {
			r.log.Printf("dropped message for session %q in room %q", c.sessionId, room)
		}
	}
}

// Subscribed reports whether the client is currently in the room.
func (r *Registry) Subscribed(c *Client, room string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[room][c]
	return ok
}

// RoomSize returns the number of connections in a room.
func (r *Registry) RoomSize(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms[room])
}
