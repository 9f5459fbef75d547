package server

import (
	"context"
	"log"
	"sync"

	"github.com/studyhall/studyhall/internal/community"
	"github.com/studyhall/studyhall/internal/stats"
)

// RelayServer authenticates no one itself; it receives already-authenticated
// clients from the HTTP handshake and dispatches their subscribe,
// unsubscribe and send operations against the connection registry.
type RelayServer struct {
	log         *log.Logger
	svc         *community.Service
	registry    *Registry
	stats       stats.StatsProvider
	clients     map[*Client]struct{}
	clientsLock sync.Mutex
	// roomLocks serializes persist-then-broadcast per room so subscribers
	// observe messages in persistence order.
	roomLocks     map[string]*sync.Mutex
	roomLocksLock sync.Mutex
}

func NewRelayServer(logger *log.Logger, svc *community.Service, statsProvider stats.StatsProvider) (*RelayServer, error) {
	rs := &RelayServer{
		log:       logger,
		svc:       svc,
		stats:     statsProvider,
		clients:   make(map[*Client]struct{}),
		roomLocks: make(map[string]*sync.Mutex),
	}
	rs.registry = NewRegistry(logger, statsProvider)

	statsProvider.RegisterMetric(stats.NumActiveConnections)
	statsProvider.RegisterMetric(stats.NumActiveRooms)
	statsProvider.RegisterMetric(stats.NumMessagesRelayed)

	return rs, nil
}

func (rs *RelayServer) RegisterClient(c *Client) {
	rs.clientsLock.Lock()
	defer rs.clientsLock.Unlock()

	rs.clients[c] = struct{}{}
	rs.stats.Incr(stats.NumActiveConnections)
	rs.log.Printf("adding connection from %q", c.user.Username)
}

// DeregisterClient removes the connection and clears every room
// subscription it held.
func (rs *RelayServer) DeregisterClient(c *Client) {
	rs.clientsLock.Lock()
	defer rs.clientsLock.Unlock()

	if _, ok := rs.clients[c]; !ok {
		return
	}

	delete(rs.clients, c)
	rs.registry.Disconnect(c)
	rs.stats.Decr(stats.NumActiveConnections)
	rs.log.Printf("removing connection from %q", c.user.Username)
}

func (rs *RelayServer) handleMessage(msg *ClientMessage) {
	switch {
	case msg.Subscribe != nil:
		rs.registry.Subscribe(msg.client, RoomId(msg.Subscribe.ChannelId))
		msg.client.queueMessage(NoErrOK(msg.Id))
	case msg.Unsubscribe != nil:
		rs.registry.Unsubscribe(msg.client, RoomId(msg.Unsubscribe.ChannelId))
		msg.client.queueMessage(NoErrOK(msg.Id))
	case msg.Send != nil:
		rs.handleSend(msg)
	default:
		msg.client.queueMessage(ErrInvalidMessage(msg.Id))
	}
}

// handleSend persists the message and, only if the insert succeeded,
// broadcasts the stored row to the channel's room. A persistence failure is
// reported to the sender alone.
func (rs *RelayServer) handleSend(msg *ClientMessage) {
	room := RoomId(msg.Send.ChannelId)

	l := rs.roomLock(room)
	l.Lock()
	defer l.Unlock()

	saved, err := rs.svc.SaveMessage(msg.Send.ChannelId, msg.client.user.Id, msg.Send.Content)
	if err != nil {
		rs.log.Println("error saving message:", err)
		msg.client.queueMessage(SendFailedMsg(msg.Id, "failed to send message"))
		return
	}

	saved.Username = msg.client.user.Username
	rs.registry.Broadcast(room, MessageDelivered(saved))
	rs.stats.Incr(stats.NumMessagesRelayed)
}

func (rs *RelayServer) roomLock(room string) *sync.Mutex {
	rs.roomLocksLock.Lock()
	defer rs.roomLocksLock.Unlock()

	l, ok := rs.roomLocks[room]
	if !ok {
		l = &sync.Mutex{}
		rs.roomLocks[room] = l
	}

	return l
}

// Shutdown closes every live connection and waits for their pumps to exit
// or the context to expire.
func (rs *RelayServer) Shutdown(ctx context.Context) error {
	rs.clientsLock.Lock()
	clients := make([]*Client, 0, len(rs.clients))
	for c := range rs.clients {
		clients = append(clients, c)
	}
	rs.clientsLock.Unlock()

	done := make(chan struct{})
	go func() {
		for _, c := range clients {
			c.conn.Close()
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
