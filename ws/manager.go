// Package ws pushes in-app notifications to users over websocket connections.
package ws

import (
	"context"
	"sync"

	"jobportal_backend/internal/logger"
)

// Manager tracks live connections per user. A user may hold several (one per tab).
type Manager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations until ctx is cancelled, then closes every connection.
func (m *Manager) Run(ctx context.Context) {
	defer close(m.done)
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			set, ok := m.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				m.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			m.mu.Unlock()
			logger.Debug("websocket client registered", "user_id", client.UserID)

		case client := <-m.unregister:
			m.remove(client)

		case <-ctx.Done():
			m.mu.Lock()
			for userID, set := range m.clients {
				for client := range set {
					close(client.send)
				}
				delete(m.clients, userID)
			}
			m.mu.Unlock()
			return
		}
	}
}

func (m *Manager) remove(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	close(client.send)
	delete(set, client)
	if len(set) == 0 {
		delete(m.clients, client.UserID)
	}
	logger.Debug("websocket client unregistered", "user_id", client.UserID)
}

// PushToUser queues payload on every connection of userID. Slow connections are dropped.
func (m *Manager) PushToUser(userID string, payload interface{}) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients[userID] {
		select {
		case client.send <- payload:
		default:
			logger.Warn("websocket send buffer full, dropping client", "user_id", userID)
			go m.drop(client)
		}
	}
}

func (m *Manager) add(client *Client) bool {
	select {
	case m.register <- client:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) drop(client *Client) {
	select {
	case m.unregister <- client:
	case <-m.done:
	}
}

// ClientCount returns the number of live connections of userID.
func (m *Manager) ClientCount(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID])
}

func (m *Manager) IsConnected(userID string) bool {
	return m.ClientCount(userID) > 0
}
