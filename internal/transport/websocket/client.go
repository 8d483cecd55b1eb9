package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect4-solo/internal/domain"
)

const writeWait = 10 * time.Second

// ConnectionManager tracks the socket attached to each game. A game has at
// most one socket; attaching a new one closes the old.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// conn.WriteJSON is not thread-safe, the pinger and the reader both write
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers a connection for a game and initializes its write lock
func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[gameID]; exists && oldConn != conn {
		oldConn.Close()
	}

	cm.connections[gameID] = conn
	cm.writeMu[gameID] = &sync.Mutex{}
}

// RemoveConnectionIfMatching only removes conn if it is still the one attached
// to the game, so a newer connection is never closed by an older one's cleanup.
func (cm *ConnectionManager) RemoveConnectionIfMatching(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[gameID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, gameID)
		delete(cm.writeMu, gameID)
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage writes a JSON message to the socket attached to gameID.
func (cm *ConnectionManager) SendMessage(gameID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[gameID]
	mu, muExists := cm.writeMu[gameID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil // disconnected, ignore
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

// Ping sends a ping control frame under the same write lock as SendMessage.
func (cm *ConnectionManager) Ping(gameID string) error {
	cm.mu.RLock()
	conn, exists := cm.connections[gameID]
	mu, muExists := cm.writeMu[gameID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return websocket.ErrCloseSent
	}

	mu.Lock()
	defer mu.Unlock()

	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}
