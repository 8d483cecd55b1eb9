package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	"github.com/iamasit07/connect4-solo/internal/service/round"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

type movePayload struct {
	Result round.TurnResult `json:"result"`
	Status round.Status     `json:"status"`
}

// NewHandler creates a WebSocket handler. checkOrigin may be nil to accept any origin.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, checkOrigin func(origin string) bool) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return checkOrigin == nil || origin == "" || checkOrigin(origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// 1. Wait for initialization: attach to a game or start one
	session, ok := h.initSession(conn)
	if !ok {
		conn.Close()
		return
	}
	gameID := session.GameID

	h.ConnManager.AddConnection(gameID, conn)
	log.Printf("[WS] Connection attached to game %s", gameID)

	done := make(chan struct{})
	defer func() {
		close(done)
		log.Printf("[WS] Connection closed for game %s", gameID)
		h.ConnManager.RemoveConnectionIfMatching(gameID, conn)
	}()

	go h.keepAlive(gameID, done)

	h.send(gameID, domain.ServerMessage{Type: "game_state", GameID: gameID, Payload: session.Status()})

	// 2. Main message loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Game %s disconnected unexpectedly: %v", gameID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.sendError(gameID, "Invalid message format")
			continue
		}

		h.processMessage(session, msg)
	}
}

func (h *Handler) initSession(conn *websocket.Conn) (*game.GameSession, bool) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		return nil, false
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" {
		log.Printf("[WS] Missing or invalid init message")
		writeInitError(conn, "Expected an init message")
		return nil, false
	}

	if message.GameID == "" {
		return h.SessionManager.CreateSession(), true
	}

	session, exists := h.SessionManager.GetSessionByGameID(message.GameID)
	if !exists {
		log.Printf("[WS] Unknown game %s during init", message.GameID)
		writeInitError(conn, domain.ErrSessionNotFound.Error())
		return nil, false
	}
	return session, true
}

func writeInitError(conn *websocket.Conn, message string) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: message})
}

func (h *Handler) keepAlive(gameID string, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := h.ConnManager.Ping(gameID); err != nil {
				return
			}
		}
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(session *game.GameSession, msg domain.ClientMessage) {
	gameID := session.GameID

	switch msg.Type {
	case "move":
		if msg.Column == nil {
			h.sendError(gameID, "column is required")
			return
		}

		result, err := session.HandleMove(*msg.Column)
		if err != nil {
			if !isClientError(err) {
				log.Printf("[WS] Move failed in game %s: %v", gameID, err)
			}
			h.sendError(gameID, err.Error())
			return
		}

		h.send(gameID, domain.ServerMessage{
			Type:    "move_result",
			GameID:  gameID,
			Message: result.Message,
			Payload: movePayload{Result: result, Status: session.Status()},
		})

	case "reset":
		h.send(gameID, domain.ServerMessage{Type: "game_state", GameID: gameID, Payload: session.Reset()})

	case "state":
		h.send(gameID, domain.ServerMessage{Type: "game_state", GameID: gameID, Payload: session.Status()})

	default:
		h.sendError(gameID, "Unknown message type: "+msg.Type)
	}
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidColumn) ||
		errors.Is(err, domain.ErrRoundFinished) ||
		errors.Is(err, domain.ErrNotYourTurn)
}

func (h *Handler) send(gameID string, msg domain.ServerMessage) {
	if err := h.ConnManager.SendMessage(gameID, msg); err != nil {
		log.Printf("[WS] Write to game %s failed: %v", gameID, err)
	}
}

func (h *Handler) sendError(gameID, message string) {
	h.send(gameID, domain.ServerMessage{Type: "error", GameID: gameID, Message: message})
}
