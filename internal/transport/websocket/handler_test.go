package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	"github.com/iamasit07/connect4-solo/internal/service/round"
)

type serverFrame struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	GameID  string          `json:"gameId"`
	Payload json.RawMessage `json:"payload"`
}

func startServer(t *testing.T) (*httptest.Server, *game.SessionManager, *ConnectionManager) {
	t.Helper()

	sm := game.NewSessionManager(1)
	cm := NewConnectionManager()
	h := NewHandler(cm, sm, nil)

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return srv, sm, cm
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) serverFrame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var frame serverFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func column(c int) *int {
	return &c
}

func TestHandler_InitCreatesGame(t *testing.T) {
	srv, sm, _ := startServer(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "init"}))
	frame := readFrame(t, conn)

	require.Equal(t, "game_state", frame.Type)
	require.NotEmpty(t, frame.GameID)
	_, ok := sm.GetSessionByGameID(frame.GameID)
	require.True(t, ok)

	var status round.Status
	require.NoError(t, json.Unmarshal(frame.Payload, &status))
	require.Equal(t, domain.Human, status.CurrentPlayer)
	require.Equal(t, domain.StateInProgress, status.State)
}

func TestHandler_MoveAndReset(t *testing.T) {
	srv, _, _ := startServer(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "init"}))
	gameID := readFrame(t, conn).GameID

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "move", Column: column(4)}))
	frame := readFrame(t, conn)
	require.Equal(t, "move_result", frame.Type)
	require.Equal(t, gameID, frame.GameID)

	var payload movePayload
	require.NoError(t, json.Unmarshal(frame.Payload, &payload))
	require.Equal(t, &round.Move{Player: domain.Human, Row: domain.Rows - 1, Column: 4}, payload.Result.HumanMove)
	require.NotNil(t, payload.Result.ComputerMove)
	require.Equal(t, 2, payload.Status.MoveCount)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "reset"}))
	frame = readFrame(t, conn)
	require.Equal(t, "game_state", frame.Type)

	var status round.Status
	require.NoError(t, json.Unmarshal(frame.Payload, &status))
	require.Equal(t, 0, status.MoveCount)
}

func TestHandler_Errors(t *testing.T) {
	srv, _, _ := startServer(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "init"}))
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "move"}))
	frame := readFrame(t, conn)
	require.Equal(t, "error", frame.Type)
	require.Equal(t, "column is required", frame.Message)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "move", Column: column(9)}))
	frame = readFrame(t, conn)
	require.Equal(t, "error", frame.Type)
	require.Contains(t, frame.Message, domain.ErrInvalidColumn.Error())

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "dance"}))
	frame = readFrame(t, conn)
	require.Equal(t, "error", frame.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	frame = readFrame(t, conn)
	require.Equal(t, "Invalid message format", frame.Message)
}

func TestHandler_InitUnknownGame(t *testing.T) {
	srv, _, _ := startServer(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "init", GameID: "missing"}))
	frame := readFrame(t, conn)
	require.Equal(t, "error", frame.Type)
	require.Equal(t, domain.ErrSessionNotFound.Error(), frame.Message)

	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}

func TestHandler_ReattachToExistingGame(t *testing.T) {
	srv, sm, cm := startServer(t)
	session := sm.CreateSession()
	_, err := session.HandleMove(0)
	require.NoError(t, err)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "init", GameID: session.GameID}))
	frame := readFrame(t, conn)
	require.Equal(t, session.GameID, frame.GameID)

	var status round.Status
	require.NoError(t, json.Unmarshal(frame.Payload, &status))
	require.Equal(t, 2, status.MoveCount)
	require.Equal(t, 1, cm.Count())

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "state"}))
	require.Equal(t, "game_state", readFrame(t, conn).Type)
}
