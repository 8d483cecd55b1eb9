package domain

// ClientMessage is what a websocket client sends.
type ClientMessage struct {
	Type   string `json:"type"`
	GameID string `json:"gameId,omitempty"`
	Column *int   `json:"column,omitempty"`
}

// ServerMessage is what the server pushes back over the websocket.
type ServerMessage struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	GameID  string      `json:"gameId,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
