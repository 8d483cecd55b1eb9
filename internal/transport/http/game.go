package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	"github.com/iamasit07/connect4-solo/internal/service/round"
)

type GameHandler struct {
	SessionManager *game.SessionManager
}

func NewGameHandler(sm *game.SessionManager) *GameHandler {
	return &GameHandler{SessionManager: sm}
}

type gameResponse struct {
	GameID string       `json:"gameId"`
	Status round.Status `json:"status"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	GameID string           `json:"gameId"`
	Result round.TurnResult `json:"result"`
	Status round.Status     `json:"status"`
}

// Register mounts the game routes on r.
func (h *GameHandler) Register(r gin.IRouter) {
	r.GET("/api/games", h.ListGames)
	r.POST("/api/games", h.CreateGame)
	r.GET("/api/games/:id", h.GetGame)
	r.DELETE("/api/games/:id", h.DeleteGame)
	r.POST("/api/games/:id/moves", h.MakeMove)
	r.POST("/api/games/:id/reset", h.ResetGame)
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	session := h.SessionManager.CreateSession()

	c.JSON(http.StatusCreated, gameResponse{
		GameID: session.GameID,
		Status: session.Status(),
	})
}

func (h *GameHandler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.GetActiveGames())
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gameResponse{GameID: session.GameID, Status: session.Status()})
}

func (h *GameHandler) MakeMove(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	result, err := session.HandleMove(*req.Column)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, moveResponse{
		GameID: session.GameID,
		Result: result,
		Status: session.Status(),
	})
}

func (h *GameHandler) ResetGame(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gameResponse{GameID: session.GameID, Status: session.Reset()})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.SessionManager.RemoveSession(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) lookup(c *gin.Context) (*game.GameSession, bool) {
	session, ok := h.SessionManager.GetSessionByGameID(c.Param("id"))
	if !ok {
		writeError(c, domain.ErrSessionNotFound)
		return nil, false
	}
	return session, true
}

// writeError maps domain errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidColumn):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRoundFinished), errors.Is(err, domain.ErrNotYourTurn):
		status = http.StatusConflict
	default:
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
