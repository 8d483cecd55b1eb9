package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-solo/internal/service/game"
)

func Health(sm *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "games": sm.Count()})
	}
}
