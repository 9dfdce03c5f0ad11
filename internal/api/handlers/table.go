package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playcue/billiards/internal/game"
	"github.com/playcue/billiards/internal/ws"
)

// GetTableState returns a read-only snapshot of the live session: ball
// positions and velocities plus the charge state.
func GetTableState(session *game.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, session.Snapshot())
	}
}

// HandleTableWebSocket handles real-time scene streaming and mouse input.
func HandleTableWebSocket(hub *ws.Hub) gin.HandlerFunc {
	return ws.HandleWebSocket(hub)
}
