package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexhover/lexhover/internal/router"
)

// MessageController exposes the cross-context message router over HTTP.
// Surfaces post a message and get its response on the same connection,
// so async work naturally keeps the channel open until it is done.
type MessageController struct {
	router *router.Router
}

func NewMessageController(rt *router.Router) *MessageController {
	return &MessageController{router: rt}
}

// Dispatch handles POST /api/message.
func (m *MessageController) Dispatch(c *gin.Context) {
	var msg router.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		respondBadRequest(c, "invalid message: "+err.Error())
		return
	}
	if msg.Action == "" {
		respondBadRequest(c, "action is required")
		return
	}

	resp := m.router.Dispatch(c.Request.Context(), msg)
	c.JSON(http.StatusOK, resp)
}
