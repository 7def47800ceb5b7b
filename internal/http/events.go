package http

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/lexhover/lexhover/internal/router"
)

// EventsController streams coordinator broadcasts (side-panel opens,
// hover results routed to the panel) to connected surfaces over
// server-sent events.
type EventsController struct {
	router *router.Router
}

func NewEventsController(rt *router.Router) *EventsController {
	return &EventsController{router: rt}
}

// Stream handles GET /api/events.
func (e *EventsController) Stream(c *gin.Context) {
	ch, detach := e.router.Listen()
	defer detach()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("message", msg)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
