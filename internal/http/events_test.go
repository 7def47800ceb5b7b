package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexhover/lexhover/internal/router"
)

// sseRecorder adds the CloseNotify method gin's Stream helper expects
// from the underlying writer.
type sseRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newSSERecorder() *sseRecorder {
	return &sseRecorder{
		ResponseRecorder: httptest.NewRecorder(),
		closed:           make(chan bool, 1),
	}
}

func (r *sseRecorder) CloseNotify() <-chan bool { return r.closed }

func TestEventsStream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rt := router.New()
	engine := gin.New()
	engine.GET("/api/events", NewEventsController(rt).Stream)

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/api/events", nil)
	require.NoError(t, err)

	w := newSSERecorder()
	done := make(chan struct{})
	go func() {
		engine.ServeHTTP(w, req)
		close(done)
	}()

	// Broadcast until the listener has attached and received something,
	// then close the stream from the client side.
	msg, err := router.NewMessage(router.ActionTranslateHoverResult, nil)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		rt.Broadcast(msg)
		time.Sleep(10 * time.Millisecond)
		if rt.ListenerCount() > 0 && i > 2 {
			break
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not terminate after context cancellation")
	}

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "event:message")
	assert.Contains(t, w.Body.String(), router.ActionTranslateHoverResult)
}
