package router

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_KnownAction(t *testing.T) {
	r := New()
	r.Handle(ActionTranslateHover, func(ctx context.Context, msg Message) (Response, error) {
		var payload struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		return Response{"translation": payload.Text + "!"}, nil
	})

	msg, err := NewMessage(ActionTranslateHover, map[string]string{"text": "hola"})
	require.NoError(t, err)

	resp := r.Dispatch(context.Background(), msg)

	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "hola!", resp["translation"])
	assert.Equal(t, msg.ID, resp["id"])
}

func TestDispatch_HandlerError(t *testing.T) {
	r := New()
	r.Handle(ActionAddToVocabulary, func(ctx context.Context, msg Message) (Response, error) {
		return nil, errors.New("vocabulary is disabled")
	})

	resp := r.Dispatch(context.Background(), Message{Action: ActionAddToVocabulary})

	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "vocabulary is disabled", resp["error"])
}

func TestDispatch_UnknownActionIsAcknowledged(t *testing.T) {
	r := New()

	resp := r.Dispatch(context.Background(), Message{Action: "FUTURE_ACTION"})

	assert.Equal(t, true, resp["success"])
	assert.NotContains(t, resp, "error")
}

func TestNewMessage_AssignsID(t *testing.T) {
	first, err := NewMessage(ActionSidePanelOpen, map[string]int64{"timestamp": 1})
	require.NoError(t, err)
	second, err := NewMessage(ActionSidePanelOpen, map[string]int64{"timestamp": 2})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBroadcast_ReachesEveryListener(t *testing.T) {
	r := New()

	first, detachFirst := r.Listen()
	defer detachFirst()
	second, detachSecond := r.Listen()
	defer detachSecond()

	msg, err := NewMessage(ActionSidePanelOpen, map[string]int64{"timestamp": time.Now().UnixMilli()})
	require.NoError(t, err)
	r.Broadcast(msg)

	for _, ch := range []<-chan Message{first, second} {
		select {
		case got := <-ch:
			assert.Equal(t, ActionSidePanelOpen, got.Action)
		case <-time.After(time.Second):
			t.Fatal("listener never received the broadcast")
		}
	}
}

func TestListen_DetachClosesChannel(t *testing.T) {
	r := New()

	ch, detach := r.Listen()
	detach()
	detach() // idempotent

	_, open := <-ch
	assert.False(t, open)

	// Broadcasting after detach must not panic.
	msg, err := NewMessage(ActionTranslateHoverResult, nil)
	require.NoError(t, err)
	r.Broadcast(msg)
}
