package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, sendBufferSize),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.done
	})
	return hub
}

func testTurn() (*engine.TurnRecord, engine.Snapshot) {
	turn := &engine.TurnRecord{
		Turn:       3,
		PlayerID:   2,
		DieValue:   4,
		From:       12,
		To:         6,
		JumpEvent:  &engine.Jump{From: 16, To: 6, Kind: engine.Snake},
		TurnResult: engine.TurnContinue,
		NextIndex:  0,
		Message:    "Oh no! Player 2 slid down to 6!",
	}
	snap := engine.Snapshot{
		Players:            []engine.PlayerPosition{{ID: 1, Position: 1}, {ID: 2, Position: 6}},
		CurrentPlayerIndex: 0,
		State:              engine.StateWaitingForRoll,
		Turns:              3,
	}
	return turn, snap
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub(nil)
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)

	require.Contains(t, hub.sessions, "test-session")
	assert.True(t, hub.sessions["test-session"][client])
	assert.Len(t, hub.sessions["test-session"], 1)
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub(nil)
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)
	hub.unregisterClient(client)

	assert.NotContains(t, hub.sessions, "test-session", "empty session should be cleaned up")

	_, open := <-client.send
	assert.False(t, open, "send channel should be closed")

	// Unregistering twice is a no-op
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub(nil)
	client1 := newTestClient(hub, "multi")
	client2 := newTestClient(hub, "multi")

	hub.registerClient(client1)
	hub.registerClient(client2)
	assert.Len(t, hub.sessions["multi"], 2)

	hub.unregisterClient(client1)
	assert.Len(t, hub.sessions["multi"], 1)
	assert.True(t, hub.sessions["multi"][client2])
}

func TestHubBroadcastOnlyToSession(t *testing.T) {
	hub := NewHub(nil)
	inSession := newTestClient(hub, "a")
	otherSession := newTestClient(hub, "b")
	hub.registerClient(inSession)
	hub.registerClient(otherSession)

	turn, snap := testTurn()
	hub.broadcastMessage(&Message{SessionID: "a", Event: EventTurn, Turn: turn, Snapshot: &snap})

	select {
	case data := <-inSession.send:
		var message Message
		require.NoError(t, json.Unmarshal(data, &message))
		assert.Equal(t, "a", message.SessionID)
		assert.Equal(t, EventTurn, message.Event)
		require.NotNil(t, message.Turn)
		assert.Equal(t, *turn.JumpEvent, *message.Turn.JumpEvent)
		require.NotNil(t, message.Snapshot)
		assert.Equal(t, engine.StateWaitingForRoll, message.Snapshot.State)
	default:
		t.Fatal("no message for the session client")
	}

	assert.Empty(t, otherSession.send, "other sessions must not receive the turn")
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(nil)
	slow := &Client{hub: hub, sessionID: "slow", send: make(chan []byte, 1)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{SessionID: "slow", Event: "one"})
	hub.broadcastMessage(&Message{SessionID: "slow", Event: "two"})

	assert.NotContains(t, hub.sessions, "slow")
}

func TestHubBroadcastTurnThroughRun(t *testing.T) {
	hub := startHub(t)
	client := newTestClient(hub, "run")
	hub.register <- client

	turn, snap := testTurn()
	hub.BroadcastTurn("run", turn, snap)

	select {
	case data := <-client.send:
		var message Message
		require.NoError(t, json.Unmarshal(data, &message))
		assert.Equal(t, EventTurn, message.Event)
		assert.Equal(t, turn.Message, message.Turn.Message)
	case <-time.After(time.Second):
		t.Fatal("no message received within timeout")
	}

	assert.Equal(t, 1, hub.ClientCount("run"))
	assert.Equal(t, 0, hub.ClientCount("nobody"))
}

func TestHubStopsWithContext(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := newTestClient(hub, "stop")
	hub.register <- client

	cancel()
	<-hub.done

	_, open := <-client.send
	assert.False(t, open, "clients are closed on shutdown")

	// Publishing after shutdown must not block
	turn, snap := testTurn()
	hub.BroadcastTurn("stop", turn, snap)
	assert.Equal(t, 0, hub.ClientCount("stop"))
}

func TestWebSocketReceivesSnapshotAndTurn(t *testing.T) {
	hub := startHub(t)

	turn, snap := testTurn()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"), &snap)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=ws-test"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first Message
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, EventSnapshot, first.Event)
	assert.Equal(t, 3, first.Snapshot.Turns)

	require.Eventually(t, func() bool { return hub.ClientCount("ws-test") == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastTurn("ws-test", turn, snap)

	var second Message
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, EventTurn, second.Event)
	assert.Equal(t, turn.To, second.Turn.To)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount("ws-test") == 0 }, time.Second, 10*time.Millisecond)
}
