package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialPair upgrades a loopback connection and returns both ends.
func dialPair(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverConns := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-serverConns:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server connection")
	}
	t.Cleanup(func() { server.Close() })
	return server, client
}

func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestWSHub_RegisterUnregister(t *testing.T) {
	hub := NewWSHub()
	serverConn, _ := dialPair(t)

	assert.False(t, hub.IsOnline(1))

	hub.Register(1, serverConn)
	assert.True(t, hub.IsOnline(1))

	hub.Unregister(1)
	assert.False(t, hub.IsOnline(1))
}

func TestWSHub_SendToUser(t *testing.T) {
	hub := NewWSHub()
	serverConn, clientConn := dialPair(t)
	hub.Register(7, serverConn)

	err := hub.SendToUser(7, WSMessage{Type: "vote_cast", PhotoID: 42, UserID: 3})
	require.NoError(t, err)

	msg := readMessage(t, clientConn)
	assert.Equal(t, "vote_cast", msg.Type)
	assert.Equal(t, int64(42), msg.PhotoID)
	assert.Equal(t, int64(3), msg.UserID)
}

func TestWSHub_SendToOfflineUser(t *testing.T) {
	hub := NewWSHub()
	err := hub.SendToUser(99, WSMessage{Type: "vote_cast"})
	assert.Error(t, err)
}

func TestWSHub_BroadcastSkipsOffline(t *testing.T) {
	hub := NewWSHub()
	serverConn, clientConn := dialPair(t)
	hub.Register(1, serverConn)

	// User 2 is offline; the broadcast must not fail because of it.
	hub.Broadcast([]int64{1, 2}, WSMessage{Type: "photo_uploaded", PhotoID: 5})

	msg := readMessage(t, clientConn)
	assert.Equal(t, "photo_uploaded", msg.Type)
	assert.Equal(t, int64(5), msg.PhotoID)
}

func TestWSHub_ConcurrentSendsToOneUser(t *testing.T) {
	hub := NewWSHub()
	serverConn, clientConn := dialPair(t)
	hub.Register(1, serverConn)

	const senders = 8
	const perSender = 20

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(sender int) {
			defer wg.Done()
			for j := 0; j < perSender; j++ {
				err := hub.SendToUser(1, WSMessage{Type: "vote_cast", PhotoID: int64(sender)})
				assert.NoError(t, err)
			}
		}(i)
	}

	// Every frame must arrive intact; interleaved writers would corrupt
	// or drop frames.
	for i := 0; i < senders*perSender; i++ {
		msg := readMessage(t, clientConn)
		assert.Equal(t, "vote_cast", msg.Type)
	}
	wg.Wait()
}

func TestWSHub_RegisterReplacesConnection(t *testing.T) {
	hub := NewWSHub()
	firstServer, firstClient := dialPair(t)
	secondServer, secondClient := dialPair(t)

	hub.Register(1, firstServer)
	hub.Register(1, secondServer)

	require.NoError(t, hub.SendToUser(1, WSMessage{Type: "vote_cast", PhotoID: 1}))

	msg := readMessage(t, secondClient)
	assert.Equal(t, "vote_cast", msg.Type)

	// The replaced connection was closed; reads on it fail.
	firstClient.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := firstClient.ReadMessage()
	assert.Error(t, err)
}
