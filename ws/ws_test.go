package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/pkg/contextkeys"
)

func newTestServer(t *testing.T, m *Manager) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		if id := c.Query("user"); id != "" {
			c.Set(contextkeys.UserKey, &models.User{BaseModel: models.BaseModel{ID: id}})
		}
		c.Next()
	}, NewWebSocketHandler(m, []string{"*"}).ServeWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestManager_PushToUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager()
	go m.Run(ctx)
	srv := newTestServer(t, m)

	first := dial(t, srv, "u1")
	second := dial(t, srv, "u1")
	other := dial(t, srv, "u2")
	require.Eventually(t, func() bool { return m.ClientCount("u1") == 2 && m.IsConnected("u2") },
		time.Second, 10*time.Millisecond)

	m.PushToUser("u1", map[string]string{"title": "New Application"})

	for _, conn := range []*websocket.Conn{first, second} {
		var got map[string]string
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, "New Application", got["title"])
	}

	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "other users receive nothing")

	m.PushToUser("nobody", "ignored")
}

func TestManager_UnregistersClosedConnections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager()
	go m.Run(ctx)
	srv := newTestServer(t, m)

	conn := dial(t, srv, "u1")
	require.Eventually(t, func() bool { return m.IsConnected("u1") }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()
	assert.Eventually(t, func() bool { return !m.IsConnected("u1") }, time.Second, 10*time.Millisecond)
}

func TestServeWS_RequiresCaller(t *testing.T) {
	m := NewManager()
	srv := newTestServer(t, m)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestManager_ShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager()
	stopped := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(stopped)
	}()
	srv := newTestServer(t, m)

	conn := dial(t, srv, "u1")
	require.Eventually(t, func() bool { return m.IsConnected("u1") }, time.Second, 10*time.Millisecond)

	cancel()
	<-stopped
	assert.False(t, m.IsConnected("u1"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
