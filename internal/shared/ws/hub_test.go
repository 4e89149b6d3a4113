package ws

import (
	"testing"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	auth := func(token string) (string, string, error) { return "", "", nil }
	return NewHub(auth, logger.NewLogger("test"))
}

func newTestSession(id, userID, role string, buffer int) *Session {
	return &Session{
		ID:     id,
		UserID: userID,
		Role:   role,
		send:   make(chan []byte, buffer),
	}
}

func TestHub_Register(t *testing.T) {
	t.Run("should make session addressable by user id", func(t *testing.T) {
		h := newTestHub()
		s := newTestSession("ws_1", "usr-1", RoleDriver, 1)

		h.Register(s)

		assert.True(t, h.IsUserConnected("usr-1"))
	})

	t.Run("should supersede previous session of same user", func(t *testing.T) {
		h := newTestHub()
		old := newTestSession("ws_1", "usr-1", RoleDriver, 1)
		fresh := newTestSession("ws_2", "usr-1", RoleDriver, 1)

		h.Register(old)
		h.Register(fresh)

		// Старый канал закрыт, его writePump завершится
		_, ok := <-old.send
		assert.False(t, ok)

		// Сообщения уходят только в новую сессию
		require.True(t, h.SendToUser("usr-1", []byte("hello")))
		assert.Equal(t, []byte("hello"), <-fresh.send)
	})
}

func TestHub_Unregister(t *testing.T) {
	t.Run("should remove own session", func(t *testing.T) {
		h := newTestHub()
		s := newTestSession("ws_1", "usr-1", RoleDriver, 1)

		h.Register(s)
		h.Unregister(s)

		assert.False(t, h.IsUserConnected("usr-1"))
	})

	t.Run("should not remove session that superseded it", func(t *testing.T) {
		h := newTestHub()
		old := newTestSession("ws_1", "usr-1", RoleDriver, 1)
		fresh := newTestSession("ws_2", "usr-1", RoleDriver, 1)

		h.Register(old)
		h.Register(fresh)

		// Отставший Unregister старого handle не трогает новую сессию
		h.Unregister(old)

		assert.True(t, h.IsUserConnected("usr-1"))
	})
}

func TestHub_SendToUser(t *testing.T) {
	t.Run("should report false for offline user", func(t *testing.T) {
		h := newTestHub()

		assert.False(t, h.SendToUser("usr-absent", []byte("hello")))
	})

	t.Run("should deliver to connected user", func(t *testing.T) {
		h := newTestHub()
		s := newTestSession("ws_1", "usr-1", RoleDriver, 1)
		h.Register(s)

		require.True(t, h.SendToUser("usr-1", []byte("hello")))
		assert.Equal(t, []byte("hello"), <-s.send)
	})

	t.Run("should drop session with saturated buffer", func(t *testing.T) {
		h := newTestHub()
		s := newTestSession("ws_1", "usr-1", RoleDriver, 0)
		h.Register(s)

		assert.False(t, h.SendToUser("usr-1", []byte("hello")))
		assert.False(t, h.IsUserConnected("usr-1"))
	})
}

func TestHub_BroadcastToRole(t *testing.T) {
	t.Run("should deliver only to sessions with matching role", func(t *testing.T) {
		h := newTestHub()
		driver := newTestSession("ws_1", "usr-1", RoleDriver, 1)
		admin := newTestSession("ws_2", "usr-2", RoleAdmin, 1)
		h.Register(driver)
		h.Register(admin)

		h.BroadcastToRole(RoleDriver, []byte("new order"))

		assert.Equal(t, []byte("new order"), <-driver.send)
		select {
		case msg := <-admin.send:
			t.Fatalf("admin should not receive driver broadcast, got %q", msg)
		default:
		}
	})

	t.Run("should drop dead sessions during broadcast", func(t *testing.T) {
		h := newTestHub()
		dead := newTestSession("ws_1", "usr-1", RoleDriver, 0)
		alive := newTestSession("ws_2", "usr-2", RoleDriver, 1)
		h.Register(dead)
		h.Register(alive)

		h.BroadcastToRole(RoleDriver, []byte("new order"))

		assert.False(t, h.IsUserConnected("usr-1"))
		assert.True(t, h.IsUserConnected("usr-2"))
		assert.Equal(t, []byte("new order"), <-alive.send)
	})
}

func TestHub_DisconnectUser(t *testing.T) {
	t.Run("should send farewell and close session", func(t *testing.T) {
		h := newTestHub()
		s := newTestSession("ws_1", "usr-1", RoleDriver, 2)
		h.Register(s)

		h.DisconnectUser("usr-1", []byte(`{"type":"FORCE_LOGOUT"}`))

		assert.Equal(t, []byte(`{"type":"FORCE_LOGOUT"}`), <-s.send)
		_, ok := <-s.send
		assert.False(t, ok)
		assert.False(t, h.IsUserConnected("usr-1"))
	})

	t.Run("should be a no-op for offline user", func(t *testing.T) {
		h := newTestHub()

		h.DisconnectUser("usr-absent", nil)
	})
}

func TestSession_TrySend(t *testing.T) {
	t.Run("should deliver while session is live", func(t *testing.T) {
		h := newTestHub()
		s := newTestSession("ws_1", "usr-1", RoleDriver, 1)
		s.hub = h
		h.Register(s)

		require.True(t, s.trySend([]byte(`{"type":"pong"}`)))
		assert.Equal(t, []byte(`{"type":"pong"}`), <-s.send)
	})

	t.Run("should not panic replying after being superseded", func(t *testing.T) {
		h := newTestHub()
		old := newTestSession("ws_1", "usr-1", RoleDriver, 1)
		old.hub = h
		fresh := newTestSession("ws_2", "usr-1", RoleDriver, 1)
		fresh.hub = h

		h.Register(old)
		h.Register(fresh)

		// Хаб уже закрыл канал старой сессии, но ее readPump еще может
		// отвечать на клиентский ping
		assert.NotPanics(t, func() {
			assert.False(t, old.trySend([]byte(`{"type":"pong"}`)))
		})
	})

	t.Run("should not panic replying after force logout", func(t *testing.T) {
		h := newTestHub()
		s := newTestSession("ws_1", "usr-1", RoleDriver, 1)
		s.hub = h
		h.Register(s)

		h.DisconnectUser("usr-1", nil)

		assert.NotPanics(t, func() {
			assert.False(t, s.trySend([]byte(`{"type":"pong"}`)))
		})
	})

	t.Run("should not panic replying after buffer-full drop", func(t *testing.T) {
		h := newTestHub()
		s := newTestSession("ws_1", "usr-1", RoleDriver, 0)
		s.hub = h
		h.Register(s)

		// Переполненный буфер выкидывает сессию и закрывает канал
		require.False(t, h.SendToUser("usr-1", []byte("hello")))

		assert.NotPanics(t, func() {
			assert.False(t, s.trySend([]byte(`{"type":"pong"}`)))
		})
	})
}

func TestHub_ConnectedByRole(t *testing.T) {
	h := newTestHub()
	h.Register(newTestSession("ws_1", "usr-1", RoleDriver, 1))
	h.Register(newTestSession("ws_2", "usr-2", RoleDriver, 1))
	h.Register(newTestSession("ws_3", "usr-3", RoleAdmin, 1))

	drivers := h.ConnectedByRole(RoleDriver)

	assert.ElementsMatch(t, []string{"usr-1", "usr-2"}, drivers)
}
