package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/metrics"

	"github.com/gorilla/websocket"
)

// Роли подключенных клиентов
const (
	RoleAdmin  = "admin"
	RoleDriver = "driver"
)

const (
	// authTimeout — сколько ждем первое сообщение с JWT токеном
	authTimeout = 5 * time.Second

	// pongWait — таймаут ожидания pong от клиента
	pongWait = 60 * time.Second

	// pingInterval должен быть меньше pongWait
	pingInterval = 54 * time.Second

	// Защита от слишком больших сообщений
	maxMessageSize = 8192

	// writeWait — таймаут на отправку сообщения
	writeWait = 10 * time.Second

	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// ⚠️ В PRODUCTION здесь должна быть проверка origin!
		return true
	},
}

// AuthFunc — функция для валидации JWT токена
// Принимает: строку токена
// Возвращает: userID, role, error
type AuthFunc func(token string) (userID, role string, err error)

// Session — одно WebSocket соединение, привязанное к пользователю.
type Session struct {
	ID     string // Уникальный ID соединения
	UserID string // ID пользователя (из JWT)
	Role   string // Роль пользователя
	conn   *websocket.Conn
	send   chan []byte
	closed bool // защищен hub.mu; выставляется вместе с close(send)
	hub    *Hub
	log    *logger.Logger
}

// trySend пишет в send-канал, если сессия еще жива. Под RLock канал
// не может быть закрыт: close идет только под полным Lock хаба
func (s *Session) trySend(message []byte) bool {
	s.hub.mu.RLock()
	defer s.hub.mu.RUnlock()

	if s.closed {
		return false
	}
	select {
	case s.send <- message:
		return true
	default:
		return false
	}
}

// Hub управляет всеми активными WebSocket сессиями.
//
// Инвариант: на один userID — не больше одной адресуемой сессии.
// Новое соединение того же пользователя вытесняет старое из map;
// старое соединение не закрывается принудительно, оно просто
// перестает быть адресуемым и умрет по ping timeout.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session // userID -> активная сессия
	authFunc AuthFunc
	log      *logger.Logger
}

// NewHub создает новый WebSocket Hub.
// После создания не забудьте запустить hub.Run(ctx) в горутине.
func NewHub(authFunc AuthFunc, log *logger.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		authFunc: authFunc,
		log:      log,
	}
}

// closeSession закрывает send-канал сессии. Вызывается только под h.mu:
// флаг closed и close(send) идут под одним замком
func (h *Hub) closeSession(s *Session) {
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

// Run держит хаб до отмены контекста, затем закрывает все сессии.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	for userID, s := range h.sessions {
		h.closeSession(s)
		delete(h.sessions, userID)
	}
	h.mu.Unlock()

	h.log.Info(logger.Entry{Action: "hub_stopped", Message: "websocket hub stopped"})
}

// Register устанавливает/перезаписывает сессию для пользователя.
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	old, superseded := h.sessions[s.UserID]
	h.sessions[s.UserID] = s
	if superseded {
		// Старый send-канал закрываем, чтобы его writePump завершился
		h.closeSession(old)
	}
	h.mu.Unlock()

	if !superseded {
		metrics.WSSessionsActive.Inc()
	}

	h.log.Info(logger.Entry{
		Action:  "client_registered",
		Message: s.ID,
		Additional: map[string]any{
			"user_id":    s.UserID,
			"role":       s.Role,
			"superseded": superseded,
		},
	})
}

// Unregister удаляет сессию, если map все еще указывает на этот handle.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	current, ok := h.sessions[s.UserID]
	if ok && current.ID == s.ID {
		delete(h.sessions, s.UserID)
		h.closeSession(s)
		metrics.WSSessionsActive.Dec()
	}
	h.mu.Unlock()

	h.log.Info(logger.Entry{
		Action:  "client_unregistered",
		Message: s.ID,
		Additional: map[string]any{
			"user_id": s.UserID,
		},
	})
}

// BroadcastToRole отправляет сообщение всем сессиям с данной ролью.
// Сессии, не принявшие запись, считаются отключенными и удаляются.
func (h *Hub) BroadcastToRole(role string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, s := range h.sessions {
		if s.Role != role {
			continue
		}
		select {
		case s.send <- message:
		default:
			// Канал переполнен — клиент мертв, выкидываем
			h.closeSession(s)
			delete(h.sessions, userID)
			metrics.WSSessionsActive.Dec()
			h.log.Warn(logger.Entry{
				Action:  "broadcast_session_dropped",
				Message: userID,
				Additional: map[string]any{
					"role": role,
				},
			})
		}
	}
}

// SendToUser доставляет сообщение единственной сессии пользователя.
// Возвращает false (не ошибку), если пользователь не подключен —
// вызывающие по этому признаку решают про Wake-Up fallback.
func (h *Hub) SendToUser(userID string, message []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[userID]
	if !ok {
		return false
	}

	select {
	case s.send <- message:
		return true
	default:
		h.closeSession(s)
		delete(h.sessions, userID)
		metrics.WSSessionsActive.Dec()
		h.log.Warn(logger.Entry{
			Action:  "send_to_user_session_dropped",
			Message: userID,
		})
		return false
	}
}

// DisconnectUser доставляет прощальное сообщение (если есть) и закрывает
// сессию пользователя. Используется при удалении учетной записи.
func (h *Hub) DisconnectUser(userID string, farewell []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[userID]
	if !ok {
		return
	}

	if farewell != nil {
		select {
		case s.send <- farewell:
		default:
		}
	}

	h.closeSession(s)
	delete(h.sessions, userID)
	metrics.WSSessionsActive.Dec()

	h.log.Info(logger.Entry{
		Action:  "client_disconnected",
		Message: userID,
	})
}

// IsUserConnected проверяет, подключен ли пользователь
func (h *Hub) IsUserConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.sessions[userID]
	return ok
}

// ConnectedByRole возвращает список user_id для сессий с данной ролью
func (h *Hub) ConnectedByRole(role string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var userIDs []string
	for userID, s := range h.sessions {
		if s.Role == role {
			userIDs = append(userIDs, userID)
		}
	}
	return userIDs
}

// ServeWS обрабатывает HTTP запрос на WebSocket соединение
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(logger.Entry{
			Action:  "ws_upgrade_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return
	}

	s := &Session{
		ID:   fmt.Sprintf("ws_%d", time.Now().UnixNano()),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		hub:  h,
		log:  h.log,
	}

	// Устанавливаем дедлайн для аутентификации
	_ = conn.SetReadDeadline(time.Now().Add(authTimeout))

	// Ожидаем первое сообщение с JWT токеном
	var authMsg struct {
		Token string `json:"token"`
	}

	if err := conn.ReadJSON(&authMsg); err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseProtocolError, "auth timeout"))
		_ = conn.Close()
		h.log.Error(logger.Entry{
			Action:  "ws_auth_failed",
			Message: "no auth message received",
		})
		return
	}

	// Валидируем токен
	userID, role, err := h.authFunc(authMsg.Token)
	if err != nil {
		_ = conn.WriteJSON(map[string]string{"error": "invalid token"})
		_ = conn.Close()
		h.log.Error(logger.Entry{
			Action:  "ws_auth_invalid_token",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return
	}

	s.UserID = userID
	s.Role = role

	// Снимаем дедлайн, ставим нормальный pong wait
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	h.Register(s)

	// Отправляем подтверждение аутентификации
	_ = conn.WriteJSON(map[string]string{"status": "authenticated", "user_id": userID})

	go s.writePump()
	go s.readPump()
}

// readPump читает сообщения от клиента.
// Входящие сообщения нам не нужны (клиенты только слушают),
// но pump обязателен для обработки pong и закрытия.
func (s *Session) readPump() {
	defer func() {
		s.hub.Unregister(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Error(logger.Entry{
					Action:  "ws_read_error",
					Message: s.ID,
					Error:   &logger.ErrObj{Msg: err.Error()},
				})
			}
			break
		}

		// Единственное, что принимаем — ping от клиента
		var msg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Type == "ping" {
			pong, _ := json.Marshal(map[string]string{"type": "pong"})
			// Через trySend: хаб мог закрыть канал (вытеснение,
			// переполнение, разлогин), пока readPump еще крутится
			_ = s.trySend(pong)
		}
	}
}

// writePump отправляет сообщения клиенту
func (s *Session) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
