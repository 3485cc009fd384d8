// websocket.go

package game

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jacl-coder/StarRunner-Server/internal/protocol"
	"github.com/jacl-coder/StarRunner-Server/pkg/logger"
)

const (
	// 写入超时时间
	writeWait = 10 * time.Second

	// 读取超时时间
	pongWait = 60 * time.Second

	// 发送 ping 的间隔时间
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// 允许所有跨域请求
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWSConnection 校验令牌后升级为WebSocket并创建会话
func (s *Server) handleWSConnection(w http.ResponseWriter, r *http.Request) {
	playerID, err := s.issuer.Validate(bearerToken(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "未授权")
		return
	}

	codec, err := protocol.NewCodec(r.URL.Query().Get("codec"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session := NewSession(playerID, s.newWorld(), codec, s.recorder, s.cfg.Server.TickInterval())
	if err := s.addSession(session); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrSessionLimit) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err.Error())
		return
	}

	// 升级HTTP连接为WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.L().Warn().Err(err).Msg("WebSocket升级失败")
		s.removeSession(session.ID)
		return
	}

	session.Start()

	// 启动读写协程
	go s.writePump(conn, session)
	go s.readPump(conn, session)
}

// bearerToken 从 Authorization 头或 token 查询参数读取令牌
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// readPump 从WebSocket读取消息并交给会话
func (s *Server) readPump(conn *websocket.Conn, session *Session) {
	defer func() {
		s.removeSession(session.ID)
		conn.Close()
	}()

	// 设置读取参数
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				session.log.Warn().Err(err).Msg("WebSocket错误")
			}
			return
		}

		var msg protocol.ClientMessage
		if err := session.codec.Unmarshal(data, &msg); err != nil {
			session.log.Debug().Err(err).Msg("解析消息失败")
			session.sendError("无法解析消息")
			continue
		}
		session.Deliver(msg)
	}
}

// writePump 把会话的输出写入WebSocket
func (s *Server) writePump(conn *websocket.Conn, session *Session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	messageType := websocket.TextMessage
	if session.codec.Binary() {
		messageType = websocket.BinaryMessage
	}

	for {
		select {
		case data := <-session.Outbox():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(messageType, data); err != nil {
				s.removeSession(session.ID)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.removeSession(session.ID)
				return
			}
		case <-session.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
