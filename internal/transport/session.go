package transport

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/delver-game/delver/internal/game/engine"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 16
)

// session couples one WebSocket connection to one Game. The game is single
// threaded; mu serializes command application against it.
type session struct {
	game   *engine.Game
	conn   *websocket.Conn
	logger *zap.Logger

	mu   sync.Mutex
	send chan Response
	once sync.Once
}

func newSession(game *engine.Game, conn *websocket.Conn, logger *zap.Logger) *session {
	return &session{
		game:   game,
		conn:   conn,
		logger: logger,
		send:   make(chan Response, sendBuffer),
	}
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.send)
	})
}

// readPump decodes commands, applies them to the game, and queues responses.
// Returns when the connection drops.
func (s *session) readPump() {
	defer s.close()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd Command
		if err := s.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		s.send <- s.apply(cmd)
	}
}

// apply runs one command against the session's game.
func (s *session) apply(cmd Command) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		consumed bool
		message  string
	)
	switch cmd.Type {
	case CmdNewGame:
		if err := s.game.StartNewGame(cmd.Class); err != nil {
			message = err.Error()
		} else {
			consumed = true
			message = fmt.Sprintf("a new delve begins as the %s", cmd.Class)
		}
	case CmdMove:
		consumed, message = s.game.PlayerMove(cmd.DX, cmd.DY)
	case CmdUseAbility:
		consumed, message = s.game.UseAbility(cmd.Ability, cmd.X, cmd.Y)
	case CmdEquip:
		consumed, message = s.game.EquipFromInventory(cmd.Item)
	case CmdDescend:
		consumed, message = s.game.Descend()
	case CmdSkipLevel:
		consumed, message = s.game.DebugSkipLevel()
	default:
		message = fmt.Sprintf("unknown command %q", cmd.Type)
	}

	return Response{
		OK:      consumed,
		Message: message,
		Events:  s.game.DrainEvents(),
		State:   s.game.Snapshot(),
	}
}

// writePump ships queued responses and keeps the connection alive with pings.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case resp, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(resp); err != nil {
				s.logger.Debug("websocket write failed", zap.Error(err))
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
