package connectionhub

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn часть *websocket.Conn, нужная сессии
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

const sendBufferSize = 16

type clientSession struct {
	conn Conn

	// Outbound mesages, buffered.
	sendCh   chan any
	ctx      context.Context
	cancelFn func()
	stopOnce sync.Once
}

func newSession(conn Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		conn:     conn,
		sendCh:   make(chan any, sendBufferSize),
		ctx:      ctx,
		cancelFn: cancelFn,
	}
	go sess.startSend()
	return sess
}

// enqueue не блокирует вызывающего, при переполненном буфере событие отбрасывается
func (s *clientSession) enqueue(msg any) {
	select {
	case <-s.ctx.Done():
	case s.sendCh <- msg:
	default:
		log.Warn("буфер событий клиента переполнен, событие отброшено")
	}
}

func (s *clientSession) stop() {
	s.stopOnce.Do(s.cancelFn)
}

func (s *clientSession) startSend() {
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.send(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		}
	}
}

func (s *clientSession) send(msg any) error {
	if s.conn == nil {
		return nil
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		return err
	}
	log.WithField("ws_message", msg).Debug("отправлено сообщение")
	return nil
}

func (s *clientSession) close() {
	if s.conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Millisecond))
	if err != nil {
		log.WithError(err).Debug("не удалось закрыть соединение")
	}
}
