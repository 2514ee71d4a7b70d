package ws

import (
	"sync"
	"time"

	"github.com/ariefcatur/go-split-bill.git/internal/metrics"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
	sendBuffer     = 32
)

// Session adalah satu koneksi websocket. Read loop men-dispatch command,
// write loop menguras channel send; keduanya berhenti saat koneksi putus.
type Session struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	disp      *Dispatcher
	log       *logrus.Logger
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, disp *Dispatcher, log *logrus.Logger) *Session {
	return &Session{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		disp: disp,
		log:  log,
	}
}

// close memutus koneksi dari luar read loop; read loop yang membereskan
// sisanya lewat defer-nya. Aman dipanggil berulang.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

// enqueue non-blocking; false kalau buffer penuh.
func (s *Session) enqueue(frame []byte) bool {
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

func (s *Session) readLoop() {
	defer func() {
		// DropSession menunggu publisher aktif selesai, setelah itu aman
		// menutup send tanpa ada yang enqueue lagi.
		s.disp.Hub.DropSession(s)
		close(s.send)
		_ = s.conn.Close()
		metrics.ActiveSessions.Dec()
		s.log.WithField("session", s.id).Info("session closed")
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithField("session", s.id).WithError(err).Warn("read error")
			}
			return
		}
		s.disp.Dispatch(s, msg)
	}
}

func (s *Session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
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
