package ws

import (
	"net/http"

	"github.com/ariefcatur/go-split-bill.git/internal/metrics"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Client dilayani dari origin mana pun; room code adalah satu-satunya
	// pembatas akses.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler meng-upgrade koneksi HTTP jadi session websocket.
type Handler struct {
	Dispatcher *Dispatcher
	Log        *logrus.Logger
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	s := newSession(conn, h.Dispatcher, h.Log)
	metrics.ActiveSessions.Inc()
	h.Log.WithField("session", s.id).Info("session opened")

	go s.writeLoop()
	s.readLoop()
}
