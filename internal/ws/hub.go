package ws

import (
	"sync"

	"github.com/ariefcatur/go-split-bill.git/internal/metrics"
	"github.com/ariefcatur/go-split-bill.git/internal/rooms"
	"github.com/sirupsen/logrus"
)

// CacheInvalidator menghapus cache snapshot REST sebuah room. Dipanggil
// tiap broadcast, jadi implementasi harus cepat (enqueue / fire-and-forget).
type CacheInvalidator interface {
	Invalidate(roomCode string)
}

// Hub memegang daftar subscriber per room dan jadi implementasi
// rooms.Broadcaster. publish dipanggil selagi lock room dipegang, jadi
// semua session melihat broadcast satu room dalam urutan yang sama.
// Session yang buffer kirimnya penuh di-unsubscribe dan koneksinya
// ditutup: client reconnect lalu join ulang untuk snapshot segar.
type Hub struct {
	log   *logrus.Logger
	cache CacheInvalidator

	mu     sync.RWMutex
	subs   map[string]map[string]*Session // room code -> session id -> session
	joined map[string]map[string]bool     // session id -> room code, untuk cleanup
}

func NewHub(log *logrus.Logger, cache CacheInvalidator) *Hub {
	return &Hub{
		log:    log,
		cache:  cache,
		subs:   make(map[string]map[string]*Session),
		joined: make(map[string]map[string]bool),
	}
}

func (h *Hub) Subscribe(roomCode string, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[roomCode]
	if !ok {
		set = make(map[string]*Session)
		h.subs[roomCode] = set
	}
	set[s.id] = s
	codes, ok := h.joined[s.id]
	if !ok {
		codes = make(map[string]bool)
		h.joined[s.id] = codes
	}
	codes[roomCode] = true
}

func (h *Hub) Unsubscribe(roomCode string, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(roomCode, s)
}

// DropSession melepas session dari semua room yang pernah di-join.
// Setelah return, tidak ada publisher yang masih pegang session ini.
func (h *Hub) DropSession(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for code := range h.joined[s.id] {
		h.removeLocked(code, s)
	}
	delete(h.joined, s.id)
}

func (h *Hub) removeLocked(roomCode string, s *Session) {
	if set, ok := h.subs[roomCode]; ok {
		delete(set, s.id)
		if len(set) == 0 {
			delete(h.subs, roomCode)
		}
	}
	if codes, ok := h.joined[s.id]; ok {
		delete(codes, roomCode)
		if len(codes) == 0 {
			delete(h.joined, s.id)
		}
	}
}

func (h *Hub) publish(roomCode string, frame []byte) {
	h.mu.RLock()
	var slow []*Session
	for _, s := range h.subs[roomCode] {
		if !s.enqueue(frame) {
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()

	// Session yang penuh buffernya sudah ketinggalan state tanpa bisa
	// menyusul; lepas dari semua room dan tutup koneksinya supaya client
	// reconnect dan dapat snapshot segar saat join ulang.
	for _, s := range slow {
		if h.log != nil {
			h.log.WithFields(logrus.Fields{
				"room_code": roomCode,
				"session":   s.id,
			}).Warn("session lambat, koneksi ditutup")
		}
		h.DropSession(s)
		s.close()
	}
}

// ---- rooms.Broadcaster ----

func (h *Hub) CatalogUpdated(roomCode string, catalog []rooms.Item) {
	metrics.Broadcasts.WithLabelValues(EventCatalogUpdated).Inc()
	if h.cache != nil {
		h.cache.Invalidate(roomCode)
	}
	h.publish(roomCode, catalogFrame(roomCode, catalog))
}

func (h *Hub) AllocationUpdated(roomCode string, alloc rooms.Allocation) {
	metrics.Broadcasts.WithLabelValues(EventAllocationUpdated).Inc()
	if h.cache != nil {
		h.cache.Invalidate(roomCode)
	}
	h.publish(roomCode, allocationFrame(roomCode, alloc))
}
