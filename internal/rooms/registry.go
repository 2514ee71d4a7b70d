package rooms

import "sync"

// Registry adalah satu-satunya pemilik semua Room. Di-inject ke handler,
// bukan variabel global, supaya test bisa pakai instance terisolasi.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	notify Broadcaster
	audit  AuditSink
}

func NewRegistry(notify Broadcaster, audit AuditSink) *Registry {
	return &Registry{
		rooms:  make(map[string]*Room),
		notify: notify,
		audit:  audit,
	}
}

// Create idempotent: kode yang sudah ada dibiarkan, claims lama selamat.
// Return true kalau room benar-benar baru dibuat.
func (g *Registry) Create(code string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.rooms[code]; ok {
		return false
	}
	g.rooms[code] = newRoom(code, g.notify, g.audit)
	if g.audit != nil {
		g.audit.RoomCreated(code)
	}
	return true
}

// Get untuk mutation handler yang mengasumsikan room sudah ada.
func (g *Registry) Get(code string) (*Room, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// GetOrCreate dipakai join: kode tak dikenal otomatis jadi room kosong,
// join tidak pernah error. Insert atomik biar dua join bersamaan untuk kode
// sama tidak menghasilkan dua Room berbeda. Return kedua = true kalau room
// baru dibuat.
func (g *Registry) GetOrCreate(code string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.rooms[code]; ok {
		return r, false
	}
	r := newRoom(code, g.notify, g.audit)
	g.rooms[code] = r
	if g.audit != nil {
		g.audit.RoomCreated(code)
	}
	return r, true
}

func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
