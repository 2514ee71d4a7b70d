package rooms

import "sync"

// Broadcaster menerima notifikasi state baru setiap mutasi sukses.
// Dipanggil selagi lock room masih dipegang, jadi urutan broadcast per room
// sama persis dengan urutan mutasinya; implementasi wajib non-blocking.
type Broadcaster interface {
	CatalogUpdated(roomCode string, catalog []Item)
	AllocationUpdated(roomCode string, alloc Allocation)
}

// AuditSink menerima audit event tiap mutasi sukses. Dipanggil di critical
// section yang sama dengan broadcast supaya urutan event per room sama
// dengan urutan mutasinya; implementasi cukup enqueue, jangan I/O sinkron.
type AuditSink interface {
	RoomCreated(roomCode string)
	ItemAdded(roomCode string, item Item)
	ItemUpdated(roomCode string, index int, item Item)
	ItemRemoved(roomCode string, index int)
	ItemsClaimed(roomCode, user string, items []Item)
	ClaimRemoved(roomCode, user, itemName string)
	ClaimUpdated(roomCode, user, oldItemName string, newItem Item)
}

// Room memegang catalog + claims untuk satu kode. Semua akses lewat method
// di sini; mutasi read-modify-write-broadcast atomik terhadap room yang sama,
// antar room bebas paralel.
type Room struct {
	code   string
	notify Broadcaster
	audit  AuditSink

	mu      sync.Mutex
	catalog []Item
	claims  map[string][]Item
}

func newRoom(code string, notify Broadcaster, audit AuditSink) *Room {
	return &Room{
		code:   code,
		notify: notify,
		audit:  audit,
		claims: make(map[string][]Item),
	}
}

func (r *Room) Code() string { return r.code }

// AddItem append ke catalog, lalu broadcast catalog baru. Tidak pernah gagal.
func (r *Room) AddItem(it Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog = append(r.catalog, it)
	r.broadcastCatalog()
	if r.audit != nil {
		r.audit.ItemAdded(r.code, it)
	}
}

// UpdateItem replace item pada index. Index basi (client belum re-sync)
// ditolak tanpa mengubah apa pun supaya caller tahu harus refresh.
func (r *Room) UpdateItem(index int, it Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.catalog) {
		return ErrIndexOutOfRange
	}
	r.catalog[index] = it
	r.broadcastCatalog()
	if r.audit != nil {
		r.audit.ItemUpdated(r.code, index, it)
	}
	return nil
}

// RemoveItem hapus item pada index; index setelahnya bergeser turun satu.
func (r *Room) RemoveItem(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.catalog) {
		return ErrIndexOutOfRange
	}
	r.catalog = append(r.catalog[:index], r.catalog[index+1:]...)
	r.broadcastCatalog()
	if r.audit != nil {
		r.audit.ItemRemoved(r.code, index)
	}
	return nil
}

// SelectItems append klaim user (list dibuat kalau user baru). Broadcast ke
// seluruh room: claimant count berubah berarti share semua orang bisa geser.
func (r *Room) SelectItems(user string, items []Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims[user] = append(r.claims[user], items...)
	r.broadcastAllocation()
	if r.audit != nil {
		r.audit.ItemsClaimed(r.code, user, items)
	}
}

// RemoveClaim hapus instance pertama (urutan klaim) dengan nama tsb dari
// daftar user. Tidak ada match = ErrClaimNotFound, state utuh, tanpa broadcast.
func (r *Room) RemoveClaim(user, itemName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, ok := r.claims[user]
	if !ok {
		return ErrClaimNotFound
	}
	for i, it := range list {
		if it.Name == itemName {
			r.claims[user] = append(list[:i], list[i+1:]...)
			r.broadcastAllocation()
			if r.audit != nil {
				r.audit.ClaimRemoved(r.code, user, itemName)
			}
			return nil
		}
	}
	return ErrClaimNotFound
}

// UpdateClaim replace in-place instance pertama yang namanya cocok.
func (r *Room) UpdateClaim(user, oldItemName string, newItem Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, ok := r.claims[user]
	if !ok {
		return ErrClaimNotFound
	}
	for i, it := range list {
		if it.Name == oldItemName {
			list[i] = newItem
			r.broadcastAllocation()
			if r.audit != nil {
				r.audit.ClaimUpdated(r.code, user, oldItemName, newItem)
			}
			return nil
		}
	}
	return ErrClaimNotFound
}

// Snapshot: salinan catalog + allocation yang dihitung fresh. Aman disimpan
// caller, tidak alias ke state internal.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		RoomCode:   r.code,
		Catalog:    cloneItems(r.catalog),
		Allocation: Allocate(r.claims),
	}
}

// broadcastCatalog dan broadcastAllocation dipanggil dengan r.mu held.
func (r *Room) broadcastCatalog() {
	if r.notify == nil {
		return
	}
	r.notify.CatalogUpdated(r.code, cloneItems(r.catalog))
}

func (r *Room) broadcastAllocation() {
	if r.notify == nil {
		return
	}
	r.notify.AllocationUpdated(r.code, Allocate(r.claims))
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
