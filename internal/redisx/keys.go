package redisx

import "time"

const (
	// Cache snapshot room: room_snapshot:{room_code} -> JSON Snapshot.
	// Read-through di GET /rooms/{code}; sumber kebenaran tetap Registry.
	KeyRoomSnapshot = "room_snapshot:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	// Di-invalidate tiap broadcast (SnapshotCache.Invalidate); TTL hanya
	// backstop kalau DEL-nya gagal.
	TTLSnapshotCache = 30 * time.Second

	TTLDedup = 48 * time.Hour
)
