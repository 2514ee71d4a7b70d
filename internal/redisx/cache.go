package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SnapshotCache menghapus key snapshot sebuah room. Invalidate dipanggil
// dari jalur broadcast selagi lock room dipegang, jadi DEL-nya jalan di
// goroutine sendiri; best-effort, gagal cuma berarti cache basi sampai TTL.
type SnapshotCache struct {
	RDB *redis.Client
	Log *logrus.Logger
}

func (c *SnapshotCache) Invalidate(roomCode string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := fmt.Sprintf(KeyRoomSnapshot, roomCode)
		if err := c.RDB.Del(ctx, key).Err(); err != nil && c.Log != nil {
			c.Log.WithError(err).WithField("key", key).Warn("gagal invalidate snapshot cache")
		}
	}()
}
