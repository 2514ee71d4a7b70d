package audit

import (
	"context"
	"encoding/json"
	"fmt"

	kafkax "github.com/ariefcatur/go-split-bill.git/internal/kafka"
	"github.com/ariefcatur/go-split-bill.git/internal/redisx"
	"github.com/ariefcatur/go-split-bill.git/internal/rooms"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Recorder mengkonsumsi room.events dan mencatatnya sebagai structured log.
// Dedup via Redis pakai event_id supaya re-delivery tidak dobel tercatat.
type Recorder struct {
	Redis *redis.Client
	Log   *logrus.Logger
}

// HandleRoomEvent dipasang sebagai handler consumer.
func (rec *Recorder) HandleRoomEvent(ctx context.Context, m kafkago.Message) error {
	var env rooms.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, "auditlog", env.EventID)
	if exists, _ := redisx.Exists(ctx, rec.Redis, dkey); exists {
		return nil
	}
	_ = rec.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	entry := rec.Log.WithFields(logrus.Fields{
		"event_id":   env.EventID,
		"event_type": env.EventType,
		"room_code":  env.CorrelationID,
		"producer":   env.Producer,
	})

	switch env.EventType {
	case rooms.EventRoomCreated:
		entry.Info("room created")
	case rooms.EventItemAdded, rooms.EventItemUpdated, rooms.EventItemRemoved:
		p, err := kafkax.UnwrapPayload[rooms.CatalogChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		f := entry.WithField("index", p.Index)
		if p.Item != nil {
			f = f.WithFields(logrus.Fields{"item": p.Item.Name, "price_cents": p.Item.PriceCents})
		}
		f.Info("catalog changed")
	case rooms.EventItemsClaimed, rooms.EventClaimRemoved, rooms.EventClaimUpdated:
		p, err := kafkax.UnwrapPayload[rooms.ClaimsChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		entry.WithFields(logrus.Fields{"user": p.User, "items": len(p.Items), "item_name": p.ItemName}).
			Info("claims changed")
	default:
		entry.Warn("unknown event type")
	}
	return nil
}
