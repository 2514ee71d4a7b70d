package audit

import (
	"time"

	kafkax "github.com/ariefcatur/go-split-bill.git/internal/kafka"
	"github.com/ariefcatur/go-split-bill.git/internal/rooms"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher menerbitkan audit event setiap mutasi room yang sukses.
// Dipasang sebagai rooms.AuditSink, jadi dipanggil selagi lock room
// dipegang: publish cuma enqueue ke inbox producer, tanpa I/O sinkron.
// Producer nil = audit mati; semua method jadi no-op supaya core tetap
// jalan tanpa Kafka.
type Publisher struct {
	Producer *kafkax.Producer
	Service  string
}

func (a *Publisher) publish(eventType, roomCode string, payload any) {
	if a == nil || a.Producer == nil {
		return
	}
	ev := rooms.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      a.Service,
		CorrelationID: roomCode,
		Payload:       kafkax.MustMarshal(payload),
	}
	a.Producer.Publish(rooms.PartitionKey(roomCode), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (a *Publisher) RoomCreated(roomCode string) {
	a.publish(rooms.EventRoomCreated, roomCode, rooms.RoomCreatedPayload{RoomCode: roomCode})
}

func (a *Publisher) ItemAdded(roomCode string, item rooms.Item) {
	a.publish(rooms.EventItemAdded, roomCode, rooms.CatalogChangedPayload{
		RoomCode: roomCode, Index: -1, Item: &item,
	})
}

func (a *Publisher) ItemUpdated(roomCode string, index int, item rooms.Item) {
	a.publish(rooms.EventItemUpdated, roomCode, rooms.CatalogChangedPayload{
		RoomCode: roomCode, Index: index, Item: &item,
	})
}

func (a *Publisher) ItemRemoved(roomCode string, index int) {
	a.publish(rooms.EventItemRemoved, roomCode, rooms.CatalogChangedPayload{
		RoomCode: roomCode, Index: index,
	})
}

func (a *Publisher) ItemsClaimed(roomCode, user string, items []rooms.Item) {
	a.publish(rooms.EventItemsClaimed, roomCode, rooms.ClaimsChangedPayload{
		RoomCode: roomCode, User: user, Items: items,
	})
}

func (a *Publisher) ClaimRemoved(roomCode, user, itemName string) {
	a.publish(rooms.EventClaimRemoved, roomCode, rooms.ClaimsChangedPayload{
		RoomCode: roomCode, User: user, ItemName: itemName,
	})
}

func (a *Publisher) ClaimUpdated(roomCode, user, oldItemName string, newItem rooms.Item) {
	a.publish(rooms.EventClaimUpdated, roomCode, rooms.ClaimsChangedPayload{
		RoomCode: roomCode, User: user, ItemName: oldItemName, NewItem: &newItem,
	})
}
