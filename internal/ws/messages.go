package ws

import (
	"encoding/json"

	"github.com/ariefcatur/go-split-bill.git/internal/rooms"
)

// Outbound event names.
const (
	EventCatalogUpdated    = "catalogUpdated"
	EventAllocationUpdated = "allocationUpdated"
	EventError             = "error"
)

type catalogEvent struct {
	Event    string       `json:"event"`
	RoomCode string       `json:"room_code"`
	Catalog  []rooms.Item `json:"catalog"`
}

type allocationEvent struct {
	Event      string           `json:"event"`
	RoomCode   string           `json:"room_code"`
	Allocation rooms.Allocation `json:"allocation"`
}

type errorEvent struct {
	Event     string `json:"event"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func catalogFrame(roomCode string, catalog []rooms.Item) []byte {
	return mustFrame(catalogEvent{Event: EventCatalogUpdated, RoomCode: roomCode, Catalog: catalog})
}

func allocationFrame(roomCode string, alloc rooms.Allocation) []byte {
	return mustFrame(allocationEvent{Event: EventAllocationUpdated, RoomCode: roomCode, Allocation: alloc})
}

func errorFrame(code, msg string) []byte {
	return mustFrame(errorEvent{Event: EventError, ErrorCode: code, Message: msg})
}

func mustFrame(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
