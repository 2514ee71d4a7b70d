package rooms

const TopicRoomEvents = "room.events"

// Partition key = room code, supaya semua event 1 room maintain urutan.
func PartitionKey(roomCode string) []byte { return []byte(roomCode) }
