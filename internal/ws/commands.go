package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ariefcatur/go-split-bill.git/internal/metrics"
	"github.com/ariefcatur/go-split-bill.git/internal/rooms"
	"github.com/sirupsen/logrus"
)

// Inbound command actions.
const (
	ActionCreateRoom  = "createRoom"
	ActionJoinRoom    = "joinRoom"
	ActionAddItem     = "addItem"
	ActionUpdateItem  = "updateItem"
	ActionRemoveItem  = "removeItem"
	ActionSelectItems = "selectItems"
	ActionRemoveClaim = "removeClaim"
	ActionUpdateClaim = "updateClaim"
)

// Command adalah envelope semua pesan inbound. Satu bentuk, satu
// handler table; field yang tidak relevan untuk action dibiarkan kosong.
type Command struct {
	Action      string       `json:"action"`
	RoomCode    string       `json:"room_code"`
	User        string       `json:"user,omitempty"`
	Index       *int         `json:"index,omitempty"`
	Item        *rooms.Item  `json:"item,omitempty"`
	NewItem     *rooms.Item  `json:"new_item,omitempty"`
	Items       []rooms.Item `json:"items,omitempty"`
	ItemName    string       `json:"item_name,omitempty"`
	OldItemName string       `json:"old_item_name,omitempty"`
}

var errBadCommand = errors.New("bad command")

type handlerFunc func(d *Dispatcher, s *Session, cmd Command) error

var handlers = map[string]handlerFunc{
	ActionCreateRoom:  handleCreateRoom,
	ActionJoinRoom:    handleJoinRoom,
	ActionAddItem:     handleAddItem,
	ActionUpdateItem:  handleUpdateItem,
	ActionRemoveItem:  handleRemoveItem,
	ActionSelectItems: handleSelectItems,
	ActionRemoveClaim: handleRemoveClaim,
	ActionUpdateClaim: handleUpdateClaim,
}

// Dispatcher memvalidasi lalu menerapkan satu command sebagai satu langkah
// atomik. Mutasi gagal tidak pernah memicu broadcast; error hanya kembali
// ke session pengirim.
type Dispatcher struct {
	Registry *rooms.Registry
	Hub      *Hub
	Log      *logrus.Logger
}

func (d *Dispatcher) Dispatch(s *Session, raw []byte) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		d.reject(s, "BAD_COMMAND", "invalid json")
		return
	}
	h, ok := handlers[cmd.Action]
	if !ok {
		d.reject(s, "BAD_COMMAND", fmt.Sprintf("unknown action %q", cmd.Action))
		return
	}
	if cmd.RoomCode == "" {
		d.reject(s, "BAD_COMMAND", "room_code is required")
		return
	}
	if err := h(d, s, cmd); err != nil {
		d.reject(s, errorCode(err), err.Error())
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, rooms.ErrRoomNotFound):
		return "ROOM_NOT_FOUND"
	case errors.Is(err, rooms.ErrIndexOutOfRange):
		return "INDEX_OUT_OF_RANGE"
	case errors.Is(err, rooms.ErrClaimNotFound):
		return "CLAIM_NOT_FOUND"
	default:
		return "BAD_COMMAND"
	}
}

func (d *Dispatcher) reject(s *Session, code, msg string) {
	metrics.CommandErrors.WithLabelValues(code).Inc()
	if d.Log != nil {
		d.Log.WithFields(logrus.Fields{"session": s.id, "code": code}).Debug(msg)
	}
	s.enqueue(errorFrame(code, msg))
}

// ---- handlers ----

func handleCreateRoom(d *Dispatcher, s *Session, cmd Command) error {
	if d.Registry.Create(cmd.RoomCode) {
		metrics.RoomsCreated.Inc()
	}
	return nil
}

func handleJoinRoom(d *Dispatcher, s *Session, cmd Command) error {
	r, created := d.Registry.GetOrCreate(cmd.RoomCode)
	if created {
		metrics.RoomsCreated.Inc()
	}
	d.Hub.Subscribe(cmd.RoomCode, s)

	// Snapshot segar khusus untuk session yang baru join.
	snap := r.Snapshot()
	s.enqueue(catalogFrame(snap.RoomCode, snap.Catalog))
	s.enqueue(allocationFrame(snap.RoomCode, snap.Allocation))
	return nil
}

func handleAddItem(d *Dispatcher, s *Session, cmd Command) error {
	if err := validItem(cmd.Item, "item"); err != nil {
		return err
	}
	r, err := d.Registry.Get(cmd.RoomCode)
	if err != nil {
		return err
	}
	r.AddItem(*cmd.Item)
	return nil
}

func handleUpdateItem(d *Dispatcher, s *Session, cmd Command) error {
	if cmd.Index == nil {
		return fmt.Errorf("%w: index is required", errBadCommand)
	}
	if err := validItem(cmd.NewItem, "new_item"); err != nil {
		return err
	}
	r, err := d.Registry.Get(cmd.RoomCode)
	if err != nil {
		return err
	}
	return r.UpdateItem(*cmd.Index, *cmd.NewItem)
}

func handleRemoveItem(d *Dispatcher, s *Session, cmd Command) error {
	if cmd.Index == nil {
		return fmt.Errorf("%w: index is required", errBadCommand)
	}
	r, err := d.Registry.Get(cmd.RoomCode)
	if err != nil {
		return err
	}
	return r.RemoveItem(*cmd.Index)
}

func handleSelectItems(d *Dispatcher, s *Session, cmd Command) error {
	if cmd.User == "" {
		return fmt.Errorf("%w: user is required", errBadCommand)
	}
	if len(cmd.Items) == 0 {
		return fmt.Errorf("%w: items is required", errBadCommand)
	}
	for i := range cmd.Items {
		if err := validItem(&cmd.Items[i], "items"); err != nil {
			return err
		}
	}
	r, err := d.Registry.Get(cmd.RoomCode)
	if err != nil {
		return err
	}
	r.SelectItems(cmd.User, cmd.Items)
	return nil
}

func handleRemoveClaim(d *Dispatcher, s *Session, cmd Command) error {
	if cmd.User == "" {
		return fmt.Errorf("%w: user is required", errBadCommand)
	}
	if cmd.ItemName == "" {
		return fmt.Errorf("%w: item_name is required", errBadCommand)
	}
	r, err := d.Registry.Get(cmd.RoomCode)
	if err != nil {
		return err
	}
	return r.RemoveClaim(cmd.User, cmd.ItemName)
}

func handleUpdateClaim(d *Dispatcher, s *Session, cmd Command) error {
	if cmd.User == "" {
		return fmt.Errorf("%w: user is required", errBadCommand)
	}
	if cmd.OldItemName == "" {
		return fmt.Errorf("%w: old_item_name is required", errBadCommand)
	}
	if err := validItem(cmd.NewItem, "new_item"); err != nil {
		return err
	}
	r, err := d.Registry.Get(cmd.RoomCode)
	if err != nil {
		return err
	}
	return r.UpdateClaim(cmd.User, cmd.OldItemName, *cmd.NewItem)
}

func validItem(it *rooms.Item, field string) error {
	if it == nil {
		return fmt.Errorf("%w: %s is required", errBadCommand, field)
	}
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: %s.name is required", errBadCommand, field)
	}
	if it.PriceCents < 0 {
		return fmt.Errorf("%w: %s.price_cents must be non-negative", errBadCommand, field)
	}
	return nil
}
