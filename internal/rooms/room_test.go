package rooms

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// recordingBroadcaster mencatat semua notifikasi untuk assert urutan dan
// aturan "mutasi gagal tidak broadcast".
type recordingBroadcaster struct {
	catalogs    [][]Item
	allocations []Allocation
}

func (r *recordingBroadcaster) CatalogUpdated(code string, catalog []Item) {
	r.catalogs = append(r.catalogs, catalog)
}

func (r *recordingBroadcaster) AllocationUpdated(code string, alloc Allocation) {
	r.allocations = append(r.allocations, alloc)
}

func newTestRoom(t *testing.T) (*Room, *recordingBroadcaster) {
	t.Helper()
	rec := &recordingBroadcaster{}
	reg := NewRegistry(rec, nil)
	room, _ := reg.GetOrCreate("TEST01")
	return room, rec
}

func TestAddItemBroadcastsCatalog(t *testing.T) {
	room, rec := newTestRoom(t)

	room.AddItem(Item{Name: "Coffee", PriceCents: 3000})
	room.AddItem(Item{Name: "Tea", PriceCents: 2000})

	if len(rec.catalogs) != 2 {
		t.Fatalf("expected 2 catalog broadcasts, got %d", len(rec.catalogs))
	}
	want := []Item{{Name: "Coffee", PriceCents: 3000}, {Name: "Tea", PriceCents: 2000}}
	if !reflect.DeepEqual(rec.catalogs[1], want) {
		t.Fatalf("expected %v, got %v", want, rec.catalogs[1])
	}
}

func TestUpdateItemInBounds(t *testing.T) {
	room, _ := newTestRoom(t)
	room.AddItem(Item{Name: "Coffee", PriceCents: 3000})

	if err := room.UpdateItem(0, Item{Name: "Latte", PriceCents: 3500}); err != nil {
		t.Fatalf("update: %v", err)
	}

	snap := room.Snapshot()
	if snap.Catalog[0].Name != "Latte" || snap.Catalog[0].PriceCents != 3500 {
		t.Fatalf("expected replaced item, got %+v", snap.Catalog[0])
	}
}

func TestCatalogOutOfRangeRejectedWithoutChange(t *testing.T) {
	room, rec := newTestRoom(t)
	room.AddItem(Item{Name: "Coffee", PriceCents: 3000})
	before := room.Snapshot()
	broadcastsBefore := len(rec.catalogs)

	tests := []struct {
		name string
		call func() error
	}{
		{"update negative", func() error { return room.UpdateItem(-1, Item{Name: "X", PriceCents: 1}) }},
		{"update past end", func() error { return room.UpdateItem(1, Item{Name: "X", PriceCents: 1}) }},
		{"remove negative", func() error { return room.RemoveItem(-1) }},
		{"remove past end", func() error { return room.RemoveItem(5) }},
	}
	for _, tt := range tests {
		if err := tt.call(); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("%s: expected ErrIndexOutOfRange, got %v", tt.name, err)
		}
	}

	after := room.Snapshot()
	if !reflect.DeepEqual(before.Catalog, after.Catalog) {
		t.Fatalf("catalog must be unchanged, before=%v after=%v", before.Catalog, after.Catalog)
	}
	if len(rec.catalogs) != broadcastsBefore {
		t.Fatalf("failed mutation must not broadcast")
	}
}

func TestRemoveItemShiftsIndices(t *testing.T) {
	room, _ := newTestRoom(t)
	room.AddItem(Item{Name: "A", PriceCents: 1})
	room.AddItem(Item{Name: "B", PriceCents: 2})
	room.AddItem(Item{Name: "C", PriceCents: 3})

	if err := room.RemoveItem(1); err != nil {
		t.Fatalf("remove: %v", err)
	}

	snap := room.Snapshot()
	want := []Item{{Name: "A", PriceCents: 1}, {Name: "C", PriceCents: 3}}
	if !reflect.DeepEqual(snap.Catalog, want) {
		t.Fatalf("expected %v, got %v", want, snap.Catalog)
	}
}

func TestSelectThenRemoveClaimRestoresState(t *testing.T) {
	room, _ := newTestRoom(t)
	room.SelectItems("A", []Item{{Name: "Tea", PriceCents: 2000}})
	before := room.Snapshot()

	room.SelectItems("A", []Item{{Name: "Coffee", PriceCents: 3000}})
	if err := room.RemoveClaim("A", "Coffee"); err != nil {
		t.Fatalf("remove claim: %v", err)
	}

	after := room.Snapshot()
	if !reflect.DeepEqual(before.Allocation, after.Allocation) {
		t.Fatalf("remove must be left-inverse of select: before=%+v after=%+v",
			before.Allocation, after.Allocation)
	}
}

func TestRemoveClaimRemovesEarliestInstanceOnly(t *testing.T) {
	room, _ := newTestRoom(t)
	// Dua entri catalog beda harga, nama sama; instance pertama yang hilang.
	room.SelectItems("A", []Item{
		{Name: "Coffee", PriceCents: 3000},
		{Name: "Coffee", PriceCents: 2500},
	})

	if err := room.RemoveClaim("A", "Coffee"); err != nil {
		t.Fatalf("remove claim: %v", err)
	}

	snap := room.Snapshot()
	lines := snap.Allocation.PerUser["A"].Lines
	if len(lines) != 1 {
		t.Fatalf("expected 1 remaining claim, got %d", len(lines))
	}
	if lines[0].PriceCents != 2500 {
		t.Fatalf("earliest instance should be removed, remaining %+v", lines[0])
	}
}

func TestRemoveClaimNotFound(t *testing.T) {
	room, rec := newTestRoom(t)
	room.SelectItems("A", []Item{{Name: "Tea", PriceCents: 2000}})
	broadcastsBefore := len(rec.allocations)

	if err := room.RemoveClaim("A", "Coffee"); !errors.Is(err, ErrClaimNotFound) {
		t.Fatalf("expected ErrClaimNotFound, got %v", err)
	}
	if err := room.RemoveClaim("nobody", "Tea"); !errors.Is(err, ErrClaimNotFound) {
		t.Fatalf("expected ErrClaimNotFound for unknown user, got %v", err)
	}
	if len(rec.allocations) != broadcastsBefore {
		t.Fatalf("failed claim mutation must not broadcast")
	}
}

func TestUpdateClaimReplacesInPlace(t *testing.T) {
	room, _ := newTestRoom(t)
	room.SelectItems("A", []Item{
		{Name: "Tea", PriceCents: 2000},
		{Name: "Coffee", PriceCents: 3000},
	})

	if err := room.UpdateClaim("A", "Tea", Item{Name: "Green Tea", PriceCents: 2200}); err != nil {
		t.Fatalf("update claim: %v", err)
	}

	snap := room.Snapshot()
	lines := snap.Allocation.PerUser["A"].Lines
	if lines[0].Name != "Green Tea" || lines[0].PriceCents != 2200 {
		t.Fatalf("expected replacement to keep position, got %+v", lines)
	}
	if lines[1].Name != "Coffee" {
		t.Fatalf("other claims must be untouched, got %+v", lines)
	}
}

func TestUpdateClaimNotFound(t *testing.T) {
	room, _ := newTestRoom(t)
	if err := room.UpdateClaim("A", "Tea", Item{Name: "X", PriceCents: 1}); !errors.Is(err, ErrClaimNotFound) {
		t.Fatalf("expected ErrClaimNotFound, got %v", err)
	}
}

func TestClaimCanReferenceNameAbsentFromCatalog(t *testing.T) {
	// Catalog dan claims sengaja decoupled (linkage by name, bukan ID):
	// klaim atas nama yang tidak ada di catalog tetap dihitung.
	room, _ := newTestRoom(t)
	room.SelectItems("A", []Item{{Name: "Ghost", PriceCents: 1000}})

	snap := room.Snapshot()
	if len(snap.Catalog) != 0 {
		t.Fatalf("catalog should stay empty")
	}
	if math.Abs(snap.Allocation.OverallTotalCents-1000) > eps {
		t.Fatalf("orphan claim still allocates, got %v", snap.Allocation.OverallTotalCents)
	}
}

func TestClaimMutationBroadcastsAllocation(t *testing.T) {
	room, rec := newTestRoom(t)

	room.SelectItems("A", []Item{{Name: "Coffee", PriceCents: 3000}})
	room.SelectItems("B", []Item{{Name: "Coffee", PriceCents: 3000}})

	if len(rec.allocations) != 2 {
		t.Fatalf("expected 2 allocation broadcasts, got %d", len(rec.allocations))
	}
	// Broadcast kedua sudah memakai claimant count baru untuk semua user.
	last := rec.allocations[1]
	if math.Abs(last.PerUser["A"].TotalCents-1500) > eps {
		t.Fatalf("expected A share to shift to 1500, got %v", last.PerUser["A"].TotalCents)
	}
}

func TestSnapshotDoesNotAliasInternalState(t *testing.T) {
	room, _ := newTestRoom(t)
	room.AddItem(Item{Name: "Coffee", PriceCents: 3000})

	snap := room.Snapshot()
	snap.Catalog[0].Name = "Mutated"

	if got := room.Snapshot().Catalog[0].Name; got != "Coffee" {
		t.Fatalf("snapshot must be a copy, internal state became %q", got)
	}
}
