package rooms

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// eventRecorder jadi Broadcaster sekaligus AuditSink dan mencatat keduanya
// ke satu urutan. Semua callback dipanggil di bawah lock yang sama, jadi
// append tanpa mutex tambahan.
type eventRecorder struct {
	seq []string
}

func (e *eventRecorder) CatalogUpdated(code string, catalog []Item) {
	last := ""
	if len(catalog) > 0 {
		last = catalog[len(catalog)-1].Name
	}
	e.seq = append(e.seq, "broadcast-catalog:"+last)
}

func (e *eventRecorder) AllocationUpdated(code string, alloc Allocation) {
	e.seq = append(e.seq, "broadcast-alloc")
}

func (e *eventRecorder) RoomCreated(code string) { e.seq = append(e.seq, "audit-room:"+code) }

func (e *eventRecorder) ItemAdded(code string, it Item) {
	e.seq = append(e.seq, "audit-item-added:"+it.Name)
}

func (e *eventRecorder) ItemUpdated(code string, index int, it Item) {
	e.seq = append(e.seq, "audit-item-updated:"+it.Name)
}

func (e *eventRecorder) ItemRemoved(code string, index int) {
	e.seq = append(e.seq, fmt.Sprintf("audit-item-removed:%d", index))
}

func (e *eventRecorder) ItemsClaimed(code, user string, items []Item) {
	e.seq = append(e.seq, "audit-claimed:"+user)
}

func (e *eventRecorder) ClaimRemoved(code, user, itemName string) {
	e.seq = append(e.seq, "audit-claim-removed:"+itemName)
}

func (e *eventRecorder) ClaimUpdated(code, user, oldItemName string, newItem Item) {
	e.seq = append(e.seq, "audit-claim-updated:"+newItem.Name)
}

func TestAuditEventsFollowMutations(t *testing.T) {
	rec := &eventRecorder{}
	reg := NewRegistry(rec, rec)

	reg.Create("ROOM01")
	room, err := reg.Get("ROOM01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	room.AddItem(Item{Name: "Coffee", PriceCents: 3000})
	if err := room.UpdateItem(0, Item{Name: "Latte", PriceCents: 3500}); err != nil {
		t.Fatalf("update: %v", err)
	}
	room.SelectItems("A", []Item{{Name: "Latte", PriceCents: 3500}})
	if err := room.UpdateClaim("A", "Latte", Item{Name: "Mocha", PriceCents: 4000}); err != nil {
		t.Fatalf("update claim: %v", err)
	}
	if err := room.RemoveClaim("A", "Mocha"); err != nil {
		t.Fatalf("remove claim: %v", err)
	}
	if err := room.RemoveItem(0); err != nil {
		t.Fatalf("remove item: %v", err)
	}

	want := []string{
		"audit-room:ROOM01",
		"broadcast-catalog:Coffee", "audit-item-added:Coffee",
		"broadcast-catalog:Latte", "audit-item-updated:Latte",
		"broadcast-alloc", "audit-claimed:A",
		"broadcast-alloc", "audit-claim-updated:Mocha",
		"broadcast-alloc", "audit-claim-removed:Mocha",
		"broadcast-catalog:", "audit-item-removed:0",
	}
	if len(rec.seq) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(rec.seq), rec.seq)
	}
	for i := range want {
		if rec.seq[i] != want[i] {
			t.Fatalf("event %d: expected %q, got %q (full: %v)", i, want[i], rec.seq[i], rec.seq)
		}
	}
}

func TestFailedMutationEmitsNoAudit(t *testing.T) {
	rec := &eventRecorder{}
	reg := NewRegistry(rec, rec)
	room, _ := reg.GetOrCreate("ROOM01")
	before := len(rec.seq)

	if err := room.UpdateItem(5, Item{Name: "X", PriceCents: 1}); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if err := room.RemoveClaim("ghost", "X"); err == nil {
		t.Fatalf("expected claim-not-found error")
	}

	if len(rec.seq) != before {
		t.Fatalf("failed mutations must not audit, got %v", rec.seq[before:])
	}
}

// Audit publish jalan di critical section yang sama dengan broadcast,
// jadi walau mutasi datang paralel, tiap broadcast catalog langsung
// diikuti audit event untuk item yang sama.
func TestAuditOrderMatchesBroadcastOrderUnderConcurrency(t *testing.T) {
	rec := &eventRecorder{}
	reg := NewRegistry(rec, rec)
	room, _ := reg.GetOrCreate("ROOM01")
	start := len(rec.seq)

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			room.AddItem(Item{Name: fmt.Sprintf("item-%02d", i), PriceCents: 100 * (i + 1)})
		}(i)
	}
	wg.Wait()

	rest := rec.seq[start:]
	if len(rest) != 2*n {
		t.Fatalf("expected %d events, got %d: %v", 2*n, len(rest), rest)
	}
	for i := 0; i < len(rest); i += 2 {
		b, a := rest[i], rest[i+1]
		if !strings.HasPrefix(b, "broadcast-catalog:") || !strings.HasPrefix(a, "audit-item-added:") {
			t.Fatalf("event pair %d out of order: %q then %q", i/2, b, a)
		}
		if strings.TrimPrefix(b, "broadcast-catalog:") != strings.TrimPrefix(a, "audit-item-added:") {
			t.Fatalf("audit lagged behind broadcast at pair %d: %q vs %q", i/2, b, a)
		}
	}
}
