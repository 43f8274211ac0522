package registry

import (
	"context"
	"testing"
)

type noopHandle struct{ calls int }

func (h *noopHandle) ReclaimResource(ctx context.Context) (bool, error) {
	h.calls++
	return true, nil
}

func TestAddResourceAccumulatesAcrossCalls(t *testing.T) {
	r := New()
	h := &noopHandle{}
	r.AddResource(100, 1, h, []Resource{{Type: SecureCodec, Value: 1}})
	r.AddResource(100, 1, h, []Resource{{Type: GraphicMemory, Value: 2048}})

	snap := r.Snapshot()
	if len(snap.Processes) != 1 {
		t.Fatalf("expected 1 process, got %d", len(snap.Processes))
	}
	clients := snap.Processes[0].Clients
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
	if len(clients[0].Resources) != 2 {
		t.Fatalf("expected 2 accumulated resources, got %d", len(clients[0].Resources))
	}
}

func TestAddResourceIgnoresHandleOnExistingClient(t *testing.T) {
	r := New()
	first := &noopHandle{}
	second := &noopHandle{}
	r.AddResource(100, 1, first, []Resource{{Type: SecureCodec, Value: 1}})
	r.AddResource(100, 1, second, []Resource{{Type: SecureCodec, Value: 1}})

	var stored ClientHandle
	r.WithLock(func(view LockedView) {
		view.Range(func(pid PID, entry *ProcessEntry) bool {
			if pid == 100 {
				stored = entry.Clients[0].ClientHandle
				return false
			}
			return true
		})
	})
	if stored != ClientHandle(first) {
		t.Fatalf("expected original handle retained")
	}
}

func TestRemoveResourceIsUniqueAndSilentOnMiss(t *testing.T) {
	r := New()
	h := &noopHandle{}
	r.AddResource(100, 1, h, []Resource{{Type: SecureCodec, Value: 1}})
	r.AddResource(100, 2, h, []Resource{{Type: SecureCodec, Value: 1}})

	r.RemoveResource(1)
	snap := r.Snapshot()
	if len(snap.Processes[0].Clients) != 1 || snap.Processes[0].Clients[0].ClientID != 2 {
		t.Fatalf("expected only client 2 to remain, got %+v", snap.Processes[0].Clients)
	}

	// Removing an unknown id is a silent no-op, not an error.
	r.RemoveResource(999)
}

func TestRemoveResourceLeavesEmptyProcessEntry(t *testing.T) {
	r := New()
	h := &noopHandle{}
	r.AddResource(100, 1, h, []Resource{{Type: SecureCodec, Value: 1}})
	r.RemoveResource(1)

	snap := r.Snapshot()
	if len(snap.Processes) != 1 {
		t.Fatalf("expected the pid entry to survive as empty, got %d processes", len(snap.Processes))
	}
	if len(snap.Processes[0].Clients) != 0 {
		t.Fatalf("expected no clients left, got %d", len(snap.Processes[0].Clients))
	}
}

func TestRoundTripAddThenRemove(t *testing.T) {
	r := New()
	h := &noopHandle{}
	before := r.Snapshot()

	r.AddResource(100, 1, h, []Resource{{Type: SecureCodec, Value: 1}})
	r.RemoveResource(1)

	after := r.Snapshot()
	if len(before.Processes) != 0 {
		t.Fatalf("test setup invariant violated")
	}
	if len(after.Processes) != 1 || len(after.Processes[0].Clients) != 0 {
		t.Fatalf("expected registry observably back to empty-clients state, got %+v", after)
	}
}

func TestConfigLastWriteWinsPerKey(t *testing.T) {
	r := New()
	r.Config([]PolicyEntry{
		{Key: SupportsMultipleSecureCodecs, Value: 0},
		{Key: SupportsMultipleSecureCodecs, Value: 1},
		{Key: SupportsSecureWithNonSecureCodec, Value: 0},
	})
	p := r.Policy()
	if !p.SupportsMultipleSecureCodecs {
		t.Fatalf("expected last write (true) to win")
	}
	if p.SupportsSecureWithNonSecureCodec {
		t.Fatalf("expected false from the single write")
	}
}

func TestConfigIgnoresUnknownKeys(t *testing.T) {
	r := New()
	r.Config([]PolicyEntry{{Key: "not-a-real-key", Value: 1}})
	p := r.Policy()
	if !p.SupportsMultipleSecureCodecs || !p.SupportsSecureWithNonSecureCodec {
		t.Fatalf("expected defaults untouched by unknown key, got %+v", p)
	}
}
