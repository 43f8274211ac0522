package reclaim

import (
	"context"
	"testing"

	"mediarm/internal/priority"
	"mediarm/internal/registry"
)

// fakeClient counts callback invocations and can be told to fail.
type fakeClient struct {
	calls int
	fail  bool
}

func (c *fakeClient) ReclaimResource(ctx context.Context) (bool, error) {
	c.calls++
	return !c.fail, nil
}

func setup(t *testing.T, multipleSecure, secureWithNonSecure bool) *registry.Registry {
	t.Helper()
	reg := registry.New()
	reg.Config([]registry.PolicyEntry{
		{Key: registry.SupportsMultipleSecureCodecs, Value: boolToU64(multipleSecure)},
		{Key: registry.SupportsSecureWithNonSecureCodec, Value: boolToU64(secureWithNonSecure)},
	})
	return reg
}

func boolToU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// Scenario 1: secure conflict, policy off, higher-priority caller wins.
func TestSecureConflictHigherPriorityCallerWins(t *testing.T) {
	reg := setup(t, false, true)
	a := &fakeClient{}
	reg.AddResource(100, 1, a, []registry.Resource{{Type: registry.SecureCodec, Value: 1}})

	oracle := priority.Fake{100: 20, 200: 10}
	engine := New(reg, oracle, nil)

	ok := engine.ReclaimResource(context.Background(), 200, []registry.Resource{{Type: registry.SecureCodec, Value: 1}})
	if !ok {
		t.Fatalf("expected reclaim to succeed")
	}
	if a.calls != 1 {
		t.Fatalf("expected A's callback invoked once, got %d", a.calls)
	}
}

// Scenario 2: secure conflict, policy off, lower-priority caller blocked.
func TestSecureConflictLowerPriorityCallerBlocked(t *testing.T) {
	reg := setup(t, false, true)
	a := &fakeClient{}
	reg.AddResource(100, 1, a, []registry.Resource{{Type: registry.SecureCodec, Value: 1}})

	oracle := priority.Fake{100: 20, 200: 30}
	engine := New(reg, oracle, nil)

	ok := engine.ReclaimResource(context.Background(), 200, []registry.Resource{{Type: registry.SecureCodec, Value: 1}})
	if ok {
		t.Fatalf("expected reclaim to fail")
	}
	if a.calls != 0 {
		t.Fatalf("expected no callback invoked, got %d", a.calls)
	}
}

// Scenario 3: graphic-memory eviction picks biggest consumer of the
// lowest-priority process.
func TestGraphicMemoryPicksBiggestConsumerOfLowestPriorityProcess(t *testing.T) {
	reg := setup(t, true, true)
	a := &fakeClient{}
	b := &fakeClient{}
	c := &fakeClient{}
	reg.AddResource(100, 1, a, []registry.Resource{{Type: registry.GraphicMemory, Value: 1000}})
	reg.AddResource(100, 2, b, []registry.Resource{{Type: registry.GraphicMemory, Value: 2000}})
	reg.AddResource(200, 3, c, []registry.Resource{{Type: registry.GraphicMemory, Value: 500}})

	oracle := priority.Fake{100: 30, 200: 40, 300: 10}
	engine := New(reg, oracle, nil)

	ok := engine.ReclaimResource(context.Background(), 300, []registry.Resource{{Type: registry.GraphicMemory, Value: 100}})
	if !ok {
		t.Fatalf("expected reclaim to succeed")
	}
	if c.calls != 1 {
		t.Fatalf("expected C's callback invoked, got %d", c.calls)
	}
	if a.calls != 0 || b.calls != 0 {
		t.Fatalf("expected pid 100's clients untouched, got a=%d b=%d", a.calls, b.calls)
	}
}

// Scenario 4: Phase 1 suppresses Phase 2.
func TestPhase1SuppressesPhase2(t *testing.T) {
	reg := setup(t, false, false)
	a := &fakeClient{}
	b := &fakeClient{}
	reg.AddResource(100, 1, a, []registry.Resource{{Type: registry.SecureCodec, Value: 1}})
	reg.AddResource(200, 2, b, []registry.Resource{{Type: registry.GraphicMemory, Value: 1000}})

	oracle := priority.Fake{100: 30, 200: 30, 300: 10}
	engine := New(reg, oracle, nil)

	ok := engine.ReclaimResource(context.Background(), 300, []registry.Resource{
		{Type: registry.SecureCodec, Value: 1},
		{Type: registry.GraphicMemory, Value: 1},
	})
	if !ok {
		t.Fatalf("expected reclaim to succeed")
	}
	if a.calls != 1 {
		t.Fatalf("expected pid-100 client invoked once, got %d", a.calls)
	}
	if b.calls != 0 {
		t.Fatalf("expected pid-200 client NOT invoked, got %d", b.calls)
	}
}

// Scenario 5: equal priority under conflict rule blocks reclaim.
func TestEqualPriorityUnderConflictBlocks(t *testing.T) {
	reg := setup(t, false, true)
	a := &fakeClient{}
	reg.AddResource(100, 1, a, []registry.Resource{{Type: registry.SecureCodec, Value: 1}})

	oracle := priority.Fake{100: 20, 200: 20}
	engine := New(reg, oracle, nil)

	ok := engine.ReclaimResource(context.Background(), 200, []registry.Resource{{Type: registry.SecureCodec, Value: 1}})
	if ok {
		t.Fatalf("expected reclaim to fail on equal priority")
	}
	if a.calls != 0 {
		t.Fatalf("expected no callback invoked, got %d", a.calls)
	}
}

// Scenario 6: callback failure short-circuits remaining victims.
func TestCallbackFailureShortCircuits(t *testing.T) {
	reg := setup(t, false, false)
	v1 := &fakeClient{fail: true}
	v2 := &fakeClient{}
	// Both are secure-codec holders so Phase 1 collects both as victims;
	// registration order fixes v1 before v2.
	reg.AddResource(100, 1, v1, []registry.Resource{{Type: registry.SecureCodec, Value: 1}})
	reg.AddResource(100, 2, v2, []registry.Resource{{Type: registry.SecureCodec, Value: 1}})

	oracle := priority.Fake{100: 30, 200: 10}
	engine := New(reg, oracle, nil)

	ok := engine.ReclaimResource(context.Background(), 200, []registry.Resource{{Type: registry.SecureCodec, Value: 1}})
	if ok {
		t.Fatalf("expected reclaim to fail")
	}
	if v1.calls != 1 {
		t.Fatalf("expected v1 invoked once, got %d", v1.calls)
	}
	if v2.calls != 0 {
		t.Fatalf("expected v2 not invoked after v1 failed, got %d", v2.calls)
	}
}

func TestReclaimFailsWhenCallingPidPriorityUnavailable(t *testing.T) {
	reg := setup(t, true, true)
	a := &fakeClient{}
	reg.AddResource(100, 1, a, []registry.Resource{{Type: registry.GraphicMemory, Value: 1000}})

	oracle := priority.Fake{100: 10} // 300 deliberately absent
	engine := New(reg, oracle, nil)

	ok := engine.ReclaimResource(context.Background(), 300, []registry.Resource{{Type: registry.GraphicMemory, Value: 1}})
	if ok {
		t.Fatalf("expected reclaim to fail when caller priority unavailable")
	}
	if a.calls != 0 {
		t.Fatalf("expected no callback invoked, got %d", a.calls)
	}
}

func TestReclaimFailsWithNoCandidateHolder(t *testing.T) {
	reg := setup(t, true, true)
	oracle := priority.Fake{300: 10}
	engine := New(reg, oracle, nil)

	ok := engine.ReclaimResource(context.Background(), 300, []registry.Resource{{Type: registry.GraphicMemory, Value: 1}})
	if ok {
		t.Fatalf("expected reclaim to fail with no holders at all")
	}
}

func TestUnreadableCandidatePriorityIsSkippedNotBlocking(t *testing.T) {
	reg := setup(t, true, true)
	unreadable := &fakeClient{}
	readable := &fakeClient{}
	reg.AddResource(100, 1, unreadable, []registry.Resource{{Type: registry.GraphicMemory, Value: 5000}})
	reg.AddResource(200, 2, readable, []registry.Resource{{Type: registry.GraphicMemory, Value: 10}})

	// pid 100 has no priority entry at all: it must be skipped, not treated
	// as a blocker, and pid 200 (readable, lower priority than caller) wins.
	oracle := priority.Fake{200: 50, 300: 10}
	engine := New(reg, oracle, nil)

	ok := engine.ReclaimResource(context.Background(), 300, []registry.Resource{{Type: registry.GraphicMemory, Value: 1}})
	if !ok {
		t.Fatalf("expected reclaim to succeed by skipping the unreadable pid")
	}
	if readable.calls != 1 {
		t.Fatalf("expected the readable holder's callback invoked, got %d", readable.calls)
	}
	if unreadable.calls != 0 {
		t.Fatalf("expected the unreadable-priority holder untouched, got %d", unreadable.calls)
	}
}
