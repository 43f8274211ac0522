// Package registry is the authoritative, mutex-guarded map of which client
// in which process holds which media resources. It is the ~35% "Resource
// Registry" component: every mutating and querying operation is serialized
// under a single lock, and the reclaim engine (package reclaim) reads a
// point-in-time view of it while holding that lock.
package registry

import "context"

// ResourceType is one of the closed set of resource kinds the arbiter
// understands. New hardware classes can be added here without touching the
// registry or reclaim logic, which both treat it as an opaque comparable
// key.
type ResourceType string

const (
	SecureCodec    ResourceType = "secure-codec"
	NonSecureCodec ResourceType = "non-secure-codec"
	GraphicMemory  ResourceType = "graphic-memory"
)

// Resource is a typed quantity a client currently holds. Value's meaning
// depends on Type: instance-count for codecs, bytes for graphic memory.
type Resource struct {
	Type  ResourceType
	Value uint64
}

// ClientID uniquely identifies a registered client for the service's
// lifetime. It carries no ordering meaning; it is a caller-supplied opaque
// key.
type ClientID int64

// PID is an operating-system process identifier.
type PID int32

// ClientHandle is an opaque capability used to ask a client to release
// whatever it holds. Implementations live outside this package (the gRPC
// callback-stream handle in internal/daemon, or a fake in tests).
type ClientHandle interface {
	// ReclaimResource asks the client to release resources. It returns
	// true iff the client acted on the request. Implementations must be
	// safe to call from the reclaim engine's goroutine outside any
	// registry lock, and safe to call more than once (a client that has
	// nothing left to release may simply no-op and report success).
	ReclaimResource(ctx context.Context) (bool, error)
}

// ResourceInfo is the per-client record inside one process entry.
type ResourceInfo struct {
	ClientID     ClientID
	ClientHandle ClientHandle
	Resources    []Resource // append-only within a registration
}

// HasType reports whether any held resource is of the given type.
func (ri *ResourceInfo) HasType(t ResourceType) bool {
	for _, r := range ri.Resources {
		if r.Type == t {
			return true
		}
	}
	return false
}

// LargestOfType returns the value of the largest single resource of the
// given type this client holds, and whether it holds any at all.
func (ri *ResourceInfo) LargestOfType(t ResourceType) (uint64, bool) {
	var largest uint64
	found := false
	for _, r := range ri.Resources {
		if r.Type != t {
			continue
		}
		if !found || r.Value > largest {
			largest = r.Value
			found = true
		}
	}
	return largest, found
}

// ProcessEntry is the ordered sequence of clients registered within one
// pid. Order is registration order and is the canonical tie-break the
// reclaim engine relies on.
type ProcessEntry struct {
	Clients []*ResourceInfo
}

// HasType reports whether any client in this process holds the given type.
func (pe *ProcessEntry) HasType(t ResourceType) bool {
	for _, c := range pe.Clients {
		if c.HasType(t) {
			return true
		}
	}
	return false
}
