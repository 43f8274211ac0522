package registry

import (
	"log"
	"sync"
)

// Registry is the threadsafe in-memory catalog of pid -> registered clients
// -> held resources, plus the policy flags the reclaim engine consults. A
// single mutex guards both; there are no secondary indexes because lookups
// are always either "by pid" (small, bounded fan-out) or "scan everything"
// (the reclaim engine's job).
//
// order records pids in first-registration order. Go's map iteration order
// is randomized per-run, but spec.md's tie-breaking rules ("registry
// iteration order is the canonical tie-break") require a stable order, so
// LockedView.Range walks order rather than ranging over entries directly.
type Registry struct {
	mu      sync.Mutex
	entries map[PID]*ProcessEntry
	order   []PID
	policy  Policy
}

// New returns an empty registry with permissive policy defaults.
func New() *Registry {
	return &Registry{
		entries: make(map[PID]*ProcessEntry),
		policy:  DefaultPolicy(),
	}
}

// Config folds a batch of policy entries into the registry's policy flags.
// Serialized under the registry lock, as spec'd.
func (r *Registry) Config(entries []PolicyEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		r.policy.apply(e)
	}
}

// Policy returns a copy of the current policy flags.
func (r *Registry) Policy() Policy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.policy
}

// AddResource ensures a ProcessEntry exists for pid, ensures a ResourceInfo
// exists for clientID within it (creating one with handle if this is the
// first sighting of clientID), then appends resources to its sequence. On a
// pre-existing clientID the handle argument is ignored and the stored
// handle is retained — a client cannot swap its own callback handle out
// from under a live registration.
func (r *Registry) AddResource(pid PID, clientID ClientID, handle ClientHandle, resources []Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[pid]
	if !ok {
		entry = &ProcessEntry{}
		r.entries[pid] = entry
		r.order = append(r.order, pid)
	}

	info := findClientLocked(entry, clientID)
	if info == nil {
		info = &ResourceInfo{ClientID: clientID, ClientHandle: handle}
		entry.Clients = append(entry.Clients, info)
	}
	info.Resources = append(info.Resources, resources...)
}

// RemoveResource locates the unique ResourceInfo with this id across all
// process entries (in registration order) and removes it. A silent no-op
// if the id is unknown, matching spec's "debug-log only" error handling.
func (r *Registry) RemoveResource(clientID ClientID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, pid := range r.order {
		entry := r.entries[pid]
		for i, info := range entry.Clients {
			if info.ClientID != clientID {
				continue
			}
			entry.Clients = append(entry.Clients[:i], entry.Clients[i+1:]...)
			return
		}
	}
	log.Printf("registry: removeResource: client %d not found", clientID)
}

func findClientLocked(entry *ProcessEntry, clientID ClientID) *ResourceInfo {
	for _, info := range entry.Clients {
		if info.ClientID == clientID {
			return info
		}
	}
	return nil
}

// LockedView exposes the registry's pid map for read access to a caller
// already holding the lock (package reclaim's Phases 1-2). Range walks pids
// in registration order, the tie-break spec.md mandates; entries and the
// view itself must not be retained past the call that produced them.
type LockedView struct {
	reg *Registry
}

// Range calls fn for every registered pid in registration order, stopping
// early if fn returns false. Pids whose last client was removed remain
// present with an empty ProcessEntry, per spec's lifecycle rules.
func (v LockedView) Range(fn func(pid PID, entry *ProcessEntry) bool) {
	for _, pid := range v.reg.order {
		entry := v.reg.entries[pid]
		if entry == nil {
			continue
		}
		if !fn(pid, entry) {
			return
		}
	}
}

// Policy returns the policy flags visible to this locked view.
func (v LockedView) Policy() Policy {
	return v.reg.policy
}

// WithLock runs fn with the registry mutex held, handing it a LockedView.
// Package reclaim uses this to execute Phases 1-2 of a reclaim under the
// same lock that guards addResource/removeResource.
func (r *Registry) WithLock(fn func(view LockedView)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(LockedView{reg: r})
}

// Snapshot is a point-in-time, deep-enough copy of the registry for
// introspection (the watch TUI, metrics gauges, tests). It is not part of
// the reclaim algorithm.
type Snapshot struct {
	Processes []ProcessSnapshot
}

type ProcessSnapshot struct {
	PID     PID
	Clients []ClientSnapshot
}

type ClientSnapshot struct {
	ClientID  ClientID
	Resources []Resource
}

// Snapshot copies the current registry state out from under the lock, in
// registration order.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{Processes: make([]ProcessSnapshot, 0, len(r.order))}
	for _, pid := range r.order {
		entry := r.entries[pid]
		ps := ProcessSnapshot{PID: pid, Clients: make([]ClientSnapshot, 0, len(entry.Clients))}
		for _, c := range entry.Clients {
			ps.Clients = append(ps.Clients, ClientSnapshot{
				ClientID:  c.ClientID,
				Resources: append([]Resource(nil), c.Resources...),
			})
		}
		out.Processes = append(out.Processes, ps)
	}
	return out
}
