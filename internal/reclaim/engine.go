// Package reclaim is the ~55% core: given a calling pid and the resources
// it wants, decide under the registry lock which clients must release
// resources, then invoke their callbacks outside the lock. This is the
// concurrency-sensitive heart of the arbiter described in spec.md §4.4 and
// §5; the algorithm below is a direct, unmodified port of that section
// (itself grounded in the original ResourceManagerService.cpp reclaim
// logic).
package reclaim

import (
	"context"
	"log"
	"sync/atomic"

	"mediarm/internal/priority"
	"mediarm/internal/registry"
)

// Metrics receives reclaim engine outcomes. Implemented by
// internal/metrics; kept as a narrow interface here so this package has no
// dependency on Prometheus.
type Metrics interface {
	ObserveReclaim(success bool, failureReason string, victims int)
}

type noopMetrics struct{}

func (noopMetrics) ObserveReclaim(bool, string, int) {}

// Engine ties a registry to a priority oracle and implements
// reclaimResource. Beyond its collaborators its only state is an atomic
// count of calls in Phase 3, so it is cheap to construct and safe to share.
type Engine struct {
	reg     *registry.Registry
	oracle  priority.Oracle
	metrics Metrics

	active atomic.Int32
}

// New builds a reclaim engine. metrics may be nil, in which case
// observations are dropped.
func New(reg *registry.Registry, oracle priority.Oracle, metrics Metrics) *Engine {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Engine{reg: reg, oracle: oracle, metrics: metrics}
}

// Failure reasons reported to Metrics; also useful in logs and tests.
const (
	ReasonNone              = ""
	ReasonPriorityGuard     = "priority-guard"
	ReasonOracleUnavailable = "oracle-unavailable"
	ReasonNoCandidateHolder = "no-candidate-holder"
	ReasonNoVictim          = "no-victim"
	ReasonCallbackFailed    = "callback-failed"
)

// ReclaimResource implements the three-phase algorithm from spec.md §4.4.
// It returns true iff at least one victim callback was invoked and every
// invoked callback returned success.
func (e *Engine) ReclaimResource(ctx context.Context, callingPid registry.PID, requested []registry.Resource) bool {
	e.active.Add(1)
	defer e.active.Add(-1)

	victims, reason := e.selectVictims(callingPid, requested)
	if reason != ReasonNone {
		e.metrics.ObserveReclaim(false, reason, 0)
		return false
	}
	if len(victims) == 0 {
		e.metrics.ObserveReclaim(false, ReasonNoVictim, 0)
		return false
	}

	e.active.Add(1)
	defer e.active.Add(-1)
	if !e.invokeVictims(ctx, victims) {
		e.metrics.ObserveReclaim(false, ReasonCallbackFailed, len(victims))
		return false
	}
	e.metrics.ObserveReclaim(true, ReasonNone, len(victims))
	return true
}

// ActiveCount reports how many ReclaimResource calls are currently in Phase
// 3, blocked on victim callbacks. Consulted by the daemon's Snapshot RPC and
// by StopRunningDaemon, which want to know how much in-flight reclaim state
// a shutdown is about to interrupt.
func (e *Engine) ActiveCount() int32 {
	return e.active.Load()
}

// selectVictims runs Phases 1-2 under the registry lock and returns the
// ordered victim list (insertion order == call order for Phase 3), or a
// non-empty failure reason if the reclaim must fail immediately.
func (e *Engine) selectVictims(callingPid registry.PID, requested []registry.Resource) ([]registry.ClientHandle, string) {
	var (
		victims []registry.ClientHandle
		reason  string
	)

	e.reg.WithLock(func(view registry.LockedView) {
		policy := view.Policy()

		// Phase 1: secure/non-secure conflict resolution.
		for _, res := range requested {
			switch res.Type {
			case registry.SecureCodec:
				if !policy.SupportsMultipleSecureCodecs {
					got, ok := e.collectAll(view, callingPid, registry.SecureCodec)
					if !ok {
						reason = ReasonPriorityGuard
						return
					}
					victims = append(victims, got...)
				}
				if !policy.SupportsSecureWithNonSecureCodec {
					got, ok := e.collectAll(view, callingPid, registry.NonSecureCodec)
					if !ok {
						reason = ReasonPriorityGuard
						return
					}
					victims = append(victims, got...)
				}
			case registry.NonSecureCodec:
				if !policy.SupportsSecureWithNonSecureCodec {
					got, ok := e.collectAll(view, callingPid, registry.SecureCodec)
					if !ok {
						reason = ReasonPriorityGuard
						return
					}
					victims = append(victims, got...)
				}
			}
		}

		// Phase 2: only when Phase 1 contributed nothing.
		if len(victims) == 0 {
			for _, res := range requested {
				if res.Type != registry.GraphicMemory {
					continue
				}
				handle, r := e.lowestPriorityBiggestConsumer(view, callingPid, res.Type)
				if r != ReasonNone {
					reason = r
					return
				}
				victims = append(victims, handle)
			}
		}
	})

	return victims, reason
}

// collectAll implements the spec's "collect-all" procedure for type t: every
// current holder of t whose priority can be read must have strictly lower
// priority (higher numeric value) than callingPid, or the whole reclaim
// fails immediately. Holders whose priority can't be read are skipped: they
// are neither victims nor blockers. An empty result is not a failure — it
// just contributes nothing.
func (e *Engine) collectAll(view registry.LockedView, callingPid registry.PID, t registry.ResourceType) ([]registry.ClientHandle, bool) {
	var out []registry.ClientHandle
	ok := true
	view.Range(func(pid registry.PID, entry *registry.ProcessEntry) bool {
		if !entry.HasType(t) {
			return true
		}
		if _, readable := e.oracle.GetPriority(pid); !readable {
			return true
		}
		if !e.callerStrictlyHigher(callingPid, pid) {
			log.Printf("reclaim: can't evict type %s held by pid %d for caller %d", t, pid, callingPid)
			ok = false
			return false
		}
		for _, client := range entry.Clients {
			if client.HasType(t) {
				out = append(out, client.ClientHandle)
			}
		}
		return true
	})
	if !ok {
		return nil, false
	}
	return out, true
}

// callerStrictlyHigher reports whether callingPid's priority is strictly
// higher (numerically lower) than pid's. Either priority being unavailable
// makes this false. collectAll only calls it for holders whose priority is
// readable, so there a false result means the caller's own priority is
// unreadable or not strictly higher, and the whole reclaim fails.
func (e *Engine) callerStrictlyHigher(callingPid, pid registry.PID) bool {
	callerPrio, ok := e.oracle.GetPriority(callingPid)
	if !ok {
		return false
	}
	targetPrio, ok := e.oracle.GetPriority(pid)
	if !ok {
		return false
	}
	return callerPrio < targetPrio
}

// lowestPriorityBiggestConsumer implements the spec's "lowest-priority,
// biggest-consumer" rule for a single resource type.
func (e *Engine) lowestPriorityBiggestConsumer(view registry.LockedView, callingPid registry.PID, t registry.ResourceType) (registry.ClientHandle, string) {
	callerPrio, ok := e.oracle.GetPriority(callingPid)
	if !ok {
		return nil, ReasonOracleUnavailable
	}

	targetEntry, targetPrio, found := e.lowestPriorityEntryHolding(view, t)
	if !found {
		return nil, ReasonNoCandidateHolder
	}
	if targetPrio <= callerPrio {
		return nil, ReasonPriorityGuard
	}

	handle, ok := biggestConsumer(targetEntry, t)
	if !ok {
		return nil, ReasonNoCandidateHolder
	}
	return handle, ReasonNone
}

// lowestPriorityEntryHolding scans every non-empty process entry holding at
// least one resource of type t, in registration order, and returns the one
// with the numerically greatest priority value (the lowest-priority
// process). Pids whose priority can't be read are skipped, not treated as
// blockers. Ties keep the first-encountered (earliest-registered) entry.
func (e *Engine) lowestPriorityEntryHolding(view registry.LockedView, t registry.ResourceType) (*registry.ProcessEntry, int32, bool) {
	var (
		bestEntry *registry.ProcessEntry
		bestPrio  int32
		found     bool
	)
	view.Range(func(pid registry.PID, entry *registry.ProcessEntry) bool {
		if len(entry.Clients) == 0 || !entry.HasType(t) {
			return true
		}
		prio, ok := e.oracle.GetPriority(pid)
		if !ok {
			return true
		}
		if !found || prio > bestPrio {
			bestEntry, bestPrio, found = entry, prio, true
		}
		return true
	})
	return bestEntry, bestPrio, found
}

// biggestConsumer finds, within one process entry, the client whose single
// largest-valued resource of type t is maximal. Ties keep the
// earlier-iterated client (strictly-greater values win, equal values do
// not displace the incumbent).
func biggestConsumer(entry *registry.ProcessEntry, t registry.ResourceType) (registry.ClientHandle, bool) {
	var (
		winner      registry.ClientHandle
		winnerValue uint64
		found       bool
	)
	for _, client := range entry.Clients {
		value, ok := client.LargestOfType(t)
		if !ok {
			continue
		}
		if !found || value > winnerValue {
			winner, winnerValue, found = client.ClientHandle, value, true
		}
	}
	return winner, found
}

// invokeVictims runs Phase 3 outside the registry lock: callbacks in
// insertion order, short-circuiting on the first failure.
func (e *Engine) invokeVictims(ctx context.Context, victims []registry.ClientHandle) bool {
	for _, v := range victims {
		ok, err := v.ReclaimResource(ctx)
		if err != nil {
			log.Printf("reclaim: victim callback error: %v", err)
			return false
		}
		if !ok {
			return false
		}
	}
	return true
}
