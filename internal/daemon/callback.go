package daemon

import (
	"context"
	"sync"
	"sync/atomic"

	mediarmv1 "mediarm/api/mediarmv1"
	"mediarm/internal/registry"
)

// callbackHub tracks the live RegisterCallback streams, keyed by the
// ClientID each stream announced in its Hello envelope. It is the daemon's
// side of the callback transport described for spec.md's §4.4 Phase 3:
// the reclaim engine never talks to net.Conn directly, only to
// registry.ClientHandle values this hub hands out.
type callbackHub struct {
	mu      sync.Mutex
	clients map[registry.ClientID]*streamClientHandle
}

func newCallbackHub() *callbackHub {
	return &callbackHub{clients: make(map[registry.ClientID]*streamClientHandle)}
}

func (h *callbackHub) register(clientID registry.ClientID, stream mediarmv1.MediaResourceManager_RegisterCallbackServer) *streamClientHandle {
	handle := &streamClientHandle{
		clientID: clientID,
		stream:   stream,
		pending:  make(map[uint64]chan mediarmv1.CallbackEnvelope),
	}
	h.mu.Lock()
	h.clients[clientID] = handle
	h.mu.Unlock()
	return handle
}

func (h *callbackHub) unregister(clientID registry.ClientID) {
	h.mu.Lock()
	delete(h.clients, clientID)
	h.mu.Unlock()
}

// lookup returns the live handle for clientID, if its callback stream is
// currently connected. AddResource requires this to succeed: a client must
// open its callback stream before registering resources, mirroring the
// original binder proxy being handed to addResource at registration time.
func (h *callbackHub) lookup(clientID registry.ClientID) (*streamClientHandle, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	handle, ok := h.clients[clientID]
	return handle, ok
}

// streamClientHandle adapts one client's bidirectional RegisterCallback
// stream to registry.ClientHandle. ReclaimResource sends a CallbackAsk and
// blocks on a per-request channel until the matching CallbackAck arrives
// (delivered by the RegisterCallback handler goroutine via deliver) or ctx
// is done.
type streamClientHandle struct {
	clientID registry.ClientID
	stream   mediarmv1.MediaResourceManager_RegisterCallbackServer

	sendMu sync.Mutex // serializes stream.Send; grpc streams are not safe for concurrent sends

	nextReqID uint64

	mu      sync.Mutex
	pending map[uint64]chan mediarmv1.CallbackEnvelope
}

func (h *streamClientHandle) ReclaimResource(ctx context.Context) (bool, error) {
	reqID := atomic.AddUint64(&h.nextReqID, 1)
	ch := make(chan mediarmv1.CallbackEnvelope, 1)

	h.mu.Lock()
	h.pending[reqID] = ch
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.pending, reqID)
		h.mu.Unlock()
	}()

	h.sendMu.Lock()
	err := h.stream.Send(&mediarmv1.CallbackEnvelope{
		Kind:      mediarmv1.CallbackAsk,
		ClientId:  int64(h.clientID),
		RequestId: reqID,
	})
	h.sendMu.Unlock()
	if err != nil {
		return false, err
	}

	select {
	case env := <-ch:
		return env.Success, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// deliver routes an inbound CallbackAck to the goroutine blocked on the
// matching request id. Acks for unknown or already-timed-out requests are
// dropped silently.
func (h *streamClientHandle) deliver(env *mediarmv1.CallbackEnvelope) {
	h.mu.Lock()
	ch, ok := h.pending[env.RequestId]
	h.mu.Unlock()
	if ok {
		ch <- *env
	}
}
