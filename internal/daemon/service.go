package daemon

import (
	"context"
	"io"
	"log"

	mediarmv1 "mediarm/api/mediarmv1"
	"mediarm/internal/metrics"
	"mediarm/internal/priority"
	"mediarm/internal/reclaim"
	"mediarm/internal/registry"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// service implements mediarmv1.MediaResourceManagerServer, wiring incoming
// RPCs to the registry and the reclaim engine. It also owns the
// callbackHub that turns RegisterCallback streams into registry.ClientHandle
// values.
type service struct {
	mediarmv1.UnimplementedMediaResourceManagerServer

	reg       *registry.Registry
	engine    *reclaim.Engine
	oracle    priority.Oracle
	callbacks *callbackHub
}

func newService(reg *registry.Registry, oracle priority.Oracle, engine *reclaim.Engine) *service {
	return &service{reg: reg, engine: engine, oracle: oracle, callbacks: newCallbackHub()}
}

// Config applies any incoming policy entries, then always echoes the
// resulting (or, for an empty request, merely current) policy state — this
// doubles as mediarmctl's "config get" when Policies is empty.
func (s *service) Config(ctx context.Context, req *mediarmv1.ConfigRequest) (*mediarmv1.ConfigResponse, error) {
	entries := make([]registry.PolicyEntry, 0, len(req.GetPolicies()))
	for _, p := range req.GetPolicies() {
		entries = append(entries, registry.PolicyEntry{Key: registry.PolicyKey(p.Key), Value: p.Value})
	}
	s.reg.Config(entries)

	policy := s.reg.Policy()
	return &mediarmv1.ConfigResponse{Policies: []mediarmv1.PolicyEntry{
		{Key: string(registry.SupportsMultipleSecureCodecs), Value: boolToPolicyValue(policy.SupportsMultipleSecureCodecs)},
		{Key: string(registry.SupportsSecureWithNonSecureCodec), Value: boolToPolicyValue(policy.SupportsSecureWithNonSecureCodec)},
	}}, nil
}

func (s *service) AddResource(ctx context.Context, req *mediarmv1.AddResourceRequest) (*mediarmv1.AddResourceResponse, error) {
	if req.GetPid() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "pid must be positive")
	}
	clientID := registry.ClientID(req.GetClientId())
	handle, ok := s.callbacks.lookup(clientID)
	if !ok {
		return nil, status.Errorf(codes.FailedPrecondition, "client %d has no open RegisterCallback stream", clientID)
	}

	resources := make([]registry.Resource, 0, len(req.GetResources()))
	for _, r := range req.GetResources() {
		resources = append(resources, registry.Resource{Type: registry.ResourceType(r.Type), Value: r.Value})
	}
	s.reg.AddResource(registry.PID(req.GetPid()), clientID, handle, resources)
	metrics.SetRegisteredClients(s.countClients())
	return &mediarmv1.AddResourceResponse{}, nil
}

func (s *service) RemoveResource(ctx context.Context, req *mediarmv1.RemoveResourceRequest) (*mediarmv1.RemoveResourceResponse, error) {
	s.reg.RemoveResource(registry.ClientID(req.GetClientId()))
	metrics.SetRegisteredClients(s.countClients())
	return &mediarmv1.RemoveResourceResponse{}, nil
}

func (s *service) ReclaimResource(ctx context.Context, req *mediarmv1.ReclaimRequest) (*mediarmv1.ReclaimResponse, error) {
	if req.GetCallingPid() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "calling_pid must be positive")
	}
	resources := make([]registry.Resource, 0, len(req.GetResources()))
	for _, r := range req.GetResources() {
		resources = append(resources, registry.Resource{Type: registry.ResourceType(r.Type), Value: r.Value})
	}
	ok := s.engine.ReclaimResource(ctx, registry.PID(req.GetCallingPid()), resources)
	return &mediarmv1.ReclaimResponse{Success: ok}, nil
}

func (s *service) Snapshot(ctx context.Context, _ *mediarmv1.SnapshotRequest) (*mediarmv1.SnapshotResponse, error) {
	snap := s.reg.Snapshot()
	resp := &mediarmv1.SnapshotResponse{
		Processes:      make([]mediarmv1.ProcessSnapshot, 0, len(snap.Processes)),
		ActiveReclaims: s.engine.ActiveCount(),
	}
	for _, p := range snap.Processes {
		ps := mediarmv1.ProcessSnapshot{Pid: int32(p.PID), Clients: make([]mediarmv1.ClientSnapshot, 0, len(p.Clients))}
		if prio, ok := s.oracle.GetPriority(p.PID); ok {
			ps.Priority = prio
			ps.PriorityKnown = true
		}
		for _, c := range p.Clients {
			resources := make([]mediarmv1.ResourceEntry, 0, len(c.Resources))
			for _, r := range c.Resources {
				resources = append(resources, mediarmv1.ResourceEntry{Type: string(r.Type), Value: r.Value})
			}
			ps.Clients = append(ps.Clients, mediarmv1.ClientSnapshot{ClientId: int64(c.ClientID), Resources: resources})
		}
		resp.Processes = append(resp.Processes, ps)
	}
	return resp, nil
}

// RegisterCallback handles a client's long-lived callback stream: the first
// envelope must be a Hello identifying the client, after which the stream
// is registered in the hub and every subsequent inbound envelope is routed
// to the pending ReclaimResource call it acknowledges.
func (s *service) RegisterCallback(stream mediarmv1.MediaResourceManager_RegisterCallbackServer) error {
	first, err := stream.Recv()
	if err != nil {
		return err
	}
	if first.Kind != mediarmv1.CallbackHello {
		return status.Error(codes.InvalidArgument, "first envelope on a callback stream must be Hello")
	}
	clientID := registry.ClientID(first.ClientId)
	handle := s.callbacks.register(clientID, stream)
	defer s.callbacks.unregister(clientID)

	log.Printf("daemon: client %d opened callback stream", clientID)
	for {
		env, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if env.Kind == mediarmv1.CallbackAck {
			handle.deliver(env)
		}
	}
}

func (s *service) countClients() int {
	snap := s.reg.Snapshot()
	n := 0
	for _, p := range snap.Processes {
		n += len(p.Clients)
	}
	return n
}
