// Package mediarmv1 defines the wire messages and gRPC service surface for
// the media resource arbiter. It plays the role a protoc-gen-go/
// protoc-gen-go-grpc pair would normally fill; since no protoc toolchain is
// available these stubs are maintained by hand (see codec.go for how they
// go over the wire without protobuf's generated marshalers).
package mediarmv1

// PolicyEntry is one (key, value) pair accepted by Config.
type PolicyEntry struct {
	Key   string `json:"key"`
	Value uint64 `json:"value"`
}

// ResourceEntry is one (type, value) pair as registered or requested.
type ResourceEntry struct {
	Type  string `json:"type"`
	Value uint64 `json:"value"`
}

type ConfigRequest struct {
	Policies []PolicyEntry `json:"policies,omitempty"`
}

func (m *ConfigRequest) GetPolicies() []PolicyEntry {
	if m == nil {
		return nil
	}
	return m.Policies
}

// ConfigResponse echoes the policy state in effect after applying (or, for
// a request with no Policies, simply reading) the registry's flags.
type ConfigResponse struct {
	Policies []PolicyEntry `json:"policies,omitempty"`
}

type AddResourceRequest struct {
	Pid       int32           `json:"pid"`
	ClientId  int64           `json:"client_id"`
	Resources []ResourceEntry `json:"resources,omitempty"`
}

func (m *AddResourceRequest) GetPid() int32 {
	if m == nil {
		return 0
	}
	return m.Pid
}

func (m *AddResourceRequest) GetClientId() int64 {
	if m == nil {
		return 0
	}
	return m.ClientId
}

func (m *AddResourceRequest) GetResources() []ResourceEntry {
	if m == nil {
		return nil
	}
	return m.Resources
}

type AddResourceResponse struct{}

type RemoveResourceRequest struct {
	ClientId int64 `json:"client_id"`
}

func (m *RemoveResourceRequest) GetClientId() int64 {
	if m == nil {
		return 0
	}
	return m.ClientId
}

type RemoveResourceResponse struct{}

type ReclaimRequest struct {
	CallingPid int32           `json:"calling_pid"`
	Resources  []ResourceEntry `json:"resources,omitempty"`
}

func (m *ReclaimRequest) GetCallingPid() int32 {
	if m == nil {
		return 0
	}
	return m.CallingPid
}

func (m *ReclaimRequest) GetResources() []ResourceEntry {
	if m == nil {
		return nil
	}
	return m.Resources
}

type ReclaimResponse struct {
	Success bool `json:"success"`
}

type SnapshotRequest struct{}

// ClientSnapshot mirrors one registered client for introspection (watch TUI,
// metrics scrape helpers, tests). It is not part of the core reclaim
// algorithm.
type ClientSnapshot struct {
	ClientId  int64           `json:"client_id"`
	Resources []ResourceEntry `json:"resources,omitempty"`
}

type ProcessSnapshot struct {
	Pid              int32            `json:"pid"`
	Priority         int32            `json:"priority"`
	PriorityKnown    bool             `json:"priority_known"`
	Clients          []ClientSnapshot `json:"clients,omitempty"`
}

type SnapshotResponse struct {
	Processes []ProcessSnapshot `json:"processes,omitempty"`
	// ActiveReclaims is the number of ReclaimResource calls currently
	// blocked on victim callbacks. Zero doesn't guarantee a clean stop —
	// a reclaim can start between this snapshot and a following signal —
	// but a nonzero count is a reliable "don't stop now" signal.
	ActiveReclaims int32 `json:"active_reclaims,omitempty"`
}

// CallbackKind discriminates the CallbackEnvelope oneof-by-convention.
type CallbackKind string

const (
	CallbackHello CallbackKind = "hello"
	CallbackAsk   CallbackKind = "ask"
	CallbackAck   CallbackKind = "ack"
)

// CallbackEnvelope flows both directions on the RegisterCallback stream.
// A client sends a single Hello to identify itself, then the daemon sends
// Ask envelopes whenever it wants that client to release resources, and the
// client answers each with a matching Ack.
type CallbackEnvelope struct {
	Kind      CallbackKind `json:"kind"`
	ClientId  int64        `json:"client_id,omitempty"`
	RequestId uint64       `json:"request_id,omitempty"`
	Success   bool         `json:"success,omitempty"`
}
