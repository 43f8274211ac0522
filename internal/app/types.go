package app

import (
	"fmt"
	"strconv"
	"strings"

	mediarmv1 "mediarm/api/mediarmv1"
)

// Resource is a (type, value) pair as accepted on the command line, e.g.
// "video-codec=1".
type Resource struct {
	Type  string
	Value uint64
}

// ParseResources parses "type=value" pairs as passed to `mediarmctl
// register` and `mediarmctl reclaim`.
func ParseResources(args []string) ([]Resource, error) {
	resources := make([]Resource, 0, len(args))
	for _, arg := range args {
		typ, raw, ok := strings.Cut(arg, "=")
		typ = strings.TrimSpace(typ)
		if !ok || typ == "" {
			return nil, fmt.Errorf("invalid resource %q: expected type=value", arg)
		}
		value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid resource %q: %w", arg, err)
		}
		resources = append(resources, Resource{Type: typ, Value: value})
	}
	return resources, nil
}

func resourcesToProto(resources []Resource) []mediarmv1.ResourceEntry {
	out := make([]mediarmv1.ResourceEntry, 0, len(resources))
	for _, r := range resources {
		out = append(out, mediarmv1.ResourceEntry{Type: r.Type, Value: r.Value})
	}
	return out
}

// ClientView mirrors one registered client for display in `mediarmctl
// watch`.
type ClientView struct {
	ClientID  int64
	Resources []Resource
}

// ProcessView mirrors one registry entry (a pid and its clients) as
// returned by Snapshot.
type ProcessView struct {
	PID           int
	Priority      int32
	PriorityKnown bool
	Clients       []ClientView
}

func processViewFromProto(p mediarmv1.ProcessSnapshot) ProcessView {
	pv := ProcessView{
		PID:           int(p.Pid),
		Priority:      p.Priority,
		PriorityKnown: p.PriorityKnown,
		Clients:       make([]ClientView, 0, len(p.Clients)),
	}
	for _, c := range p.Clients {
		resources := make([]Resource, 0, len(c.Resources))
		for _, r := range c.Resources {
			resources = append(resources, Resource{Type: r.Type, Value: r.Value})
		}
		pv.Clients = append(pv.Clients, ClientView{ClientID: c.ClientId, Resources: resources})
	}
	return pv
}
